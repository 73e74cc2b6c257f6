//go:build ocr

// Package ocr extracts page text from scanned images and detects printed
// page number candidates in it.
//
// Text recognition wraps the Tesseract OCR engine via gosseract and
// requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Number detection (DetectNumbers, PageFromText) is pure Go and works
// without the "ocr" build tag.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/foliate/model"
)

// tesseractConfidence is the OCR quality assumed for Tesseract output.
const tesseractConfidence = 85

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecognizePage runs OCR on one scanned page image and returns the page
// ready for the ordering engine: recognized text plus the number
// candidates detected in it.
func (c *Client) RecognizePage(id string, index int, imageData []byte) (model.Page, error) {
	text, err := c.RecognizeImage(imageData)
	if err != nil {
		return model.Page{}, fmt.Errorf("page %s: %w", id, err)
	}
	return PageFromText(id, index, text, tesseractConfidence), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
