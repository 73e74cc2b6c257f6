package ocr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/roman"
)

// Detection confidences per number class. Plain digits are the most
// reliable read; the hybrid and hierarchical forms depend on more
// characters being recognized correctly.
const (
	arabicConfidence       = 80
	romanConfidence        = 75
	hybridConfidence       = 70
	hierarchicalConfidence = 65
)

// contextLength is how many characters around a match are kept as
// context.
const contextLength = 20

var (
	arabicRe = regexp.MustCompile(`\b\d+\b`)
	romanRe  = regexp.MustCompile(`\b[IVXLCDMivxlcdm]+\b`)
	// "Chapter 2, Page 34" and similar; the page number is what orders.
	hybridRe = regexp.MustCompile(`(?i)\b(?:chapter|ch\.?)\s*(\d+)[,\s]+(?:page|p\.?)\s*(\d+)\b`)
	// Section numbering like "3.2"; the major number is the candidate.
	hierarchicalRe = regexp.MustCompile(`\b(\d+)\.(\d+)\b`)
)

// DetectNumbers scans OCR text for page number candidates of every
// supported notation. Records come back in match order per notation
// (Arabic, Roman, hybrid, hierarchical), so output is deterministic for
// a given text.
func DetectNumbers(text string) []model.NumberRecord {
	if text == "" {
		return nil
	}

	var records []model.NumberRecord

	for _, loc := range arabicRe.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		value, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		records = append(records, model.NumberRecord{
			Text:       match,
			Type:       model.Arabic,
			Value:      value,
			HasValue:   true,
			Confidence: arabicConfidence,
			Context:    contextAround(text, loc[0], loc[1]),
		})
	}

	for _, loc := range romanRe.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		value, ok := canonicalRoman(match)
		if !ok {
			continue
		}
		records = append(records, model.NumberRecord{
			Text:       match,
			Type:       model.Roman,
			Value:      value,
			HasValue:   true,
			Confidence: romanConfidence,
			Context:    contextAround(text, loc[0], loc[1]),
		})
	}

	for _, loc := range hybridRe.FindAllSubmatchIndex([]byte(text), -1) {
		page, err := strconv.Atoi(text[loc[4]:loc[5]])
		if err != nil {
			continue
		}
		records = append(records, model.NumberRecord{
			Text:       text[loc[0]:loc[1]],
			Type:       model.Hybrid,
			Value:      page,
			HasValue:   true,
			Confidence: hybridConfidence,
			Context:    contextAround(text, loc[0], loc[1]),
		})
	}

	for _, loc := range hierarchicalRe.FindAllSubmatchIndex([]byte(text), -1) {
		major, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		records = append(records, model.NumberRecord{
			Text:       text[loc[0]:loc[1]],
			Type:       model.Hierarchical,
			Value:      major,
			HasValue:   true,
			Confidence: hierarchicalConfidence,
			Context:    contextAround(text, loc[0], loc[1]),
		})
	}

	return records
}

// PageFromText builds an engine input page from already-recognized text.
// ocrConfidence is 0-100; pass a negative value when unknown.
func PageFromText(id string, index int, text string, ocrConfidence float64) model.Page {
	text = strings.TrimSpace(text)
	return model.Page{
		ID:            id,
		Index:         index,
		Text:          text,
		Numbers:       DetectNumbers(text),
		OCRConfidence: ocrConfidence,
	}
}

// canonicalRoman accepts only tokens whose canonical rendering matches
// the token itself. This filters ordinary words made of numeral letters
// ("did", "civil") that a plain character-class match lets through.
func canonicalRoman(token string) (int, bool) {
	value, ok := roman.ToInt(token)
	if !ok {
		return 0, false
	}
	if roman.FromInt(value) != strings.ToLower(token) {
		return 0, false
	}
	return value, true
}

func contextAround(text string, start, end int) string {
	from := start - contextLength
	if from < 0 {
		from = 0
	}
	to := end + contextLength
	if to > len(text) {
		to = len(text)
	}
	return strings.TrimSpace(text[from:to])
}
