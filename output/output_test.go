package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/foliate"
	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/order"
)

func orderedResult(t *testing.T) *foliate.Result {
	t.Helper()
	pages := []model.Page{
		{
			ID: "scan_000", Index: 0, OCRConfidence: 95,
			Text: "body text body text body text body text body text",
			Numbers: []model.NumberRecord{
				{Text: "2", Type: model.Arabic, Value: 2, HasValue: true, Confidence: 95},
			},
		},
		{
			ID: "scan_001", Index: 1, OCRConfidence: 95,
			Text: "body text body text body text body text body text",
			Numbers: []model.NumberRecord{
				{Text: "1", Type: model.Arabic, Value: 1, HasValue: true, Confidence: 95},
			},
		},
	}
	result, err := foliate.New().Order(pages)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestNewManifest(t *testing.T) {
	result := orderedResult(t)

	manifest := NewManifest(result)
	if manifest.RunID == "" {
		t.Error("RunID not assigned")
	}
	if manifest.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", manifest.TotalPages)
	}
	// Decisions are position-sorted, so the page printed "1" leads.
	if manifest.Pages[0].ID != "scan_001" || manifest.Pages[0].Position != 1 {
		t.Errorf("first page = %+v", manifest.Pages[0])
	}
	if manifest.Pages[1].ScanIndex != 0 {
		t.Errorf("second page ScanIndex = %d, want 0", manifest.Pages[1].ScanIndex)
	}
}

func TestWriteManifestAndReport(t *testing.T) {
	result := orderedResult(t)
	dir := t.TempDir()

	manifest := NewManifest(result)
	manifestPath := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(manifest, manifestPath); err != nil {
		t.Fatal(err)
	}

	reportPath := filepath.Join(dir, "confidence.json")
	if err := WriteReport(result, manifest.RunID, reportPath); err != nil {
		t.Fatal(err)
	}

	var decodedManifest Manifest
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &decodedManifest); err != nil {
		t.Fatal(err)
	}
	if decodedManifest.RunID != manifest.RunID {
		t.Errorf("manifest RunID = %q, want %q", decodedManifest.RunID, manifest.RunID)
	}

	var decodedReport map[string]any
	data, err = os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &decodedReport); err != nil {
		t.Fatal(err)
	}
	if decodedReport["run_id"] != manifest.RunID {
		t.Errorf("report run_id = %v, want %q", decodedReport["run_id"], manifest.RunID)
	}
	if _, ok := decodedReport["page_assessments"]; !ok {
		t.Error("report missing page_assessments")
	}
}

func TestCopyOrderedImages(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "ordered")

	sources := map[string]string{}
	for _, id := range []string{"scan_000", "scan_001"} {
		path := filepath.Join(srcDir, id+".png")
		if err := os.WriteFile(path, []byte(id), 0o644); err != nil {
			t.Fatal(err)
		}
		sources[id] = path
	}

	decisions := []order.Decision{
		{Page: model.Page{ID: "scan_001", Index: 1}, Position: 1},
		{Page: model.Page{ID: "scan_000", Index: 0}, Position: 2},
	}

	if err := CopyOrderedImages(decisions, sources, destDir, "page"); err != nil {
		t.Fatal(err)
	}

	first, err := os.ReadFile(filepath.Join(destDir, "page_00001.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != "scan_001" {
		t.Errorf("page_00001.png holds %q, want scan_001's bytes", first)
	}
	if _, err := os.Stat(filepath.Join(destDir, "page_00002.png")); err != nil {
		t.Errorf("page_00002.png missing: %v", err)
	}
}

func TestCopyOrderedImages_MissingSource(t *testing.T) {
	decisions := []order.Decision{
		{Page: model.Page{ID: "ghost"}, Position: 1},
	}
	err := CopyOrderedImages(decisions, map[string]string{}, t.TempDir(), "page")
	if err == nil {
		t.Error("expected an error for a page without a source image")
	}
}
