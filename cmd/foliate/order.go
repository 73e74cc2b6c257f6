package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/foliate"
	"github.com/tsawler/foliate/input"
	"github.com/tsawler/foliate/internal/logger"
	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/ocr"
	"github.com/tsawler/foliate/output"
	"github.com/tsawler/foliate/scheme"
)

var (
	orderOutDir        string
	orderPDFOut        string
	orderPrefix        string
	orderLang          string
	orderNoContent     bool
	orderNoContents    bool
	orderOutliers      bool
	orderMinConfidence float64
)

var orderCmd = &cobra.Command{
	Use:   "order <images-dir | document.pdf>",
	Short: "Decide the reading order of scanned pages",
	Long: `Order runs the full pipeline on a directory of page images or a PDF:
OCR each page, detect printed page numbers, analyze the numbering
scheme, resolve conflicts, refine uncertain pages by content, and write
the ordered output with a manifest and confidence report.

Examples:
  foliate order ./scans --out ./ordered
  foliate order book.pdf --out ./ordered --pdf-out book_ordered.pdf
  foliate order ./scans --out ./ordered --min-confidence 80`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		log := logger.Get()

		if cmd.Flags().Changed("min-confidence") {
			viper.Set("min_confidence_for_auto_order", orderMinConfidence)
		}
		threshold := viper.GetFloat64("min_confidence_for_auto_order")

		client, err := ocr.New()
		if err != nil {
			return err
		}
		defer client.Close()
		if orderLang != "" {
			if err := client.SetLanguage(orderLang); err != nil {
				return err
			}
		}

		isPDF := strings.EqualFold(filepath.Ext(src), ".pdf")

		var (
			pages      []model.Page
			sourceByID map[string]string
		)
		if isPDF {
			pages, err = pagesFromPDF(client, src)
		} else {
			pages, sourceByID, err = pagesFromImages(client, src)
		}
		if err != nil {
			return err
		}
		log.Info().Int("pages", len(pages)).Str("source", src).Msg("OCR complete")

		engine := foliate.New().
			SchemeConfig(schemeConfigFromViper()).
			ReviewThreshold(threshold).
			DetectContentsPages(!orderNoContents).
			RejectOutliers(orderOutliers).
			ContentAnalysis(!orderNoContent)

		result, err := engine.Order(pages)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(orderOutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		manifest := output.NewManifest(result)
		if err := output.WriteManifest(manifest, filepath.Join(orderOutDir, "manifest.json")); err != nil {
			return err
		}
		if err := output.WriteReport(result, manifest.RunID, filepath.Join(orderOutDir, "confidence_report.json")); err != nil {
			return err
		}

		if isPDF && orderPDFOut != "" {
			if err := output.ReorderPDF(src, orderPDFOut, result.Decisions); err != nil {
				return err
			}
			log.Info().Str("pdf", orderPDFOut).Msg("wrote reordered PDF")
		}
		if sourceByID != nil {
			orderedDir := filepath.Join(orderOutDir, "pages")
			if err := output.CopyOrderedImages(result.Decisions, sourceByID, orderedDir, orderPrefix); err != nil {
				return err
			}
			log.Info().Str("dir", orderedDir).Msg("wrote ordered images")
		}

		log.Info().
			Str("run_id", manifest.RunID).
			Float64("overall_confidence", result.Report.Overall).
			Bool("needs_review", result.Report.NeedsHumanReview).
			Ints("review_pages", result.Report.ReviewPages).
			Msg(result.Report.Summary)

		if result.Report.NeedsHumanReview {
			fmt.Printf("Ordering complete with confidence %.1f%%; %d page(s) need review. See %s.\n",
				result.Report.Overall, len(result.Report.ReviewPages),
				filepath.Join(orderOutDir, "confidence_report.json"))
		} else {
			fmt.Printf("Ordering complete with confidence %.1f%%.\n", result.Report.Overall)
		}
		return nil
	},
}

// schemeConfigFromViper overlays config-file weights onto the default
// scheme detection config. Keys follow the package names, for example
// scheme.type_confidence.roman: 85.
func schemeConfigFromViper() scheme.Config {
	cfg := scheme.DefaultConfig()
	for name, typ := range map[string]model.NumberType{
		"arabic":       model.Arabic,
		"roman":        model.Roman,
		"hybrid":       model.Hybrid,
		"hierarchical": model.Hierarchical,
	} {
		if key := "scheme.type_confidence." + name; viper.IsSet(key) {
			cfg.TypeConfidence[typ] = viper.GetFloat64(key)
		}
		if key := "scheme.selection_bonus." + name; viper.IsSet(key) {
			cfg.SelectionBonus[typ] = viper.GetFloat64(key)
		}
	}
	return cfg
}

func pagesFromPDF(client *ocr.Client, path string) ([]model.Page, error) {
	rendered, err := input.RenderPDF(path)
	if err != nil {
		return nil, err
	}
	pages := make([]model.Page, 0, len(rendered))
	for _, r := range rendered {
		page, err := client.RecognizePage(r.ID, r.Index, r.PNG)
		if err != nil {
			return nil, fmt.Errorf("recognizing %s: %w", r.ID, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func pagesFromImages(client *ocr.Client, dir string) ([]model.Page, map[string]string, error) {
	files, err := input.ListPageImages(dir)
	if err != nil {
		return nil, nil, err
	}
	pages := make([]model.Page, 0, len(files))
	sourceByID := make(map[string]string, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}
		page, err := client.RecognizePage(f.ID, f.Index, data)
		if err != nil {
			return nil, nil, fmt.Errorf("recognizing %s: %w", f.ID, err)
		}
		pages = append(pages, page)
		sourceByID[f.ID] = f.Path
	}
	return pages, sourceByID, nil
}

func init() {
	orderCmd.Flags().StringVar(&orderOutDir, "out", "ordered", "output directory for the manifest, report, and ordered images")
	orderCmd.Flags().StringVar(&orderPDFOut, "pdf-out", "", "write a reordered copy of the source PDF to this path")
	orderCmd.Flags().StringVar(&orderPrefix, "prefix", "page", "filename prefix for ordered image copies")
	orderCmd.Flags().StringVar(&orderLang, "lang", "", "OCR language (default eng)")
	orderCmd.Flags().BoolVar(&orderNoContent, "no-content-analysis", false, "skip content-based refinement of uncertain pages")
	orderCmd.Flags().BoolVar(&orderNoContents, "no-contents-detection", false, "do not treat table-of-contents pages specially")
	orderCmd.Flags().BoolVar(&orderOutliers, "reject-outliers", false, "discard statistically implausible page numbers and fall back to scan order")
	orderCmd.Flags().Float64Var(&orderMinConfidence, "min-confidence", 90, "overall confidence required to skip human review")
}
