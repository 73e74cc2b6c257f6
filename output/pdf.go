package output

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/foliate/order"
)

// ReorderPDF writes destPath as srcPath's pages rearranged into the
// decided order. Decisions must be sorted by position, the way the
// engine returns them; each decision's page index selects the source
// page.
func ReorderPDF(srcPath, destPath string, decisions []order.Decision) error {
	if len(decisions) == 0 {
		return fmt.Errorf("no decisions to write")
	}

	// pdfcpu's collect selection is 1-based source page numbers in
	// output order.
	selection := make([]string, 0, len(decisions))
	for _, d := range decisions {
		selection = append(selection, strconv.Itoa(d.Page.Index+1))
	}

	if err := api.CollectFile(srcPath, destPath, selection, nil); err != nil {
		return fmt.Errorf("collecting reordered pages: %w", err)
	}
	return nil
}
