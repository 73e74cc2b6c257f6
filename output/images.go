package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/foliate/order"
)

// CopyOrderedImages copies page images into destDir named by assigned
// position, "<prefix>_00001.png" style, so a plain directory listing
// shows reading order. sourceByID maps page IDs to their source image
// paths; decisions must be sorted by position.
func CopyOrderedImages(decisions []order.Decision, sourceByID map[string]string, destDir, prefix string) error {
	if prefix == "" {
		prefix = "page"
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, d := range decisions {
		src, ok := sourceByID[d.Page.ID]
		if !ok {
			return fmt.Errorf("no source image for page %q", d.Page.ID)
		}
		name := fmt.Sprintf("%s_%05d%s", prefix, d.Position, filepath.Ext(src))
		if err := copyFile(src, filepath.Join(destDir, name)); err != nil {
			return fmt.Errorf("writing ordered image for page %q: %w", d.Page.ID, err)
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
