package input

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	// Scanners commonly emit TIFF and BMP alongside the stdlib formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// PageFile is one page image on disk, in scan order.
type PageFile struct {
	// ID is the filename without extension, used as the page identity
	// throughout the pipeline.
	ID string

	// Path is the absolute or caller-relative file path.
	Path string

	// Index is the 0-based scan-order position after natural sorting.
	Index int
}

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// IsSupportedImage reports whether the filename has a recognized scan
// image extension.
func IsSupportedImage(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListPageImages returns the page image files in dir, naturally sorted
// so scan_2 sorts before scan_10. Subdirectories and unsupported files
// are skipped.
func ListPageImages(dir string) ([]PageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedImage(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no page images in %s", dir)
	}
	SortNatural(names)

	files := make([]PageFile, 0, len(names))
	for i, name := range names {
		files = append(files, PageFile{
			ID:    strings.TrimSuffix(name, filepath.Ext(name)),
			Path:  filepath.Join(dir, name),
			Index: i,
		})
	}
	return files, nil
}

// LoadImage decodes one page image from disk.
func (f PageFile) LoadImage() (image.Image, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening page image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.Path, err)
	}
	return img, nil
}

var naturalChunks = regexp.MustCompile(`\d+|\D+`)

// SortNatural sorts filenames treating digit runs as numbers, so
// page_2 comes before page_10. Comparison is case-insensitive on the
// text chunks; ties fall back to the raw name for stability.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		if c := compareNatural(names[i], names[j]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
}

func compareNatural(a, b string) int {
	ca := naturalChunks.FindAllString(strings.ToLower(a), -1)
	cb := naturalChunks.FindAllString(strings.ToLower(b), -1)

	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		nx, errx := strconv.Atoi(x)
		ny, erry := strconv.Atoi(y)
		switch {
		case errx == nil && erry == nil:
			if nx != ny {
				if nx < ny {
					return -1
				}
				return 1
			}
		case x != y:
			if x < y {
				return -1
			}
			return 1
		}
	}
	return len(ca) - len(cb)
}
