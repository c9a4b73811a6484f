package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/ppiankov/gapdash/internal/chart"
)

// Output formats
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat is returned for formats Write cannot produce
var ErrUnsupportedFormat = errors.New("unsupported format")

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Options controls image size
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions matches the default render config (8x5 inches)
func DefaultOptions() Options {
	return Options{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

// OptionsFromInches builds Options from configured inch sizes, falling back to defaults
func OptionsFromInches(width, height float64) Options {
	opts := DefaultOptions()
	if width > 0 {
		opts.Width = vg.Length(width) * vg.Inch
	}
	if height > 0 {
		opts.Height = vg.Length(height) * vg.Inch
	}
	return opts
}

// ContentType returns the MIME type of a format
func ContentType(format string) (string, error) {
	ct, ok := contentTypes[normalize(format)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return ct, nil
}

// Formats lists the supported formats
func Formats() []string {
	return []string{FormatSVG, FormatPNG, FormatJSON, FormatXLSX}
}

// Write encodes spec in the given format. The spec is only read.
func Write(w io.Writer, spec *chart.Spec, format string, opts Options) error {
	switch normalize(format) {
	case FormatSVG, FormatPNG:
		return writeImage(w, spec, normalize(format), opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(spec); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatXLSX:
		return writeXLSX(w, spec)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}
