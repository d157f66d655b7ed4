package diagram

import "fmt"

// OutputFormat is the image format requested from the rendering service.
// It is fixed per run and doubles as the cache key's format tag and the
// artifact file extension.
type OutputFormat int

const (
	// PNG is the default output format.
	PNG OutputFormat = iota
	// SVG produces vector output that can be embedded inline.
	SVG
)

// ParseOutputFormat maps a configuration string to an OutputFormat.
// Anything other than "png" or "svg" is a configuration error.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return 0, fmt.Errorf("invalid output_format %q, expected 'png' or 'svg'", s)
	}
}

// String returns the lowercase format tag ("png" or "svg").
func (f OutputFormat) String() string {
	if f == SVG {
		return "svg"
	}
	return "png"
}

// Ext returns the file extension for cached artifacts of this format.
func (f OutputFormat) Ext() string { return f.String() }

// MIMEType returns the media type the rendering service declares for
// this format.
func (f OutputFormat) MIMEType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// formatFromMIME maps a parsed media type back to an OutputFormat.
func formatFromMIME(mediatype string) (OutputFormat, bool) {
	switch mediatype {
	case "image/svg+xml":
		return SVG, true
	case "image/png":
		return PNG, true
	default:
		return 0, false
	}
}
