package diagram

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// figureStyle centers the rendered diagram on the html renderer's page.
const figureStyle = "display: flex;flex-direction: row;justify-content: center;"

// xmlDeclaration is the prologue some services emit in front of SVG
// documents. Browsers reject a standalone declaration inside embedded
// markup, so it is stripped before inlining.
const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

// synthesize produces the markup that replaces a diagram fence.
//
// The html renderer gets the artifact embedded directly: inline SVG
// markup, or a base64 data URI for PNG. Every other renderer gets a
// plain image reference to the on-disk artifact, followed by a blank
// line so the reference stands as its own block.
func synthesize(format OutputFormat, renderer, path string, data []byte) (string, error) {
	if renderer != "html" {
		return fmt.Sprintf("![](%s)\n\n", path), nil
	}

	switch format {
	case SVG:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("rendering service returned SVG that is not valid UTF-8")
		}
		svg := strings.TrimSpace(strings.Replace(string(data), xmlDeclaration, "", 1))
		return fmt.Sprintf("<figure style='%s'>%s</figure>\n\n", figureStyle, svg), nil
	case PNG:
		uri := "data:" + PNG.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(data)
		return fmt.Sprintf("<figure style='%s'><img src=%q alt=\"rendered diagram\" /></figure>\n\n", figureStyle, uri), nil
	default:
		return "", fmt.Errorf("unknown output format %d", format)
	}
}
