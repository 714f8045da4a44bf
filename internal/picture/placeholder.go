package picture

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"
)

// placeholderPalette holds the tile background colors. The color for a
// concept is picked by hash so the same concept always renders the same
// tile.
var placeholderPalette = []string{
	"#4f6d7a", "#c05850", "#5b8c5a", "#8c6a5b", "#6a5b8c", "#b08d3e",
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// PlaceholderImage returns a data URI for a labeled colored tile. Used
// when no search provider produced a usable image; deterministic per
// concept so repeated assembly is stable.
func PlaceholderImage(concept string) string {
	h := fnv.New32a()
	h.Write([]byte(concept))
	color := placeholderPalette[int(h.Sum32())%len(placeholderPalette)]

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="320" height="240">`+
			`<rect width="320" height="240" fill="%s"/>`+
			`<text x="160" y="128" font-family="sans-serif" font-size="28" fill="#ffffff" text-anchor="middle">%s</text>`+
			`</svg>`,
		color, xmlEscaper.Replace(concept),
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
