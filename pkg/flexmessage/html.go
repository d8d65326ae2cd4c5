package flexmessage

import (
	"fmt"
	"html"
	"strings"
)

// RenderHTML converts a bubble projection into the markup of the console's
// preview pane
func RenderHTML(preview BubblePreview) string {
	var b strings.Builder
	if len(preview.Sections) == 0 {
		b.WriteString(`<div class="flex-bubble flex-bubble-empty">`)
		fmt.Fprintf(&b, `<p class="flex-placeholder">%s</p>`, html.EscapeString(preview.Placeholder))
		b.WriteString(`</div>`)
		return b.String()
	}

	b.WriteString(`<div class="flex-bubble">`)
	for _, section := range preview.Sections {
		fmt.Fprintf(&b, `<section class="flex-section" data-section="%s">`, html.EscapeString(string(section.Name)))
		for _, node := range section.Nodes {
			writeNodeHTML(&b, node)
		}
		b.WriteString(`</section>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func writeNodeHTML(b *strings.Builder, node *PreviewNode) {
	id := html.EscapeString(node.ElementID)
	class := "flex-" + string(node.Kind)
	if node.Placeholder {
		class += " flex-placeholder"
	}

	switch node.Kind {
	case ElementText:
		fmt.Fprintf(b, `<p class="%s" data-id="%s">%s</p>`, class, id, html.EscapeString(node.Label))
	case ElementButton:
		fmt.Fprintf(b, `<button type="button" class="%s" data-id="%s">%s</button>`, class, id, html.EscapeString(node.Label))
	case ElementImage:
		if node.Placeholder || !isSafeImageSource(node.Source) {
			fmt.Fprintf(b, `<div class="flex-image flex-placeholder" data-id="%s">%s</div>`, id, html.EscapeString(PlaceholderImage))
			return
		}
		fmt.Fprintf(b, `<img class="%s" data-id="%s" src="%s" alt="">`, class, id, html.EscapeString(node.Source))
	case ElementSeparator:
		fmt.Fprintf(b, `<hr class="%s" data-id="%s">`, class, id)
	case ElementBox:
		fmt.Fprintf(b, `<div class="%s flex-box-%s" data-id="%s">`, class, node.Layout, id)
		if node.Placeholder {
			fmt.Fprintf(b, `<span class="flex-placeholder">%s</span>`, html.EscapeString(node.Label))
		}
		for _, child := range node.Children {
			writeNodeHTML(b, child)
		}
		b.WriteString(`</div>`)
	}
}

// isSafeImageSource accepts web URLs and embedded image data-URLs only
func isSafeImageSource(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "data:image/")
}
