package flexmessage

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	termBubbleStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	termSectionStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	termPlaceholderStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	termButtonStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Foreground(lipgloss.Color("2")).Align(lipgloss.Center)
	termBoxStyle         = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8"))
	termImageStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// RenderTerminal draws a bubble projection as boxes for a terminal of the
// given width
func RenderTerminal(preview BubblePreview, width int) string {
	if width < 12 {
		width = 12
	}
	bubble := termBubbleStyle.Width(width - termBubbleStyle.GetHorizontalBorderSize())
	inner := width - termBubbleStyle.GetHorizontalFrameSize()

	if len(preview.Sections) == 0 {
		return bubble.Render(termPlaceholderStyle.Render(preview.Placeholder))
	}

	blocks := make([]string, 0, len(preview.Sections)*2)
	for _, section := range preview.Sections {
		blocks = append(blocks, termSectionStyle.Render(string(section.Name)))
		for _, node := range section.Nodes {
			blocks = append(blocks, renderTerminalNode(node, inner))
		}
	}
	return bubble.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func renderTerminalNode(node *PreviewNode, width int) string {
	if width < 1 {
		width = 1
	}

	switch node.Kind {
	case ElementText:
		if node.Placeholder {
			return termPlaceholderStyle.Width(width).Render(node.Label)
		}
		return lipgloss.NewStyle().Width(width).Render(node.Label)
	case ElementButton:
		style := termButtonStyle.Width(maxInt(width-termButtonStyle.GetHorizontalBorderSize(), 1))
		if node.Placeholder {
			style = style.Faint(true)
		}
		return style.Render(node.Label)
	case ElementImage:
		if node.Placeholder {
			return termPlaceholderStyle.Width(width).Render("[" + node.Label + "]")
		}
		return termImageStyle.Width(width).MaxHeight(1).Render("[圖片] " + shortenSource(node.Source, width))
	case ElementSeparator:
		return strings.Repeat("─", width)
	case ElementBox:
		inner := maxInt(width-termBoxStyle.GetHorizontalBorderSize(), 1)
		if node.Placeholder {
			return termBoxStyle.Width(inner).Render(termPlaceholderStyle.Render(node.Label))
		}
		if node.Layout == DirectionHorizontal {
			cell := maxInt(inner/len(node.Children), 1)
			parts := make([]string, 0, len(node.Children))
			for _, child := range node.Children {
				parts = append(parts, renderTerminalNode(child, cell))
			}
			return termBoxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		}
		parts := make([]string, 0, len(node.Children))
		for _, child := range node.Children {
			parts = append(parts, renderTerminalNode(child, inner))
		}
		return termBoxStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	default:
		return ""
	}
}

// shortenSource keeps data-URLs from flooding the terminal
func shortenSource(src string, width int) string {
	if strings.HasPrefix(src, "data:") {
		if i := strings.Index(src, ","); i > 0 {
			src = src[:i] + ",…"
		}
	}
	limit := maxInt(width-8, 4)
	runes := []rune(src)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return src
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
