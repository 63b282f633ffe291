package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"gardenbook/internal/adapters/tui/styles"
	"gardenbook/internal/domain"
)

// RenderHelpLine renders key bindings as "key desc" pairs separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		help := b.Help()
		parts[i] = styles.HelpKey.Render(help.Key) + " " + styles.HelpDesc.Render(help.Desc)
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a status message; empty messages render as ""
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// RenderRecord renders a tree node label in the color of its kind, or in
// the selection style.
func RenderRecord(node *domain.TreeNode, selected bool) string {
	if selected {
		return styles.NodeSelected.Render(node.Label())
	}
	return styles.KindStyle(node.Kind).Render(node.Label())
}

// RenderMonths renders month names in calendar order
func RenderMonths(months domain.MonthSet) string {
	return styles.NodeMonth.Render(strings.Join(months.Names(), ", "))
}

// ViewBuilder assembles a full-screen view
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the view title
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Record adds "<action> <Kind>:" followed by the record's label
func (v *ViewBuilder) Record(action string, node *domain.TreeNode) *ViewBuilder {
	if node == nil {
		return v
	}
	v.b.WriteString(styles.InputLabel.Render(action + " " + node.Kind.String() + ":"))
	v.b.WriteString("\n  ")
	v.b.WriteString(RenderRecord(node, false))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a status message if non-empty
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Raw adds text as is
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
