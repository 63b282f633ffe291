package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gardenbook/internal/adapters/tui/styles"
	"gardenbook/internal/application"
	"gardenbook/internal/domain"
)

// InputFormKeyMap defines key bindings for record forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// DefaultInputFormKeys returns the default record form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// FieldType says how the text of a field is read back
type FieldType int

const (
	FieldText   FieldType = iota
	FieldIDs              // comma-separated record IDs
	FieldMonths           // comma-separated month names
)

// InputField is one labelled text input of a record form
type InputField struct {
	Label string
	Type  FieldType
	Input textinput.Model
}

// TextField creates a free-text field
func TextField(label, placeholder string, charLimit int) InputField {
	return newField(label, placeholder, charLimit, FieldText)
}

// IDsField creates a field holding the IDs of linked records of kind
func IDsField(kind domain.Kind) InputField {
	return newField(kind.String()+" IDs", "1, 2", 200, FieldIDs)
}

// MonthsField creates a field holding the months a job applies in
func MonthsField() InputField {
	return newField("Months", "January, March", 120, FieldMonths)
}

func newField(label, placeholder string, charLimit int, typ FieldType) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = charLimit
	return InputField{Label: label, Type: typ, Input: input}
}

// InputForm is the field set of a record form with focus handling
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a form and focuses its first field
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on tab and shift+tab and passes everything else to the
// focused input. handled is true when the key only moved focus.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Next):
			f.focus(f.FocusedField + 1)
			return true, nil
		case key.Matches(msg, f.Keys.Prev):
			f.focus(f.FocusedField - 1)
			return true, nil
		}
	}

	var cmd tea.Cmd
	if f.valid(f.FocusedField) {
		f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	}
	return false, cmd
}

// focus moves focus to index, wrapping around both ends
func (f *InputForm) focus(index int) {
	n := len(f.Fields)
	if n <= 1 {
		return
	}
	f.Fields[f.FocusedField].Input.Blur()
	f.FocusedField = (index%n + n) % n
	f.Fields[f.FocusedField].Input.Focus()
}

func (f *InputForm) valid(index int) bool {
	return index >= 0 && index < len(f.Fields)
}

// SetValue sets the raw text of a field
func (f *InputForm) SetValue(index int, value string) {
	if f.valid(index) {
		f.Fields[index].Input.SetValue(value)
	}
}

// Text returns the trimmed text of a field
func (f *InputForm) Text(index int) string {
	if !f.valid(index) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// IDs reads an ID list field. Empty entries are skipped; anything that is
// not an integer fails with a ValidationError naming the field.
func (f *InputForm) IDs(index int) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(f.Text(index)) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &application.ValidationError{
				Field:   strings.ToLower(f.Fields[index].Label),
				Message: fmt.Sprintf("invalid ID: %q", part),
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Months reads a month field. Names that are not months are returned in
// unknown and left out of the set.
func (f *InputForm) Months(index int) (months domain.MonthSet, unknown []string) {
	names := splitList(f.Text(index))
	for _, name := range names {
		if _, ok := domain.ParseMonth(name); !ok {
			unknown = append(unknown, name)
		}
	}
	return domain.ParseMonthSet(names...), unknown
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RenderField renders a field with its label and, for ID and month fields,
// a line showing how the text will be read.
func (f *InputForm) RenderField(index int) string {
	if !f.valid(index) {
		return ""
	}

	field := f.Fields[index]
	var b strings.Builder

	b.WriteString(styles.InputLabel.Render(field.Label))
	b.WriteString("\n")
	if index == f.FocusedField {
		b.WriteString(styles.InputFocused.Render(field.Input.View()))
	} else {
		b.WriteString(styles.InputField.Render(field.Input.View()))
	}

	if hint := f.hint(index); hint != "" {
		b.WriteString("\n")
		b.WriteString(hint)
	}
	return b.String()
}

func (f *InputForm) hint(index int) string {
	switch f.Fields[index].Type {
	case FieldIDs:
		if _, err := f.IDs(index); err != nil {
			return styles.ErrorMsg.Render(err.Error())
		}
		return styles.MutedText.Render("comma-separated IDs")

	case FieldMonths:
		months, unknown := f.Months(index)
		if len(months) == 0 && len(unknown) == 0 {
			return styles.MutedText.Render("comma-separated month names")
		}
		hint := RenderMonths(months)
		if len(unknown) > 0 {
			hint += " " + styles.MutedText.Render("ignored: "+strings.Join(unknown, ", "))
		}
		return hint
	}
	return ""
}

// RenderHelp renders the key help for the form
func (f *InputForm) RenderHelp(submitText string) string {
	var bindings []key.Binding
	if len(f.Fields) > 1 {
		bindings = append(bindings, f.Keys.Next)
	}
	submit := f.Keys.Submit
	submit.SetHelp("enter", submitText)
	return RenderHelpLine(append(bindings, submit, f.Keys.Cancel)...)
}
