package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store ports.GardenStore
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store ports.GardenStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.TargetNode == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no target selected")}
	}

	cmd := commands.NewDeleteCommand(m.store, m.TargetNode.Kind, m.TargetNode.ID)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return DeleteSuccessMsg{Message: result.Message}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Confirmation").
		Message("This action cannot be undone!", true).
		Record("Delete", m.TargetNode)

	if m.TargetNode != nil && m.TargetNode.Kind != domain.KindJob {
		v.Muted("  Links to this record are removed; linked records are kept.").BlankLine()
	} else if m.TargetNode != nil {
		v.Muted("  Its months and plant links are removed as well.").BlankLine()
	}

	return v.Raw(RenderConfirmPrompt("Are you sure?")).String()
}
