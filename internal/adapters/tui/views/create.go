package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// CreateModel is the model for the create view. Its fields depend on the
// kind of record being created.
type CreateModel struct {
	ViewState
	store ports.GardenStore
	kind  domain.Kind
	form  *InputForm
}

// NewCreateModel creates a new create view model
func NewCreateModel(store ports.GardenStore) *CreateModel {
	m := &CreateModel{store: store}
	m.SetKind(domain.KindClient)
	return m
}

// SetKind resets the form for a new record of kind
func (m *CreateModel) SetKind(kind domain.Kind) {
	m.kind = kind
	m.ClearMessage()

	switch kind {
	case domain.KindPlant:
		m.form = NewInputForm(
			TextField("Name", "Rose", 100),
			TextField("Latin name", "Rosa", 100),
			TextField("Blooming period", "June-August", 50),
			IDsField(domain.KindJob),
		)
	case domain.KindJob:
		m.form = NewInputForm(
			TextField("Name", "Prune", 100),
			TextField("Description", "Cut back dead wood", 200),
			MonthsField(),
		)
	default:
		m.kind = domain.KindClient
		m.form = NewInputForm(
			TextField("Name", "Client name", 100),
			IDsField(domain.KindPlant),
		)
	}
}

// Kind returns the kind of record being created
func (m *CreateModel) Kind() domain.Kind {
	return m.kind
}

// Form exposes the input fields
func (m *CreateModel) Form() *InputForm {
	return m.form
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *CreateModel) submit() tea.Msg {
	ctx := context.Background()
	var message string

	switch m.kind {
	case domain.KindClient:
		plants, err := m.form.IDs(1)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		res, err := commands.NewCreateClientCommand(m.store, domain.Client{
			Name:   m.form.Text(0),
			Plants: domain.RefIDs[domain.Plant](plants...),
		}).Execute(ctx)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		message = res.Message

	case domain.KindPlant:
		jobs, err := m.form.IDs(3)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		res, err := commands.NewCreatePlantCommand(m.store, domain.Plant{
			Name:           m.form.Text(0),
			LatinName:      m.form.Text(1),
			BloomingPeriod: m.form.Text(2),
			Jobs:           domain.RefIDs[domain.Maintenance](jobs...),
		}).Execute(ctx)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		message = res.Message

	case domain.KindJob:
		months, _ := m.form.Months(2)
		res, err := commands.NewCreateJobCommand(m.store, domain.Maintenance{
			Name:        m.form.Text(0),
			Description: m.form.Text(1),
			Months:      months,
		}).Execute(ctx)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		message = res.Message
	}

	return CreateSuccessMsg{Message: message}
}

// CreateSuccessMsg indicates successful creation
type CreateSuccessMsg struct {
	Message string
}

// CreateErrMsg indicates an error during creation
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	v := NewViewBuilder().
		Title(fmt.Sprintf("New %s", m.kind)).
		Message(m.Message, m.MessageErr)

	for i := range m.form.Fields {
		v.Line(m.form.RenderField(i)).BlankLine()
	}

	return v.Raw(m.form.RenderHelp("create")).String()
}
