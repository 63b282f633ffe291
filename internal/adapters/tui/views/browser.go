package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gardenbook/internal/adapters/tui/styles"
	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	New     key.Binding
	Delete  key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous tab"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy ID"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Tabs lists the browsable record kinds in display order
var Tabs = []domain.Kind{domain.KindClient, domain.KindPlant, domain.KindJob}

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	store     ports.GardenStore
	tab       int
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	cursor    int
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(store ports.GardenStore) *BrowserModel {
	return &BrowserModel{
		store: store,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

// Kind returns the record kind of the current tab
func (m *BrowserModel) Kind() domain.Kind {
	return Tabs[m.tab]
}

func (m *BrowserModel) loadTree() tea.Msg {
	kind := m.Kind()
	result, err := commands.NewListCommand(m.store, kind).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{kind: kind, root: result.Tree}
}

type treeLoadedMsg struct {
	kind domain.Kind
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		if msg.kind != m.Kind() {
			// stale load from a tab that is no longer shown
			return m, nil
		}
		m.root = msg.root
		m.refreshFlatNodes()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil && node.Parent != m.root {
					for i, n := range m.flatNodes {
						if n == node.Parent {
							m.cursor = i
							break
						}
					}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right), key.Matches(msg, BrowserKeys.Enter):
			if node := m.selectedNode(); node != nil && !node.IsLeaf() {
				if !node.IsExpanded {
					node.Expand()
				} else if key.Matches(msg, BrowserKeys.Enter) {
					node.Collapse()
				}
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.NextTab):
			return m, m.SetTab((m.tab + 1) % len(Tabs))

		case key.Matches(msg, BrowserKeys.PrevTab):
			return m, m.SetTab((m.tab + len(Tabs) - 1) % len(Tabs))

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BrowserKeys.New):
			kind := m.Kind()
			return m, func() tea.Msg {
				return SwitchToCreateMsg{Kind: kind}
			}

		case key.Matches(msg, BrowserKeys.Delete):
			if node := m.selectedNode(); node != nil && node.Kind != domain.KindMonth {
				return m, func() tea.Msg {
					return SwitchToDeleteMsg{Node: node}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			if node := m.selectedNode(); node != nil && node.Kind != domain.KindMonth {
				return m, copyID(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func copyID(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(strconv.FormatInt(node.ID, 10)); err != nil {
			return errMsg{fmt.Errorf("copy to clipboard: %w", err)}
		}
		return successMsg{fmt.Sprintf("Copied %s ID %d", node.Kind, node.ID)}
	}
}

// SetTab switches to tab i and loads its records
func (m *BrowserModel) SetTab(i int) tea.Cmd {
	if i < 0 || i >= len(Tabs) {
		return nil
	}
	m.tab = i
	return m.Reload()
}

// SelectedNode returns the node under the cursor, or nil
func (m *BrowserModel) SelectedNode() *domain.TreeNode {
	return m.selectedNode()
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	// Clamp cursor
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Gardenbook"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.root == nil:
		b.WriteString("Loading...")
		b.WriteString("\n")
	case len(m.flatNodes) == 0:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("No %ss yet. Press n to add one.", strings.ToLower(m.Kind().String()))))
		b.WriteString("\n")
	default:
		for i, node := range m.flatNodes {
			b.WriteString(m.renderNode(node, i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BrowserKeys.NextTab,
		BrowserKeys.Right,
		BrowserKeys.New,
		BrowserKeys.Delete,
		BrowserKeys.Copy,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderTabs() string {
	parts := make([]string, len(Tabs))
	for i, kind := range Tabs {
		label := kind.String() + "s"
		if i == m.tab {
			parts[i] = styles.TabActive.Render(label)
		} else {
			parts[i] = styles.TabInactive.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", max(node.Depth()-1, 0))

	var prefix string
	switch {
	case node.IsLeaf():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	return indent + styles.TreeBranch.Render(prefix) + RenderRecord(node, selected)
}

// Reload reloads the records of the current tab
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.flatNodes = nil
	m.cursor = 0
	return m.loadTree
}
