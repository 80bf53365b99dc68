package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
)

var (
	accentPrimary = lipgloss.Color("#50E3C2")
	mutedText     = lipgloss.Color("#8CA1AE")
	warningText   = lipgloss.Color("#FF6B6B")
	panelBorder   = lipgloss.Color("#2D6A80")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentPrimary)

	labelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(mutedText)

	focusedLabelStyle = labelStyle.Copy().
				Foreground(accentPrimary).
				Bold(true)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningText).
			Foreground(warningText).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedText)
)

// Submitter drives the submit lifecycle.
type Submitter interface {
	Submit(ctx context.Context, in forecast.FormInput) submission.Outcome
	Cancel()
}

// ViewSource is the read side of the shared view state.
type ViewSource interface {
	Snapshot() viewstate.Snapshot
	Subscribe() (<-chan viewstate.Snapshot, func())
}

// CatalogSource lists the selectable sectors.
type CatalogSource interface {
	Catalog(ctx context.Context) forecast.Catalog
}

const (
	fieldDate = iota
	fieldSector
	fieldTemperature
	fieldCount
)

var fieldLabels = [fieldCount]string{"Date", "Sector", "Min temp (°C)"}

type snapshotMsg struct {
	snapshot viewstate.Snapshot
	ok       bool
}

type submittedMsg struct {
	outcome submission.Outcome
}

type catalogLoadedMsg struct {
	catalog forecast.Catalog
}

// Model is the bubbletea model of the terminal console.
type Model struct {
	submitter Submitter
	catalog   CatalogSource
	updates   <-chan viewstate.Snapshot
	release   func()

	inputs  [fieldCount]textinput.Model
	focus   int
	sectors []string
	sector  int
	spinner spinner.Model

	snapshot   viewstate.Snapshot
	statusText string
	width      int
}

// NewModel subscribes to the view and prepares the form.
func NewModel(submitter Submitter, view ViewSource, catalogSrc CatalogSource) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(accentPrimary)

	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		input := textinput.New()
		input.Prompt = "> "
		input.CharLimit = 32
		input.Width = 24
		inputs[i] = input
	}
	inputs[fieldDate].Placeholder = "YYYY-MM-DD"
	inputs[fieldSector].Placeholder = "ctrl+s to cycle"
	inputs[fieldTemperature].Placeholder = "-50 to 50"
	inputs[fieldDate].Focus()

	updates, release := view.Subscribe()
	return Model{
		submitter: submitter,
		catalog:   catalogSrc,
		updates:   updates,
		release:   release,
		inputs:    inputs,
		sector:    -1,
		spinner:   spin,
		snapshot:  view.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshotCmd(m.updates),
		loadCatalogCmd(m.catalog),
		textinput.Blink,
	)
}

func waitForSnapshotCmd(ch <-chan viewstate.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-ch
		return snapshotMsg{snapshot: snapshot, ok: ok}
	}
}

func loadCatalogCmd(src CatalogSource) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{catalog: src.Catalog(context.Background())}
	}
}

func submitCmd(submitter Submitter, in forecast.FormInput) tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{outcome: submitter.Submit(context.Background(), in)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		if !msg.ok {
			return m, nil
		}
		wasLoading := m.snapshot.Loading
		m.snapshot = msg.snapshot
		if m.inputs[fieldDate].Value() == "" && msg.snapshot.DefaultDate != "" {
			m.inputs[fieldDate].SetValue(msg.snapshot.DefaultDate)
		}
		cmds := []tea.Cmd{waitForSnapshotCmd(m.updates)}
		if msg.snapshot.Loading && !wasLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.sectors = append([]string(nil), msg.catalog.Sectors...)
		return m, nil

	case submittedMsg:
		switch msg.outcome.Status {
		case submission.StatusRejected:
			m.statusText = msg.outcome.Message
		case submission.StatusSuperseded:
			m.statusText = "Prediction cancelled."
		default:
			m.statusText = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.submitter.Cancel()
			if m.release != nil {
				m.release()
			}
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			if m.snapshot.InputsDisabled || len(m.sectors) == 0 {
				return m, nil
			}
			m.sector = (m.sector + 1) % len(m.sectors)
			m.inputs[fieldSector].SetValue(m.sectors[m.sector])
			m.inputs[fieldSector].CursorEnd()
			return m, nil
		case "enter":
			if m.snapshot.InputsDisabled {
				return m, nil
			}
			m.statusText = ""
			return m, submitCmd(m.submitter, m.formInput())
		}
		if m.snapshot.InputsDisabled {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = field
	return m.inputs[m.focus].Focus()
}

func (m Model) formInput() forecast.FormInput {
	return forecast.FormInput{
		Date:        m.inputs[fieldDate].Value(),
		Sector:      m.inputs[fieldSector].Value(),
		Temperature: m.inputs[fieldTemperature].Value(),
	}
}

func (m Model) View() string {
	var b strings.Builder

	badge := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.snapshot.HealthColor)).Render(m.snapshot.HealthLabel)
	b.WriteString(headerStyle.Render("Shelter Demand Console") + "  " + badge + "\n\n")

	for i, input := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = focusedLabelStyle.Render(fieldLabels[i])
		}
		b.WriteString(label + input.View() + "\n")
	}
	b.WriteString("\n")

	if m.snapshot.Loading {
		b.WriteString(m.spinner.View() + " Predicting...\n")
	}
	if result := m.snapshot.Result; result != nil {
		body := lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render(result.Demand),
			result.Date,
			result.Sector+", "+result.Temperature+" ("+result.Description+")",
		)
		b.WriteString(resultStyle.Render(body) + "\n")
	}
	if m.snapshot.Error != "" {
		b.WriteString(errorStyle.Render(m.snapshot.Error) + "\n")
	}
	if m.statusText != "" {
		b.WriteString(helpStyle.Render(m.statusText) + "\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move • ctrl+s sector • enter predict • esc quit"))
	return b.String()
}
