package plan

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/utils"
)

var (
	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(6).
			Align(lipgloss.Right)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Marker glyphs for each row.
const (
	MarkPending = "○"
	MarkCurrent = "▶"
	MarkDone    = "✓"
)

// NoCurrent renders every row as pending.
const NoCurrent = -1

// Model lists the day's exercises, highlighting the one in progress.
type Model struct {
	viewport  viewport.Model
	exercises []models.Exercise
	current   int
	width     int
	height    int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{
		viewport: vp,
		current:  NoCurrent,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.exercises) == 0 {
		return "Rest day: nothing scheduled."
	}
	if m.height <= 0 {
		return m.Lines()
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetExercises(exercises []models.Exercise) {
	m.exercises = append([]models.Exercise(nil), exercises...)
	m.current = NoCurrent
	m.Render()
}

// SetCurrent marks index as in progress and everything before it as done.
// An index at or past the end marks all rows done.
func (m *Model) SetCurrent(index int) {
	m.current = index
	m.Render()
	if m.height > 0 && index >= m.height {
		m.viewport.SetYOffset(index - m.height + 1)
	}
}

// Lines renders the list without scrolling.
func (m Model) Lines() string {
	var b strings.Builder
	for i, e := range m.exercises {
		mark, style := MarkPending, nameStyle
		switch {
		case m.current == NoCurrent:
		case i < m.current:
			mark, style = MarkDone, doneStyle
		case i == m.current:
			mark, style = MarkCurrent, currentStyle
		}
		fmt.Fprintf(&b, "%s %s %s %s",
			mark,
			durationStyle.Render(utils.FormatSeconds(e.DurationSec())),
			style.Render(e.Name()),
			categoryStyle.Render(string(e.Category())),
		)
		if i < len(m.exercises)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) Render() {
	if len(m.exercises) == 0 {
		m.viewport.SetContent("Rest day: nothing scheduled.")
		return
	}
	m.viewport.SetContent(m.Lines())
}
