package mediapanel

import (
	"context"
	"fmt"
	"path"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(40).
			Align(lipgloss.Center)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type status int

const (
	statusEmpty status = iota
	statusLoading
	statusLoaded
	statusFailed
)

// LoadedMsg carries the result of a fetch for Ref.
type LoadedMsg struct {
	Ref   string
	Media media.Media
	Err   error
}

// Model shows the demonstration for the current exercise.
type Model struct {
	spinner    spinner.Model
	ref        string
	difficulty models.Difficulty
	status     status
	media      media.Media
	err        error
}

func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{spinner: s}
}

// Load starts fetching ref unless it is already shown. A nil fetcher or an
// empty ref leaves the panel empty.
func (m *Model) Load(ctx context.Context, fetcher *media.Fetcher, ref string, d models.Difficulty) tea.Cmd {
	m.difficulty = d
	if ref == "" || fetcher == nil {
		m.ref, m.status, m.err = ref, statusEmpty, nil
		return nil
	}
	if ref == m.ref && m.status == statusLoaded {
		return nil
	}
	m.ref = ref
	m.err = nil
	if cached, ok := fetcher.Cached(ref); ok {
		m.status, m.media = statusLoaded, cached
		return nil
	}
	m.status = statusLoading
	return tea.Batch(m.spinner.Tick, Fetch(ctx, fetcher, ref))
}

// Retry refetches a failed reference.
func (m *Model) Retry(ctx context.Context, fetcher *media.Fetcher) tea.Cmd {
	if m.status != statusFailed {
		return nil
	}
	ref := m.ref
	m.ref = ""
	return m.Load(ctx, fetcher, ref, m.difficulty)
}

func (m *Model) Clear() {
	m.ref, m.status, m.err = "", statusEmpty, nil
}

func (m Model) Ref() string { return m.ref }
func (m Model) Loading() bool { return m.status == statusLoading }
func (m Model) Failed() bool { return m.status == statusFailed }
func (m Model) Loaded() bool { return m.status == statusLoaded }
func (m Model) Err() error { return m.err }
func (m Model) Media() media.Media { return m.media }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Ref != m.ref {
			return m, nil
		}
		if msg.Err != nil {
			m.status, m.err = statusFailed, msg.Err
			return m, nil
		}
		m.status, m.media = statusLoaded, msg.Media
	case spinner.TickMsg:
		if m.status != statusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	label := fmt.Sprintf("%s demo", m.difficulty)
	var body string
	switch m.status {
	case statusEmpty:
		body = infoStyle.Render("No demonstration")
	case statusLoading:
		body = m.spinner.View() + " Loading " + path.Base(m.ref)
	case statusLoaded:
		body = fmt.Sprintf("%s\n%s", path.Base(m.ref), infoStyle.Render(describe(m.media)))
	case statusFailed:
		body = errorStyle.Render("Demonstration unavailable") + "\n" + infoStyle.Render("press r to retry")
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, infoStyle.Render(label), body))
}

func describe(md media.Media) string {
	if md.Frames <= 1 {
		return fmt.Sprintf("still image (%s)", md.Source)
	}
	return fmt.Sprintf("%d frames, %.1fs loop (%s)", md.Frames, md.Loop.Seconds(), md.Source)
}

// Fetch runs a fetch off the update loop and reports back with a LoadedMsg.
func Fetch(ctx context.Context, fetcher *media.Fetcher, ref string) tea.Cmd {
	return func() tea.Msg {
		md, err := fetcher.Fetch(ctx, ref)
		return LoadedMsg{Ref: ref, Media: md, Err: err}
	}
}
