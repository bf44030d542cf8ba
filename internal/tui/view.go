package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/utils"
	"github.com/julianstephens/fivemin/internal/workout"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHome:
		content = m.viewHome()
	case constants.StateCountdown:
		content = m.viewCountdown()
	case constants.StateWorkout:
		content = m.viewWorkout()
	case constants.StateComplete:
		content = m.viewComplete()
	case constants.StateDifficulty:
		content = m.form.View()
	}

	parts := []string{content}
	if m.errMsg != "" {
		parts = append(parts, dangerStyle.Render(m.errMsg))
	}
	if m.state != constants.StateDifficulty {
		parts = append(parts, m.help.View(m))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewHome() string {
	header := titleStyle.Render("5 Minute Workout")
	meta := subtleStyle.Render(fmt.Sprintf("%s  ·  day %d  ·  %s total",
		m.plan.Date, m.plan.Day, utils.FormatSeconds(m.plan.TotalSeconds())))
	difficulty := labelStyle.Render("Difficulty: ") + string(m.pref.Get())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		meta,
		"",
		m.list.View(),
		"",
		difficulty,
		"",
	)
}

func (m Model) viewCountdown() string {
	remaining := m.countdown.Remaining()
	style := timerStyle
	if workout.Urgent(remaining) {
		style = urgentTimerStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Get Ready!"),
		"",
		style.Render(strconv.Itoa(remaining)),
		"",
		labelStyle.Render("Today's exercises"),
		m.list.View(),
		"",
	)
}

func (m Model) viewWorkout() string {
	snap := m.session.Snapshot()
	if snap.Current == nil {
		return ""
	}

	percent := 0.0
	if snap.Count > 0 {
		percent = float64(snap.Index) / float64(snap.Count)
	}
	progressLine := lipgloss.JoinHorizontal(lipgloss.Center,
		m.progress.ViewAs(percent),
		subtleStyle.Render(fmt.Sprintf("  %d/%d", snap.Index+1, snap.Count)),
	)

	style := timerStyle
	if workout.Urgent(snap.Remaining) {
		style = urgentTimerStyle
	}

	next := subtleStyle.Render("Next up: finish")
	if snap.Next != nil {
		next = subtleStyle.Render("Next up: " + snap.Next.Name())
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		exerciseNameStyle.Render(snap.Current.Name()),
		subtleStyle.Render(string(snap.Current.Category())),
		"",
		style.Render(utils.FormatSeconds(snap.Remaining)),
		"",
		next,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		progressLine,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", m.panel.View()),
		"",
		m.list.View(),
		"",
	)
}

func (m Model) viewComplete() string {
	lines := []string{
		successStyle.Render("Workout Complete!"),
		"",
	}
	if m.lastLog != nil {
		lines = append(lines, fmt.Sprintf("%d exercises in %s at %s difficulty",
			m.lastLog.ExerciseCount, utils.FormatSeconds(m.lastLog.TotalSec), m.lastLog.Difficulty))
	}
	if m.statusMsg != "" {
		lines = append(lines, subtleStyle.Render(m.statusMsg))
	}
	lines = append(lines, "", m.list.View(), "")
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
