package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/storage"
	"github.com/julianstephens/fivemin/internal/tui/components/mediapanel"
	"github.com/julianstephens/fivemin/internal/workout"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateDifficulty {
		if _, ok := msg.(TickMsg); !ok {
			cmd := m.updateDifficultyForm(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 60)
		// rows left after the header, timer and media panel
		m.list.SetSize(msg.Width-4, max(msg.Height-22, 4))

	case TickMsg:
		cmd := m.handleTick(msg)
		return m, cmd

	case mediapanel.LoadedMsg:
		if msg.Err != nil && msg.Ref == m.panel.Ref() {
			logger.Warn("Media unavailable", "ref", msg.Ref, "error", msg.Err)
		}
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd

	case workoutSavedMsg:
		if msg.Err != nil {
			m.errMsg = "Failed to save workout: " + msg.Err.Error()
			return m, nil
		}
		m.lastLog = &msg.Log
		m.statusMsg = "Workout saved"

	case prefetchDoneMsg:
		if msg.Err != nil {
			logger.Debug("Prefetch incomplete", "cached", msg.Cached, "error", msg.Err)
		}

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	switch m.state {
	case constants.StateHome:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, m.keys.Start):
			return m.startCountdown()
		case key.Matches(msg, m.keys.Difficulty):
			return m.openDifficultyForm()
		}

	case constants.StateCountdown:
		if key.Matches(msg, m.keys.Back) {
			m.countdown.Cancel()
			m.goHome()
		}

	case constants.StateWorkout:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.session.Cancel()
			m.goHome()
		case key.Matches(msg, m.keys.Difficulty):
			d := m.pref.Toggle()
			logger.Debug("Difficulty toggled", "difficulty", d)
			return m.loadCurrentMedia()
		case key.Matches(msg, m.keys.Retry):
			return m.panel.Retry(m.ctx, m.fetcher)
		}

	case constants.StateComplete:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, m.keys.Finish):
			m.session.Cancel()
			m.goHome()
		case key.Matches(msg, m.keys.Again):
			return m.startSession(m.session.Plan())
		}
	}
	return nil
}

func (m *Model) goHome() {
	m.state = constants.StateHome
	m.panel.Clear()
	m.refreshPlan()
}

func (m *Model) startCountdown() tea.Cmd {
	m.errMsg, m.statusMsg = "", ""
	m.refreshPlan()
	if m.plan.Empty() {
		m.errMsg = workout.ErrEmptyPlan.Error()
		return nil
	}
	m.state = constants.StateCountdown
	m.countdown.Start(m.countdownSec)
	logger.Debug("Countdown started", "seconds", m.countdown.Remaining(), "exercises", m.plan.Len())
	return tea.Batch(
		tick(workout.PhaseCountdown, m.countdown.Epoch()),
		m.prefetch(m.plan.Exercises),
	)
}

func (m *Model) startSession(exercises []models.Exercise) tea.Cmd {
	m.errMsg, m.statusMsg = "", ""
	m.lastLog = nil
	if err := m.session.Start(exercises); err != nil {
		m.errMsg = err.Error()
		m.goHome()
		return nil
	}
	m.state = constants.StateWorkout
	m.list.SetExercises(exercises)
	m.list.SetCurrent(0)
	return tea.Batch(
		tick(workout.PhaseSession, m.session.Epoch()),
		m.loadCurrentMedia(),
	)
}

func (m *Model) handleTick(msg TickMsg) tea.Cmd {
	switch msg.Phase {
	case workout.PhaseCountdown:
		if m.state != constants.StateCountdown || msg.Epoch != m.countdown.Epoch() {
			return nil
		}
		if m.countdown.Tick() {
			return m.startSession(m.plan.Exercises)
		}
		return tick(workout.PhaseCountdown, m.countdown.Epoch())

	case workout.PhaseSession:
		if m.state != constants.StateWorkout || msg.Epoch != m.session.Epoch() {
			return nil
		}
		before := m.session.Snapshot().Index
		m.session.Tick()
		snap := m.session.Snapshot()
		if snap.Completed() {
			m.state = constants.StateComplete
			m.list.SetCurrent(snap.Count)
			m.panel.Clear()
			return m.recordWorkout(snap)
		}
		var cmds []tea.Cmd
		if snap.Index != before {
			m.list.SetCurrent(snap.Index)
			cmds = append(cmds, m.loadCurrentMedia())
		}
		cmds = append(cmds, tick(workout.PhaseSession, snap.Epoch))
		return tea.Batch(cmds...)
	}
	return nil
}

func (m *Model) loadCurrentMedia() tea.Cmd {
	snap := m.session.Snapshot()
	if snap.Current == nil {
		return nil
	}
	d := m.pref.Get()
	return m.panel.Load(m.ctx, m.fetcher, media.Resolve(*snap.Current, d), d)
}

func (m *Model) prefetch(exercises []models.Exercise) tea.Cmd {
	if m.fetcher == nil || len(exercises) == 0 {
		return nil
	}
	d := m.pref.Get()
	refs := make([]string, 0, len(exercises))
	for _, e := range exercises {
		refs = append(refs, media.Resolve(e, d))
	}
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		n, err := fetcher.Prefetch(ctx, refs, constants.MediaPrefetchWorkers)
		return prefetchDoneMsg{Cached: n, Err: err}
	}
}

func (m *Model) recordWorkout(snap workout.Snapshot) tea.Cmd {
	entry := models.WorkoutLog{
		ID:            uuid.New().String(),
		Date:          m.plan.Date,
		Difficulty:    m.pref.Get(),
		ExerciseCount: snap.Count,
		TotalSec:      m.session.ElapsedSec(),
		CompletedAt:   m.clock.Now(),
	}
	if entry.Date == "" && m.scheduler != nil {
		entry.Date = m.scheduler.Today()
	}
	store := m.store
	if store == nil {
		return func() tea.Msg { return workoutSavedMsg{Log: entry} }
	}
	return func() tea.Msg {
		if err := store.AddWorkout(entry); err != nil {
			logger.Error("Failed to record workout", "error", err)
			return workoutSavedMsg{Err: err}
		}
		return workoutSavedMsg{Log: entry}
	}
}

func (m *Model) openDifficultyForm() tea.Cmd {
	choice := m.pref.Get()
	m.choice = &choice
	m.form = NewDifficultyForm(m.choice)
	m.previousState = m.state
	m.state = constants.StateDifficulty
	return m.form.Init()
}

func (m *Model) updateDifficultyForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.pref.Set(*m.choice)
		if err := m.saveDifficulty(*m.choice); err != nil {
			m.errMsg = "Failed to save difficulty: " + err.Error()
		} else {
			m.errMsg = ""
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return tea.Batch(cmds...)
}

func (m *Model) saveDifficulty(d models.Difficulty) error {
	if m.store == nil {
		return nil
	}
	settings, err := m.store.GetSettings()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		settings = models.DefaultSettings()
	}
	settings.Difficulty = d
	if err := m.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
