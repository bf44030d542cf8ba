package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/scheduler"
	"github.com/julianstephens/fivemin/internal/storage"
	"github.com/julianstephens/fivemin/internal/tui/components/mediapanel"
	"github.com/julianstephens/fivemin/internal/tui/components/plan"
	"github.com/julianstephens/fivemin/internal/workout"
)

// Options wires the model to its collaborators. Fetcher and Store may be nil.
type Options struct {
	Context      context.Context
	Store        storage.Provider
	Scheduler    *scheduler.Scheduler
	Fetcher      *media.Fetcher
	Preference   *media.Preference
	Clock        clock.Clock
	CountdownSec int
}

type Model struct {
	ctx          context.Context
	store        storage.Provider
	scheduler    *scheduler.Scheduler
	fetcher      *media.Fetcher
	pref         *media.Preference
	clock        clock.Clock
	countdownSec int

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	plan      models.DailyPlan
	countdown workout.Countdown
	session   *workout.Session
	list      plan.Model
	panel     mediapanel.Model
	progress  progress.Model

	form   *huh.Form
	choice *models.Difficulty

	lastLog   *models.WorkoutLog
	statusMsg string
	errMsg    string
	quitting  bool
	width     int
	height    int
}

func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Preference == nil {
		opts.Preference = media.NewPreference(models.DifficultyEasy)
	}
	if opts.CountdownSec <= 0 {
		opts.CountdownSec = constants.DefaultCountdownSec
	}

	m := Model{
		ctx:          opts.Context,
		store:        opts.Store,
		scheduler:    opts.Scheduler,
		fetcher:      opts.Fetcher,
		pref:         opts.Preference,
		clock:        opts.Clock,
		countdownSec: opts.CountdownSec,
		state:        constants.StateHome,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		session:      workout.NewSession(),
		list:         plan.New(0, 0),
		panel:        mediapanel.New(),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.refreshPlan()
	return m
}

func (m *Model) refreshPlan() {
	if m.scheduler == nil {
		return
	}
	m.plan = m.scheduler.CurrentPlan()
	m.list.SetExercises(m.plan.Exercises)
}

// State returns the screen currently shown.
func (m Model) State() constants.SessionState { return m.state }

// Session exposes the running workout for inspection.
func (m Model) Session() *workout.Session { return m.session }

// Countdown returns the get-ready timer.
func (m Model) Countdown() workout.Countdown { return m.countdown }

// Plan returns the plan shown on the home screen.
func (m Model) Plan() models.DailyPlan { return m.plan }

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateHome:
		return []key.Binding{m.keys.Start, m.keys.Difficulty, m.keys.Quit}
	case constants.StateCountdown:
		return []key.Binding{m.keys.Back}
	case constants.StateWorkout:
		keys := []key.Binding{m.keys.Back, m.keys.Difficulty}
		if m.panel.Failed() {
			keys = append(keys, m.keys.Retry)
		}
		return keys
	case constants.StateComplete:
		return []key.Binding{m.keys.Finish, m.keys.Again, m.keys.Quit}
	}
	return nil
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp(), {m.keys.Help}}
}

func (m Model) Init() tea.Cmd {
	return nil
}
