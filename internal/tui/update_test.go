package tui

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/fivemin/internal/catalog"
	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/scheduler"
	"github.com/julianstephens/fivemin/internal/storage"
	"github.com/julianstephens/fivemin/internal/workout"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testCatalog() *catalog.Catalog {
	ex := func(name string, sec int, c models.Category) models.Exercise {
		return models.NewExercise(catalog.ExerciseID(c, name), name, sec, c, name+"_easy.gif", name+"_hard.gif")
	}
	return catalog.FromPools(map[models.Category][]models.Exercise{
		models.CategoryChest:   {ex("push-ups", 2, models.CategoryChest), ex("dips", 2, models.CategoryChest)},
		models.CategoryTriceps: {ex("kickbacks", 1, models.CategoryTriceps)},
	})
}

func newTestModel(t *testing.T, day int, store storage.Provider) Model {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC))
	sched := scheduler.New(testCatalog(), clk, scheduler.Options{Day: day, Location: time.UTC})
	return NewModel(Options{
		Store:        store,
		Scheduler:    sched,
		Preference:   media.NewPreference(models.DifficultyEasy),
		Clock:        clk,
		CountdownSec: 2,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func countdownTick(m Model) TickMsg {
	cd := m.Countdown()
	return TickMsg{Phase: workout.PhaseCountdown, Epoch: cd.Epoch()}
}

func sessionTick(m Model) TickMsg {
	return TickMsg{Phase: workout.PhaseSession, Epoch: m.Session().Epoch()}
}

func startWorkout(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, enterKey)
	if m.State() != constants.StateCountdown {
		t.Fatalf("state after enter = %v, want countdown", m.State())
	}
	for m.State() == constants.StateCountdown {
		m, _ = update(t, m, countdownTick(m))
	}
	if m.State() != constants.StateWorkout {
		t.Fatalf("state after countdown = %v, want workout", m.State())
	}
	return m
}

func TestHomeShowsTodaysPlan(t *testing.T) {
	m := newTestModel(t, 1, nil)
	if got := m.Plan().Len(); got != 3 {
		t.Fatalf("plan length = %d, want 3", got)
	}
	if m.State() != constants.StateHome {
		t.Errorf("initial state = %v, want home", m.State())
	}
}

func TestCountdownThenSession(t *testing.T) {
	m := newTestModel(t, 1, nil)

	m, cmd := update(t, m, runeKey('g'))
	if m.State() != constants.StateCountdown || cmd == nil {
		t.Fatalf("expected countdown with a tick scheduled, got %v", m.State())
	}
	if cd := m.Countdown(); cd.Remaining() != 2 {
		t.Errorf("countdown remaining = %d, want 2", cd.Remaining())
	}

	m, _ = update(t, m, countdownTick(m))
	if cd := m.Countdown(); m.State() != constants.StateCountdown || cd.Remaining() != 1 {
		t.Fatalf("after 1 tick: state %v remaining %d", m.State(), cd.Remaining())
	}
	m, _ = update(t, m, countdownTick(m))
	if m.State() != constants.StateWorkout {
		t.Fatalf("after countdown: state %v, want workout", m.State())
	}

	snap := m.Session().Snapshot()
	if snap.Index != 0 || snap.Remaining != 2 || snap.Current.Name() != "push-ups" {
		t.Errorf("session start snapshot = %+v", snap)
	}
}

func TestSessionRunsToCompletionAndRecords(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewSQLiteStore(filepath.Join(dir, "fivemin.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()

	m := startWorkout(t, newTestModel(t, 1, store))

	m, _ = update(t, m, sessionTick(m))
	m, _ = update(t, m, sessionTick(m))
	if snap := m.Session().Snapshot(); snap.Index != 1 || snap.Remaining != 2 {
		t.Fatalf("after 2 ticks: index %d remaining %d, want 1 and 2", snap.Index, snap.Remaining)
	}

	var cmd tea.Cmd
	for range 3 {
		m, cmd = update(t, m, sessionTick(m))
	}
	if m.State() != constants.StateComplete {
		t.Fatalf("after 5 ticks: state %v, want complete", m.State())
	}
	if cmd == nil {
		t.Fatal("expected completion to record the workout")
	}

	saved, ok := cmd().(workoutSavedMsg)
	if !ok {
		t.Fatalf("completion command produced %T", cmd())
	}
	if saved.Err != nil {
		t.Fatalf("saving workout: %v", saved.Err)
	}
	m, _ = update(t, m, saved)
	if m.lastLog == nil || m.lastLog.ExerciseCount != 3 || m.lastLog.TotalSec != 5 {
		t.Errorf("unexpected last log %+v", m.lastLog)
	}

	logs, err := store.ListWorkouts(0)
	if err != nil {
		t.Fatalf("ListWorkouts: %v", err)
	}
	if len(logs) != 1 || logs[0].Date != "2026-03-02" || logs[0].Difficulty != models.DifficultyEasy {
		t.Errorf("unexpected stored workouts %+v", logs)
	}

	m, _ = update(t, m, enterKey)
	if m.State() != constants.StateHome {
		t.Errorf("finish: state %v, want home", m.State())
	}
}

func TestCancelDropsStaleTicks(t *testing.T) {
	m := startWorkout(t, newTestModel(t, 1, nil))
	stale := sessionTick(m)
	m, _ = update(t, m, stale)

	m, _ = update(t, m, escKey)
	if m.State() != constants.StateHome {
		t.Fatalf("esc: state %v, want home", m.State())
	}
	if m.Session().State() != workout.Idle {
		t.Errorf("session state after cancel = %v, want idle", m.Session().State())
	}

	m, cmd := update(t, m, stale)
	if cmd != nil || m.State() != constants.StateHome {
		t.Errorf("stale tick was not ignored: state %v", m.State())
	}

	m = startWorkout(t, m)
	m, _ = update(t, m, stale)
	if snap := m.Session().Snapshot(); snap.Remaining != 2 {
		t.Errorf("stale tick advanced the new session: remaining %d", snap.Remaining)
	}
}

func TestCountdownCancel(t *testing.T) {
	m := newTestModel(t, 1, nil)
	m, _ = update(t, m, enterKey)
	stale := countdownTick(m)

	m, _ = update(t, m, escKey)
	if m.State() != constants.StateHome {
		t.Fatalf("esc: state %v, want home", m.State())
	}
	m, _ = update(t, m, stale)
	m, _ = update(t, m, stale)
	if m.State() != constants.StateHome {
		t.Errorf("stale countdown ticks changed state to %v", m.State())
	}
}

func TestEmptyPlanStaysHome(t *testing.T) {
	m := newTestModel(t, 7, nil)
	m, cmd := update(t, m, enterKey)
	if m.State() != constants.StateHome || cmd != nil {
		t.Fatalf("empty plan: state %v", m.State())
	}
	if m.errMsg == "" {
		t.Error("expected an explanation for the empty plan")
	}
}

func TestDifficultyToggleDuringWorkout(t *testing.T) {
	m := startWorkout(t, newTestModel(t, 1, nil))
	m, _ = update(t, m, sessionTick(m))
	before := m.Session().Snapshot()
	plan := m.Plan()
	if got := m.panel.Ref(); got != "push-ups_easy.gif" {
		t.Fatalf("panel ref before toggle = %q, want the easy reference", got)
	}

	m, _ = update(t, m, runeKey('d'))
	if m.pref.Get() != models.DifficultyHard {
		t.Errorf("difficulty = %s, want Hard", m.pref.Get())
	}
	if got := m.panel.Ref(); got != "push-ups_hard.gif" {
		t.Errorf("panel ref after toggle = %q, want the hard reference", got)
	}
	after := m.Session().Snapshot()
	if after.Index != before.Index || after.Remaining != before.Remaining || after.Count != before.Count {
		t.Errorf("difficulty toggle changed the timer: %+v -> %+v", before, after)
	}
	if diff := cmp.Diff(exerciseNames(plan), exerciseNames(m.Plan())); diff != "" {
		t.Errorf("difficulty toggle changed the plan (-before +after):\n%s", diff)
	}
}

func exerciseNames(p models.DailyPlan) []string {
	out := make([]string, 0, p.Len())
	for _, e := range p.Exercises {
		out = append(out, fmt.Sprintf("%s/%ds", e.Name(), e.DurationSec()))
	}
	return out
}

func TestAgainRestartsSession(t *testing.T) {
	m := startWorkout(t, newTestModel(t, 1, nil))
	for m.State() == constants.StateWorkout {
		m, _ = update(t, m, sessionTick(m))
	}
	epoch := m.Session().Epoch()

	m, cmd := update(t, m, runeKey('a'))
	if m.State() != constants.StateWorkout || cmd == nil {
		t.Fatalf("again: state %v", m.State())
	}
	if m.Session().Epoch() == epoch {
		t.Error("expected a new session epoch")
	}
	if snap := m.Session().Snapshot(); snap.Index != 0 || snap.Count != 3 {
		t.Errorf("again snapshot = %+v", snap)
	}
}

func TestDifficultyFormOpensAndCancels(t *testing.T) {
	m := newTestModel(t, 1, nil)
	m, _ = update(t, m, runeKey('d'))
	if m.State() != constants.StateDifficulty {
		t.Fatalf("state = %v, want difficulty form", m.State())
	}
	m, _ = update(t, m, escKey)
	if m.State() != constants.StateHome {
		t.Errorf("esc: state %v, want home", m.State())
	}
	if m.pref.Get() != models.DifficultyEasy {
		t.Errorf("cancel changed difficulty to %s", m.pref.Get())
	}
}

func TestViewRendersEachScreen(t *testing.T) {
	m := newTestModel(t, 1, nil)
	if m.View() == "" {
		t.Error("home view is empty")
	}
	m, _ = update(t, m, enterKey)
	if m.View() == "" {
		t.Error("countdown view is empty")
	}
	m = startWorkout(t, newTestModel(t, 1, nil))
	if m.View() == "" {
		t.Error("workout view is empty")
	}
}
