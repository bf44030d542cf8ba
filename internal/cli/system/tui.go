package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Configure(); err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Context:      ctx.Context(),
		Store:        ctx.Store,
		Scheduler:    ctx.Scheduler,
		Fetcher:      ctx.Fetcher,
		Preference:   ctx.Preference,
		Clock:        ctx.Clock,
		CountdownSec: ctx.Settings.CountdownSec,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
