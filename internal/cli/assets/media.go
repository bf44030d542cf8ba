package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
)

// MediaCmd groups the media cache subcommands.
type MediaCmd struct {
	Prefetch MediaPrefetchCmd `cmd:"" help:"Warm the media cache for today's plan."`
	Get      MediaGetCmd      `cmd:"" help:"Fetch one media reference and report its frames."`
}

type MediaPrefetchCmd struct {
	Concurrency int  `help:"Number of parallel downloads." default:"4"`
	Both        bool `help:"Fetch Easy and Hard demonstrations."`
	Prune       bool `help:"Delete cached media older than the cache TTL first."`
}

func (c *MediaPrefetchCmd) Run(ctx *cli.Context) error {
	if err := ctx.Configure(); err != nil {
		return err
	}

	if c.Prune {
		n, err := ctx.Store.PruneMedia(ctx.Clock.Now().Add(-constants.MediaCacheTTL))
		if err != nil {
			return fmt.Errorf("failed to prune media cache: %w", err)
		}
		ctx.Printf("Pruned %d expired media entries.\n", n)
	}

	plan := ctx.Scheduler.CurrentPlan()
	difficulties := []models.Difficulty{ctx.Preference.Get()}
	if c.Both {
		difficulties = []models.Difficulty{models.DifficultyEasy, models.DifficultyHard}
	}
	var refs []string
	for _, e := range plan.Exercises {
		for _, d := range difficulties {
			refs = append(refs, media.Resolve(e, d))
		}
	}
	if len(refs) == 0 {
		ctx.Println("Nothing to prefetch for today.")
		return nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = constants.MediaPrefetchWorkers
	}
	n, err := ctx.Fetcher.Prefetch(ctx.Context(), refs, concurrency)
	ctx.Printf("Cached %d media files for %s (day %d).\n", n, plan.Date, plan.Day)
	if err != nil {
		logger.Warn("Prefetch incomplete", "cached", n, "error", err)
		return fmt.Errorf("some media could not be fetched: %w", err)
	}
	return nil
}

type MediaGetCmd struct {
	Ref string `arg:"" help:"Media reference, e.g. Exercises/Chest/Easy/push_ups_easy.gif."`
}

func (c *MediaGetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Configure(); err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx.Context(), constants.MediaFetchTimeout)
	defer cancel()

	m, err := ctx.Fetcher.Fetch(fetchCtx, c.Ref)
	if errors.Is(err, media.ErrNotFound) {
		return fmt.Errorf("media %q not found", c.Ref)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %q: %w", c.Ref, err)
	}

	ctx.Printf("Ref:    %s\n", m.Ref)
	ctx.Printf("Source: %s\n", m.Source)
	ctx.Printf("Size:   %d bytes\n", len(m.Data))
	ctx.Printf("Frames: %d\n", m.Frames)
	ctx.Printf("Loop:   %s\n", m.Loop)
	return nil
}
