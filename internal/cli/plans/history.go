package plans

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/utils"
)

type HistoryCmd struct {
	Limit int  `help:"Maximum number of workouts to show (0 for all)." default:"10"`
	JSON  bool `name:"json" help:"Print history as JSON."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	logs, err := ctx.Store.ListWorkouts(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list workouts: %w", err)
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(logs)
	}

	if len(logs) == 0 {
		ctx.Println("No workouts recorded yet.")
		return nil
	}

	ctx.Printf("%-10s  %-16s  %-4s  %-9s  %s\n", "DATE", "COMPLETED", "DIFF", "EXERCISES", "TIME")
	totalSec := 0
	for _, w := range logs {
		ctx.Printf("%-10s  %-16s  %-4s  %-9d  %s\n",
			w.Date,
			w.CompletedAt.Local().Format(constants.DateFormat+" 15:04"),
			w.Difficulty,
			w.ExerciseCount,
			utils.FormatSeconds(w.TotalSec),
		)
		totalSec += w.TotalSec
	}
	ctx.Printf("\n%d workouts, %s total\n", len(logs), utils.FormatSeconds(totalSec))
	return nil
}
