package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/cli/assets"
	"github.com/julianstephens/fivemin/internal/cli/backups"
	"github.com/julianstephens/fivemin/internal/cli/plans"
	"github.com/julianstephens/fivemin/internal/cli/settings"
	"github.com/julianstephens/fivemin/internal/cli/system"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/errors"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/storage"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"${config_path}" env:"FIVEMIN_CONFIG"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd       `cmd:"" help:"Initialize fivemin storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive workout timer." default:"1"`
	Plan     plans.PlanCmd        `cmd:"" help:"Show today's plan or a weekday's plan."`
	Run      plans.RunCmd         `cmd:"" help:"Run today's workout without the TUI."`
	History  plans.HistoryCmd     `cmd:"" help:"List completed workouts."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Media    assets.MediaCmd      `cmd:"" help:"Manage the exercise media cache."`
	Assets   assets.AssetsCmd     `cmd:"" help:"Generate the exercise media folder tree."`
}

// selfLoading commands open the store themselves or never touch it.
var selfLoading = map[string]bool{
	"init":   true,
	"doctor": true,
	"assets": true,
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		errors.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	var root CLI
	parser, err := kong.New(&root,
		kong.Name(constants.AppName),
		kong.Description("Five-minute daily workout timer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Writers(out, os.Stderr),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	name := ""
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		name = fields[0]
	}

	if err := logger.Init(logger.Config{
		Debug:     root.Debug,
		ConfigDir: filepath.Dir(root.Config),
		Quiet:     name == "tui",
	}); err != nil {
		return err
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", root.Config)

	store := storage.NewSQLiteStore(root.Config)
	defer store.Close()

	if !selfLoading[name] {
		if err := store.Load(); err != nil {
			return err
		}
	}

	appCtx := cli.NewContext(context.Background(), store)
	appCtx.Out = out
	return ctx.Run(appCtx)
}
