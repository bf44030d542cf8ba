package system

import (
	"fmt"

	"github.com/julianstephens/fivemin/internal/backup"
	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/migration"
	"github.com/julianstephens/fivemin/migrations"
)

type MigrateCmd struct {
	NoBackup bool `help:"Skip the backup taken before applying migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	db, err := cli.DB(ctx.Store)
	if err != nil {
		return err
	}

	runner := migration.NewRunner(db, migrations.SQLite())
	current, err := runner.CurrentVersion(ctx.Context())
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}
	if current < latest && !c.NoBackup {
		path, err := backup.NewManager(ctx.Store.GetConfigPath(), ctx.Clock).Create()
		if err != nil {
			return fmt.Errorf("failed to back up database before migrating: %w", err)
		}
		ctx.Printf("Backed up database to %s\n", path)
	}

	count, err := runner.Apply(ctx.Context(), func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
