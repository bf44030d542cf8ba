package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/fivemin/internal/backup"
	"github.com/julianstephens/fivemin/internal/cli"
)

type InitCmd struct {
	Force    bool `help:"Force reset by deleting existing database before initialization."`
	NoBackup bool `help:"Do not back up the database that --force deletes."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if !c.NoBackup {
				path, err := backup.NewManager(dbPath, ctx.Clock).Create()
				if err != nil {
					return fmt.Errorf("failed to back up existing database: %w", err)
				}
				ctx.Printf("Backed up existing database to: %s\n", path)
			}
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized fivemin storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
