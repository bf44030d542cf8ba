package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/models"
)

// contents is the asset catalog folder manifest written into every generated directory.
type contents struct {
	Info struct {
		Author  string `json:"author"`
		Version int    `json:"version"`
	} `json:"info"`
}

// AssetsCmd lays out the exercise media folder tree for uploading demonstrations.
type AssetsCmd struct {
	Dir string `arg:"" help:"Directory to create the Exercises tree in." type:"path" default:"."`
}

func (c *AssetsCmd) Run(ctx *cli.Context) error {
	root := filepath.Join(c.Dir, constants.MediaRootFolder)
	dirs, err := GenerateTree(root)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		rel, err := filepath.Rel(c.Dir, d)
		if err != nil {
			rel = d
		}
		ctx.Printf("Created %s\n", rel)
	}
	ctx.Printf("✓ Asset folder structure created at %s\n", root)
	return nil
}

// GenerateTree creates root/<Category>/{Easy,Hard} folders with a Contents.json in
// each, and returns the created directories in creation order. Categories without
// difficulty levels get no Easy or Hard folders. Existing manifests are overwritten.
func GenerateTree(root string) ([]string, error) {
	var created []string
	mk := func(dir string) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := writeContents(dir); err != nil {
			return err
		}
		created = append(created, dir)
		return nil
	}

	if err := mk(root); err != nil {
		return nil, err
	}
	for _, category := range models.Categories {
		dir := filepath.Join(root, string(category))
		if err := mk(dir); err != nil {
			return nil, err
		}
		if !category.HasDifficultyLevels() {
			continue
		}
		for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyHard} {
			if err := mk(filepath.Join(dir, string(d))); err != nil {
				return nil, err
			}
		}
	}
	return created, nil
}

func writeContents(dir string) error {
	var c contents
	c.Info.Author = "xcode"
	c.Info.Version = 1
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dir, "Contents.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write Contents.json in %s: %w", dir, err)
	}
	return nil
}
