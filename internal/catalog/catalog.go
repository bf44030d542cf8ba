// Package catalog holds the built-in exercise pools, one per category.
package catalog

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/models"
)

// idNamespace scopes the name-based exercise IDs so they are stable across processes.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/julianstephens/fivemin/exercises"))

type entry struct {
	name string
	slug string
}

// pools lists each category's exercises in insertion order.
var pools = map[models.Category][]entry{
	models.CategoryChest: {
		{"Push-ups", "push_ups"},
		{"Chest Press", "chest_press"},
		{"Chest Flys", "chest_flys"},
	},
	models.CategoryTriceps: {
		{"Tricep Dips", "tricep_dips"},
		{"Tricep Extensions", "tricep_extensions"},
	},
	models.CategoryBack: {
		{"Rows", "rows"},
		{"Lat Pulldowns", "lat_pulldowns"},
	},
	models.CategoryBiceps: {
		{"Bicep Curls", "bicep_curls"},
		{"Hammer Curls", "hammer_curls"},
	},
	models.CategoryLegs: {
		{"Squats", "squats"},
		{"Lunges", "lunges"},
		{"Glute Bridges", "glute_bridges"},
		{"Calf Raises", "calf_raises"},
	},
	models.CategoryShoulders: {
		{"Shoulder Press", "shoulder_press"},
		{"Lateral Raises", "lateral_raises"},
		{"Arm Circles", "arm_circles"},
	},
	models.CategoryAbs: {
		{"Crunches", "crunches"},
		{"Plank", "plank"},
		{"Leg Raises", "leg_raises"},
	},
	models.CategoryHIIT: {
		{"Jumping Jacks", "jumping_jacks"},
		{"Burpees", "burpees"},
		{"Mountain Climbers", "mountain_climbers"},
		{"High Knees", "high_knees"},
	},
	models.CategoryYoga: {
		{"Downward Dog", "downward_dog"},
		{"Warrior II", "warrior_two"},
		{"Child's Pose", "childs_pose"},
		{"Cobra Stretch", "cobra_stretch"},
	},
	models.CategoryRestWalk: {
		{"Brisk Walk", "brisk_walk"},
		{"Easy Walk", "easy_walk"},
	},
}

// Catalog is an immutable set of exercise pools keyed by category.
type Catalog struct {
	pools map[models.Category][]models.Exercise
}

// New builds the default catalog with every exercise running for durationSec.
// A non-positive duration falls back to the default exercise length.
func New(durationSec int) *Catalog {
	if durationSec <= 0 {
		durationSec = constants.DefaultExerciseSec
	}
	c := &Catalog{pools: make(map[models.Category][]models.Exercise, len(pools))}
	for category, entries := range pools {
		list := make([]models.Exercise, 0, len(entries))
		for _, e := range entries {
			list = append(list, models.NewExercise(
				ExerciseID(category, e.name),
				e.name,
				durationSec,
				category,
				MediaPath(category, models.DifficultyEasy, e.slug),
				MediaPath(category, models.DifficultyHard, e.slug),
			))
		}
		c.pools[category] = list
	}
	return c
}

// FromPools builds a catalog from explicit pools. Slices are copied.
func FromPools(p map[models.Category][]models.Exercise) *Catalog {
	c := &Catalog{pools: make(map[models.Category][]models.Exercise, len(p))}
	for category, list := range p {
		c.pools[category] = append([]models.Exercise(nil), list...)
	}
	return c
}

// Pool returns a copy of the exercises for a category, nil if the category is unknown.
func (c *Catalog) Pool(category models.Category) []models.Exercise {
	list, ok := c.pools[category]
	if !ok {
		return nil
	}
	return append([]models.Exercise(nil), list...)
}

// All returns every exercise in category display order.
func (c *Catalog) All() []models.Exercise {
	var all []models.Exercise
	for _, category := range models.Categories {
		all = append(all, c.pools[category]...)
	}
	return all
}

// Find looks up an exercise by ID.
func (c *Catalog) Find(id string) (models.Exercise, bool) {
	for _, list := range c.pools {
		for _, e := range list {
			if e.ID() == id {
				return e, true
			}
		}
	}
	return models.Exercise{}, false
}

// ExerciseID derives the stable ID for an exercise.
func ExerciseID(category models.Category, name string) string {
	return uuid.NewSHA1(idNamespace, []byte(string(category)+"/"+name)).String()
}

// MediaPath builds the object-storage reference for an exercise demonstration:
// Exercises/<Category>/<Difficulty>/<slug>_<difficulty>.gif. Categories without
// difficulty levels store a single file directly under the category folder.
func MediaPath(category models.Category, d models.Difficulty, slug string) string {
	if !category.HasDifficultyLevels() {
		return path.Join(constants.MediaRootFolder, string(category), slug+".gif")
	}
	file := slug + "_" + strings.ToLower(string(d)) + ".gif"
	return path.Join(constants.MediaRootFolder, string(category), string(d), file)
}
