// Package media resolves demonstration references and fetches them through
// a memory and disk cache.
package media

import (
	"sync"

	"github.com/julianstephens/fivemin/internal/models"
)

// Resolve returns the reference shown for ex at difficulty d.
func Resolve(ex models.Exercise, d models.Difficulty) string {
	return ex.Media(d)
}

// Preference is the shared difficulty choice. It only affects which media is shown.
type Preference struct {
	mu sync.RWMutex
	d  models.Difficulty
}

func NewPreference(d models.Difficulty) *Preference {
	if d != models.DifficultyHard {
		d = models.DifficultyEasy
	}
	return &Preference{d: d}
}

func (p *Preference) Get() models.Difficulty {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.d
}

func (p *Preference) Set(d models.Difficulty) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.d = d
}

// Toggle flips the difficulty and returns the new value.
func (p *Preference) Toggle() models.Difficulty {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.d = p.d.Toggle()
	return p.d
}
