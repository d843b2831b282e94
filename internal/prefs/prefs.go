// Package prefs stores UI preferences that are not tied to a user.
package prefs

import (
	"context"

	"github.com/nhle/project-dashboard/internal/store"
)

// Prefs reads and writes preferences through the key-value store.
type Prefs struct {
	kv *store.KV
}

func New(kv *store.KV) *Prefs {
	return &Prefs{kv: kv}
}

// DarkMode reports the stored dark mode setting. Nothing stored means off.
func (p *Prefs) DarkMode(ctx context.Context) bool {
	var on bool
	if !p.kv.Get(ctx, store.KeyDarkMode, &on) {
		return false
	}
	return on
}

// SetDarkMode stores the dark mode setting.
func (p *Prefs) SetDarkMode(ctx context.Context, on bool) {
	p.kv.Set(ctx, store.KeyDarkMode, on)
}

// ToggleDarkMode flips the setting and returns the new value.
func (p *Prefs) ToggleDarkMode(ctx context.Context) bool {
	on := !p.DarkMode(ctx)
	p.SetDarkMode(ctx, on)
	return on
}
