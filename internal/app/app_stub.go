//go:build !ebiten

package app

import (
	"log/slog"

	"csca/internal/config"
)

// Run reports that the window is unavailable in this build.
func Run(*config.Config, *slog.Logger) error {
	return ErrNoGUI
}
