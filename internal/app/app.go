//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"log/slog"

	"csca/internal/config"
	"csca/internal/core"
	"csca/internal/render"
	"csca/internal/sims/recurrence"
	"csca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts the recurrence renderer to the ebiten.Game interface.
type Game struct {
	params  *core.ParameterSet
	sched   *render.Scheduler
	latest  *render.Latest
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *slog.Logger

	size  core.Size
	scale int
}

// New constructs a Game for the provided configuration. Every parameter
// change and every explicit redraw schedules a fresh render.
func New(cfg *config.Config, log *slog.Logger) *Game {
	size := cfg.Size()
	latest := &render.Latest{}
	g := &Game{
		params:  core.NewParameterSet(cfg.Initial()),
		latest:  latest,
		sched:   render.NewScheduler(recurrence.RenderSize, latest, core.NewSeeder(cfg.Seed), size, log),
		painter: render.NewPainter(size.W, size.H),
		overlay: ui.NewOverlay(),
		log:     log,
		size:    size,
		scale:   cfg.Canvas.Scale,
	}
	g.hud = ui.NewHUD(g.params, hudWidth, g.Redraw)
	g.params.OnChange(func(key string, v float64) {
		g.log.Debug("parameter changed", "key", key, "value", v)
		g.Redraw()
	})
	return g
}

// Redraw renders the current parameters with a fresh random first row.
func (g *Game) Redraw() {
	g.sched.Request(g.params.Snapshot())
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if !g.hud.Editing() {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Redraw()
		}
		g.overlay.Update()
	}
	g.hud.Update(g.size.W * g.scale)
	return nil
}

// Draw uploads the newest finished render and paints the frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if buf, ok := g.latest.Take(); ok && g.painter.Upload(buf) {
		g.overlay.SetStatus(fmt.Sprintf("render #%d  %dx%d", g.sched.Delivered(), buf.W, buf.H))
	}
	g.painter.Draw(screen, g.scale)
	g.hud.Draw(screen, g.size.W*g.scale, g.size.H*g.scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size.W*g.scale + hudWidth, g.size.H * g.scale
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log *slog.Logger) error {
	game := New(cfg, log)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("csca")
	ebiten.SetWindowSize(w, h)

	log.Info("window opened", "w", cfg.Canvas.Width, "h", cfg.Canvas.Height, "scale", cfg.Canvas.Scale)
	err := ebiten.RunGame(game)
	game.sched.Wait()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
