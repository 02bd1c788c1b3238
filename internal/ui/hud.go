//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"csca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the canvas. Each parameter
// gets -/+ buttons that step within the slider range and a value field that
// accepts typed numbers.
type HUD struct {
	params     *core.ParameterSet
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []*hudControlState
	redrawRect   image.Rectangle
	onRedraw     func()
	panelOffsetX int

	repeat  *core.FixedStep
	held    *hudControlState
	heldDir int

	editing *hudControlState
	editBuf []rune

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for params. onRedraw runs when the redraw button is
// clicked.
func NewHUD(params *core.ParameterSet, width int, onRedraw func()) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{params: params, width: width, onRedraw: onRedraw}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.repeat = core.NewFixedStep(repeatTPS)
	h.repeat.SetDelay(repeatDelay)

	for _, ctrl := range params.Controls() {
		param, ok := params.Lookup(ctrl.Key)
		if !ok {
			continue
		}
		state := &hudControlState{control: ctrl, param: param}
		param.Subscribe(func(v float64) { state.value = v })
		h.controls = append(h.controls, state)
	}
	h.layoutControls()
	return h
}

// Editing reports whether a value field currently has keyboard focus.
func (h *HUD) Editing() bool { return h != nil && h.editing != nil }

// Update handles HUD interactions. panelOffsetX is the panel's left edge in
// screen coordinates.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.handleTyping()
	h.handleMouse()
}

// Draw paints the HUD panel anchored to the right edge of the canvas.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleTyping() {
	if h.editing == nil {
		return
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if strings.ContainsRune("0123456789.-+eE", r) && len(h.editBuf) < maxEditLen {
			h.editBuf = append(h.editBuf, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(h.editBuf) > 0 {
		h.editBuf = h.editBuf[:len(h.editBuf)-1]
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		h.commitEdit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		h.editing = nil
	}
}

func (h *HUD) commitEdit() {
	if h.editing == nil {
		return
	}
	// Unparsable text leaves the parameter as it was.
	h.editing.param.SetString(string(h.editBuf))
	h.editing = nil
	h.editBuf = h.editBuf[:0]
}

func (h *HUD) handleMouse() {
	if h.held != nil {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			h.held = nil
		} else if h.repeat.ShouldStep() {
			h.applyAdjustment(h.held, h.heldDir)
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX
	if px < 0 {
		h.editing = nil
		return
	}
	if pointInRect(px, my, h.redrawRect) {
		if h.onRedraw != nil {
			h.onRedraw()
		}
		return
	}
	for _, state := range h.controls {
		switch {
		case pointInRect(px, my, state.minusRect):
			h.press(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.press(state, 1)
			return
		case pointInRect(px, my, state.valueRect):
			h.editing = state
			h.editBuf = []rune(formatValue(state.value))
			return
		}
	}
	h.editing = nil
}

func (h *HUD) press(state *hudControlState, direction int) {
	h.editing = nil
	h.applyAdjustment(state, direction)
	h.held = state
	h.heldDir = direction
	h.repeat.Reset()
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || direction == 0 {
		return
	}
	target := state.control.Nudge(state.value, direction)
	if math.Abs(target-state.value) < 1e-12 {
		return
	}
	state.param.Set(target)
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	ctrl := state.control
	if direction < 0 && ctrl.HasMin {
		return state.value > ctrl.Min
	}
	if direction > 0 && ctrl.HasMax {
		return state.value < ctrl.Max
	}
	return true
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, "Parameters", face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	for _, state := range h.controls {
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		value := formatValue(state.value)
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if h.editing == state {
			value = string(h.editBuf) + "_"
			valueColor = color.RGBA{R: 255, G: 210, B: 120, A: 255}
			h.fillRect(state.valueRect, color.RGBA{R: 40, G: 40, B: 48, A: 255})
		}
		bounds := text.BoundString(face, value)
		valueX := state.valueRect.Max.X - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
	h.drawButton(h.redrawRect, "Redraw", true)
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i, state := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		valueRect := image.Rect(minusRect.Min.X-buttonGap-valueWidth, buttonY, minusRect.Min.X-buttonGap, buttonY+buttonSize)
		state.top = top
		state.minusRect = minusRect
		state.plusRect = plusRect
		state.valueRect = valueRect
	}
	top := controlsTop + len(h.controls)*lineHeight + buttonGap
	h.redrawRect = image.Rect(panelPadding, top, h.width-panelPadding, top+buttonSize)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	param   *core.Parameter
	value   float64

	top       int
	valueRect image.Rectangle
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	valueWidth     = 64
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
	maxEditLen     = 24

	repeatTPS   = 20
	repeatDelay = 400 * time.Millisecond
)
