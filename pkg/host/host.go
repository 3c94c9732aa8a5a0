// Package host implements the runtime namespace `H` that compiled programs
// are wrapped to receive. It is the concrete Go-side realisation of the
// contract the emitter's rewrite table assumes: every member this package
// exposes corresponds 1:1 to a call the emitter is permitted to produce.
package host

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// VirtualKeys is the fixed vk.* table: numeric codes a compiled program
// references by name (vk_left, vk_right, ...), rewritten by the emitter to
// H.vk.left, H.vk.right, and so on.
type VirtualKeys struct {
	Left, Right, Up, Down   int
	Space, Enter, Escape    int
	Shift                   int
}

// ebitenKeyOf maps a VirtualKeys numeric code back to the ebiten.Key it was
// assigned from, used internally by the input accessors.
var keyByCode = map[int]ebiten.Key{}

func registerKey(code int, key ebiten.Key) int {
	keyByCode[code] = key
	return code
}

var vk = func() VirtualKeys {
	return VirtualKeys{
		Left:   registerKey(1, ebiten.KeyArrowLeft),
		Right:  registerKey(2, ebiten.KeyArrowRight),
		Up:     registerKey(3, ebiten.KeyArrowUp),
		Down:   registerKey(4, ebiten.KeyArrowDown),
		Space:  registerKey(5, ebiten.KeySpace),
		Enter:  registerKey(6, ebiten.KeyEnter),
		Escape: registerKey(7, ebiten.KeyEscape),
		Shift:  registerKey(8, ebiten.KeyShift),
	}
}()

// Host is the concrete implementation of the `H` namespace, backed by a
// real ebiten screen. A compiled program's emitted text calls exactly the
// members declared here.
type Host struct {
	screen *ebiten.Image
	face   font.Face

	clock     float64
	lastDelta float64

	onCreate    func()
	onStep      func(dt float64)
	onDraw      func()
	onCollision func(other string)
}

// New creates a Host with no screen bound yet; BindScreen must be called
// once per frame before the drawing accessors are used.
func New() *Host {
	return &Host{face: basicfont.Face7x13}
}

// Vk exposes the fixed virtual-key table, H.vk in the emitted text.
func (h *Host) Vk() VirtualKeys { return vk }

// BindScreen points the drawing accessors at screen for the current frame.
func (h *Host) BindScreen(screen *ebiten.Image) { h.screen = screen }

// Advance moves the host clock forward by dt seconds and records it as the
// value the next DeltaTime/CurrentTime calls will report, then runs the
// registered step and draw callbacks in that order.
func (h *Host) Advance(dt float64) {
	h.lastDelta = dt
	h.clock += dt
	if h.onStep != nil {
		h.onStep(dt)
	}
}

// RunDraw invokes the registered draw callback, if any, for the frame
// already bound via BindScreen.
func (h *Host) RunDraw() {
	if h.onDraw != nil {
		h.onDraw()
	}
}

// RunCreate invokes the registered create callback once, if any.
func (h *Host) RunCreate() {
	if h.onCreate != nil {
		h.onCreate()
	}
}

// RunCollision invokes the registered collision callback, if any.
func (h *Host) RunCollision(other string) {
	if h.onCollision != nil {
		h.onCollision(other)
	}
}

// Lifecycle registration, H.registerCreate/Step/Draw/Collision.

func (h *Host) RegisterCreate(fn func())                 { h.onCreate = fn }
func (h *Host) RegisterStep(fn func(dt float64))         { h.onStep = fn }
func (h *Host) RegisterDraw(fn func())                   { h.onDraw = fn }
func (h *Host) RegisterCollision(fn func(other string))  { h.onCollision = fn }

// Input accessors, H.keyboardCheck/keyboardCheckPressed/keyboardCheckReleased.

func (h *Host) KeyboardCheck(code int) bool {
	key, ok := keyByCode[code]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(key)
}

func (h *Host) KeyboardCheckPressed(code int) bool {
	key, ok := keyByCode[code]
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(key)
}

func (h *Host) KeyboardCheckReleased(code int) bool {
	key, ok := keyByCode[code]
	if !ok {
		return false
	}
	return inpututil.IsKeyJustReleased(key)
}

func (h *Host) MouseCheck(button int) bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButton(button))
}

func (h *Host) MouseCheckPressed(button int) bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButton(button))
}

func (h *Host) MouseCheckReleased(button int) bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButton(button))
}

// Drawing accessors, H.drawSprite/drawText/drawRectangle/drawCircle/drawLine.
//
// There is no sprite atlas or particle system in scope here (§1 excludes
// the renderer); drawSprite renders a coloured placeholder rectangle sized
// to the given bounds so a host program still sees visible feedback.

func (h *Host) DrawSprite(x, y float64, name string) {
	if h.screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(h.screen, fmt.Sprintf("[%s]", name), int(x), int(y))
}

func (h *Host) DrawText(x, y float64, text string) {
	if h.screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(h.screen, text, int(x), int(y))
}

func (h *Host) DrawRectangle(x, y, w, h2 float64, col color.Color) {
	if h.screen == nil {
		return
	}
	ebitenutil.DrawRect(h.screen, x, y, w, h2, col)
}

func (h *Host) DrawCircle(cx, cy, radius float64, col color.Color) {
	if h.screen == nil {
		return
	}
	// No filled-circle primitive in ebitenutil; approximate with a square
	// bounding rectangle so the call still produces visible feedback.
	ebitenutil.DrawRect(h.screen, cx-radius, cy-radius, radius*2, radius*2, col)
}

func (h *Host) DrawLine(x1, y1, x2, y2 float64, col color.Color) {
	if h.screen == nil {
		return
	}
	ebitenutil.DrawLine(h.screen, x1, y1, x2, y2, col)
}

// Audio accessors, H.playSound/playMusic/stopSound/stopMusic.
//
// No audio backend is wired here (out of scope per §1); these record intent
// without producing sound, matching the host-contract shape without
// claiming an engine this module doesn't own.

func (h *Host) PlaySound(name string)  {}
func (h *Host) PlayMusic(name string)  {}
func (h *Host) StopSound(name string)  {}
func (h *Host) StopMusic(name string)  {}

// Utility accessors, H.checkCollision/pointDistance.

func (h *Host) CheckCollision(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

func (h *Host) PointDistance(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Time accessors, H.deltaTime/currentTime.

func (h *Host) DeltaTime() float64  { return h.lastDelta }
func (h *Host) CurrentTime() float64 { return h.clock }
