package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// shellDt is the fixed simulation step per frame at Ebiten's default 60 TPS.
const shellDt = 1.0 / 60.0

// App is the Ebiten presentation shell around the Engine: it forwards
// input, drives one Update per frame and renders the current world state.
type App struct {
	eng *Engine

	width  int
	height int

	prevKeys  map[ebiten.Key]bool
	prevMouse bool
}

// NewApp wraps an engine for a window of the given size.
func NewApp(eng *Engine, width, height int) *App {
	return &App{
		eng:      eng,
		width:    width,
		height:   height,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

// Engine exposes the wrapped engine, mainly for the end-of-run report.
func (a *App) Engine() *Engine { return a.eng }

func (a *App) Update() error {
	a.handleInput()
	a.eng.Update(shellDt)
	return nil
}

// keyPressed is an edge-triggered key test.
func (a *App) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := a.prevKeys[k]
	a.prevKeys[k] = down
	return down && !was
}

func (a *App) handleInput() {
	start := a.keyPressed(ebiten.KeyEnter) || a.keyPressed(ebiten.KeySpace)

	switch a.eng.State() {
	case StateMenu:
		if start {
			a.eng.StartGame()
		}
	case StateLevelComplete, StateGameOver, StateVictory:
		if a.keyPressed(ebiten.KeyC) {
			if r := a.eng.Report(); r != nil {
				_ = r.CopyToClipboard() // degrade silently without a clipboard
			}
		}
		if start {
			a.eng.Acknowledge()
		}
	case StatePlaying, StatePaused:
		if a.keyPressed(ebiten.KeyP) {
			a.eng.TogglePause()
		}
		if a.keyPressed(ebiten.Key1) {
			a.eng.SelectAbility(AbilityBridgeBuilder)
		}
		if a.keyPressed(ebiten.Key2) {
			a.eng.SelectAbility(AbilityDoorBreaker)
		}
		if a.keyPressed(ebiten.Key3) {
			a.eng.SelectAbility(AbilitySecurityBriber)
		}
		if a.keyPressed(ebiten.KeyEscape) {
			a.eng.CancelSelection()
		}
	}

	// Left click, edge-triggered like the key handling.
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down && !a.prevMouse {
		mx, my := ebiten.CursorPosition()
		a.eng.HandleClick(float64(mx), float64(my))
	}
	a.prevMouse = down
}

func (a *App) Draw(screen *ebiten.Image) {
	drawWorld(screen, a.eng)
	drawHUD(screen, a.eng, a.width, a.height)
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}
