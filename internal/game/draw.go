package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colBackground = color.RGBA{R: 18, G: 22, B: 30, A: 255}
	colPlatform   = color.RGBA{R: 110, G: 116, B: 128, A: 255}
	colWall       = color.RGBA{R: 150, G: 110, B: 70, A: 255}
	colDoor       = color.RGBA{R: 230, G: 150, B: 40, A: 255}
	colSecurity   = color.RGBA{R: 70, G: 130, B: 220, A: 255}
	colGuard      = color.RGBA{R: 210, G: 60, B: 60, A: 255}
	colGapBand    = color.RGBA{R: 8, G: 8, B: 12, A: 255}
	colBridge     = color.RGBA{R: 90, G: 190, B: 110, A: 255}
	colGate       = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	colSpawn      = color.RGBA{R: 200, G: 200, B: 90, A: 180}

	abilityColors = map[AbilityKind]color.RGBA{
		AbilityNone:           {R: 200, G: 200, B: 210, A: 255},
		AbilityBridgeBuilder:  {R: 90, G: 190, B: 110, A: 255},
		AbilityDoorBreaker:    {R: 230, G: 150, B: 40, A: 255},
		AbilitySecurityBriber: {R: 120, G: 160, B: 240, A: 255},
	}
)

func fillRect(screen *ebiten.Image, r Rect, c color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(screen *ebiten.Image, r Rect, width float32, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, c, false)
}

// drawWorld renders the current level geometry and every entity.
func drawWorld(screen *ebiten.Image, e *Engine) {
	screen.Fill(colBackground)
	if e.Level() == nil {
		return
	}

	// Obstacles by kind; platform-classified ones get the platform colour
	// regardless of kind so walkable surfaces read consistently.
	for _, o := range e.Obstacles() {
		var c color.RGBA
		switch {
		case o.Kind == ObstacleGap:
			c = colGapBand
		case o.Kind == ObstacleDoor:
			c = colDoor
		case o.Kind == ObstacleSecurity:
			c = colSecurity
		case o.Kind == ObstacleSecurityGuard:
			c = colGuard
		case o.IsPlatform():
			c = colPlatform
		default:
			c = colWall
		}
		fillRect(screen, o.Rect, c)
	}

	for _, b := range e.Bridges() {
		fillRect(screen, b.Rect(), colBridge)
	}

	// Spawn marker and check-in gate.
	lv := e.Level()
	fillRect(screen, Rect{X: lv.Spawn.X, Y: lv.Spawn.Y + passengerHeight - 4, W: 24, H: 4}, colSpawn)
	strokeRect(screen, lv.Goal, 2, colGate)
	fillRect(screen, Rect{X: lv.Goal.X, Y: lv.Goal.Y, W: lv.Goal.W, H: 6}, colGate)

	// Passengers, tinted by held ability, with a cooldown tick above any
	// activation in flight.
	for _, p := range e.Passengers() {
		if !p.Active() {
			continue
		}
		fillRect(screen, p.Bounds(), abilityColors[p.Ability()])
		if p.Falling() {
			strokeRect(screen, p.Bounds(), 1, color.RGBA{R: 255, G: 80, B: 80, A: 200})
		}
		if p.Cooldown() > 0 {
			pos := p.Pos()
			fillRect(screen, Rect{X: pos.X, Y: pos.Y - 6, W: passengerWidth * p.Cooldown() / 2, H: 3},
				color.RGBA{R: 255, G: 255, B: 255, A: 170})
		}
	}

	// Selection ring around the manually selected passenger.
	if sel := e.SelectedPassenger(); sel != nil && sel.Active() {
		b := sel.Bounds()
		strokeRect(screen, Rect{X: b.X - 3, Y: b.Y - 3, W: b.W + 6, H: b.H + 6}, 1.5,
			color.RGBA{R: 255, G: 240, B: 60, A: 220})
	}
}

// drawHUD renders the timer, quota progress, ability inventory and any
// state overlay banner.
func drawHUD(screen *ebiten.Image, e *Engine, width, height int) {
	switch e.State() {
	case StateMenu:
		drawBanner(screen, width, height, "GATE RUSH", "enter: start   1/2/3: arm ability   p: pause")
		return
	case StateLevelComplete:
		drawBanner(screen, width, height, "LEVEL CLEARED",
			fmt.Sprintf("%d reached the gate — enter: next level   c: copy report", e.Reached()))
	case StateGameOver:
		drawBanner(screen, width, height, "GAME OVER",
			fmt.Sprintf("only %d reached the gate — enter: menu   c: copy report", e.Reached()))
	case StateVictory:
		drawBanner(screen, width, height, "ALL CLEAR",
			"every terminal cleared — enter: menu   c: copy report")
	case StatePaused:
		drawBanner(screen, width, height, "PAUSED", "p: resume")
	}

	if e.Level() == nil {
		return
	}

	left := e.Remaining()
	line1 := fmt.Sprintf("level %d   time %02d:%02d   reached %d  active %d  lost %d",
		e.LevelNumber(), int(left.Minutes()), int(left.Seconds())%60,
		e.Reached(), e.ActiveCount(), e.Lost())
	line2 := fmt.Sprintf("[1] bridge x%d  [2] breaker x%d  [3] briber x%d",
		e.Inventory(AbilityBridgeBuilder), e.Inventory(AbilityDoorBreaker), e.Inventory(AbilitySecurityBriber))
	if sel := e.SelectedAbility(); sel != AbilityNone {
		line2 += "   armed: " + sel.String()
	} else if e.SelectedPassenger() != nil {
		line2 += "   selected: P" + fmt.Sprint(e.SelectedPassenger().ID())
	}
	ebitenutil.DebugPrintAt(screen, line1, 8, 8)
	ebitenutil.DebugPrintAt(screen, line2, 8, 24)
}

// drawBanner centres a large state title with a hint line under it.
func drawBanner(screen *ebiten.Image, width, height int, title, hint string) {
	face := basicfont.Face7x13
	tw := len(title) * face.Advance
	tx := (width - tw*3) / 2
	ty := height/2 - 20

	// Scale the bitmap face up by drawing into an offscreen image.
	banner := ebiten.NewImage(tw+2, face.Height+2)
	text.Draw(banner, title, face, 1, face.Ascent, color.White)
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(3, 3)
	opts.GeoM.Translate(float64(tx), float64(ty))
	screen.DrawImage(banner, opts)

	hw := len(hint) * 6
	ebitenutil.DebugPrintAt(screen, hint, (width-hw)/2, ty+face.Height*3+12)
}
