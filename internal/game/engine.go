package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gaterush/gaterush/internal/config"
)

// GameState is the top-level progression state.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateLevelComplete
	StateGameOver
	StateVictory
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// selectionMode keeps the two player-interaction paths (inventory ability
// assignment vs. passenger selection for manual activation) explicitly
// mutually exclusive.
type selectionMode int

const (
	selectNone selectionMode = iota
	selectAbility
	selectPassenger
)

// Engine owns all simulation state for one game session. It is driven by
// the presentation shell: one Update(dt) per frame, clicks forwarded in
// surface-local pixel coordinates. Single logical thread of control; no
// internal locking.
type Engine struct {
	cfg    config.Config
	width  float64
	height float64
	rng    *rand.Rand
	now    func() time.Time
	simLog *SimLog

	state       GameState
	levelNumber int
	level       *Level

	// Live per-attempt collections. platforms/walls are pure derived
	// views rebuilt from obstacles+bridges every tick.
	obstacles []*Obstacle
	guards    []*Guard
	bridges   []Bridge
	platforms []Rect
	walls     []Rect

	passengers []*Passenger
	spawned    int
	reached    int
	lost       int
	spawnTimer float64
	tick       int

	inventory map[AbilityKind]int

	selMode      selectionMode
	selAbility   AbilityKind
	selPassenger *Passenger

	// Pause-aware level clock: elapsed = now - levelStart - pausedTotal.
	levelStart  time.Time
	pausedTotal time.Duration
	pauseBegan  time.Time

	report *LevelReport
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithSeed makes level generation and ability draws reproducible.
func WithSeed(seed int64) EngineOption {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithClock substitutes the wall clock, used by tests to drive the level
// timer and pause accounting deterministically.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithVerboseLog records per-tick movement entries in the SimLog.
func WithVerboseLog() EngineOption {
	return func(e *Engine) { e.simLog = NewSimLog(true) }
}

// NewEngine creates an engine for a surface of the given size, starting at
// the menu.
func NewEngine(width, height float64, cfg config.Config, opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:    cfg,
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay randomness
		now:    time.Now,
		simLog: NewSimLog(false),
		state:  StateMenu,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// --- Accessors for the shell, reports and tests ---

func (e *Engine) State() GameState         { return e.state }
func (e *Engine) LevelNumber() int         { return e.levelNumber }
func (e *Engine) Level() *Level            { return e.level }
func (e *Engine) Passengers() []*Passenger { return e.passengers }
func (e *Engine) Guards() []*Guard         { return e.guards }
func (e *Engine) Obstacles() []*Obstacle   { return e.obstacles }
func (e *Engine) Bridges() []Bridge        { return e.bridges }
func (e *Engine) Spawned() int             { return e.spawned }
func (e *Engine) Reached() int             { return e.reached }
func (e *Engine) Lost() int                { return e.lost }
func (e *Engine) SimLog() *SimLog          { return e.simLog }
func (e *Engine) Report() *LevelReport     { return e.report }

// Inventory returns the remaining manual uses for an ability kind.
func (e *Engine) Inventory(k AbilityKind) int { return e.inventory[k] }

// ActiveCount returns the number of passengers still in play.
func (e *Engine) ActiveCount() int {
	n := 0
	for _, p := range e.passengers {
		if p.active {
			n++
		}
	}
	return n
}

// SelectedAbility returns the inventory ability armed for assignment, or
// AbilityNone.
func (e *Engine) SelectedAbility() AbilityKind {
	if e.selMode != selectAbility {
		return AbilityNone
	}
	return e.selAbility
}

// SelectedPassenger returns the passenger picked for manual activation, or
// nil.
func (e *Engine) SelectedPassenger() *Passenger {
	if e.selMode != selectPassenger {
		return nil
	}
	return e.selPassenger
}

// Elapsed returns pause-adjusted time since level start.
func (e *Engine) Elapsed() time.Duration {
	if e.levelStart.IsZero() {
		return 0
	}
	ref := e.now()
	if e.state == StatePaused {
		ref = e.pauseBegan
	}
	return ref.Sub(e.levelStart) - e.pausedTotal
}

// Remaining returns the time left on the level clock, floored at zero.
func (e *Engine) Remaining() time.Duration {
	limit := time.Duration(e.cfg.Rules.TimeLimitSeconds * float64(time.Second))
	left := limit - e.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// --- State transitions ---

// StartGame begins a fresh run at level 1. Only valid from the menu.
func (e *Engine) StartGame() {
	if e.state != StateMenu {
		return
	}
	e.startLevel(1)
	e.setState(StatePlaying)
}

// TogglePause flips between Playing and Paused. The level clock freezes
// while paused: the pause span is subtracted from elapsed time on resume.
func (e *Engine) TogglePause() {
	switch e.state {
	case StatePlaying:
		e.pauseBegan = e.now()
		e.setState(StatePaused)
	case StatePaused:
		e.pausedTotal += e.now().Sub(e.pauseBegan)
		e.setState(StatePlaying)
	}
}

// Acknowledge advances past a terminal screen: LevelComplete moves on to
// the next level, GameOver and Victory return to the menu.
func (e *Engine) Acknowledge() {
	switch e.state {
	case StateLevelComplete:
		e.startLevel(e.levelNumber + 1)
		e.setState(StatePlaying)
	case StateGameOver, StateVictory:
		e.setState(StateMenu)
	}
}

func (e *Engine) setState(s GameState) {
	if s == e.state {
		return
	}
	e.simLog.Add(e.tick, "--", "state", "change", fmt.Sprintf("%s → %s", e.state, s), 0)
	e.state = s
}

// startLevel generates a fresh layout and installs it.
func (e *Engine) startLevel(n int) {
	e.installLevel(GenerateLevel(n, e.width, e.height, e.cfg.Generator, e.rng))
}

// installLevel discards and reconstructs all per-level state around the
// given layout.
func (e *Engine) installLevel(lv *Level) {
	e.levelNumber = lv.Number
	e.level = lv
	e.obstacles = e.level.CloneObstacles()
	e.guards = nil
	for _, o := range e.obstacles {
		if o.Kind == ObstacleSecurityGuard {
			e.guards = append(e.guards, NewGuard(o, o.Rect.X-50, o.Rect.X+50))
		}
	}
	e.bridges = nil
	e.passengers = nil
	e.spawned = 0
	e.reached = 0
	e.lost = 0
	e.spawnTimer = e.cfg.Rules.SpawnInterval // first spawn on the first tick
	e.tick = 0
	e.inventory = map[AbilityKind]int{
		AbilityBridgeBuilder:  e.cfg.Abilities.BridgeInventory,
		AbilityDoorBreaker:    e.cfg.Abilities.DoorInventory,
		AbilitySecurityBriber: e.cfg.Abilities.BriberInventory,
	}
	e.selMode = selectNone
	e.selPassenger = nil
	e.levelStart = e.now()
	e.pausedTotal = 0
	e.report = newLevelReport(lv.Number)
	e.simLog.Add(e.tick, "--", "state", "level_start", fmt.Sprintf("level %d", lv.Number), float64(lv.Number))
}

// --- Per-tick update ---

// Update advances the simulation by dt seconds. Only the Playing state
// simulates; dt is clamped so a stalled frame cannot produce a
// destabilizing physics step.
func (e *Engine) Update(dt float64) {
	if dt > e.cfg.Physics.MaxDeltaTime {
		dt = e.cfg.Physics.MaxDeltaTime
	}
	if e.state != StatePlaying {
		return
	}
	e.tick++

	// 1. LEVEL CLOCK: timeout beats everything else this tick.
	if e.Elapsed() >= time.Duration(e.cfg.Rules.TimeLimitSeconds*float64(time.Second)) {
		e.finishLevel(false, "time expired")
		return
	}

	// 2. SPAWN: one passenger per interval until the cap.
	e.spawnTimer += dt
	for e.spawnTimer >= e.cfg.Rules.SpawnInterval && e.spawned < e.cfg.Rules.PassengerCap {
		e.spawnTimer -= e.cfg.Rules.SpawnInterval
		e.spawnPassenger()
	}

	// 3. GUARDS: patrol first, against last tick's surfaces.
	e.platforms, e.walls = classifySurfaces(e.obstacles, e.bridges)
	for _, g := range e.guards {
		g.Update(stepInput{
			dt:        dt,
			gravity:   e.cfg.Physics.Gravity,
			speed:     e.cfg.Physics.PatrolSpeed,
			deadband:  e.cfg.Physics.WaypointSlack,
			platforms: e.platforms,
			walls:     e.walls,
		})
	}

	// 4. CLASSIFY: rebuild the platform/wall views so passenger physics
	// sees moved guards and any bridge built last tick.
	e.platforms, e.walls = classifySurfaces(e.obstacles, e.bridges)

	// 5. PASSENGERS: look-ahead destruction, physics, interaction
	// resolution, gate arrival — in that order per passenger. No
	// navigation target: passengers keep walking their current direction
	// and only obstacles turn them around.
	for _, p := range e.passengers {
		if !p.active {
			continue
		}

		// Destructive look-ahead must run before movement so a breaker
		// is not pre-empted by a direction flip.
		broke := e.lookAheadBreak(p, dt)

		p.Update(stepInput{
			dt:        dt,
			gravity:   e.cfg.Physics.Gravity,
			speed:     e.cfg.Physics.WalkSpeed,
			deadband:  e.cfg.Physics.SteerDeadband,
			platforms: e.platforms,
			walls:     e.walls,
			target:    nil,
			passWalls: broke,
		})

		e.resolveInteractions(p)

		if p.CheckReachedGate(e.level.Goal) {
			e.reached++
			e.report.Reached++
			e.simLog.Add(e.tick, plabel(p), "gate", "reached", fmt.Sprintf("total %d", e.reached), float64(e.reached))
			continue
		}

		// Fell out of the world: resolved as lost.
		if p.pos.Y > e.height+100 {
			p.active = false
			e.lost++
			e.report.Lost++
			e.simLog.Add(e.tick, plabel(p), "gate", "lost", "fell out of bounds", 0)
		}
	}

	// 6. OUTCOME: once everyone has spawned and resolved.
	if e.spawned >= e.cfg.Rules.PassengerCap && e.ActiveCount() == 0 {
		e.finishLevel(e.reached >= e.cfg.Rules.RescueQuota, "all passengers resolved")
	}
}

func (e *Engine) spawnPassenger() {
	p := NewPassenger(e.spawned, e.level.Spawn)
	p.ability = e.drawAbility()
	e.passengers = append(e.passengers, p)
	e.spawned++
	e.report.Spawned++
	e.simLog.Add(e.tick, plabel(p), "spawn", "created", p.ability.String(), 0)
}

// drawAbility rolls the spawn ability. The chances are cumulative
// thresholds over one draw, not independent rolls.
func (e *Engine) drawAbility() AbilityKind {
	a := e.cfg.Abilities
	r := e.rng.Float64()
	switch {
	case r < a.BridgeChance:
		return AbilityBridgeBuilder
	case r < a.BridgeChance+a.DoorChance:
		return AbilityDoorBreaker
	case r < a.BridgeChance+a.DoorChance+a.BriberChance:
		return AbilitySecurityBriber
	default:
		return AbilityNone
	}
}

// finishLevel resolves the attempt into LevelComplete, Victory or GameOver.
func (e *Engine) finishLevel(won bool, why string) {
	e.report.finish(e.Elapsed())
	switch {
	case won && e.levelNumber >= e.cfg.Rules.FinalLevel:
		e.report.Outcome = "victory"
		e.setState(StateVictory)
	case won:
		e.report.Outcome = "cleared"
		e.setState(StateLevelComplete)
	default:
		e.report.Outcome = "failed"
		e.setState(StateGameOver)
	}
	e.simLog.Add(e.tick, "--", "state", "outcome",
		fmt.Sprintf("%s (%s): %d/%d reached", e.report.Outcome, why, e.reached, e.cfg.Rules.RescueQuota), float64(e.reached))
}

// --- Obstacle interaction resolution ---

// lookAheadBreak tests two ticks of travel ahead of a breaker-holding
// passenger for a destructible wall or door and removes it on a successful
// activation. Reports whether a destruction fired this tick.
func (e *Engine) lookAheadBreak(p *Passenger, dt float64) bool {
	if p.ability != AbilityDoorBreaker {
		return false
	}
	ahead := p.Bounds()
	ahead.X += p.dir * e.cfg.Physics.WalkSpeed * dt * 2
	for _, o := range e.obstacles {
		if o.Kind != ObstacleWall && o.Kind != ObstacleDoor {
			continue
		}
		if o.IsPlatform() || !ahead.Overlaps(o.Rect) {
			continue
		}
		// Boundary walls sit outside the playfield and stay up.
		if o.Rect.X < 0 || o.Rect.Right() > e.width {
			continue
		}
		if p.ActivateAbility(e.cfg.Abilities.Cooldown) {
			e.breakObstacle(p, o)
			return true
		}
		return false
	}
	return false
}

// resolveInteractions runs the two per-tick checks for one active
// passenger: the leading-foot gap check and the solid-obstacle AABB check.
func (e *Engine) resolveInteractions(p *Passenger) {
	// Gap check.
	footX := p.LeadingFootX()
	footY := p.pos.Y + passengerHeight
	for _, o := range e.obstacles {
		if o.Kind != ObstacleGap {
			continue
		}
		if footX < o.Rect.X || footX > o.Rect.Right() {
			continue
		}
		if footY < o.Rect.Y-platformSnapAbove || footY > o.Rect.Bottom() {
			continue
		}
		if e.gapBridged(o.Rect) {
			continue
		}
		e.encounterGap(p, o)
		break
	}

	// Solid-obstacle check.
	box := p.Bounds()
	for _, o := range e.obstacles {
		if o.Kind == ObstacleGap {
			continue
		}
		if box.Overlaps(o.Rect) {
			e.encounterSolid(p, o)
			break
		}
	}
}

// gapBridged reports whether any built bridge spans the gap.
func (e *Engine) gapBridged(gap Rect) bool {
	for _, b := range e.bridges {
		if b.Spans(gap) {
			return true
		}
	}
	return false
}

// encounterGap resolves a passenger at the lip of an unbridged gap.
func (e *Engine) encounterGap(p *Passenger, o *Obstacle) {
	if p.ability == AbilityBridgeBuilder && p.ActivateAbility(e.cfg.Abilities.Cooldown) {
		b := Bridge{X: o.Rect.X - 8, Y: o.Rect.Y, W: o.Rect.W + 16}
		e.bridges = append(e.bridges, b)
		e.report.BridgesBuilt++
		e.removeObstacle(o)
		e.useAbility(p, o)
		return
	}
	p.dir = -p.dir
	p.falling = true
	e.simLog.AddVerbose(e.tick, plabel(p), "obstacle", "gap_reversal", fmt.Sprintf("gap#%d", o.ID), 0)
}

// encounterSolid resolves one overlap between a passenger and a non-gap
// obstacle, by obstacle kind.
func (e *Engine) encounterSolid(p *Passenger, o *Obstacle) {
	switch o.Kind {
	case ObstacleWall, ObstacleDoor:
		// Platform-classified obstacles are never destroyed; walking on
		// one is not an encounter worth reacting to.
		if o.IsPlatform() {
			return
		}
		if p.ability == AbilityDoorBreaker && p.ActivateAbility(e.cfg.Abilities.Cooldown) {
			e.breakObstacle(p, o)
			return
		}
		p.dir = -p.dir

	case ObstacleSecurity:
		if p.ability == AbilitySecurityBriber && p.ActivateAbility(e.cfg.Abilities.Cooldown) {
			e.removeObstacle(o)
			e.useAbility(p, o)
			return
		}
		p.dir = -p.dir

	case ObstacleSecurityGuard:
		if p.ability == AbilitySecurityBriber && p.ActivateAbility(e.cfg.Abilities.Cooldown) {
			e.removeObstacle(o)
			e.useAbility(p, o)
			return
		}
		// Guards slow passage even when not bribed.
		p.dir = -p.dir
		p.vel.X *= e.cfg.Abilities.GuardSlowFactor
	}
}

// breakObstacle removes a wall/door after a successful breaker activation.
func (e *Engine) breakObstacle(p *Passenger, o *Obstacle) {
	e.removeObstacle(o)
	e.useAbility(p, o)
}

// useAbility finalizes a successful activation: the ability is consumed
// permanently, never merely cooled down.
func (e *Engine) useAbility(p *Passenger, o *Obstacle) {
	kind := p.ability
	p.consumeAbility()
	e.report.AbilitiesUsed[kind]++
	e.simLog.Add(e.tick, plabel(p), "ability", "used",
		fmt.Sprintf("%s vs %s#%d", kind, o.Kind, o.ID), 0)
}

// removeObstacle deletes the obstacle from the live set (and its guard,
// when it has one). The derived platform/wall views catch up on the next
// classify pass.
func (e *Engine) removeObstacle(o *Obstacle) {
	for i, c := range e.obstacles {
		if c == o {
			e.obstacles = append(e.obstacles[:i], e.obstacles[i+1:]...)
			break
		}
	}
	if o.Kind == ObstacleSecurityGuard {
		for i, g := range e.guards {
			if g.obstacle == o {
				e.guards = append(e.guards[:i], e.guards[i+1:]...)
				break
			}
		}
	}
	e.simLog.Add(e.tick, "--", "obstacle", "removed", fmt.Sprintf("%s#%d", o.Kind, o.ID), 0)
}

// --- Player interaction ---

// SelectAbility arms an inventory ability for assignment. Refused when the
// inventory for that ability is empty.
func (e *Engine) SelectAbility(kind AbilityKind) {
	if kind == AbilityNone || e.inventory[kind] <= 0 {
		return
	}
	e.selMode = selectAbility
	e.selAbility = kind
	e.selPassenger = nil
}

// CancelSelection clears any armed ability or selected passenger.
func (e *Engine) CancelSelection() {
	e.selMode = selectNone
	e.selPassenger = nil
}

// HandleClick processes one pointer click in surface-local pixels. With an
// ability armed it assigns to the nearest ability-less active passenger in
// radius; otherwise a click on an ability-bearing passenger selects it, and
// with a passenger selected a click on a matching obstacle within
// activation range triggers the ability manually.
func (e *Engine) HandleClick(x, y float64) {
	if e.state != StatePlaying {
		return
	}
	click := Vec2{X: x, Y: y}

	if e.selMode == selectAbility {
		e.assignSelectedAbility(click)
		return
	}

	// Click on an ability-bearing passenger: select it.
	for _, p := range e.passengers {
		if p.active && p.ability != AbilityNone && p.Bounds().Contains(click) {
			e.selMode = selectPassenger
			e.selPassenger = p
			return
		}
	}

	if e.selMode == selectPassenger && e.selPassenger != nil {
		if e.manualActivate(e.selPassenger, click) {
			e.CancelSelection()
			return
		}
	}

	e.CancelSelection()
}

// assignSelectedAbility gives the armed inventory ability to the nearest
// eligible passenger within the assign radius. Inventory can never go
// negative; assignment re-checks the count.
func (e *Engine) assignSelectedAbility(click Vec2) {
	if e.inventory[e.selAbility] <= 0 {
		e.CancelSelection()
		return
	}
	var best *Passenger
	bestDist := e.cfg.Abilities.AssignRadius
	for _, p := range e.passengers {
		if !p.active || p.ability != AbilityNone {
			continue
		}
		if d := p.Bounds().Center().Dist(click); d <= bestDist {
			best = p
			bestDist = d
		}
	}
	if best == nil {
		return
	}
	best.ability = e.selAbility
	e.inventory[e.selAbility]--
	e.report.AbilitiesAssigned++
	e.simLog.Add(e.tick, plabel(best), "ability", "assigned", e.selAbility.String(), 0)
	e.CancelSelection()
}

// manualActivate fires the selected passenger's ability against a clicked
// obstacle of matching kind within activation range of the passenger.
func (e *Engine) manualActivate(p *Passenger, click Vec2) bool {
	if !p.active || p.ability == AbilityNone {
		return false
	}
	for _, o := range e.obstacles {
		if !o.Rect.Contains(click) {
			continue
		}
		if !p.ability.matchesObstacle(o.Kind) {
			return false
		}
		if o.Kind != ObstacleGap && o.IsPlatform() {
			return false
		}
		if p.Bounds().Center().Dist(o.Rect.Center()) > e.cfg.Abilities.ActivateRadius {
			return false
		}
		if !p.ActivateAbility(e.cfg.Abilities.Cooldown) {
			return false
		}
		if o.Kind == ObstacleGap {
			b := Bridge{X: o.Rect.X - 8, Y: o.Rect.Y, W: o.Rect.W + 16}
			e.bridges = append(e.bridges, b)
			e.report.BridgesBuilt++
		}
		e.removeObstacle(o)
		e.useAbility(p, o)
		return true
	}
	return false
}

// AutoAssign is the headless autopilot: it spends inventory greedily,
// assigning a matching ability to the first ability-less passenger stopped
// in front of an obstacle it could clear. Used by batch runs where no
// pointer exists.
func (e *Engine) AutoAssign() {
	if e.state != StatePlaying {
		return
	}
	for _, p := range e.passengers {
		if !p.active || p.ability != AbilityNone {
			continue
		}
		need := e.neededAbility(p)
		if need == AbilityNone || e.inventory[need] <= 0 {
			continue
		}
		p.ability = need
		e.inventory[need]--
		e.report.AbilitiesAssigned++
		e.simLog.Add(e.tick, plabel(p), "ability", "auto_assigned", need.String(), 0)
	}
}

// neededAbility inspects the span ahead of a passenger for the first
// obstacle kind an inventory ability could clear.
func (e *Engine) neededAbility(p *Passenger) AbilityKind {
	ahead := p.Bounds()
	ahead.W += e.cfg.Abilities.ActivateRadius
	if p.dir < 0 {
		ahead.X -= e.cfg.Abilities.ActivateRadius
	}
	for _, o := range e.obstacles {
		if !ahead.Overlaps(o.Rect) {
			continue
		}
		if o.Kind != ObstacleGap && o.IsPlatform() {
			continue
		}
		if o.Rect.X < 0 || o.Rect.Right() > e.width {
			continue
		}
		switch o.Kind {
		case ObstacleGap:
			if !e.gapBridged(o.Rect) {
				return AbilityBridgeBuilder
			}
		case ObstacleWall, ObstacleDoor:
			return AbilityDoorBreaker
		case ObstacleSecurity, ObstacleSecurityGuard:
			return AbilitySecurityBriber
		}
	}
	return AbilityNone
}

func plabel(p *Passenger) string {
	return fmt.Sprintf("P%d", p.id)
}
