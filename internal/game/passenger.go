package game

import "math"

const (
	passengerWidth  = 24.0
	passengerHeight = 32.0

	// A foot line within [platform top - snapAbove, platform top + snapBelow]
	// while descending counts as a landing.
	platformSnapAbove = 2.0
	platformSnapBelow = 5.0
)

// AbilityKind is the one-shot special capability a passenger may hold.
type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilityBridgeBuilder
	AbilityDoorBreaker
	AbilitySecurityBriber
)

func (a AbilityKind) String() string {
	switch a {
	case AbilityNone:
		return "none"
	case AbilityBridgeBuilder:
		return "bridge_builder"
	case AbilityDoorBreaker:
		return "door_breaker"
	case AbilitySecurityBriber:
		return "security_briber"
	default:
		return "unknown"
	}
}

// matchesObstacle reports whether the ability applies to the obstacle kind.
func (a AbilityKind) matchesObstacle(k ObstacleKind) bool {
	switch a {
	case AbilityBridgeBuilder:
		return k == ObstacleGap
	case AbilityDoorBreaker:
		return k == ObstacleWall || k == ObstacleDoor
	case AbilitySecurityBriber:
		return k == ObstacleSecurity || k == ObstacleSecurityGuard
	default:
		return false
	}
}

// Passenger is an autonomous agent trying to reach the check-in gate.
type Passenger struct {
	id  int
	pos Vec2 // top-left of the bounding box
	vel Vec2
	dir float64 // -1 left, +1 right

	ability         AbilityKind
	abilityInUse    bool
	abilityCooldown float64 // seconds until the next activation may fire

	active      bool
	reachedGate bool
	falling     bool
}

// NewPassenger creates an active passenger at the spawn point, walking right.
func NewPassenger(id int, spawn Vec2) *Passenger {
	return &Passenger{
		id:     id,
		pos:    spawn,
		dir:    1,
		active: true,
	}
}

func (p *Passenger) ID() int              { return p.id }
func (p *Passenger) Pos() Vec2            { return p.pos }
func (p *Passenger) Vel() Vec2            { return p.vel }
func (p *Passenger) Dir() float64         { return p.dir }
func (p *Passenger) Ability() AbilityKind { return p.ability }
func (p *Passenger) Active() bool         { return p.active }
func (p *Passenger) ReachedGate() bool    { return p.reachedGate }
func (p *Passenger) Falling() bool        { return p.falling }
func (p *Passenger) AbilityInUse() bool   { return p.abilityInUse }
func (p *Passenger) Cooldown() float64    { return p.abilityCooldown }

// Bounds returns the current bounding box.
func (p *Passenger) Bounds() Rect {
	return Rect{X: p.pos.X, Y: p.pos.Y, W: passengerWidth, H: passengerHeight}
}

// LeadingFootX is the x-coordinate of the foot about to step forward:
// the right edge when walking right, the left edge when walking left.
func (p *Passenger) LeadingFootX() float64 {
	if p.dir > 0 {
		return p.pos.X + passengerWidth
	}
	return p.pos.X
}

// stepInput bundles the per-tick environment a walker moves against.
type stepInput struct {
	dt        float64
	gravity   float64
	speed     float64
	deadband  float64
	platforms []Rect
	walls     []Rect
	target    *Vec2 // optional navigation target; nil keeps current direction
	passWalls bool  // breaker pre-check in flight: skip wall blocking
}

// Update advances the passenger one tick. Order matters and must not be
// rearranged: gravity, steering, horizontal move, vertical move with
// platform snap before general push-out. First matching surface wins on
// every pass, in list order.
func (p *Passenger) Update(in stepInput) {
	if !p.active || p.reachedGate {
		return
	}

	// Gravity.
	p.vel.Y += in.gravity * in.dt

	// Steering: face the target once outside the deadband.
	if in.target != nil {
		cx := p.pos.X + passengerWidth/2
		if dx := in.target.X - cx; math.Abs(dx) > in.deadband {
			if dx < 0 {
				p.dir = -1
			} else {
				p.dir = 1
			}
		}
	}
	p.vel.X = p.dir * in.speed

	// Horizontal move: first wall hit reverses and cancels the step.
	nx := p.pos.X + p.vel.X*in.dt
	blocked := false
	if !in.passWalls {
		box := Rect{X: nx, Y: p.pos.Y, W: passengerWidth, H: passengerHeight}
		for _, w := range in.walls {
			if box.Overlaps(w) {
				p.dir = -p.dir
				blocked = true
				break
			}
		}
	}
	if !blocked {
		p.pos.X = nx
	}

	// Vertical move.
	p.stepVertical(in)

	// Cooldown winds down, never below zero.
	p.abilityCooldown -= in.dt
	if p.abilityCooldown < 0 {
		p.abilityCooldown = 0
	}
}

// stepVertical applies the vertical displacement: platform snap first, then
// general Y push-out against anything still overlapped.
func (p *Passenger) stepVertical(in stepInput) {
	ny := p.pos.Y + p.vel.Y*in.dt
	box := Rect{X: p.pos.X, Y: ny, W: passengerWidth, H: passengerHeight}

	// Landing snap: descending (or resting) with the foot line inside a
	// platform's snap band.
	if p.vel.Y >= 0 {
		foot := ny + passengerHeight
		for _, plat := range in.platforms {
			if !box.SpansX(plat) {
				continue
			}
			if foot >= plat.Y-platformSnapAbove && foot <= plat.Y+platformSnapBelow {
				p.pos.Y = plat.Y - passengerHeight
				p.vel.Y = 0
				p.falling = false
				return
			}
		}
	}

	p.pos.Y = ny

	// Push out of anything solid the move left us inside. Contact from
	// above while moving upward is a ceiling; everything else is a floor.
	solids := make([]Rect, 0, len(in.platforms)+len(in.walls))
	solids = append(solids, in.platforms...)
	solids = append(solids, in.walls...)
	resting := false
	for _, s := range solids {
		if !p.Bounds().Overlaps(s) {
			continue
		}
		if p.vel.Y < 0 {
			p.pos.Y = s.Bottom()
			p.vel.Y = 0
		} else {
			p.pos.Y = s.Y - passengerHeight
			p.vel.Y = 0
			p.falling = false
			resting = true
		}
		break
	}

	if !resting && p.vel.Y > 0 {
		p.falling = true
	}
}

// ActivateAbility arms the held ability. It succeeds only when the
// passenger holds one, the cooldown is exhausted, and no activation is
// already in flight; on success it reports true, marks the ability in use
// and starts the cooldown. Consuming the ability afterwards (setting it to
// none) is the caller's job — one use only is enforced there.
func (p *Passenger) ActivateAbility(cooldown float64) bool {
	if p.ability == AbilityNone || p.abilityCooldown > 0 || p.abilityInUse {
		return false
	}
	p.abilityInUse = true
	p.abilityCooldown = cooldown
	return true
}

// consumeAbility strips the ability permanently after a successful use.
func (p *Passenger) consumeAbility() {
	p.ability = AbilityNone
	p.abilityInUse = false
}

// CheckReachedGate is a one-shot predicate: the first overlap with the
// goal rectangle returns true, deactivates the passenger, and freezes it;
// every later call returns false even though the passenger is still
// spatially inside the goal.
func (p *Passenger) CheckReachedGate(gate Rect) bool {
	if p.reachedGate || !p.active {
		return false
	}
	if !p.Bounds().Overlaps(gate) {
		return false
	}
	p.reachedGate = true
	p.active = false
	return true
}
