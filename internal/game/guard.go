package game

// Guard is the patrolling embodiment of a security-guard obstacle. It walks
// the same movement algorithm as a passenger but at patrol speed, with no
// steering deadband: it reverses whenever it comes within the waypoint
// slack of either patrol endpoint. The linked obstacle's rect tracks the
// guard each tick so collision and bribery resolve against the live
// position; bribing the obstacle away removes the guard with it.
type Guard struct {
	obstacle *Obstacle
	pos      Vec2
	vel      Vec2
	dir      float64
	minX     float64 // left patrol waypoint
	maxX     float64 // right patrol waypoint
}

// NewGuard creates a guard patrolling [minX, maxX] for the given obstacle.
func NewGuard(o *Obstacle, minX, maxX float64) *Guard {
	return &Guard{
		obstacle: o,
		pos:      Vec2{X: o.Rect.X, Y: o.Rect.Y},
		dir:      1,
		minX:     minX,
		maxX:     maxX,
	}
}

func (g *Guard) Obstacle() *Obstacle { return g.obstacle }
func (g *Guard) Pos() Vec2           { return g.pos }
func (g *Guard) Dir() float64        { return g.dir }

// Update advances the guard one tick: gravity, waypoint reversal,
// horizontal move against walls, vertical settle onto platforms. The
// obstacle rect is synced afterwards.
func (g *Guard) Update(in stepInput) {
	w := g.obstacle.Rect.W
	h := g.obstacle.Rect.H

	g.vel.Y += in.gravity * in.dt

	// Reverse at patrol waypoints; no deadband.
	if g.dir > 0 && g.pos.X >= g.maxX-in.deadband {
		g.dir = -1
	} else if g.dir < 0 && g.pos.X <= g.minX+in.deadband {
		g.dir = 1
	}
	g.vel.X = g.dir * in.speed

	nx := g.pos.X + g.vel.X*in.dt
	box := Rect{X: nx, Y: g.pos.Y, W: w, H: h}
	blocked := false
	for _, wall := range in.walls {
		if box.Overlaps(wall) {
			g.dir = -g.dir
			blocked = true
			break
		}
	}
	if !blocked {
		g.pos.X = nx
	}

	// Vertical: same landing snap as passengers.
	ny := g.pos.Y + g.vel.Y*in.dt
	if g.vel.Y >= 0 {
		foot := ny + h
		vbox := Rect{X: g.pos.X, Y: ny, W: w, H: h}
		landed := false
		for _, plat := range in.platforms {
			if !vbox.SpansX(plat) {
				continue
			}
			if foot >= plat.Y-platformSnapAbove && foot <= plat.Y+platformSnapBelow {
				g.pos.Y = plat.Y - h
				g.vel.Y = 0
				landed = true
				break
			}
		}
		if !landed {
			g.pos.Y = ny
		}
	} else {
		g.pos.Y = ny
	}

	g.obstacle.Rect.X = g.pos.X
	g.obstacle.Rect.Y = g.pos.Y
}
