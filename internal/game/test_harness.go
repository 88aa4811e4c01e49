package game

import (
	"time"

	"github.com/gaterush/gaterush/internal/config"
)

// simTickDt is the fixed step the harness advances per tick (60 TPS).
const simTickDt = 1.0 / 60.0

// ManualClock is a hand-cranked wall clock for deterministic timer and
// pause tests.
type ManualClock struct {
	t time.Time
}

// NewManualClock starts at the unix epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{t: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time           { return c.t }
func (c *ManualClock) Advance(d time.Duration)  { c.t = c.t.Add(d) }
func (c *ManualClock) AdvanceSeconds(s float64) { c.t = c.t.Add(time.Duration(s * float64(time.Second))) }

// TestSim is a headless simulation harness used exclusively by tests and
// the batch runner. It wraps a real Engine with a manual clock and
// deterministic seeding, and can install hand-built layouts instead of
// generated ones.
type TestSim struct {
	Engine *Engine
	Clock  *ManualClock

	cfg     config.Config
	width   float64
	height  float64
	seed    int64
	verbose bool

	customLevel bool
	obstacles   []*Obstacle
	spawn       *Vec2
	goal        *Rect
	nextObsID   int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra     simOptionKind = iota // size, tuning, seed, verbose — applied first
	simOptLevel                          // custom layout pieces — applied after the engine starts
	simOptPassenger                      // add passengers — applied after the level is installed
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMapSize sets the surface dimensions.
func WithMapSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.width = w
		ts.height = h
	}}
}

// WithTuning replaces the default tuning configuration.
func WithTuning(cfg config.Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg = cfg }}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// WithFlatLevel replaces the generated layout with a bare one: a full-width
// ground platform, the spawn at the left end and the goal at the right.
func WithFlatLevel() SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) { ts.customLevel = true }}
}

// WithObstacle adds one obstacle to a custom layout (implies WithFlatLevel).
func WithObstacle(kind ObstacleKind, x, y, w, h float64) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.customLevel = true
		ts.obstacles = append(ts.obstacles, &Obstacle{
			ID:   ts.nextObsID,
			Kind: kind,
			Rect: Rect{X: x, Y: y, W: w, H: h},
		})
		ts.nextObsID++
	}}
}

// WithSpawnAt moves the custom layout's spawn point.
func WithSpawnAt(x, y float64) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.customLevel = true
		ts.spawn = &Vec2{X: x, Y: y}
	}}
}

// WithGoalAt moves the custom layout's goal rectangle.
func WithGoalAt(x, y, w, h float64) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.customLevel = true
		ts.goal = &Rect{X: x, Y: y, W: w, H: h}
	}}
}

// WithPassenger injects a passenger directly, bypassing the spawn cadence.
// It counts toward the spawned total.
func WithPassenger(x, y float64, ability AbilityKind) SimOption {
	return SimOption{simOptPassenger, func(ts *TestSim) {
		ts.AddPassenger(x, y, ability)
	}}
}

// NewTestSim constructs a harness in three ordered passes: infrastructure,
// engine start (level 1 installed), then custom layout and passengers.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:    config.Default(),
		width:  1280,
		height: 720,
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	ts.Clock = NewManualClock()
	eopts := []EngineOption{WithSeed(ts.seed), WithClock(ts.Clock.Now)}
	if ts.verbose {
		eopts = append(eopts, WithVerboseLog())
	}
	ts.Engine = NewEngine(ts.width, ts.height, ts.cfg, eopts...)
	ts.Engine.StartGame()

	for _, o := range opts {
		if o.kind == simOptLevel {
			o.fn(ts)
		}
	}
	if ts.customLevel {
		ts.Engine.installLevel(ts.buildCustomLevel())
	}
	for _, o := range opts {
		if o.kind == simOptPassenger {
			o.fn(ts)
		}
	}
	return ts
}

// buildCustomLevel assembles the flat layout plus any added obstacles.
func (ts *TestSim) buildCustomLevel() *Level {
	groundH := ts.cfg.Generator.GroundHeight
	groundY := ts.height - groundH
	lv := &Level{
		Number:  1,
		Width:   ts.width,
		Height:  ts.height,
		GroundY: groundY,
		Spawn:   Vec2{X: 40, Y: groundY - passengerHeight},
		Goal:    Rect{X: ts.width - 90, Y: groundY - 64, W: 50, H: 64},
	}
	id := len(ts.obstacles)
	lv.Obstacles = append(lv.Obstacles, ts.obstacles...)
	lv.Obstacles = append(lv.Obstacles, &Obstacle{
		ID:   id,
		Kind: ObstacleWall,
		Rect: Rect{X: 0, Y: groundY, W: ts.width, H: groundH},
	})
	if ts.spawn != nil {
		lv.Spawn = *ts.spawn
	}
	if ts.goal != nil {
		lv.Goal = *ts.goal
	}
	return lv
}

// AddPassenger injects one passenger at (x, y) holding the given ability.
func (ts *TestSim) AddPassenger(x, y float64, ability AbilityKind) *Passenger {
	e := ts.Engine
	p := NewPassenger(e.spawned, Vec2{X: x, Y: y})
	p.ability = ability
	e.passengers = append(e.passengers, p)
	e.spawned++
	e.report.Spawned++
	return p
}

// RunTicks advances the simulation by n fixed ticks, moving the manual
// clock in lockstep with the physics step.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Clock.AdvanceSeconds(simTickDt)
		ts.Engine.Update(simTickDt)
	}
}

// RunSeconds advances by whole ticks until s simulated seconds have passed.
func (ts *TestSim) RunSeconds(s float64) {
	ts.RunTicks(int(s / simTickDt))
}

// CheckCountInvariant verifies reached + active + lost == spawned.
func (ts *TestSim) CheckCountInvariant() (ok bool, reached, active, lost, spawned int) {
	e := ts.Engine
	reached = e.reached
	active = e.ActiveCount()
	lost = e.lost
	spawned = e.spawned
	ok = reached+active+lost == spawned
	return ok, reached, active, lost, spawned
}
