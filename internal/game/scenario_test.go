package game

import (
	"strings"
	"testing"

	"github.com/gaterush/gaterush/internal/config"
)

// dumpLog prints the full SimLog to t.Log so it shows in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.Engine.SimLog().Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func requireCountInvariant(t *testing.T, ts *TestSim) {
	t.Helper()
	ok, reached, active, lost, spawned := ts.CheckCountInvariant()
	if !ok {
		t.Fatalf("count invariant broken: reached=%d active=%d lost=%d spawned=%d",
			reached, active, lost, spawned)
	}
}

// --- Scenario: timeout with a standing crowd ---

func TestScenario_TimeoutStandingCrowd(t *testing.T) {
	t.Log("=== TestScenario_TimeoutStandingCrowd ===")
	t.Log("--- Setup: flat level, zero walk speed, full 100-passenger spawn ---")

	cfg := config.Default()
	cfg.Physics.WalkSpeed = 0
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
	)

	// 100 spawns at 0.5s intervals finish by t=50s; nobody ever moves, so
	// the level can only end by timeout at t=300s.
	ts.RunSeconds(301)

	e := ts.Engine
	if e.State() != StateGameOver {
		t.Fatalf("expected GameOver at timeout, got %s", e.State())
	}
	if e.Spawned() != 100 {
		t.Fatalf("expected the full crowd spawned, got %d", e.Spawned())
	}
	if e.Reached() != 0 {
		t.Fatalf("nobody moves, nobody arrives: reached=%d", e.Reached())
	}
	requireCountInvariant(t, ts)

	outcomes := e.SimLog().Filter("state", "outcome")
	if len(outcomes) != 1 || !strings.Contains(outcomes[0].Value, "time expired") {
		t.Fatalf("expected a single time-expired outcome entry, got %v", outcomes)
	}
}

// --- Scenario: breaker clears a wall without reversing ---

func TestScenario_BreakerClearsWall(t *testing.T) {
	t.Log("=== TestScenario_BreakerClearsWall ===")
	t.Log("--- Setup: one breaker walking right into a true vertical wall ---")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleWall, 420, 620, 16, 60),
		WithPassenger(300, 648, AbilityDoorBreaker),
	)
	e := ts.Engine
	p := e.Passengers()[0]

	ts.RunSeconds(4)
	dumpLog(t, ts)

	for _, o := range e.Obstacles() {
		if o.Kind == ObstacleWall && !o.IsPlatform() {
			t.Fatalf("wall should be removed from the obstacle set: %+v", o)
		}
	}
	if len(e.walls) != 0 {
		t.Fatalf("wall should be gone from the blocking collection, %d left", len(e.walls))
	}
	if p.Ability() != AbilityNone {
		t.Fatal("breaking consumes the ability")
	}
	if p.Dir() != 1 {
		t.Fatalf("the breaker passes through without reversing, dir=%.0f", p.Dir())
	}
	if p.Pos().X < 436 {
		t.Fatalf("the breaker should be past the wall line, x=%.1f", p.Pos().X)
	}
	if len(e.SimLog().Filter("ability", "used")) != 1 {
		t.Fatal("expected exactly one ability-used entry")
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: no ability at an open gap ---

func TestScenario_GapReversesAndDrops(t *testing.T) {
	t.Log("=== TestScenario_GapReversesAndDrops ===")
	t.Log("--- Setup: one plain passenger walking right into an unbridged gap ---")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleGap, 400, 680, 60, 40),
		WithPassenger(300, 648, AbilityNone),
	)
	e := ts.Engine
	p := e.Passengers()[0]

	flipped := false
	for i := 0; i < 600; i++ {
		ts.RunTicks(1)
		if p.Dir() < 0 {
			// The reversal and the falling flag land on the same tick.
			if !p.Falling() {
				t.Fatal("gap encounter must set the falling flag with the reversal")
			}
			flipped = true
			break
		}
	}
	if !flipped {
		t.Fatal("the passenger never reached the gap lip")
	}
	gapAlive := false
	for _, o := range e.Obstacles() {
		if o.Kind == ObstacleGap {
			gapAlive = true
		}
	}
	if !gapAlive {
		t.Fatal("nothing removed the gap")
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: a spanning bridge carries walkers across ---

func TestScenario_BridgeCarriesAcross(t *testing.T) {
	t.Log("=== TestScenario_BridgeCarriesAcross ===")
	t.Log("--- Setup: same gap, pre-built bridge spanning it ---")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleGap, 400, 680, 60, 40),
		WithPassenger(300, 648, AbilityNone),
	)
	e := ts.Engine
	e.bridges = append(e.bridges, Bridge{X: 392, Y: 680, W: 76})
	p := e.Passengers()[0]

	ts.RunSeconds(4)

	if p.Dir() != 1 {
		t.Fatalf("a bridged gap must not reverse anyone, dir=%.0f", p.Dir())
	}
	if p.Falling() {
		t.Fatal("walking a bridge is not falling")
	}
	if p.Pos().X < 470 {
		t.Fatalf("the passenger should be across the gap, x=%.1f", p.Pos().X)
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: builder bridges the gap on contact ---

func TestScenario_BuilderBridgesGap(t *testing.T) {
	t.Log("=== TestScenario_BuilderBridgesGap ===")
	t.Log("--- Setup: one bridge-builder walking right into an unbridged gap ---")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleGap, 400, 680, 60, 40),
		WithPassenger(300, 648, AbilityBridgeBuilder),
	)
	e := ts.Engine
	p := e.Passengers()[0]

	ts.RunSeconds(4)
	dumpLog(t, ts)

	if len(e.Bridges()) != 1 {
		t.Fatalf("expected one built bridge, got %d", len(e.Bridges()))
	}
	for _, o := range e.Obstacles() {
		if o.Kind == ObstacleGap {
			t.Fatal("bridging removes the gap obstacle")
		}
	}
	if p.Ability() != AbilityNone {
		t.Fatal("bridging consumes the ability")
	}
	if p.Dir() != 1 {
		t.Fatalf("the builder keeps walking, dir=%.0f", p.Dir())
	}
	if e.Report().BridgesBuilt != 1 || e.Report().AbilitiesUsed[AbilityBridgeBuilder] != 1 {
		t.Fatalf("report missed the bridge: %+v", e.Report())
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: empty inventory never assigns ---

func TestScenario_EmptyInventoryNeverAssigns(t *testing.T) {
	t.Log("=== TestScenario_EmptyInventoryNeverAssigns ===")
	t.Log("--- Setup: zero bridge inventory, eligible passenger under the cursor ---")

	cfg := config.Default()
	cfg.Physics.WalkSpeed = 0
	cfg.Rules.PassengerCap = 1
	cfg.Abilities.BridgeInventory = 0
	ts := NewTestSim(
		WithTuning(cfg),
		WithFlatLevel(),
		WithPassenger(200, 648, AbilityNone),
	)
	e := ts.Engine
	p := e.Passengers()[0]

	e.SelectAbility(AbilityBridgeBuilder)
	if e.SelectedAbility() != AbilityNone {
		t.Fatal("arming an empty inventory must be refused")
	}
	e.HandleClick(212, 660)
	if p.Ability() != AbilityNone {
		t.Fatal("nothing may assign from an empty inventory")
	}

	// Even with the selection forced, the assignment path re-checks the
	// count before handing anything over.
	e.selMode = selectAbility
	e.selAbility = AbilityBridgeBuilder
	e.HandleClick(212, 660)
	if p.Ability() != AbilityNone {
		t.Fatal("forced selection must still refuse an empty inventory")
	}
	if e.Inventory(AbilityBridgeBuilder) != 0 {
		t.Fatalf("inventory can never go negative, got %d", e.Inventory(AbilityBridgeBuilder))
	}
}

// --- Scenario: briber clears a checkpoint ---

func TestScenario_BriberClearsCheckpoint(t *testing.T) {
	t.Log("=== TestScenario_BriberClearsCheckpoint ===")
	t.Log("--- Setup: one briber walking right into a security checkpoint ---")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleSecurity, 500, 636, 26, 44),
		WithPassenger(400, 648, AbilitySecurityBriber),
	)
	e := ts.Engine
	p := e.Passengers()[0]

	ts.RunSeconds(4)

	for _, o := range e.Obstacles() {
		if o.Kind == ObstacleSecurity {
			t.Fatal("bribed checkpoint should be removed")
		}
	}
	if p.Ability() != AbilityNone || p.Dir() != 1 {
		t.Fatalf("briber should pass through, ability=%s dir=%.0f", p.Ability(), p.Dir())
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: unbribed guard reverses and slows ---

func TestScenario_GuardRepelsUnbribed(t *testing.T) {
	t.Log("=== TestScenario_GuardRepelsUnbribed ===")
	t.Log("--- Setup: one plain passenger meeting a patrolling guard ---")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleSecurityGuard, 500, 640, 24, 40),
		WithPassenger(400, 648, AbilityNone),
	)
	e := ts.Engine
	p := e.Passengers()[0]

	met := false
	for i := 0; i < 600; i++ {
		ts.RunTicks(1)
		if p.Dir() < 0 {
			// The slow factor applies to the encounter tick only.
			if p.vel.X != 50*0.3 {
				t.Fatalf("guard encounter should scale the tick's velocity, vel.X=%.2f", p.vel.X)
			}
			met = true
			break
		}
	}
	if !met {
		t.Fatal("the passenger never met the guard")
	}
	if len(e.Guards()) != 1 {
		t.Fatal("an unbribed guard stays on patrol")
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: briber removes guard and patrol both ---

func TestScenario_BriberRemovesGuard(t *testing.T) {
	t.Log("=== TestScenario_BriberRemovesGuard ===")

	cfg := config.Default()
	cfg.Rules.PassengerCap = 1
	ts := NewTestSim(
		WithTuning(cfg),
		WithSimSeed(42),
		WithFlatLevel(),
		WithObstacle(ObstacleSecurityGuard, 500, 640, 24, 40),
		WithPassenger(400, 648, AbilitySecurityBriber),
	)
	e := ts.Engine

	ts.RunSeconds(5)

	if len(e.Guards()) != 0 {
		t.Fatal("bribing removes the guard entity with its obstacle")
	}
	for _, o := range e.Obstacles() {
		if o.Kind == ObstacleSecurityGuard {
			t.Fatal("guard obstacle should be removed")
		}
	}
	requireCountInvariant(t, ts)
}

// --- Scenario: full generated run holds the count invariant ---

func TestScenario_DefaultRunInvariants(t *testing.T) {
	t.Log("=== TestScenario_DefaultRunInvariants ===")
	t.Log("--- Setup: generated level 1, default tuning, autopilot assignment ---")

	ts := NewTestSim(WithSimSeed(42))
	for i := 0; i < 120; i++ {
		ts.Engine.AutoAssign()
		ts.RunSeconds(0.5)
		requireCountInvariant(t, ts)
		if ts.Engine.State() != StatePlaying {
			break
		}
	}

	e := ts.Engine
	switch e.State() {
	case StatePlaying, StateLevelComplete, StateGameOver, StateVictory:
	default:
		t.Fatalf("unexpected state after a long run: %s", e.State())
	}
	if e.Spawned() > e.cfg.Rules.PassengerCap {
		t.Fatalf("spawned %d exceeds the cap", e.Spawned())
	}
}
