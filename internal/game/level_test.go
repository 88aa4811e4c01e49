package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gaterush/gaterush/internal/config"
)

func genLevel(n int, seed int64) *Level {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- test determinism
	return GenerateLevel(n, 1280, 720, config.Default().Generator, rng)
}

func TestGenerateLevel_DeterministicPerSeed(t *testing.T) {
	a := genLevel(3, 42)
	b := genLevel(3, 42)

	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(a.Obstacles), len(b.Obstacles))
	}
	for i := range a.Obstacles {
		if *a.Obstacles[i] != *b.Obstacles[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, a.Obstacles[i], b.Obstacles[i])
		}
	}
	if a.Spawn != b.Spawn || a.Goal != b.Goal {
		t.Fatal("spawn/goal differ between identical seeds")
	}
}

func TestGenerateLevel_FixedAnchors(t *testing.T) {
	lv := genLevel(1, 7)
	gen := config.Default().Generator

	// Spawn platform at the fixed top-left position, spawn point on top.
	first := lv.Obstacles[0]
	if first.Rect.X != 40 || first.Rect.Y != 120 || first.Rect.W != gen.SpawnPlatformWidth {
		t.Fatalf("unexpected spawn platform: %+v", first.Rect)
	}
	if lv.Spawn.Y != 120-passengerHeight {
		t.Fatalf("spawn point should stand on the spawn platform, y=%.1f", lv.Spawn.Y)
	}

	// Full-width ground at the bottom.
	groundY := 720 - gen.GroundHeight
	if lv.GroundY != groundY {
		t.Fatalf("ground line at %.0f, want %.0f", lv.GroundY, groundY)
	}
	foundGround := false
	for _, o := range lv.Obstacles {
		if o.Kind == ObstacleWall && o.Rect.X == 0 && o.Rect.W == 1280 && o.Rect.Y == groundY {
			foundGround = true
		}
	}
	if !foundGround {
		t.Fatal("no full-width ground platform generated")
	}

	// Goal near the right edge, feet on the ground.
	if lv.Goal.X != 1280-gen.GoalWidth-40 || lv.Goal.Bottom() != groundY {
		t.Fatalf("unexpected goal placement: %+v", lv.Goal)
	}
}

func TestGenerateLevel_CountsScaleWithLevel(t *testing.T) {
	count := func(lv *Level, k ObstacleKind) int {
		n := 0
		for _, o := range lv.Obstacles {
			if o.Kind == k {
				n++
			}
		}
		return n
	}

	lv1 := genLevel(1, 11)
	lv4 := genLevel(4, 11)

	// Gap/checkpoint/guard counts are exact functions of the level number.
	if got := count(lv1, ObstacleGap); got != 2 {
		t.Fatalf("level 1 gaps: got %d want 2", got)
	}
	if got := count(lv4, ObstacleGap); got != 5 {
		t.Fatalf("level 4 gaps: got %d want 5", got)
	}
	// Checkpoints alternate door, security.
	if d, s := count(lv1, ObstacleDoor), count(lv1, ObstacleSecurity); d != 1 || s != 1 {
		t.Fatalf("level 1 checkpoints: %d doors %d security, want 1/1", d, s)
	}
	if d, s := count(lv4, ObstacleDoor), count(lv4, ObstacleSecurity); d != 3 || s != 2 {
		t.Fatalf("level 4 checkpoints: %d doors %d security, want 3/2", d, s)
	}
	if got := count(lv1, ObstacleSecurityGuard); got != 1 {
		t.Fatalf("level 1 guards: got %d want 1", got)
	}
	if len(lv4.Obstacles) <= len(lv1.Obstacles) {
		t.Fatal("higher levels should carry more obstacles")
	}
}

func TestGenerateLevel_UniqueIDs(t *testing.T) {
	lv := genLevel(5, 99)
	seen := map[int]bool{}
	for _, o := range lv.Obstacles {
		if seen[o.ID] {
			t.Fatalf("duplicate obstacle id %d", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestGenerateLevel_PathPlatformsWithinBand(t *testing.T) {
	lv := genLevel(6, 3)
	for _, o := range lv.Obstacles {
		if !o.IsPlatform() || o.Rect.W >= 1280 {
			continue
		}
		if o.Rect.Y < 120 || o.Rect.Y > lv.GroundY-80 {
			// Scatter platforms live in a slightly tighter band; either way
			// nothing walkable may generate below the ground or above the
			// spawn row.
			t.Fatalf("platform outside the vertical band: %+v", o.Rect)
		}
	}
}

func TestGenerateLevel_BoundaryWalls(t *testing.T) {
	lv := genLevel(1, 5)
	left, right := false, false
	for _, o := range lv.Obstacles {
		if o.Kind != ObstacleWall || o.IsPlatform() {
			continue
		}
		if o.Rect.Right() == 0 && o.Rect.H == 720 {
			left = true
		}
		if o.Rect.X == 1280 && o.Rect.H == 720 {
			right = true
		}
	}
	if !left || !right {
		t.Fatalf("missing boundary walls (left=%v right=%v)", left, right)
	}
}

func TestLevel_CloneObstaclesIsDeep(t *testing.T) {
	lv := genLevel(1, 1)
	clone := lv.CloneObstacles()
	clone[0].Rect.X = -9999
	if lv.Obstacles[0].Rect.X == -9999 {
		t.Fatal("clone must not alias the level's obstacle set")
	}
}

func TestLevel_Summary(t *testing.T) {
	lv := genLevel(2, 8)
	s := lv.Summary()
	if !strings.Contains(s, "level 2") || !strings.Contains(s, "spawn (") {
		t.Fatalf("summary missing expected fields:\n%s", s)
	}
}
