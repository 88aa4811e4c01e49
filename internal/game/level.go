package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/gaterush/gaterush/internal/config"
)

// Level is one generated layout, immutable once built. The engine copies
// the obstacle set into its live per-attempt state at level start.
type Level struct {
	Number    int
	Obstacles []*Obstacle
	Spawn     Vec2 // top-left of a freshly spawned passenger
	Goal      Rect
	GroundY   float64
	Width     float64
	Height    float64
}

// GenerateLevel produces a randomized layout for the 1-based level number,
// scaled to the given surface size. The arrangement is best-effort: no
// reachability proof is attempted, so a layout may occasionally strand
// passengers. Pass a seeded rng for reproducible layouts.
func GenerateLevel(n int, width, height float64, gen config.Generator, rng *rand.Rand) *Level {
	lv := &Level{
		Number: n,
		Width:  width,
		Height: height,
	}
	nextID := 0
	add := func(kind ObstacleKind, r Rect) *Obstacle {
		o := &Obstacle{ID: nextID, Kind: kind, Rect: r}
		nextID++
		lv.Obstacles = append(lv.Obstacles, o)
		return o
	}

	groundY := height - gen.GroundHeight
	lv.GroundY = groundY
	thick := gen.PlatformThickness

	// Fixed spawn platform at the top-left, wide enough for initial spawns.
	spawnPlat := Rect{X: 40, Y: 120, W: gen.SpawnPlatformWidth, H: thick}
	add(ObstacleWall, spawnPlat)
	lv.Spawn = Vec2{X: spawnPlat.X + 8, Y: spawnPlat.Y - passengerHeight}

	// Primary path: connected platforms walked left to right until the
	// path approaches the right edge.
	targetX := width - 220
	x := spawnPlat.Right()
	y := spawnPlat.Y
	var pathPlatforms []Rect
	for x < targetX {
		hop := gen.HopMinGap + rng.Float64()*(gen.HopMaxGap-gen.HopMinGap)
		w := gen.PlatformMinWidth + rng.Float64()*(gen.PlatformMaxWidth-gen.PlatformMinWidth)
		y += (rng.Float64()*2 - 1) * gen.StepMaxRise
		if y < 120 {
			y = 120
		}
		if y > groundY-80 {
			y = groundY - 80
		}
		p := Rect{X: x + hop, Y: y, W: w, H: thick}
		add(ObstacleWall, p)
		pathPlatforms = append(pathPlatforms, p)
		x = p.Right()
	}

	// Scattered extra platforms for route density.
	scatter := gen.ScatterBase + gen.ScatterPerLevel*n
	for i := 0; i < scatter; i++ {
		w := gen.PlatformMinWidth + rng.Float64()*(gen.PlatformMaxWidth-gen.PlatformMinWidth)
		px := 120 + rng.Float64()*(width-240-w)
		py := 160 + rng.Float64()*(groundY-260)
		add(ObstacleWall, Rect{X: px, Y: py, W: w, H: thick})
	}

	// Vertical wall barriers.
	wallCount := gen.WallBase + gen.WallPerLevel*n
	for i := 0; i < wallCount; i++ {
		wh := 60 + rng.Float64()*80
		wx := 220 + rng.Float64()*(width-440)
		wy := groundY - wh
		add(ObstacleWall, Rect{X: wx, Y: wy, W: 16, H: wh})
	}

	// Floor gaps, evenly spread with jitter across the walkable middle.
	gapCount := gen.GapBase + gen.GapPerLevel*n
	if gapCount > 0 {
		span := (width - 400) / float64(gapCount)
		for i := 0; i < gapCount; i++ {
			gw := gen.GapMinWidth + rng.Float64()*(gen.GapMaxWidth-gen.GapMinWidth)
			gx := 220 + float64(i)*span + rng.Float64()*span*0.5
			add(ObstacleGap, Rect{X: gx, Y: groundY, W: gw, H: gen.GroundHeight})
		}
	}

	// Alternating door / security checkpoints on the ground.
	cpCount := gen.CheckpointBase + gen.CheckpointPer*n
	for i := 0; i < cpCount; i++ {
		cx := 300 + rng.Float64()*(width-600)
		if i%2 == 0 {
			add(ObstacleDoor, Rect{X: cx, Y: groundY - 48, W: 18, H: 48})
		} else {
			add(ObstacleSecurity, Rect{X: cx, Y: groundY - 44, W: 26, H: 44})
		}
	}

	// Security guards, preferring a perch just above one of the first few
	// path platforms.
	guardCount := gen.GuardBase + gen.GuardPerLevel*n
	for i := 0; i < guardCount; i++ {
		var perch Rect
		if len(pathPlatforms) > 0 {
			perch = pathPlatforms[rng.Intn(min(len(pathPlatforms), 3))]
		} else {
			perch = Rect{X: 300 + rng.Float64()*(width-600), Y: groundY, W: 120, H: thick}
		}
		gx := perch.X + rng.Float64()*maxf(perch.W-24, 1)
		add(ObstacleSecurityGuard, Rect{X: gx, Y: perch.Y - 40, W: 24, H: 40})
	}

	// Full-width ground platform, the fallback surface under everything.
	add(ObstacleWall, Rect{X: 0, Y: groundY, W: width, H: gen.GroundHeight})

	// Boundary walls just outside both edges keep reversed passengers on
	// the map instead of wandering off into the void.
	add(ObstacleWall, Rect{X: -16, Y: 0, W: 16, H: height})
	add(ObstacleWall, Rect{X: width, Y: 0, W: 16, H: height})

	// Goal rectangle near the right edge, at ground height.
	lv.Goal = Rect{
		X: width - gen.GoalWidth - 40,
		Y: groundY - gen.GoalHeight,
		W: gen.GoalWidth,
		H: gen.GoalHeight,
	}

	return lv
}

// CloneObstacles returns a deep copy of the obstacle set so a new attempt
// can mutate it freely.
func (lv *Level) CloneObstacles() []*Obstacle {
	out := make([]*Obstacle, 0, len(lv.Obstacles))
	for _, o := range lv.Obstacles {
		c := *o
		out = append(out, &c)
	}
	return out
}

// Summary formats a one-screen description of the layout, used by the
// layout inspection command and test logs.
func (lv *Level) Summary() string {
	counts := map[ObstacleKind]int{}
	platforms := 0
	for _, o := range lv.Obstacles {
		counts[o.Kind]++
		if o.Kind != ObstacleGap && o.IsPlatform() {
			platforms++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "level %d  (%dx%d)\n", lv.Number, int(lv.Width), int(lv.Height))
	fmt.Fprintf(&b, "  obstacles: %d  (platform-classified: %d)\n", len(lv.Obstacles), platforms)
	for k := ObstacleWall; k <= ObstacleSecurityGuard; k++ {
		fmt.Fprintf(&b, "  %-9s %d\n", k.String(), counts[k])
	}
	fmt.Fprintf(&b, "  spawn (%.0f,%.0f)  goal (%.0f,%.0f %.0fx%.0f)\n",
		lv.Spawn.X, lv.Spawn.Y, lv.Goal.X, lv.Goal.Y, lv.Goal.W, lv.Goal.H)
	return b.String()
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
