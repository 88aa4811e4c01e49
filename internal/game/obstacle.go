package game

// ObstacleKind tags a level element for interaction resolution. Movement
// behaviour (platform vs wall) is derived from shape, not from the kind.
type ObstacleKind int

const (
	ObstacleWall ObstacleKind = iota
	ObstacleDoor
	ObstacleGap
	ObstacleSecurity
	ObstacleSecurityGuard
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleWall:
		return "wall"
	case ObstacleDoor:
		return "door"
	case ObstacleGap:
		return "gap"
	case ObstacleSecurity:
		return "security"
	case ObstacleSecurityGuard:
		return "guard"
	default:
		return "unknown"
	}
}

// Obstacle is one static or removable level element. IDs are unique within
// a level.
type Obstacle struct {
	ID   int
	Kind ObstacleKind
	Rect Rect
}

// IsPlatform reports whether the obstacle moves like a walkable surface
// (wider than tall). Platforms are never destroyed by abilities; everything
// else acts as a vertical barrier. Gaps are neither — they get their own
// falls-through rule.
func (o *Obstacle) IsPlatform() bool {
	return o.Rect.W > o.Rect.H
}

// Bridge is a player-built platform spanning a gap. Once built it is
// permanent for the rest of the level.
type Bridge struct {
	X, Y, W float64
}

// bridgeThickness is the collision height of a built bridge.
const bridgeThickness = 8.0

func (b Bridge) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: bridgeThickness}
}

// Spans reports whether the bridge's horizontal extent overlaps the gap's.
func (b Bridge) Spans(gap Rect) bool {
	return b.X < gap.Right() && b.X+b.W > gap.X
}

// classifySurfaces derives the movement-relevant views from the live
// obstacle set: walkable platform rects (wide obstacles plus every built
// bridge) and blocking wall rects (tall obstacles of kind wall). Doors,
// checkpoints and guards block nobody physically: a walker steps into them
// and the engine's encounter resolution decides what happens. Rebuilt every
// tick so obstacle removal and bridge construction stay trivially
// consistent.
func classifySurfaces(obstacles []*Obstacle, bridges []Bridge) (platforms, walls []Rect) {
	for _, o := range obstacles {
		if o.Kind == ObstacleGap {
			continue
		}
		if o.IsPlatform() {
			platforms = append(platforms, o.Rect)
		} else if o.Kind == ObstacleWall {
			walls = append(walls, o.Rect)
		}
	}
	for _, b := range bridges {
		platforms = append(platforms, b.Rect())
	}
	return platforms, walls
}
