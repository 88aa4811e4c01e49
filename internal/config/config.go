// Package config provides YAML-based tuning configuration for the
// gate-rush simulation: physics constants, level rules, ability odds and
// inventory, and procedural generator ranges.
package config

// Config is the full tuning configuration for one game session.
type Config struct {
	Physics   Physics   `yaml:"physics"`
	Rules     Rules     `yaml:"rules"`
	Abilities Abilities `yaml:"abilities"`
	Generator Generator `yaml:"generator"`
}

// Physics defines movement constants shared by every walker.
type Physics struct {
	Gravity       float64 `yaml:"gravity"`        // px/s^2, downward
	WalkSpeed     float64 `yaml:"walk_speed"`     // passenger horizontal speed, px/s
	PatrolSpeed   float64 `yaml:"patrol_speed"`   // guard horizontal speed, px/s
	SteerDeadband float64 `yaml:"steer_deadband"` // px before a passenger turns toward its target
	WaypointSlack float64 `yaml:"waypoint_slack"` // px within which a guard reverses at a waypoint
	MaxDeltaTime  float64 `yaml:"max_delta_time"` // per-frame dt clamp, seconds
}

// Rules defines the win/lose envelope of one level attempt.
type Rules struct {
	TimeLimitSeconds float64 `yaml:"time_limit_seconds"` // level timer
	PassengerCap     int     `yaml:"passenger_cap"`      // total passengers spawned per level
	RescueQuota      int     `yaml:"rescue_quota"`       // passengers that must reach the gate
	FinalLevel       int     `yaml:"final_level"`        // clearing this level wins the game
	SpawnInterval    float64 `yaml:"spawn_interval"`     // seconds between spawns
}

// Abilities defines one-shot ability behaviour and the player's per-level
// inventory. Spawn chances are cumulative thresholds over a single draw,
// not independent rolls.
type Abilities struct {
	Cooldown        float64 `yaml:"cooldown"`          // seconds after activation
	BridgeChance    float64 `yaml:"bridge_chance"`     // P(bridge builder)
	DoorChance      float64 `yaml:"door_chance"`       // additional P(door breaker)
	BriberChance    float64 `yaml:"briber_chance"`     // additional P(security briber)
	BridgeInventory int     `yaml:"bridge_inventory"`  // manual uses per level
	DoorInventory   int     `yaml:"door_inventory"`    //
	BriberInventory int     `yaml:"briber_inventory"`  //
	AssignRadius    float64 `yaml:"assign_radius"`     // px, click-to-passenger assignment
	ActivateRadius  float64 `yaml:"activate_radius"`   // px, manual activation reach
	GuardSlowFactor float64 `yaml:"guard_slow_factor"` // velocity scale past an unbribed guard
}

// Generator defines the randomized layout ranges. Counts that carry a
// PerLevel component scale linearly with the 1-based level number.
type Generator struct {
	SpawnPlatformWidth float64 `yaml:"spawn_platform_width"`
	PlatformMinWidth   float64 `yaml:"platform_min_width"`
	PlatformMaxWidth   float64 `yaml:"platform_max_width"`
	PlatformThickness  float64 `yaml:"platform_thickness"`
	HopMinGap          float64 `yaml:"hop_min_gap"` // horizontal gap between path platforms
	HopMaxGap          float64 `yaml:"hop_max_gap"`
	StepMaxRise        float64 `yaml:"step_max_rise"` // vertical nudge bound per path step

	ScatterBase     int `yaml:"scatter_base"`
	ScatterPerLevel int `yaml:"scatter_per_level"`
	WallBase        int `yaml:"wall_base"`
	WallPerLevel    int `yaml:"wall_per_level"`
	GapBase         int `yaml:"gap_base"`
	GapPerLevel     int `yaml:"gap_per_level"`
	CheckpointBase  int `yaml:"checkpoint_base"`
	CheckpointPer   int `yaml:"checkpoint_per_level"`
	GuardBase       int `yaml:"guard_base"`
	GuardPerLevel   int `yaml:"guard_per_level"`

	GapMinWidth  float64 `yaml:"gap_min_width"`
	GapMaxWidth  float64 `yaml:"gap_max_width"`
	GroundHeight float64 `yaml:"ground_height"`
	GoalWidth    float64 `yaml:"goal_width"`
	GoalHeight   float64 `yaml:"goal_height"`
}

// Default returns the built-in tuning. A zero-config run uses exactly these
// values; the embedded YAML mirrors them.
func Default() Config {
	return Config{
		Physics: Physics{
			Gravity:       600,
			WalkSpeed:     50,
			PatrolSpeed:   30,
			SteerDeadband: 10,
			WaypointSlack: 5,
			MaxDeltaTime:  0.1,
		},
		Rules: Rules{
			TimeLimitSeconds: 300,
			PassengerCap:     100,
			RescueQuota:      50,
			FinalLevel:       10,
			SpawnInterval:    0.5,
		},
		Abilities: Abilities{
			Cooldown:        2,
			BridgeChance:    0.15,
			DoorChance:      0.10,
			BriberChance:    0.07,
			BridgeInventory: 3,
			DoorInventory:   2,
			BriberInventory: 2,
			AssignRadius:    50,
			ActivateRadius:  100,
			GuardSlowFactor: 0.3,
		},
		Generator: Generator{
			SpawnPlatformWidth: 160,
			PlatformMinWidth:   90,
			PlatformMaxWidth:   210,
			PlatformThickness:  14,
			HopMinGap:          40,
			HopMaxGap:          80,
			StepMaxRise:        40,
			ScatterBase:        3,
			ScatterPerLevel:    2,
			WallBase:           1,
			WallPerLevel:       1,
			GapBase:            1,
			GapPerLevel:        1,
			CheckpointBase:     1,
			CheckpointPer:      1,
			GuardBase:          1,
			GuardPerLevel:      0,
			GapMinWidth:        50,
			GapMaxWidth:        70,
			GroundHeight:       40,
			GoalWidth:          50,
			GoalHeight:         64,
		},
	}
}
