package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// LevelReport accumulates the statistics of one level attempt. The engine
// updates it live; finish stamps the elapsed time and outcome.
type LevelReport struct {
	AttemptID uuid.UUID
	Level     int

	Spawned           int
	Reached           int
	Lost              int
	AbilitiesAssigned int
	AbilitiesUsed     map[AbilityKind]int
	BridgesBuilt      int

	Elapsed time.Duration
	Outcome string // pending, cleared, failed, victory
}

func newLevelReport(level int) *LevelReport {
	return &LevelReport{
		AttemptID:     uuid.New(),
		Level:         level,
		AbilitiesUsed: map[AbilityKind]int{},
		Outcome:       "pending",
	}
}

func (r *LevelReport) finish(elapsed time.Duration) {
	r.Elapsed = elapsed
}

// Format renders the report as a text block.
func (r *LevelReport) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Level %d attempt %s ===\n", r.Level, r.AttemptID)
	fmt.Fprintf(&b, "outcome:   %s  (%.1fs)\n", r.Outcome, r.Elapsed.Seconds())
	fmt.Fprintf(&b, "spawned:   %d\n", r.Spawned)
	fmt.Fprintf(&b, "reached:   %d\n", r.Reached)
	fmt.Fprintf(&b, "lost:      %d\n", r.Lost)
	fmt.Fprintf(&b, "assigned:  %d\n", r.AbilitiesAssigned)
	fmt.Fprintf(&b, "bridges:   %d\n", r.BridgesBuilt)
	for k := AbilityBridgeBuilder; k <= AbilitySecurityBriber; k++ {
		if n := r.AbilitiesUsed[k]; n > 0 {
			fmt.Fprintf(&b, "used:      %s x%d\n", k, n)
		}
	}
	return b.String()
}

// CopyToClipboard puts the formatted report on the system clipboard so a
// run can be pasted into a bug report.
func (r *LevelReport) CopyToClipboard() error {
	return clipboard.WriteAll(r.Format())
}
