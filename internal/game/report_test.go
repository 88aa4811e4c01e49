package game

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewLevelReport_Defaults(t *testing.T) {
	r := newLevelReport(3)
	if r.Level != 3 || r.Outcome != "pending" {
		t.Fatalf("unexpected fresh report: %+v", r)
	}
	if r.AttemptID == uuid.Nil {
		t.Fatal("every attempt gets a unique id")
	}
	if r.AbilitiesUsed == nil {
		t.Fatal("used-ability map must be ready for writes")
	}
}

func TestLevelReport_Format(t *testing.T) {
	r := newLevelReport(2)
	r.Spawned = 100
	r.Reached = 61
	r.Lost = 4
	r.AbilitiesAssigned = 5
	r.BridgesBuilt = 2
	r.AbilitiesUsed[AbilityBridgeBuilder] = 2
	r.Outcome = "cleared"
	r.finish(95 * time.Second)

	s := r.Format()
	for _, want := range []string{"Level 2", "cleared", "95.0s", "spawned:   100", "reached:   61", "bridge_builder x2"} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
}
