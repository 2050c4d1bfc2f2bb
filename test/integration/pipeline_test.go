// Package integration drives the full stack — generation, placement,
// turn resolution, validation, save, export — the way a host would, one
// seed at a time.
package integration

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/engine"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/export"
	"github.com/tholloway/roguecore/pkg/mapgen"
	"github.com/tholloway/roguecore/pkg/save"
	"github.com/tholloway/roguecore/pkg/validation"
)

// TestFullPipeline plays a short session end to end and exercises every
// host-facing surface along the way.
func TestFullPipeline(t *testing.T) {
	const seed = 20240601

	w, err := engine.New(seed, engine.WithClass("rogue"))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	report := validation.ValidateFloor(w.Map(), w.Floor())
	if !report.Passed {
		t.Fatalf("starting floor invalid:\n%s", report.Summary())
	}

	// Wander for a while; auto-explore covers pathing, the moves cover
	// bump resolution, and waits let enemies take their turns.
	script := []engine.PlayerAction{
		engine.AutoExplore(), engine.AutoExplore(), engine.AutoExplore(),
		engine.Move(entity.E), engine.Move(entity.S), engine.Wait(),
		engine.AutoExplore(), engine.AutoExplore(), engine.Wait(),
		engine.Move(entity.N), engine.Move(entity.W), engine.Wait(),
	}
	var last *engine.TurnResult
	for _, action := range script {
		last = w.ResolveTurn(action)
		if last == nil {
			t.Fatalf("ResolveTurn returned nil")
		}
	}

	if last.State.Player.MaxHP == 0 {
		t.Fatalf("player summary empty after %d turns", w.Turn())
	}
	if len(last.State.Minimap) != w.Map().Width*w.Map().Height {
		t.Fatalf("minimap size %d, want %d", len(last.State.Minimap), w.Map().Width*w.Map().Height)
	}

	blob, err := save.Marshal(w)
	if err != nil {
		t.Fatalf("save.Marshal: %v", err)
	}
	restored, err := save.Unmarshal(blob)
	if err != nil {
		t.Fatalf("save.Unmarshal: %v", err)
	}
	if restored.World.Turn() != w.Turn() || restored.World.Floor() != w.Floor() {
		t.Fatalf("restored world out of sync: turn %d/%d floor %d/%d",
			restored.World.Turn(), w.Turn(), restored.World.Floor(), w.Floor())
	}
	if r := restored.World.ResolveTurn(engine.Wait()); r == nil {
		t.Fatalf("restored world cannot continue")
	}

	if _, err := export.ExportJSON(w); err != nil {
		t.Fatalf("export.ExportJSON: %v", err)
	}
	if _, err := export.ExportSVG(w, export.DefaultSVGOptions()); err != nil {
		t.Fatalf("export.ExportSVG: %v", err)
	}
}

// TestDeepFloorsStayValid validates generation well past the handcrafted
// content range, where the endless cycle takes over.
func TestDeepFloorsStayValid(t *testing.T) {
	for floor := uint32(1); floor <= 25; floor++ {
		m := mapgen.Generate(99, floor)
		report := validation.ValidateFloor(m, floor)
		if !report.Passed {
			t.Errorf("floor %d invalid:\n%s", floor, report.Summary())
		}
	}
}
