// Package validation checks generated floors against the map invariants
// every playable floor must satisfy: full connectivity from the start
// room, exactly one start room, correctly placed stairs, and a walkable
// start tile. Generation is expected to always pass; the checks exist so
// a regression in the generator fails loudly in tests and tooling instead
// of surfacing as an unwinnable floor.
package validation

import (
	"fmt"

	"github.com/tholloway/roguecore/pkg/tile"
)

// ConstraintResult is the outcome of one constraint check.
type ConstraintResult struct {
	Kind      string `json:"kind"`
	Satisfied bool   `json:"satisfied"`
	Details   string `json:"details"`
}

// Report collects every constraint result for one floor.
type Report struct {
	Floor   uint32             `json:"floor"`
	Passed  bool               `json:"passed"`
	Results []ConstraintResult `json:"results"`
	Metrics Metrics            `json:"metrics"`
}

// Metrics are descriptive numbers for balance tooling; they carry no
// pass/fail weight.
type Metrics struct {
	RoomCount     int            `json:"room_count"`
	FloorTiles    int            `json:"floor_tiles"`
	WalkableShare float64        `json:"walkable_share"`
	RoomsByType   map[string]int `json:"rooms_by_type"`
}

// Summary renders the report as a short human-readable block.
func (r *Report) Summary() string {
	verdict := "PASS"
	if !r.Passed {
		verdict = "FAIL"
	}
	out := fmt.Sprintf("floor %d: %s (%d rooms, %d floor tiles)\n",
		r.Floor, verdict, r.Metrics.RoomCount, r.Metrics.FloorTiles)
	for _, res := range r.Results {
		mark := "ok"
		if !res.Satisfied {
			mark = "FAILED"
		}
		out += fmt.Sprintf("  %-16s %-6s %s\n", res.Kind, mark, res.Details)
	}
	return out
}

// ValidateFloor runs every constraint against m and assembles a report.
func ValidateFloor(m *tile.Map, floor uint32) *Report {
	report := &Report{Floor: floor, Passed: true}

	checks := []func(*tile.Map, uint32) ConstraintResult{
		CheckUniqueStart,
		CheckConnectivity,
		CheckStairs,
		CheckStartWalkable,
	}
	for _, check := range checks {
		result := check(m, floor)
		report.Results = append(report.Results, result)
		if !result.Satisfied {
			report.Passed = false
		}
	}
	report.Metrics = computeMetrics(m)
	return report
}

// CheckUniqueStart requires exactly one Start-typed room.
func CheckUniqueStart(m *tile.Map, _ uint32) ConstraintResult {
	count := 0
	for _, room := range m.Rooms {
		if room.RoomType == tile.Start {
			count++
		}
	}
	return ConstraintResult{
		Kind:      "UniqueStart",
		Satisfied: count == 1,
		Details:   fmt.Sprintf("%d start rooms", count),
	}
}

// CheckConnectivity flood-fills from the start room center and requires
// every other room's center to be reached.
func CheckConnectivity(m *tile.Map, _ uint32) ConstraintResult {
	var start *tile.Room
	for i := range m.Rooms {
		if m.Rooms[i].RoomType == tile.Start {
			start = &m.Rooms[i]
			break
		}
	}
	if start == nil {
		return ConstraintResult{Kind: "Connectivity", Satisfied: false, Details: "no start room to flood from"}
	}

	origin, err := m.NearestWalkable(start.Center())
	if err != nil {
		return ConstraintResult{Kind: "Connectivity", Satisfied: false, Details: "start room has no walkable tile"}
	}

	visited := make([]bool, m.Width*m.Height)
	m.FloodFillCount(origin, tile.Kind.Walkable, visited)

	unreached := 0
	for _, room := range m.Rooms {
		center, err := m.NearestWalkable(room.Center())
		if err != nil {
			unreached++
			continue
		}
		if !visited[m.Idx(center.X, center.Y)] {
			unreached++
		}
	}
	return ConstraintResult{
		Kind:      "Connectivity",
		Satisfied: unreached == 0,
		Details:   fmt.Sprintf("%d of %d rooms unreachable from start", unreached, len(m.Rooms)),
	}
}

// CheckStairs requires exactly one down staircase, and on floors past the
// first exactly one up staircase on a different tile.
func CheckStairs(m *tile.Map, floor uint32) ConstraintResult {
	down, up := 0, 0
	for _, k := range m.Tiles {
		switch k {
		case tile.DownStairs:
			down++
		case tile.UpStairs:
			up++
		}
	}

	wantUp := 0
	if floor > 1 {
		wantUp = 1
	}
	satisfied := down == 1 && up == wantUp
	return ConstraintResult{
		Kind:      "Stairs",
		Satisfied: satisfied,
		Details:   fmt.Sprintf("%d down, %d up (want 1 down, %d up)", down, up, wantUp),
	}
}

// CheckStartWalkable requires a walkable tile at or near the start room
// center, where the player spawns.
func CheckStartWalkable(m *tile.Map, _ uint32) ConstraintResult {
	for _, room := range m.Rooms {
		if room.RoomType != tile.Start {
			continue
		}
		if _, err := m.NearestWalkable(room.Center()); err != nil {
			return ConstraintResult{Kind: "StartWalkable", Satisfied: false, Details: err.Error()}
		}
		return ConstraintResult{Kind: "StartWalkable", Satisfied: true, Details: "spawn tile walkable"}
	}
	return ConstraintResult{Kind: "StartWalkable", Satisfied: false, Details: "no start room"}
}

func computeMetrics(m *tile.Map) Metrics {
	metrics := Metrics{
		RoomCount:   len(m.Rooms),
		RoomsByType: make(map[string]int),
	}
	for _, k := range m.Tiles {
		if k.Walkable() {
			metrics.FloorTiles++
		}
	}
	if len(m.Tiles) > 0 {
		metrics.WalkableShare = float64(metrics.FloorTiles) / float64(len(m.Tiles))
	}
	for _, room := range m.Rooms {
		metrics.RoomsByType[room.RoomType.String()]++
	}
	return metrics
}
