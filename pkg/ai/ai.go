// Package ai implements the pure AI decider: given an
// entity, the player, the current Dijkstra map, and the tile map, decide
// what action that entity takes this turn. Deciding never mutates state;
// the turn loop in pkg/engine applies the resulting Action.
package ai

import (
	"math/rand"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/pathfind"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// ActionKind enumerates the actions a decider can return.
type ActionKind uint8

const (
	MeleeAttack ActionKind = iota
	RangedAttack
	MoveToward
	MoveAway
	MoveRandom
	Wait
	BossSummon
	BossCharge
	BossTeleport
	BossFrostBolt
)

// Action is the decider's output. Target is set for *Attack kinds; Pos is
// set for MoveToward/MoveAway; Stun is only meaningful for BossCharge.
type Action struct {
	Kind   ActionKind
	Target entity.ID
	Pos    tile.Position
	Stun   bool
}

// Decide picks this turn's action for one entity. entities
// is used to test whether a candidate move/flee tile is already
// occupied by another blocking entity, and by allies to find an adjacent
// enemy to attack.
func Decide(self, player *entity.Entity, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity, r *rand.Rand) Action {
	if status.Has(self.StatusEffects, status.Confused) {
		return Action{Kind: MoveRandom}
	}

	if self.FOV == nil || !self.FOV.VisibleTiles[player.Position] {
		return Action{Kind: Wait}
	}

	distance := self.Position.ChebyshevDistance(player.Position)
	hpPct := 1.0
	if self.Health != nil && self.Health.Max > 0 {
		hpPct = float64(self.Health.Current) / float64(self.Health.Max)
	}

	if self.AI == nil {
		return Action{Kind: Wait}
	}

	switch self.AI.Kind {
	case entity.Melee:
		return decideMelee(self, player, distance, hpPct, dijkstra, m, entities)
	case entity.Ranged:
		return decideRanged(self, player, distance, hpPct, dijkstra, m, entities)
	case entity.Passive:
		return Action{Kind: Wait}
	case entity.Fleeing:
		return decideFlee(self, dijkstra, m, entities)
	case entity.Ally:
		return decideAlly(self, player, distance, dijkstra, m, entities)
	case entity.Boss:
		return decideBoss(self, player, distance, hpPct, dijkstra, m, entities)
	default:
		return Action{Kind: Wait}
	}
}

func decideMelee(self, player *entity.Entity, distance int, hpPct float64, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) Action {
	if hpPct < 0.25 {
		if pos, ok := fleePosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveAway, Pos: pos}
		}
	}
	if distance <= 1 {
		return Action{Kind: MeleeAttack, Target: player.ID}
	}
	if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
		return Action{Kind: MoveToward, Pos: pos}
	}
	return Action{Kind: Wait}
}

func decideRanged(self, player *entity.Entity, distance int, hpPct float64, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) Action {
	if hpPct < 0.20 {
		if pos, ok := fleePosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveAway, Pos: pos}
		}
	}
	if distance <= 1 {
		return Action{Kind: MeleeAttack, Target: player.ID}
	}

	rangeVal, preferred := 0, 0
	if self.AI != nil {
		rangeVal, preferred = self.AI.Range, self.AI.PreferredDistance
	}

	if distance <= rangeVal && pathfind.HasLineOfSight(m, self.Position, player.Position) {
		if distance < preferred {
			if pos, ok := fleePosition(self, dijkstra, m, entities); ok {
				return Action{Kind: MoveAway, Pos: pos}
			}
		}
		return Action{Kind: RangedAttack, Target: player.ID}
	}

	if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
		return Action{Kind: MoveToward, Pos: pos}
	}
	return Action{Kind: Wait}
}

func decideFlee(self *entity.Entity, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) Action {
	if pos, ok := fleePosition(self, dijkstra, m, entities); ok {
		return Action{Kind: MoveAway, Pos: pos}
	}
	return Action{Kind: Wait}
}

func decideAlly(self, player *entity.Entity, distance int, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) Action {
	for _, e := range entities {
		if e.AI != nil && e.AI.Kind != entity.Ally && e.Position.ChebyshevDistance(self.Position) <= 1 {
			return Action{Kind: MeleeAttack, Target: e.ID}
		}
	}
	followDistance := 0
	if self.AI != nil {
		followDistance = self.AI.FollowDistance
	}
	if distance > followDistance {
		if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveToward, Pos: pos}
		}
	}
	return Action{Kind: Wait}
}

func decideBoss(self, player *entity.Entity, distance int, hpPct float64, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) Action {
	phase := self.AI.Phase

	switch self.AI.BossName {
	case "Goblin King":
		if distance <= 1 {
			return Action{Kind: MeleeAttack, Target: player.ID}
		}
		if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveToward, Pos: pos}
		}
		return Action{Kind: Wait}

	case "Troll Warlord":
		if distance <= 1 {
			return Action{Kind: MeleeAttack, Target: player.ID}
		}
		if distance >= 2 && distance <= 4 {
			return Action{Kind: BossCharge, Target: player.ID, Stun: phase == entity.Phase2}
		}
		if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveToward, Pos: pos}
		}
		return Action{Kind: Wait}

	case "The Lich":
		if distance <= 1 {
			return Action{Kind: BossTeleport, Target: player.ID}
		}
		inBoltRange := distance >= 2 && distance <= 6 && pathfind.HasLineOfSight(m, self.Position, player.Position)
		if phase == entity.Phase2 && inBoltRange {
			return Action{Kind: BossFrostBolt, Target: player.ID}
		}
		if inBoltRange {
			return Action{Kind: RangedAttack, Target: player.ID}
		}
		if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveToward, Pos: pos}
		}
		return Action{Kind: Wait}

	default:
		if distance <= 1 {
			return Action{Kind: MeleeAttack, Target: player.ID}
		}
		if pos, ok := towardPosition(self, dijkstra, m, entities); ok {
			return Action{Kind: MoveToward, Pos: pos}
		}
		return Action{Kind: Wait}
	}
}

// CheckBossPhase flips Phase1 to Phase2 the first time HP drops below 50%.
// Monotonic — never reverts. Returns true iff a transition just happened.
func CheckBossPhase(self *entity.Entity) bool {
	if self.AI == nil || self.AI.Kind != entity.Boss || self.AI.Phase == entity.Phase2 {
		return false
	}
	if self.Health == nil || self.Health.Max == 0 {
		return false
	}
	if float64(self.Health.Current)/float64(self.Health.Max) < 0.5 {
		self.AI.Phase = entity.Phase2
		return true
	}
	return false
}

// ActivatePassive switches a Passive AI to Melee, called by the damage
// handler the first time a passive entity is hit.
func ActivatePassive(self *entity.Entity) {
	if self.AI != nil && self.AI.Kind == entity.Passive {
		self.AI.Kind = entity.Melee
	}
}

func towardPosition(self *entity.Entity, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) (tile.Position, bool) {
	if dijkstra == nil {
		return tile.Position{}, false
	}
	next, ok := dijkstra.BestNeighbor(self.Position, m)
	if !ok || blockedByEntity(next, entities, self.ID) {
		return tile.Position{}, false
	}
	return next, true
}

func fleePosition(self *entity.Entity, dijkstra *pathfind.DijkstraMap, m *tile.Map, entities []*entity.Entity) (tile.Position, bool) {
	if dijkstra == nil {
		return tile.Position{}, false
	}
	next, ok := dijkstra.FleeNeighbor(self.Position, m)
	if !ok || blockedByEntity(next, entities, self.ID) {
		return tile.Position{}, false
	}
	return next, true
}

func blockedByEntity(pos tile.Position, entities []*entity.Entity, selfID entity.ID) bool {
	for _, e := range entities {
		if e.Position == pos && e.BlocksMovement && e.ID != selfID {
			return true
		}
	}
	return false
}
