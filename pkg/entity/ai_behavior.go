package entity

// AIBehaviorKind enumerates the behavior variants an entity's AI component
// can carry. The decision logic that reads this tag lives in pkg/ai; this
// type is just the data, kept alongside the rest of the entity's
// components per this package's composition model.
type AIBehaviorKind uint8

const (
	Melee AIBehaviorKind = iota
	Ranged
	Passive
	Fleeing
	Boss
	Ally
)

// BossPhase tracks a boss's two-phase health-gated escalation.
type BossPhase uint8

const (
	Phase1 BossPhase = iota
	Phase2
)

// AIBehavior is the AI component. Range/PreferredDistance only apply to
// Ranged; BossName/Phase only apply to Boss; FollowDistance only applies to
// Ally.
type AIBehavior struct {
	Kind              AIBehaviorKind
	Range             int
	PreferredDistance int
	BossName          string
	Phase             BossPhase
	FollowDistance    int

	// SummonCounter is Goblin King's hidden per-turn counter, owned by the
	// turn loop rather than the decider.
	SummonCounter int
}
