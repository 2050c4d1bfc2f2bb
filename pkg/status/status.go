// Package status implements status-effect application, stacking, and
// per-turn ticking. It operates on plain Effect slices
// rather than a concrete Entity type so pkg/entity can hold a
// []status.Effect component without an import cycle.
package status

import "fmt"

// Type enumerates the status effect kinds.
type Type uint8

const (
	Poison Type = iota
	Burning
	Stunned
	Confused
	Weakened
	Blinded
	Regenerating
	Hasted
	Slowed
	Shielded
	Invisible
	Strengthened
)

func (t Type) String() string {
	switch t {
	case Poison:
		return "Poison"
	case Burning:
		return "Burning"
	case Stunned:
		return "Stunned"
	case Confused:
		return "Confused"
	case Weakened:
		return "Weakened"
	case Blinded:
		return "Blinded"
	case Regenerating:
		return "Regenerating"
	case Hasted:
		return "Hasted"
	case Slowed:
		return "Slowed"
	case Shielded:
		return "Shielded"
	case Invisible:
		return "Invisible"
	case Strengthened:
		return "Strengthened"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// IsNegative reports whether the effect type is generally harmful,
// used by cure effects (Antidote, CureStatus item effects) to decide what
// to strip.
func (t Type) IsNegative() bool {
	switch t {
	case Poison, Burning, Stunned, Confused, Weakened, Blinded, Slowed:
		return true
	default:
		return false
	}
}

// Effect is one active status effect on an entity.
type Effect struct {
	Type     Type
	Duration uint32
	Magnitude int
	Source   string
}

// Apply adds effectType to effects. Bosses are immune to Stunned and
// Confused (silently dropped); a
// same-type reapplication refreshes to max(duration) and max(magnitude)
// rather than stacking. Returns the updated slice.
func Apply(effects []Effect, isBoss bool, effectType Type, duration uint32, magnitude int, source string) []Effect {
	if isBoss && (effectType == Stunned || effectType == Confused) {
		return effects
	}

	for i := range effects {
		if effects[i].Type == effectType {
			if duration > effects[i].Duration {
				effects[i].Duration = duration
			}
			if magnitude > effects[i].Magnitude {
				effects[i].Magnitude = magnitude
			}
			return effects
		}
	}

	return append(effects, Effect{Type: effectType, Duration: duration, Magnitude: magnitude, Source: source})
}

// CureNegative removes every IsNegative effect, used by Antidote/CureStatus
// item effects.
func CureNegative(effects []Effect) []Effect {
	out := effects[:0]
	for _, e := range effects {
		if !e.Type.IsNegative() {
			out = append(out, e)
		}
	}
	return out
}

// TickResult summarizes what a single Tick call did.
type TickResult struct {
	Damage   int
	Healing  int
	Expired  []Type
}

// Tick applies one turn's worth of per-effect damage/healing (Poison >=2,
// Burning >=3, Regenerating >=2 heal), then decrements every duration by 1,
// pruning anything that reaches 0 and recording it in Expired. Returns the
// updated slice and the tick's damage/healing/expired summary; callers
// apply Damage/Healing to the entity's Health themselves (this package has
// no Health type to avoid an import cycle with pkg/entity).
func Tick(effects []Effect) ([]Effect, TickResult) {
	var result TickResult

	for _, e := range effects {
		switch e.Type {
		case Poison:
			result.Damage += max(e.Magnitude, 2)
		case Burning:
			result.Damage += max(e.Magnitude, 3)
		case Regenerating:
			result.Healing += max(e.Magnitude, 2)
		}
	}

	kept := effects[:0]
	for i := range effects {
		if effects[i].Duration > 0 {
			effects[i].Duration--
		}
		if effects[i].Duration == 0 {
			result.Expired = append(result.Expired, effects[i].Type)
			continue
		}
		kept = append(kept, effects[i])
	}

	return kept, result
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Has reports whether effects contains an active effect of type t.
func Has(effects []Effect, t Type) bool {
	for _, e := range effects {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Magnitude returns the magnitude of the active effect of type t, if any.
func Magnitude(effects []Effect, t Type) (int, bool) {
	for _, e := range effects {
		if e.Type == t {
			return e.Magnitude, true
		}
	}
	return 0, false
}

// EffectiveFOVRadius returns 2 if Blinded is active, else base: blindness
// overrides the stored radius entirely.
func EffectiveFOVRadius(effects []Effect, base int) int {
	if Has(effects, Blinded) {
		return 2
	}
	return base
}

// AbsorbShieldDamage consumes up to the Shielded effect's magnitude from
// damage, removing the effect if depleted, and returns the remaining
// damage to apply to HP. If no Shielded effect is active, damage passes
// through unchanged.
func AbsorbShieldDamage(effects []Effect, damage int) ([]Effect, int) {
	for i := range effects {
		if effects[i].Type != Shielded {
			continue
		}
		if effects[i].Magnitude >= damage {
			effects[i].Magnitude -= damage
			return effects, 0
		}
		remaining := damage - effects[i].Magnitude
		effects[i].Magnitude = 0
		effects[i].Duration = 0

		out := effects[:0]
		for _, e := range effects {
			if !(e.Type == Shielded && e.Magnitude == 0) {
				out = append(out, e)
			}
		}
		return out, remaining
	}
	return effects, damage
}
