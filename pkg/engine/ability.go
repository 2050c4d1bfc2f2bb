package engine

import (
	"github.com/tholloway/roguecore/pkg/content"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/pathfind"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// doUseAbility casts the class's index-th ability: validate targeting,
// spend mana, apply the effect. Failed validation costs neither mana nor
// the turn.
func (w *World) doUseAbility(action PlayerAction) actionOutcome {
	player := w.player()
	abilities := w.tables.AbilitiesForClass(w.class)
	if action.Index < 0 || action.Index >= len(abilities) {
		w.log("You don't know that ability.")
		return noAdvance()
	}
	ability := abilities[action.Index]

	if player.Combat.Mana < ability.ManaCost {
		w.log("Not enough mana for %s (%d needed).", ability.Name, ability.ManaCost)
		return noAdvance()
	}

	var target *entity.Entity
	var targetPos tile.Position
	switch ability.Targeting.Mode {
	case "adjacent":
		target = w.entities.Get(action.TargetID)
		if target == nil || target.Health == nil {
			w.log("There's nothing there to strike.")
			return noAdvance()
		}
		if player.Position.ChebyshevDistance(target.Position) > 1 {
			w.log("The %s is out of reach.", target.Name)
			return noAdvance()
		}
		targetPos = target.Position
	case "targeted":
		if action.TargetID != 0 {
			target = w.entities.Get(action.TargetID)
			if target == nil {
				w.log("There's nothing there to target.")
				return noAdvance()
			}
			targetPos = target.Position
		} else {
			targetPos = tile.Position{X: action.X, Y: action.Y}
			if !w.gameMap.InBounds(targetPos.X, targetPos.Y) {
				w.log("You can't target there.")
				return noAdvance()
			}
		}
		if player.Position.ChebyshevDistance(targetPos) > ability.Targeting.Range {
			w.log("That's out of range for %s.", ability.Name)
			return noAdvance()
		}
		if !pathfind.HasLineOfSight(w.gameMap, player.Position, targetPos) {
			w.log("You can't see a clear path for %s.", ability.Name)
			return noAdvance()
		}
	}

	player.Combat.Mana -= ability.ManaCost
	w.emit(GameEvent{Kind: EvAbilityUsed, Actor: PlayerID, ItemName: ability.Name, Position: targetPos})
	w.applyAbilityEffect(ability, action, target, targetPos)
	return advance()
}

func (w *World) applyAbilityEffect(ability content.AbilityTemplate, action PlayerAction, target *entity.Entity, targetPos tile.Position) {
	player := w.player()
	eff := ability.Effect

	switch eff.Kind {
	case "damage":
		amount := eff.Amount + 2*w.spellPowerBonus
		w.log("You unleash %s!", ability.Name)
		if ability.Targeting.Radius > 0 {
			w.damageArea(targetPos, ability.Targeting.Radius, amount, ability.Name)
		} else if target != nil {
			w.damageFromAbility(target, amount, ability.Name)
		}
	case "status_self":
		w.applyAbilityStatus(player, eff, ability.Name)
		w.log("You invoke %s.", ability.Name)
	case "status_target":
		if target != nil {
			w.applyAbilityStatus(target, eff, ability.Name)
			w.log("Your %s strikes the %s!", ability.Name, target.Name)
		}
	case "move":
		w.dashPlayer(action.Direction, eff.Distance)
	case "teleport":
		w.blinkPlayer(targetPos, ability.Name)
	case "shield":
		absorb := eff.Absorb + 2*w.spellPowerBonus
		player.StatusEffects = status.Apply(player.StatusEffects, false, status.Shielded, 50, absorb, ability.Name)
		w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: status.Shielded})
		w.log("A shimmering barrier surrounds you.")
	case "damage_adjacent":
		amount := eff.Amount + 2*w.spellPowerBonus
		w.log("You spin in a deadly arc!")
		w.damageArea(player.Position, 1, amount, ability.Name)
	case "poison_next_attack":
		w.poisonStrike = &entity.OnHitEffect{
			Effect:    status.Poison,
			Duration:  eff.Duration,
			Magnitude: eff.Amount,
			Chance:    1.0,
		}
		w.log("You coat your blade with venom.")
	}
}

// applyAbilityStatus resolves the template's status name and applies it,
// honoring boss immunities.
func (w *World) applyAbilityStatus(target *entity.Entity, eff content.AbilityEffectTemplate, source string) {
	st, ok := content.StatusByName(eff.Status)
	if !ok {
		return
	}
	if target.IsBoss() && (st == status.Stunned || st == status.Confused) {
		w.log("The %s shrugs it off.", target.Name)
		return
	}
	target.StatusEffects = status.Apply(target.StatusEffects, target.IsBoss(), st, eff.Duration, eff.Amount, source)
	w.emit(GameEvent{Kind: EvStatusApplied, Target: target.ID, Status: st})
}

// damageArea hits every enemy within radius of center.
func (w *World) damageArea(center tile.Position, radius, amount int, source string) {
	for _, e := range w.entities.All() {
		if e.ID == PlayerID || e.Health == nil || e.AI == nil {
			continue
		}
		if e.Position.ChebyshevDistance(center) > radius {
			continue
		}
		w.damageFromAbility(e, amount, source)
	}
}

// damageFromAbility applies flat ability damage to one enemy.
func (w *World) damageFromAbility(target *entity.Entity, amount int, source string) {
	w.log("The %s takes %d damage.", target.Name, amount)
	w.applyDamage(target, amount, source)
	if target.IsDead() && target.ID != PlayerID {
		w.handleEntityDeath(target, source)
	}
}

// dashPlayer moves the player up to distance tiles in dir, stopping at
// the first blocked tile.
func (w *World) dashPlayer(dir entity.Direction, distance int) {
	player := w.player()
	dx, dy := dir.Delta()
	moved := 0
	for i := 0; i < distance; i++ {
		next := player.Position.Add(dx, dy)
		if !w.canMoveTo(next, PlayerID) {
			break
		}
		player.Position = next
		moved++
	}
	if moved == 0 {
		w.log("There's no room to dash.")
		return
	}
	if player.FOV != nil {
		player.FOV.Dirty = true
	}
	w.emit(GameEvent{Kind: EvMoved, Actor: PlayerID, Position: player.Position})
	w.log("You dash %d tiles.", moved)
	w.checkTrapsAt(player.Position)
}

// blinkPlayer teleports the player to the targeted tile, snapping to the
// nearest walkable one.
func (w *World) blinkPlayer(targetPos tile.Position, source string) {
	player := w.player()
	dest := targetPos
	if !w.canMoveTo(dest, PlayerID) {
		near, err := w.gameMap.NearestWalkable(dest)
		if err != nil || w.blockingEntityAt(near, PlayerID) != nil {
			w.log("The %s fizzles: nowhere to land.", source)
			return
		}
		dest = near
	}
	player.Position = dest
	if player.FOV != nil {
		player.FOV.Dirty = true
	}
	w.emit(GameEvent{Kind: EvMoved, Actor: PlayerID, Position: dest})
	w.log("You blink across the room.")
	w.checkTrapsAt(dest)
}

// regenerateMana restores 1 mana per elapsed turn, plus any mana-regen
// level bonus, capped at the maximum.
func (w *World) regenerateMana() {
	player := w.player()
	if player.Combat == nil || player.Combat.MaxMana == 0 {
		return
	}
	player.Combat.Mana += 1 + w.manaRegenBonus
	if player.Combat.Mana > player.Combat.MaxMana {
		player.Combat.Mana = player.Combat.MaxMana
	}
}
