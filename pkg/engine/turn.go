package engine

import (
	"github.com/tholloway/roguecore/pkg/ai"
	"github.com/tholloway/roguecore/pkg/combat"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/level"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// actionCost is the energy one action consumes.
const actionCost = 100

// ResolveTurn applies one player action and runs the world forward: the
// action itself, then energy scheduling for every enemy, then status
// ticks, then vision recompute, and finally a TurnResult snapshot. A turn
// only elapses when the action was meaningful — bumping a wall produces a
// message and returns without advancing the clock.
func (w *World) ResolveTurn(action PlayerAction) *TurnResult {
	w.events = nil

	if w.gameOver {
		return w.buildResult(nil)
	}

	if w.pendingLevelUp {
		if action.Kind == ActLevelUpChoice {
			w.applyLevelUpChoice(action.Choice)
		}
		return w.buildResult(nil)
	}

	outcome := w.applyPlayerAction(action)

	if w.player().IsDead() {
		w.handlePlayerDeath()
		return w.buildResult(nil)
	}

	if outcome.advanceTurn && !w.gameOver {
		w.turn++
		w.runSchedule()
		if !w.gameOver {
			w.tickStatusEffects()
		}
		if !w.gameOver {
			w.regenerateMana()
		}
	}

	if !w.gameOver {
		w.refreshVision()
		w.checkSpottedEnemies()
	}

	return w.buildResult(outcome.interrupt)
}

// actionOutcome reports what the action phase decided about the clock.
type actionOutcome struct {
	advanceTurn bool
	interrupt   *string
}

func advance() actionOutcome   { return actionOutcome{advanceTurn: true} }
func noAdvance() actionOutcome { return actionOutcome{} }

func interrupted(reason string) actionOutcome {
	return actionOutcome{interrupt: &reason}
}

func (w *World) applyPlayerAction(action PlayerAction) actionOutcome {
	switch action.Kind {
	case ActMove:
		return w.doMove(action.Direction)
	case ActWait:
		w.log("You wait.")
		return advance()
	case ActPickUp:
		return w.doPickUp()
	case ActUseStairs:
		return w.doUseStairs()
	case ActInteract:
		return w.doInteract()
	case ActAutoExplore:
		return w.doAutoExplore()
	case ActUseItem:
		return w.doUseItem(action.Index)
	case ActDropItem:
		return w.doDropItem(action.Index)
	case ActEquipItem:
		return w.doEquipItem(action.Index)
	case ActUnequipSlot:
		return w.doUnequipSlot(action.Slot)
	case ActRangedAttack:
		return w.doRangedAttack(action.TargetID)
	case ActBuyItem:
		return w.doBuyItem(action.ShopID, action.Index)
	case ActSellItem:
		return w.doSellItem(action.Index, action.ShopID)
	case ActClickMove:
		return w.doClickMove(action.X, action.Y)
	case ActUseAbility:
		return w.doUseAbility(action)
	case ActLevelUpChoice:
		// Only meaningful while pendingLevelUp, which ResolveTurn handles
		// before reaching here.
		return noAdvance()
	default:
		return noAdvance()
	}
}

// runSchedule banks one speed's worth of energy for every combat-capable
// entity, then lets each enemy act as many times as its bank affords.
// Entities act in insertion order; the player's bank is maintained for
// symmetry but the player only ever acts through ResolveTurn's action.
func (w *World) runSchedule() {
	for _, e := range w.entities.All() {
		if e.Combat == nil || e.IsDead() {
			continue
		}
		e.Energy += combat.EffectiveSpeed(e)
	}

	// The player's bucket accrues with everyone else's but is never
	// drained here: the player acts on input, not on energy.
	for _, e := range w.entities.All() {
		if e.ID == PlayerID || e.Combat == nil || e.AI == nil {
			continue
		}
		for e.Energy >= actionCost && !e.IsDead() && !w.gameOver {
			e.Energy -= actionCost
			if status.Has(e.StatusEffects, status.Stunned) {
				continue
			}
			w.runEnemyAction(e)
		}
	}
}

// runEnemyAction decides and applies one action for enemy e.
func (w *World) runEnemyAction(e *entity.Entity) {
	player := w.player()
	decided := ai.Decide(e, player, w.dijkstra, w.gameMap, w.entities.All(), w.rng.Rand())

	// The Goblin King summons on a fixed cadence regardless of what the
	// decider wanted this turn.
	if e.AI.Kind == entity.Boss && e.AI.BossName == "Goblin King" {
		e.AI.SummonCounter++
		if e.AI.SummonCounter%4 == 0 {
			decided = ai.Action{Kind: ai.BossSummon, Stun: e.AI.Phase == entity.Phase2}
		}
	}

	switch decided.Kind {
	case ai.MeleeAttack:
		if target := w.entities.Get(decided.Target); target != nil {
			w.resolveAttack(e, target, false)
		}
	case ai.RangedAttack:
		if target := w.entities.Get(decided.Target); target != nil {
			w.emit(GameEvent{Kind: EvProjectileFired, Actor: e.ID, Target: target.ID})
			w.resolveAttack(e, target, true)
		}
	case ai.MoveToward, ai.MoveAway:
		w.moveEntity(e, decided.Pos)
	case ai.MoveRandom:
		w.moveEntityRandom(e)
	case ai.BossSummon:
		w.bossSummon(e, decided.Stun)
	case ai.BossCharge:
		w.bossCharge(e, decided.Stun)
	case ai.BossTeleport:
		w.bossTeleport(e)
	case ai.BossFrostBolt:
		w.bossFrostBolt(e)
	case ai.Wait:
		// Nothing to do.
	}
}

// moveEntity moves e to pos if it is still free, downgrading to a wait
// when another blocking entity got there first.
func (w *World) moveEntity(e *entity.Entity, pos tile.Position) {
	if !w.canMoveTo(pos, e.ID) {
		return
	}
	e.Position = pos
	if e.FOV != nil {
		e.FOV.Dirty = true
	}
}

func (w *World) moveEntityRandom(e *entity.Entity) {
	dir := entity.AllDirections[w.rng.Intn(len(entity.AllDirections))]
	dx, dy := dir.Delta()
	pos := e.Position.Add(dx, dy)
	w.moveEntity(e, pos)
}

// tickStatusEffects applies one turn of damage/heal per active effect on
// every entity, expires run-out effects, and handles any resulting deaths.
func (w *World) tickStatusEffects() {
	for _, e := range w.entities.All() {
		if len(e.StatusEffects) == 0 {
			continue
		}

		var result status.TickResult
		e.StatusEffects, result = status.Tick(e.StatusEffects)

		if result.Damage > 0 && e.Health != nil {
			w.applyDamage(e, result.Damage, "a lingering affliction")
			if w.gameOver {
				return
			}
		}
		if result.Healing > 0 && e.Health != nil {
			healed := result.Healing
			if e.Health.Current+healed > e.Health.Max {
				healed = e.Health.Max - e.Health.Current
			}
			if healed > 0 {
				e.Health.Current += healed
				w.emit(GameEvent{Kind: EvHealed, Target: e.ID, Amount: healed})
			}
		}
		for _, expired := range result.Expired {
			w.emit(GameEvent{Kind: EvStatusExpired, Target: e.ID, Status: expired})
			if e.ID == PlayerID {
				w.log("You are no longer %s.", expired)
			}
			if expired == status.Blinded && e.FOV != nil {
				e.FOV.Dirty = true
			}
		}
		if e.IsDead() && e.ID != PlayerID {
			w.handleEntityDeath(e, "a lingering affliction")
		}
	}
}

// applyLevelUpChoice consumes the pending level-up with the chosen stat
// allocation. Free action: the clock does not advance.
func (w *World) applyLevelUpChoice(choice level.Choice) {
	player := w.player()
	level.ApplyChoice(player, choice)
	switch choice {
	case level.ChoiceCleave:
		w.cleaveBonus++
	case level.ChoiceSpellPower:
		w.spellPowerBonus++
	case level.ChoiceManaRegen:
		w.manaRegenBonus++
	}
	w.pendingLevelUp = false
	w.log("You feel stronger.")
}
