package engine

import (
	"github.com/tholloway/roguecore/pkg/ai"
	"github.com/tholloway/roguecore/pkg/combat"
	"github.com/tholloway/roguecore/pkg/content"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/level"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// resolveAttack runs one melee or ranged attack from attacker to target,
// applying dodge, damage, on-hit effects, and death handling.
func (w *World) resolveAttack(attacker, target *entity.Entity, ranged bool) {
	if target.Health == nil {
		return
	}

	if target.Combat != nil && target.Combat.DodgeChance > 0 {
		if w.rng.Float64() < target.Combat.DodgeChance {
			if target.ID == PlayerID {
				w.log("You dodge the %s's attack.", attacker.Name)
			} else if attacker.ID == PlayerID {
				w.log("The %s dodges your attack.", target.Name)
			}
			return
		}
	}

	var result combat.AttackResult
	if ranged {
		result = combat.ResolveRangedAttack(attacker, target, w.rng.Rand())
	} else {
		result = combat.ResolveAttack(attacker, target, w.rng.Rand())
	}

	w.emit(GameEvent{
		Kind:   EvAttacked,
		Actor:  attacker.ID,
		Target: target.ID,
		Damage: result.Damage,
		Crit:   result.IsCrit,
		Killed: result.Killed,
	})
	if attacker.ID == PlayerID {
		if result.IsCrit {
			w.log("You critically hit the %s for %d damage!", target.Name, result.Damage)
		} else {
			w.log("You hit the %s for %d damage.", target.Name, result.Damage)
		}
	} else if target.ID == PlayerID {
		w.log("The %s hits you for %d damage.", attacker.Name, result.Damage)
	}

	w.applyDamage(target, result.Damage, attacker.Name)
	w.applyOnHitEffect(attacker, target)

	if target.IsDead() && target.ID != PlayerID {
		w.handleEntityDeath(target, attacker.Name)
	}
}

// applyDamage routes damage through shield absorption into HP, wakes
// passive targets, and triggers boss phase transitions and player death
// bookkeeping. It does not handle non-player death; attack and tick sites
// do that so they can credit the right killer.
func (w *World) applyDamage(target *entity.Entity, damage int, source string) {
	if target.Health == nil || damage <= 0 {
		return
	}

	target.StatusEffects, damage = status.AbsorbShieldDamage(target.StatusEffects, damage)
	if damage <= 0 {
		if target.ID == PlayerID {
			w.log("Your shield absorbs the blow.")
		}
		return
	}

	target.Health.Current -= damage
	if target.Health.Current < 0 {
		target.Health.Current = 0
	}
	w.emit(GameEvent{Kind: EvDamageTaken, Target: target.ID, Damage: damage})

	ai.ActivatePassive(target)

	if target.AI != nil && target.AI.Kind == entity.Boss {
		if ai.CheckBossPhase(target) {
			w.log("The %s becomes frenzied!", target.Name)
		}
	}

	if target.ID == PlayerID {
		w.lastDamageSource = source
		if target.IsDead() {
			w.handlePlayerDeath()
		}
	}
}

// applyOnHitEffect rolls the attacker's weapon/innate on-hit status
// against target.
func (w *World) applyOnHitEffect(attacker, target *entity.Entity) {
	if target.IsDead() {
		return
	}
	onHit := w.onHitEffectFor(attacker)
	if onHit == nil {
		return
	}
	if w.rng.Float64() >= onHit.Chance {
		return
	}
	if target.IsBoss() && (onHit.Effect == status.Stunned || onHit.Effect == status.Confused) {
		return
	}
	target.StatusEffects = status.Apply(
		target.StatusEffects, target.IsBoss(),
		onHit.Effect, onHit.Duration, onHit.Magnitude, attacker.Name,
	)
	w.emit(GameEvent{Kind: EvStatusApplied, Target: target.ID, Status: onHit.Effect})
	if target.ID == PlayerID {
		w.log("You are afflicted with %s!", onHit.Effect)
	}
}

// onHitEffectFor prefers an armed Poison Strike, then the equipped
// main-hand weapon's on-hit effect, then the entity's innate one.
func (w *World) onHitEffectFor(attacker *entity.Entity) *entity.OnHitEffect {
	if attacker.ID == PlayerID && w.poisonStrike != nil {
		armed := w.poisonStrike
		w.poisonStrike = nil
		return armed
	}
	if attacker.Equipment != nil && attacker.Inventory != nil && attacker.Equipment.MainHand != nil {
		for _, item := range attacker.Inventory.Items {
			if item.ID == *attacker.Equipment.MainHand && item.Item != nil && item.Item.Effect != nil {
				if item.Item.Effect.RangedStatus != nil {
					return item.Item.Effect.RangedStatus
				}
			}
		}
	}
	if attacker.Combat != nil {
		return attacker.Combat.OnHit
	}
	return nil
}

// handleEntityDeath removes a dead non-player entity, pays out XP, gold,
// and loot, and checks for boss defeat and victory.
func (w *World) handleEntityDeath(victim *entity.Entity, killer string) {
	w.log("The %s dies.", victim.Name)

	isBoss := victim.IsBoss()
	w.enemiesKilled++
	if isBoss {
		w.bossesKilled++
		w.emit(GameEvent{Kind: EvBossDefeated, Target: victim.ID})
		w.log("The %s has been defeated!", victim.Name)
	}

	w.grantXP(level.XPForKill(victim))
	w.dropLoot(victim)
	w.entities.Remove(victim.ID)
	delete(w.spottedEnemies, victim.ID)

	if isBoss && w.floor == 10 {
		w.victory = true
		w.gameOver = true
		w.emit(GameEvent{Kind: EvVictory})
		w.log("The dungeon's master is slain. You are victorious!")
	}
}

// grantXP adds xp and flags a pending level-up when a threshold is
// crossed. Leveling pauses the run until the player picks an allocation.
func (w *World) grantXP(xp uint32) {
	if xp == 0 {
		return
	}
	w.playerXP += xp
	leveled, remaining := level.CheckLevelUp(w.playerXP, w.playerLevel+1)
	if leveled {
		w.playerXP = remaining
		w.playerLevel++
		w.pendingLevelUp = true
		w.emit(GameEvent{Kind: EvLevelUp, NewLevel: w.playerLevel + 1})
		w.log("Welcome to level %d! Choose an advancement.", w.playerLevel+1)
	}
}

// dropLoot rolls the victim's loot table and a gold drop at its tile.
func (w *World) dropLoot(victim *entity.Entity) {
	goldDrop := uint32(w.rng.IntRange(1, 5)) * w.floor
	if goldDrop > 0 {
		w.gold += goldDrop
		w.emit(GameEvent{Kind: EvGoldGained, Amount: int(goldDrop)})
		w.log("You find %d gold.", goldDrop)
	}

	if victim.LootTable == nil || len(victim.LootTable.Entries) == 0 {
		return
	}
	weights := make([]float64, len(victim.LootTable.Entries))
	for i, e := range victim.LootTable.Entries {
		weights[i] = float64(e.Weight)
	}
	idx := w.rng.WeightedChoice(weights)
	if idx < 0 {
		return
	}
	tmpl, ok := w.tables.FindItem(victim.LootTable.Entries[idx].ItemName)
	if !ok {
		return
	}
	item := w.newItemEntity(tmpl.Name, victim.Position)
	if item != nil {
		w.entities.Add(item)
	}
}

// newItemEntity instantiates a floor item from the named template.
func (w *World) newItemEntity(name string, pos tile.Position) *entity.Entity {
	tmpl, ok := w.tables.FindItem(name)
	if !ok {
		return nil
	}
	glyph := '?'
	for _, r := range tmpl.Glyph {
		glyph = r
		break
	}
	return &entity.Entity{
		Name:        tmpl.Name,
		Position:    pos,
		Glyph:       glyph,
		RenderOrder: entity.ItemOrder,
		Item:        content.ToItemProperties(tmpl),
	}
}

// handlePlayerDeath ends the run.
func (w *World) handlePlayerDeath() {
	if w.gameOver {
		return
	}
	w.gameOver = true
	w.emit(GameEvent{Kind: EvPlayerDied})
	if w.lastDamageSource != "" {
		w.log("You were slain by %s. Your run ends on floor %d.", w.lastDamageSource, w.floor)
	} else {
		w.log("You die. Your run ends on floor %d.", w.floor)
	}
}

// --- Boss specials ---

// bossSummon spawns 1-2 minions at free tiles adjacent to boss. In the
// second phase the summons come from the ranged pool when available.
func (w *World) bossSummon(boss *entity.Entity, archers bool) {
	pool := w.tables.EnemyPool(w.floor)
	if len(pool) == 0 {
		return
	}
	var candidates []content.EnemyTemplate
	for _, tmpl := range pool {
		isRanged := tmpl.AI.Kind == "ranged"
		if isRanged == archers {
			candidates = append(candidates, tmpl)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	count := w.rng.IntRange(1, 2)
	spawned := 0
	for _, neighbor := range boss.Position.Neighbors8() {
		if spawned >= count {
			break
		}
		if !w.canMoveTo(neighbor, boss.ID) {
			continue
		}
		tmpl := candidates[w.rng.Intn(len(candidates))]
		minion := w.newEnemyFromTemplate(tmpl, neighbor)
		w.entities.Add(minion)
		spawned++
	}
	if spawned > 0 {
		w.log("The %s summons reinforcements!", boss.Name)
	}
}

func (w *World) newEnemyFromTemplate(tmpl content.EnemyTemplate, pos tile.Position) *entity.Entity {
	glyph := 'm'
	for _, r := range tmpl.Glyph {
		glyph = r
		break
	}
	return &entity.Entity{
		Name:           tmpl.Name,
		Position:       pos,
		Glyph:          glyph,
		RenderOrder:    entity.EnemyOrder,
		BlocksMovement: true,
		Health:         entity.NewHealth(tmpl.HP),
		Combat:         content.ToCombatStats(tmpl),
		AI:             content.ToAIBehavior(tmpl.AI),
		FOV:            entity.NewFieldOfView(6),
	}
}

// bossCharge rushes the boss along the line to the player, stopping
// adjacent, then strikes; a phase-two charge also stuns.
func (w *World) bossCharge(boss *entity.Entity, stun bool) {
	player := w.player()
	w.log("The %s charges!", boss.Name)

	for boss.Position.ChebyshevDistance(player.Position) > 1 {
		next := stepToward(boss.Position, player.Position)
		if !w.canMoveTo(next, boss.ID) {
			break
		}
		boss.Position = next
	}
	if boss.FOV != nil {
		boss.FOV.Dirty = true
	}

	if boss.Position.ChebyshevDistance(player.Position) <= 1 {
		w.resolveAttack(boss, player, false)
		if stun && !w.gameOver {
			player.StatusEffects = status.Apply(player.StatusEffects, false, status.Stunned, 2, 0, boss.Name)
			w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: status.Stunned})
			w.log("The impact stuns you!")
		}
	}
}

// bossTeleport blinks the boss to a walkable tile 4-7 tiles from the
// player, escaping melee range.
func (w *World) bossTeleport(boss *entity.Entity) {
	player := w.player()
	for attempt := 0; attempt < 30; attempt++ {
		x := w.rng.Intn(w.gameMap.Width)
		y := w.rng.Intn(w.gameMap.Height)
		pos := tile.Position{X: x, Y: y}
		d := pos.ChebyshevDistance(player.Position)
		if d < 4 || d > 7 || !w.canMoveTo(pos, boss.ID) {
			continue
		}
		boss.Position = pos
		if boss.FOV != nil {
			boss.FOV.Dirty = true
		}
		w.log("The %s vanishes and reappears across the room!", boss.Name)
		return
	}
}

// bossFrostBolt is a ranged strike that also chills the player.
func (w *World) bossFrostBolt(boss *entity.Entity) {
	player := w.player()
	w.emit(GameEvent{Kind: EvProjectileFired, Actor: boss.ID, Target: PlayerID})
	w.log("The %s hurls a bolt of frost!", boss.Name)
	w.resolveAttack(boss, player, true)
	if !w.gameOver && !player.IsDead() {
		player.StatusEffects = status.Apply(player.StatusEffects, false, status.Slowed, 3, 0, boss.Name)
		w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: status.Slowed})
		w.log("Frost crusts your limbs. You feel sluggish.")
	}
}

// stepToward returns the position one step from from in the direction of
// to, moving diagonally when both axes differ.
func stepToward(from, to tile.Position) tile.Position {
	step := from
	if to.X > from.X {
		step.X++
	} else if to.X < from.X {
		step.X--
	}
	if to.Y > from.Y {
		step.Y++
	} else if to.Y < from.Y {
		step.Y--
	}
	return step
}
