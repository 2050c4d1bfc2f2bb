package entity

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/tile"
)

func TestHealth_IsDead(t *testing.T) {
	h := NewHealth(10)
	if h.IsDead() {
		t.Fatal("full health should not be dead")
	}
	h.Current = 0
	if !h.IsDead() {
		t.Fatal("zero HP should be dead")
	}
}

func TestEntity_IsBoss(t *testing.T) {
	e := &Entity{AI: &AIBehavior{Kind: Boss, BossName: "The Lich"}}
	if !e.IsBoss() {
		t.Fatal("expected IsBoss to be true for Boss AI kind")
	}
	e2 := &Entity{AI: &AIBehavior{Kind: Melee}}
	if e2.IsBoss() {
		t.Fatal("expected IsBoss to be false for Melee AI kind")
	}
}

func TestEquipmentSlots_GetSet(t *testing.T) {
	slots := &EquipmentSlots{}
	id := ID(7)
	slots.Set(Ring, &id)
	got := slots.Get(Ring)
	if got == nil || *got != id {
		t.Fatalf("Get(Ring) = %v, want %v", got, id)
	}
	if slots.Get(Amulet) != nil {
		t.Fatal("unset slot should return nil")
	}
}

func TestInventory_IsFull(t *testing.T) {
	inv := &Inventory{MaxSize: 2}
	if inv.IsFull() {
		t.Fatal("empty inventory should not be full")
	}
	inv.Items = append(inv.Items, &Entity{}, &Entity{})
	if !inv.IsFull() {
		t.Fatal("inventory at MaxSize should be full")
	}
}

func TestStore_AddGetRemove_PreservesOrder(t *testing.T) {
	s := NewStore()
	a := s.Add(&Entity{Name: "a"})
	b := s.Add(&Entity{Name: "b"})
	c := s.Add(&Entity{Name: "c"})

	all := s.All()
	if len(all) != 3 || all[0].Name != "a" || all[1].Name != "b" || all[2].Name != "c" {
		t.Fatalf("unexpected order: %v", all)
	}

	s.Remove(b)
	all = s.All()
	if len(all) != 2 || all[0].Name != "a" || all[1].Name != "c" {
		t.Fatalf("unexpected order after removal: %v", all)
	}
	if s.Get(a) == nil || s.Get(c) == nil {
		t.Fatal("remaining entities should still be gettable")
	}
	if s.Get(b) != nil {
		t.Fatal("removed entity should no longer be gettable")
	}
}

func TestStore_EntityAt_OnlyBlockingEntities(t *testing.T) {
	s := NewStore()
	pos := tile.Position{X: 3, Y: 4}
	s.Add(&Entity{Name: "item", Position: pos, BlocksMovement: false})
	blocker := &Entity{Name: "goblin", Position: pos, BlocksMovement: true}
	s.Add(blocker)

	got, ok := s.EntityAt(pos)
	if !ok || got.Name != "goblin" {
		t.Fatalf("EntityAt = %v, %v; want goblin", got, ok)
	}

	if _, ok := s.EntityAt(tile.Position{X: 0, Y: 0}); ok {
		t.Fatal("expected no blocking entity at empty position")
	}
}

func TestItemType_IsConsumableIsEquipment(t *testing.T) {
	if !Potion.IsConsumable() {
		t.Fatal("Potion should be consumable")
	}
	if Weapon.IsConsumable() {
		t.Fatal("Weapon should not be consumable")
	}
	if !Weapon.IsEquipment() {
		t.Fatal("Weapon should be equipment")
	}
	if Potion.IsEquipment() {
		t.Fatal("Potion should not be equipment")
	}
}
