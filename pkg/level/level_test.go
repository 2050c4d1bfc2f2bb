package level

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/entity"
)

func makePlayer() *entity.Entity {
	return &entity.Entity{
		Health: entity.NewHealth(50),
		Combat: &entity.CombatStats{BaseAttack: 5, BaseDefense: 2, BaseSpeed: 100, CritChance: 0.05},
	}
}

func TestXPToNextLevel_ScalesWithLevel(t *testing.T) {
	cases := map[uint32]uint32{1: 150, 5: 750, 10: 1500}
	for lvl, want := range cases {
		if got := XPToNextLevel(lvl); got != want {
			t.Errorf("XPToNextLevel(%d) = %d, want %d", lvl, got, want)
		}
	}
}

func TestCheckLevelUp_TriggersAtThreshold(t *testing.T) {
	should, remaining := CheckLevelUp(200, 1)
	if !should || remaining != 50 {
		t.Fatalf("CheckLevelUp = (%v, %d), want (true, 50)", should, remaining)
	}
}

func TestCheckLevelUp_BelowThreshold(t *testing.T) {
	should, remaining := CheckLevelUp(100, 1)
	if should || remaining != 100 {
		t.Fatalf("CheckLevelUp = (%v, %d), want (false, 100)", should, remaining)
	}
}

func TestApplyChoice_MaxHP(t *testing.T) {
	p := makePlayer()
	ApplyChoice(p, ChoiceMaxHP)
	if p.Health.Max != 60 || p.Health.Current != 60 {
		t.Fatalf("Health = %+v, want Max=60 Current=60", p.Health)
	}
}

func TestApplyChoice_Attack(t *testing.T) {
	p := makePlayer()
	ApplyChoice(p, ChoiceAttack)
	if p.Combat.BaseAttack != 7 {
		t.Fatalf("BaseAttack = %d, want 7", p.Combat.BaseAttack)
	}
}

func TestApplyChoice_Defense(t *testing.T) {
	p := makePlayer()
	ApplyChoice(p, ChoiceDefense)
	if p.Combat.BaseDefense != 4 {
		t.Fatalf("BaseDefense = %d, want 4", p.Combat.BaseDefense)
	}
}

func TestApplyChoice_Speed(t *testing.T) {
	p := makePlayer()
	ApplyChoice(p, ChoiceSpeed)
	if p.Combat.BaseSpeed != 115 {
		t.Fatalf("BaseSpeed = %d, want 115", p.Combat.BaseSpeed)
	}
}

func TestApplyChoice_CleaveIsNoOpOnEntity(t *testing.T) {
	p := makePlayer()
	before := *p.Combat
	ApplyChoice(p, ChoiceCleave)
	if *p.Combat != before {
		t.Fatal("Cleave should not mutate entity combat stats")
	}
}

func TestCalculateScore_NoVictory(t *testing.T) {
	if got := CalculateScore(5, 10, 1, 3, false); got != 1250 {
		t.Fatalf("score = %d, want 1250", got)
	}
}

func TestCalculateScore_WithVictory(t *testing.T) {
	if got := CalculateScore(10, 50, 3, 8, true); got != 8400 {
		t.Fatalf("score = %d, want 8400", got)
	}
}
