package game

import (
	"testing"
	"time"
)

func TestCredit_ClampsToMax(t *testing.T) {
	p := NewPlayer(1, "tony", 1)
	p.Energy = 90

	if got := p.Credit(FieldEnergy, 25); got != p.MaxEnergy {
		t.Fatalf("expected energy clamped to %d, got %d", p.MaxEnergy, got)
	}
	if got := p.Credit(FieldCash, 500); got != DefaultCash+500 {
		t.Fatalf("expected cash %d, got %d", DefaultCash+500, got)
	}
}

func TestDebit_FailsBelowFloor(t *testing.T) {
	p := NewPlayer(1, "tony", 1)
	p.Cash = 100

	if _, ok := p.Debit(FieldCash, 101); ok {
		t.Fatalf("debit below floor should fail")
	}
	if p.Cash != 100 {
		t.Fatalf("failed debit must not mutate, cash=%d", p.Cash)
	}
	if got, ok := p.Debit(FieldCash, 100); !ok || got != 0 {
		t.Fatalf("exact debit should succeed to zero, got=%d ok=%v", got, ok)
	}
}

func TestDebit_RespectMayGoNegative(t *testing.T) {
	p := NewPlayer(1, "tony", 1)
	p.Respect = 5

	got, ok := p.Debit(FieldRespect, 10)
	if !ok || got != -5 {
		t.Fatalf("respect has no floor, got=%d ok=%v", got, ok)
	}
}

func TestDamage_BottomsOutAtZero(t *testing.T) {
	p := NewPlayer(1, "tony", 1)
	p.Health = 30

	if got := p.Damage(50); got != 0 {
		t.Fatalf("expected health 0, got %d", got)
	}
}

func TestJail_ExtendsFromReleaseTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := NewPlayer(1, "tony", 1)

	p.Jail(now, 60)
	if !p.Jailed(now) {
		t.Fatalf("expected jailed")
	}
	p.Jail(now, 30)
	if got := p.JailRemainingSeconds(now); got != 90 {
		t.Fatalf("expected extension to 90s, got %d", got)
	}

	p.ReleaseFromJail()
	if p.Jailed(now) {
		t.Fatalf("expected released")
	}
}

func TestJailRemainingSeconds_RoundsUp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := NewPlayer(1, "tony", 1)
	until := now.Add(1500 * time.Millisecond)
	p.JailUntil = &until

	if got := p.JailRemainingSeconds(now); got != 2 {
		t.Fatalf("expected 2s remaining, got %d", got)
	}
}

func TestRaiseMaxHealth_NeverLowers(t *testing.T) {
	p := NewPlayer(1, "tony", 1)
	p.Health = 40

	p.RaiseMaxHealth(150)
	if p.MaxHealth != 150 || p.Health != 150 {
		t.Fatalf("expected 150/150, got %d/%d", p.Health, p.MaxHealth)
	}
	p.RaiseMaxHealth(120)
	if p.MaxHealth != 150 {
		t.Fatalf("max health must not shrink, got %d", p.MaxHealth)
	}
}
