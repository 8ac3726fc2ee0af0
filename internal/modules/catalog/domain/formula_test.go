package domain_test

import (
	"math"
	"testing"

	"questlog/internal/modules/catalog/domain"
)

func TestAppraiseBoundaryEqualsBaseXP(t *testing.T) {
	t.Parallel()
	defs := []domain.Definition{
		{Name: "Read", BaseMinutes: 10, BaseXP: 5.0, Multiplier: 1.2},
		{Name: "Game", BaseMinutes: 30, BaseXP: 10.0, Multiplier: 1.2},
		{Name: "Run", BaseMinutes: 45, BaseXP: 7.0, Multiplier: 1.0},
	}
	for _, def := range defs {
		got, err := domain.Appraise(def, def.BaseMinutes)
		if err != nil {
			t.Fatalf("appraise %s: %v", def.Name, err)
		}
		if got.Partial {
			t.Fatalf("%s at boundary must not be partial", def.Name)
		}
		if got.XP != def.BaseXP {
			t.Fatalf("%s at boundary: expected %.2f, got %.2f", def.Name, def.BaseXP, got.XP)
		}
	}
}

func TestAppraiseAboveThresholdCompounds(t *testing.T) {
	t.Parallel()
	def := domain.Definition{Name: "Read", BaseMinutes: 10, BaseXP: 5.0, Multiplier: 1.2}

	// rate 0.5/min, 20 min, exponent 1: 0.5*20*1.2 = 12
	got, err := domain.Appraise(def, 20)
	if err != nil {
		t.Fatalf("appraise 20 min: %v", err)
	}
	if got.Partial || got.XP != 12 {
		t.Fatalf("expected whole 12 XP for 20 min, got %+v", got)
	}

	// exponent 2: 0.5*30*1.44 = 21.6 -> 22
	got, err = domain.Appraise(def, 30)
	if err != nil {
		t.Fatalf("appraise 30 min: %v", err)
	}
	if got.XP != 22 {
		t.Fatalf("expected 22 XP for 30 min, got %.2f", got.XP)
	}
}

func TestAppraiseSubThresholdIsLinear(t *testing.T) {
	t.Parallel()
	def := domain.Definition{Name: "Read", BaseMinutes: 10, BaseXP: 5.0, Multiplier: 1.2}
	got, err := domain.Appraise(def, 5)
	if err != nil {
		t.Fatalf("appraise 5 min: %v", err)
	}
	if !got.Partial {
		t.Fatalf("below threshold must be partial")
	}
	if got.XP != 2.50 {
		t.Fatalf("expected 2.50 XP for 5 min, got %.2f", got.XP)
	}

	for minutes := 1; minutes < def.BaseMinutes; minutes++ {
		got, err := domain.Appraise(def, minutes)
		if err != nil {
			t.Fatalf("appraise %d min: %v", minutes, err)
		}
		want := def.BaseXP * float64(minutes) / float64(def.BaseMinutes)
		if math.Abs(got.XP-want) > 0.005 {
			t.Fatalf("%d min: expected ~%.2f, got %.2f", minutes, want, got.XP)
		}
	}
}

func TestAppraiseMonotonicAboveThreshold(t *testing.T) {
	t.Parallel()
	def := domain.Definition{Name: "Deep Work", BaseMinutes: 25, BaseXP: 8.0, Multiplier: 1.3}
	prev := 0.0
	for minutes := def.BaseMinutes; minutes <= def.BaseMinutes*6; minutes++ {
		got, err := domain.Appraise(def, minutes)
		if err != nil {
			t.Fatalf("appraise %d min: %v", minutes, err)
		}
		if got.XP < prev {
			t.Fatalf("xp decreased at %d min: %.2f < %.2f", minutes, got.XP, prev)
		}
		prev = got.XP
	}
	// strictly increasing over the span even if single steps round flat
	first, _ := domain.Appraise(def, def.BaseMinutes)
	last, _ := domain.Appraise(def, def.BaseMinutes*6)
	if last.XP <= first.XP {
		t.Fatalf("expected growth over span, got %.2f -> %.2f", first.XP, last.XP)
	}
}

func TestAppraiseUnitMultiplierStaysProportional(t *testing.T) {
	t.Parallel()
	def := domain.Definition{Name: "Chores", BaseMinutes: 10, BaseXP: 5.0, Multiplier: 1.0}
	got, err := domain.Appraise(def, 40)
	if err != nil {
		t.Fatalf("appraise: %v", err)
	}
	if got.XP != 20 {
		t.Fatalf("multiplier 1 must scale linearly: expected 20, got %.2f", got.XP)
	}
}

func TestAppraiseRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	def := domain.Definition{Name: "Read", BaseMinutes: 10, BaseXP: 5.0, Multiplier: 1.2}
	if _, err := domain.Appraise(def, 0); err == nil {
		t.Fatalf("zero minutes must fail")
	}
	bad := def
	bad.Multiplier = 0.5
	if _, err := domain.Appraise(bad, 10); err == nil {
		t.Fatalf("invalid definition must fail")
	}
}
