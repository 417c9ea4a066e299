package bots

import (
	"math/rand"
	"strings"
	"testing"
)

func allBots() []DomainBot {
	return []DomainBot{
		NewHiddenBot(),
		NewNestedBot(),
		NewUnexploredBot(),
		NewUnseenBot(),
		NewUnfoundBot(),
	}
}

func TestGenerateCandidates_Bounds(t *testing.T) {
	for _, bot := range allBots() {
		candidates := bot.GenerateCandidates()
		if len(candidates) == 0 {
			t.Fatalf("%s: expected candidates, got none", bot.Strategy())
		}
		if len(candidates) > MaxCandidates {
			t.Fatalf("%s: got %d candidates, cap is %d", bot.Strategy(), len(candidates), MaxCandidates)
		}
		for _, c := range candidates {
			if c == "" {
				t.Fatalf("%s: empty candidate", bot.Strategy())
			}
			if !strings.Contains(c, ".") {
				t.Fatalf("%s: candidate %q has no TLD", bot.Strategy(), c)
			}
			if strings.ContainsAny(c, " \t\n") {
				t.Fatalf("%s: candidate %q contains whitespace", bot.Strategy(), c)
			}
		}
	}
}

func TestGenerateCandidates_EmptyVocabulary(t *testing.T) {
	empty := []DomainBot{
		&HiddenBot{},
		&NestedBot{},
		&UnexploredBot{},
		&UnseenBot{},
		&UnfoundBot{},
	}
	for _, bot := range empty {
		if got := bot.GenerateCandidates(); len(got) != 0 {
			t.Errorf("%s: empty vocabulary should yield no candidates, got %d", bot.Strategy(), len(got))
		}
	}
}

func TestGenerateCandidates_SeededDeterminism(t *testing.T) {
	a := NewHiddenBot()
	a.Seed = 42
	b := NewHiddenBot()
	b.Seed = 42

	first := a.GenerateCandidates()
	second := b.GenerateCandidates()
	if len(first) != len(second) {
		t.Fatalf("seeded runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seeded runs differ at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestShortCode(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		code := shortCode(rnd)
		if len(code) < 3 || len(code) > 5 {
			t.Fatalf("short code %q outside 3-5 chars", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("short code %q has invalid char %q", code, r)
			}
		}
	}

	// Same seed, same sequence
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		if x, y := shortCode(a), shortCode(b); x != y {
			t.Fatalf("seeded short codes diverged: %q vs %q", x, y)
		}
	}
}

func TestNew_KnownStrategies(t *testing.T) {
	for _, name := range []string{"hidden", "nested", "unexplored", "unseen", "unfound"} {
		bot, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if bot.Strategy() != name {
			t.Fatalf("New(%q) returned strategy %q", name, bot.Strategy())
		}
	}
	if _, err := New("bogus"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
