package bots

import (
	"fmt"
	"math/rand"
	"time"
)

// MaxCandidates bounds the size of a single generation batch.
const MaxCandidates = 120

// DomainBot produces a batch of candidate domain names. Generation is
// pure: no I/O, never fails, fresh randomness on every call.
type DomainBot interface {
	Strategy() string
	GenerateCandidates() []string
}

// New returns the bot implementing the named strategy.
func New(strategy string) (DomainBot, error) {
	switch strategy {
	case "hidden":
		return NewHiddenBot(), nil
	case "nested":
		return NewNestedBot(), nil
	case "unexplored":
		return NewUnexploredBot(), nil
	case "unseen":
		return NewUnseenBot(), nil
	case "unfound":
		return NewUnfoundBot(), nil
	}
	return nil, fmt.Errorf("unknown bot strategy: %s", strategy)
}

// seeder supplies the per-call randomness source. A zero Seed means
// wall-clock seeding; tests set Seed for deterministic output.
type seeder struct {
	Seed int64
}

func (s seeder) newRand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// shortCode returns a random alphanumeric code of 3 to 5 characters,
// used by strategies that favor cryptic short domains.
func shortCode(rnd *rand.Rand) string {
	n := 3 + rnd.Intn(3)
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[rnd.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// pick returns a random element, or "" when the list is empty.
func pick(rnd *rand.Rand, list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[rnd.Intn(len(list))]
}

// shuffleTrim shuffles candidates in place and caps the batch size.
func shuffleTrim(rnd *rand.Rand, candidates []string) []string {
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	return candidates
}
