package bots

// NestedBot layers two vocabulary words into compound names
// (deepstack, innercore, ...) across its TLD set.
type NestedBot struct {
	seeder
	Outer []string
	Inner []string
	TLDs  []string
}

func NewNestedBot() *NestedBot {
	return &NestedBot{
		Outer: []string{"deep", "inner", "nested", "layer", "sub", "meta", "under", "intra"},
		Inner: []string{"stack", "core", "node", "cell", "loop", "frame", "grid", "nest", "ring", "shell"},
		TLDs:  []string{"com", "io", "dev", "net"},
	}
}

func (b *NestedBot) Strategy() string { return "nested" }

func (b *NestedBot) GenerateCandidates() []string {
	rnd := b.newRand()
	candidates := make([]string, 0, len(b.Outer)*len(b.Inner))

	for _, outer := range b.Outer {
		for _, inner := range b.Inner {
			tld := pick(rnd, b.TLDs)
			if tld == "" {
				continue
			}
			candidates = append(candidates, outer+inner+"."+tld)
		}
	}

	return shuffleTrim(rnd, candidates)
}
