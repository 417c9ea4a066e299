package bots

// HiddenBot hunts for names that sound tucked away: stealthy prefixes
// over common words, plus a handful of cryptic short codes.
type HiddenBot struct {
	seeder
	Prefixes []string
	Words    []string
	TLDs     []string
}

func NewHiddenBot() *HiddenBot {
	return &HiddenBot{
		Prefixes: []string{"hidden", "secret", "stealth", "shadow", "covert", "masked", "veiled", "cloaked"},
		Words:    []string{"vault", "garden", "market", "signal", "forge", "cellar", "door", "path", "key", "lair"},
		TLDs:     []string{"com", "io", "net", "xyz"},
	}
}

func (b *HiddenBot) Strategy() string { return "hidden" }

func (b *HiddenBot) GenerateCandidates() []string {
	rnd := b.newRand()
	candidates := make([]string, 0, len(b.Prefixes)*len(b.Words))

	for _, prefix := range b.Prefixes {
		for _, word := range b.Words {
			tld := pick(rnd, b.TLDs)
			if tld == "" {
				continue
			}
			candidates = append(candidates, prefix+word+"."+tld)
		}
	}

	// A few cryptic short-code names round out the batch
	for i := 0; i < 10 && len(b.TLDs) > 0; i++ {
		candidates = append(candidates, shortCode(rnd)+"."+pick(rnd, b.TLDs))
	}

	return shuffleTrim(rnd, candidates)
}
