package bots

// UnseenBot leans on cryptic short codes: bare codes, coded prefixes
// and suffixes. Most of its batch is unpronounceable on purpose.
type UnseenBot struct {
	seeder
	Anchors []string
	TLDs    []string
}

func NewUnseenBot() *UnseenBot {
	return &UnseenBot{
		Anchors: []string{"x", "zero", "ghost", "void", "null", "echo"},
		TLDs:    []string{"io", "xyz", "app", "gg"},
	}
}

func (b *UnseenBot) Strategy() string { return "unseen" }

func (b *UnseenBot) GenerateCandidates() []string {
	rnd := b.newRand()
	if len(b.TLDs) == 0 {
		return nil
	}

	candidates := make([]string, 0, 100)
	for i := 0; i < 60; i++ {
		candidates = append(candidates, shortCode(rnd)+"."+pick(rnd, b.TLDs))
	}
	for _, anchor := range b.Anchors {
		for i := 0; i < 6; i++ {
			candidates = append(candidates, anchor+shortCode(rnd)+"."+pick(rnd, b.TLDs))
		}
	}

	return shuffleTrim(rnd, candidates)
}
