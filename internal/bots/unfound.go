package bots

// UnfoundBot chases names nobody went looking for: scarcity words
// paired with object words, plus numbered variants.
type UnfoundBot struct {
	seeder
	Qualifiers []string
	Objects    []string
	TLDs       []string
}

func NewUnfoundBot() *UnfoundBot {
	return &UnfoundBot{
		Qualifiers: []string{"lost", "missing", "unfound", "forgotten", "stray", "orphan", "rare", "last"},
		Objects:    []string{"relic", "token", "page", "archive", "record", "letter", "map", "coin", "print", "draft"},
		TLDs:       []string{"com", "net", "org", "io"},
	}
}

func (b *UnfoundBot) Strategy() string { return "unfound" }

func (b *UnfoundBot) GenerateCandidates() []string {
	rnd := b.newRand()
	candidates := make([]string, 0, len(b.Qualifiers)*len(b.Objects))

	for _, qual := range b.Qualifiers {
		for _, obj := range b.Objects {
			tld := pick(rnd, b.TLDs)
			if tld == "" {
				continue
			}
			name := qual + obj
			if rnd.Intn(5) == 0 {
				name = name + string('0'+byte(rnd.Intn(10)))
			}
			candidates = append(candidates, name+"."+tld)
		}
	}

	return shuffleTrim(rnd, candidates)
}
