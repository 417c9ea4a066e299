package bots

// UnexploredBot goes after frontier-flavored names: expedition words
// joined with destination words, occasionally glued with a hyphen.
type UnexploredBot struct {
	seeder
	Themes       []string
	Destinations []string
	TLDs         []string
}

func NewUnexploredBot() *UnexploredBot {
	return &UnexploredBot{
		Themes:       []string{"frontier", "uncharted", "terra", "nova", "pioneer", "venture", "expedition", "horizon"},
		Destinations: []string{"lands", "realm", "zone", "field", "reach", "trail", "ridge", "basin", "coast", "peak"},
		TLDs:         []string{"com", "io", "net", "world"},
	}
}

func (b *UnexploredBot) Strategy() string { return "unexplored" }

func (b *UnexploredBot) GenerateCandidates() []string {
	rnd := b.newRand()
	candidates := make([]string, 0, len(b.Themes)*len(b.Destinations))

	for _, theme := range b.Themes {
		for _, dest := range b.Destinations {
			tld := pick(rnd, b.TLDs)
			if tld == "" {
				continue
			}
			name := theme + dest
			if rnd.Intn(4) == 0 {
				name = theme + "-" + dest
			}
			candidates = append(candidates, name+"."+tld)
		}
	}

	return shuffleTrim(rnd, candidates)
}
