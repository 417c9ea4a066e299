package registrar

import (
	"strings"

	"github.com/leozw/domain-scout/internal/core"
)

var categoryKeywords = []struct {
	category core.DomainCategory
	keywords []string
}{
	{core.CategoryCrypto, []string{"crypto", "coin", "chain", "defi", "token", "wallet"}},
	{core.CategoryAI, []string{"ai", "gpt", "neural", "model", "agent", "bot"}},
	{core.CategoryWeb3, []string{"web3", "dao", "nft", "meta", "dapp"}},
	{core.CategoryGaming, []string{"game", "play", "quest", "arena", "guild"}},
	{core.CategoryFintech, []string{"pay", "bank", "cash", "invest", "fund", "ledger"}},
}

// Categorize classifies a domain by keyword match on its name. Pure and
// deterministic; used only to annotate results, never to filter them.
func Categorize(domain string) core.DomainCategory {
	name := strings.ToLower(domain)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}

	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.category
			}
		}
	}

	if len(name) > 0 && len(name) <= 4 {
		return core.CategoryPremiumShort
	}
	return core.CategoryStandard
}
