package registrar

import (
	"context"
	"encoding/xml"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/core"
)

// Cache is an optional read-through cache for availability results.
// Implementations must treat misses as (nil, false) and never block the
// caller on cache failures.
type Cache interface {
	GetAvailability(ctx context.Context, domain string) (*core.AvailabilityResult, bool)
	SetAvailability(ctx context.Context, result *core.AvailabilityResult)
}

var variationPrefixes = []string{"get", "try", "use", "my", "go", "the"}
var variationSuffixes = []string{"app", "hub", "hq", "labs", "pro", "now"}

// Client talks to the registrar availability API. Mode (demo vs live) is
// fixed at construction. All outbound calls from one client are
// serialized at no more than one per MinIntervalMs.
type Client struct {
	cfg        config.RegistrarConfig
	demo       bool
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	logger     *zap.Logger
}

func NewClient(cfg config.RegistrarConfig, cache Cache, logger *zap.Logger) *Client {
	interval := time.Duration(cfg.MinIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	demo := cfg.Demo || cfg.APIUser == "" || cfg.APIKey == ""
	if demo {
		logger.Info("Registrar client in demo mode, no outbound calls will be made")
	}

	return &Client{
		cfg:        cfg,
		demo:       demo,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		cache:      cache,
		logger:     logger,
	}
}

// DemoMode reports whether the client synthesizes results locally.
func (c *Client) DemoMode() bool { return c.demo }

// CheckAvailability checks a single domain. Live mode issues exactly one
// rate-limited API call; demo mode synthesizes the result with no I/O.
func (c *Client) CheckAvailability(ctx context.Context, domain string) (*core.AvailabilityResult, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return nil, ErrEmptyDomainList
	}

	if c.demo {
		return c.synthesize(domain), nil
	}

	if c.cache != nil {
		if cached, ok := c.cache.GetAvailability(ctx, domain); ok {
			return cached, nil
		}
	}

	results, err := c.callProvider(ctx, "checkAvailability", []string{domain})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, protocolErr("checkAvailability", http.StatusOK, []ProviderError{
			{Number: "0", Message: fmt.Sprintf("no result returned for %s", domain)},
		})
	}

	result := results[0]
	if c.cache != nil {
		c.cache.SetAvailability(ctx, result)
	}
	return result, nil
}

// CheckMultiple checks a batch of domains with a single API round trip.
// The call fails atomically: a transport or protocol error returns no
// partial results. Callers wanting skip-and-continue semantics batch
// externally, as GenerateVariations does.
func (c *Client) CheckMultiple(ctx context.Context, domains []string) ([]*core.AvailabilityResult, error) {
	if len(domains) == 0 {
		return nil, ErrEmptyDomainList
	}

	if c.demo {
		results := make([]*core.AvailabilityResult, 0, len(domains))
		for _, d := range domains {
			results = append(results, c.synthesize(strings.TrimSpace(strings.ToLower(d))))
		}
		return results, nil
	}

	return c.callProvider(ctx, "checkMultiple", domains)
}

// GenerateVariations expands a base name into prefixed/suffixed variants
// across the given TLDs and checks them in fixed-size batches. A failed
// batch is logged and skipped; the scan continues with the next batch.
// Only domains determined available are returned.
func (c *Client) GenerateVariations(ctx context.Context, base string, tlds []string) ([]*core.AvailabilityResult, error) {
	base = strings.TrimSpace(strings.ToLower(base))
	if base == "" {
		return nil, ErrEmptyDomainList
	}
	if len(tlds) == 0 {
		tlds = []string{"com"}
	}

	var candidates []string
	for _, tld := range tlds {
		candidates = append(candidates, base+"."+tld)
		for _, suffix := range variationSuffixes {
			candidates = append(candidates, base+suffix+"."+tld)
		}
		for _, prefix := range variationPrefixes {
			candidates = append(candidates, prefix+base+"."+tld)
		}
	}

	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	var available []*core.AvailabilityResult
	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]

		results, err := c.CheckMultiple(ctx, batch)
		if err != nil {
			// One bad batch must not abort the whole scan
			c.logger.Warn("Variation batch failed, skipping",
				zap.String("base", base),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			continue
		}
		for _, r := range results {
			if r.Available {
				available = append(available, r)
			}
		}
	}

	return available, nil
}

// apiResponse mirrors the provider's XML envelope.
type apiResponse struct {
	XMLName xml.Name            `xml:"ApiResponse"`
	Status  string              `xml:"Status,attr"`
	Errors  []apiError          `xml:"Errors>Error"`
	Results []domainCheckResult `xml:"CommandResponse>DomainCheckResult"`
}

type apiError struct {
	Number  string `xml:"Number,attr"`
	Message string `xml:",chardata"`
}

type domainCheckResult struct {
	Domain                   string  `xml:"Domain,attr"`
	Available                bool    `xml:"Available,attr"`
	IsPremiumName            bool    `xml:"IsPremiumName,attr"`
	PremiumRegistrationPrice float64 `xml:"PremiumRegistrationPrice,attr"`
}

// callProvider performs one rate-limited GET against the registrar API.
func (c *Client) callProvider(ctx context.Context, op string, domains []string) ([]*core.AvailabilityResult, error) {
	// Rate limit: wait out the remainder of the minimum interval since
	// the previous call before going out. Serializes concurrent callers.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, transportErr(op, err)
	}

	params := url.Values{}
	params.Set("ApiUser", c.cfg.APIUser)
	params.Set("ApiKey", c.cfg.APIKey)
	params.Set("UserName", c.cfg.Username)
	params.Set("ClientIp", c.cfg.ClientIP)
	params.Set("Command", "namecheap.domains.check")
	params.Set("DomainList", strings.Join(domains, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, transportErr(op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, protocolErr(op, resp.StatusCode, []ProviderError{
			{Number: "0", Message: fmt.Sprintf("unexpected HTTP status: %s", resp.Status)},
		})
	}

	var parsed apiResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, transportErr(op, fmt.Errorf("failed to parse provider response: %w", err))
	}

	if !strings.EqualFold(parsed.Status, "OK") {
		provider := make([]ProviderError, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			provider = append(provider, ProviderError{Number: e.Number, Message: strings.TrimSpace(e.Message)})
		}
		return nil, protocolErr(op, resp.StatusCode, provider)
	}

	results := make([]*core.AvailabilityResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		domain := strings.ToLower(r.Domain)
		results = append(results, &core.AvailabilityResult{
			Domain:       domain,
			Available:    r.Available,
			IsPremium:    r.IsPremiumName,
			PremiumPrice: int(r.PremiumRegistrationPrice),
			Registrar:    "namecheap",
			Category:     Categorize(domain),
		})
	}
	return results, nil
}

// synthesize fabricates a stable pseudo-random result for demo mode.
// Hash-derived so repeated checks of the same domain agree.
func (c *Client) synthesize(domain string) *core.AvailabilityResult {
	h := fnv.New32a()
	h.Write([]byte(domain))
	sum := h.Sum32()

	available := sum%3 == 0
	premium := available && sum%10 == 0

	result := &core.AvailabilityResult{
		Domain:    domain,
		Available: available,
		IsPremium: premium,
		Registrar: "demo",
		Category:  Categorize(domain),
	}
	if premium {
		result.PremiumPrice = 100 + int(sum%4901)
	}
	return result
}
