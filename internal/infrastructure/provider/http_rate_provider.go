package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Compile-time interface check.
var _ port.RateProvider = (*HTTPRateProvider)(nil)

// HTTPRateProvider fetches live quotes from a frankfurter-style JSON
// endpoint: GET {base-url}/latest?base=USD returns {"base":"USD","rates":
// {"CAD":1.36,...}}. Failures are returned as-is; the resolver decides how
// to degrade.
type HTTPRateProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRateProvider creates a provider against the given endpoint. client
// may be nil, in which case a 10-second-timeout client is used.
func NewHTTPRateProvider(baseURL string, client *http.Client) *HTTPRateProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPRateProvider{baseURL: baseURL, client: client}
}

type latestRatesResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchLatestRates fetches current quotes for the base currency.
func (p *HTTPRateProvider) FetchLatestRates(ctx context.Context, base money.Currency) (map[string]decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s", p.baseURL, url.QueryEscape(base.Code()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates for %s: %w", base.Code(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate endpoint returned %d for base %s", resp.StatusCode, base.Code())
	}

	var decoded latestRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if len(decoded.Rates) == 0 {
		return nil, fmt.Errorf("rate endpoint returned no quotes for base %s", base.Code())
	}

	return decoded.Rates, nil
}
