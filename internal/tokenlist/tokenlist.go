// Package tokenlist fetches and caches the token list GET /v1/tokens
// serves. The fetch itself is in scope; its resilience (retry, TTL
// refresh policy) is not (spec §1, "Out of scope").
package tokenlist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

// Cache holds the last successfully fetched token list in memory.
type Cache struct {
	mu     sync.RWMutex
	tokens []wire.TokenInfo
}

// NewCache creates a Cache seeded with an initial token list (e.g. from a
// bundled default file). The Cache does not refresh itself; its contents
// change only when Set is called.
func NewCache(initial []wire.TokenInfo) *Cache {
	return &Cache{tokens: initial}
}

// Tokens returns the currently cached list.
func (c *Cache) Tokens() []wire.TokenInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]wire.TokenInfo, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Set replaces the cached list.
func (c *Cache) Set(tokens []wire.TokenInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
}

type rawTokenEntry struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// FetchOnce performs a single HTTP GET against url and decodes a JSON array
// of token entries. Callers decide refresh cadence; this function does not
// retry or cache.
func FetchOnce(ctx context.Context, httpClient *http.Client, url string) ([]wire.TokenInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build token list request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch token list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token list endpoint returned status %d", resp.StatusCode)
	}

	var raw []rawTokenEntry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode token list: %w", err)
	}

	out := make([]wire.TokenInfo, len(raw))
	for i, t := range raw {
		out[i] = wire.TokenInfo{Address: t.Address, Symbol: t.Symbol, Decimals: t.Decimals}
	}
	return out, nil
}

// DefaultHTTPClient is a conservatively-timed client for the token list
// fetch; callers needing different behavior should build their own.
func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
