// Package currency resolves the ISO currency table complaints are validated against.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKey = "fraud-desk:currencies"

// Currency is one entry of the reference table.
type Currency struct {
	Code string
	Name string
}

// ErrUnavailable is returned when no table could be fetched or recovered.
var ErrUnavailable = errors.New("currency table unavailable")

// Provider fetches the {code: name} table from a reference endpoint and keeps
// it in process memory, mirrored to redis so restarts survive an outage upstream.
type Provider struct {
	url      string
	http     *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger

	mu        sync.RWMutex
	table     map[string]string
	fetchedAt time.Time
}

// Options configures a Provider.
type Options struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
	Redis    *redis.Client
	Logger   *zap.Logger
}

// NewProvider builds a provider; nothing is fetched until Refresh is called.
func NewProvider(opts Options) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		url:      opts.URL,
		http:     &http.Client{Timeout: timeout},
		redis:    opts.Redis,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
	}
}

// Refresh fetches the reference table. On failure an empty in-process table
// is seeded from redis when possible; an existing table is kept as is.
func (p *Provider) Refresh(ctx context.Context) error {
	table, err := p.fetch(ctx)
	if err == nil {
		p.store(table)
		p.writeCache(ctx, table)
		p.logger.Info("currency table refreshed", zap.Int("currencies", len(table)))
		return nil
	}

	p.logger.Warn("currency fetch failed", zap.String("url", p.url), zap.Error(err))
	if p.loaded() {
		return err
	}
	if cached, cacheErr := p.readCache(ctx); cacheErr == nil && len(cached) > 0 {
		p.store(cached)
		p.logger.Info("currency table restored from cache", zap.Int("currencies", len(cached)))
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Table returns a copy of the code to name table, or nil while no table has
// been loaded. It never reaches the network; Refresh, driven by the currency
// worker, is the only fetcher.
func (p *Provider) Table(context.Context) map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.table) == 0 {
		return nil
	}
	out := make(map[string]string, len(p.table))
	for code, name := range p.table {
		out[code] = name
	}
	return out
}

// List returns the table sorted by code.
func (p *Provider) List(ctx context.Context) ([]Currency, error) {
	table := p.Table(ctx)
	if len(table) == 0 {
		return nil, ErrUnavailable
	}
	out := make([]Currency, 0, len(table))
	for code, name := range table {
		out = append(out, Currency{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// FetchedAt reports when the in-process table was last replaced.
func (p *Provider) FetchedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetchedAt
}

func (p *Provider) loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.table) > 0
}

func (p *Provider) store(table map[string]string) {
	p.mu.Lock()
	p.table = table
	p.fetchedAt = time.Now().UTC()
	p.mu.Unlock()
}

func (p *Provider) fetch(ctx context.Context) (map[string]string, error) {
	if p.url == "" {
		return nil, errors.New("no reference url configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode currencies: %w", err)
	}
	return normalize(raw)
}

func (p *Provider) writeCache(ctx context.Context, table map[string]string) {
	if p.redis == nil {
		return
	}
	encoded, err := json.Marshal(table)
	if err != nil {
		return
	}
	if err := p.redis.Set(ctx, cacheKey, encoded, p.cacheTTL).Err(); err != nil {
		p.logger.Debug("currency cache write failed", zap.Error(err))
	}
}

func (p *Provider) readCache(ctx context.Context) (map[string]string, error) {
	if p.redis == nil {
		return nil, redis.Nil
	}
	encoded, err := p.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(encoded, &raw); err != nil {
		return nil, err
	}
	return normalize(raw)
}

func normalize(raw map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for code, name := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		out[code] = name
	}
	if len(out) == 0 {
		return nil, errors.New("empty currency table")
	}
	return out, nil
}
