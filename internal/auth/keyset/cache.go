package keyset

import (
	"context"
	"crypto"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jose "github.com/go-jose/go-jose/v4"

	"ssoverify/internal/domain"
)

const (
	DefaultFetchTimeout    = 8 * time.Second
	DefaultRefreshInterval = time.Hour
)

// Cache holds the current JWKS snapshot for one provider. Reads are served
// from an immutable snapshot swapped under a short lock; the lock is never
// held across network I/O. A token whose kid is absent from the snapshot
// forces one refetch, which covers provider key rotation.
type Cache struct {
	jwksURL      string
	httpClient   *http.Client
	refreshEvery time.Duration

	mu        sync.RWMutex
	keys      *jose.JSONWebKeySet
	fetchedAt time.Time
}

// NewCache creates a key cache for the given JWKS endpoint. Zero durations
// fall back to the package defaults.
func NewCache(jwksURL string, fetchTimeout, refreshEvery time.Duration) *Cache {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if refreshEvery <= 0 {
		refreshEvery = DefaultRefreshInterval
	}
	return &Cache{
		jwksURL:      jwksURL,
		httpClient:   &http.Client{Timeout: fetchTimeout},
		refreshEvery: refreshEvery,
	}
}

// VerifySignature checks that raw was signed by a key currently published at
// the cache's JWKS endpoint. It returns domain.ErrKeyFetch when key material
// is unreachable and domain.ErrSignatureInvalid when no published key
// verifies the token.
func (c *Cache) VerifySignature(ctx context.Context, raw, kid string) error {
	set, err := c.keysFor(ctx, kid)
	if err != nil {
		return err
	}

	verifier := oidc.NewVerifier("", &oidc.StaticKeySet{PublicKeys: publicKeys(set)}, &oidc.Config{
		SkipIssuerCheck:   true,
		SkipClientIDCheck: true,
		SkipExpiryCheck:   true,
	})
	if _, err := verifier.Verify(ctx, raw); err != nil {
		return domain.ErrSignatureInvalid
	}
	return nil
}

// Refresh fetches the key set unconditionally and swaps the snapshot.
func (c *Cache) Refresh(ctx context.Context) error {
	set, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.keys = set
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// RefreshLoop refreshes the snapshot on a fixed schedule until ctx is done.
// Intended to run in its own goroutine from main.
func (c *Cache) RefreshLoop(ctx context.Context, onError func(error)) {
	ticker := time.NewTicker(c.refreshEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}

// keysFor returns a snapshot that is fresh and, when possible, contains kid.
func (c *Cache) keysFor(ctx context.Context, kid string) (*jose.JSONWebKeySet, error) {
	c.mu.RLock()
	set := c.keys
	stale := set == nil || time.Since(c.fetchedAt) > c.refreshEvery
	c.mu.RUnlock()

	if stale || (kid != "" && !containsKey(set, kid)) {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
		set = c.keys
		c.mu.RUnlock()
	}
	return set, nil
}

func (c *Cache) fetch(ctx context.Context) (*jose.JSONWebKeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: jwks endpoint returned %d", domain.ErrKeyFetch, resp.StatusCode)
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("%w: decoding jwks: %v", domain.ErrKeyFetch, err)
	}
	return &set, nil
}

func containsKey(set *jose.JSONWebKeySet, kid string) bool {
	if set == nil {
		return false
	}
	return len(set.Key(kid)) > 0
}

func publicKeys(set *jose.JSONWebKeySet) []crypto.PublicKey {
	keys := make([]crypto.PublicKey, 0, len(set.Keys))
	for _, k := range set.Keys {
		keys = append(keys, k.Key)
	}
	return keys
}
