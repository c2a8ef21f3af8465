package keyset_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"ssoverify/internal/auth/keyset"
	"ssoverify/internal/domain"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)
	return key
}

func jwksFor(kids map[string]*rsa.PrivateKey) jose.JSONWebKeySet {
	var set jose.JSONWebKeySet
	for kid, key := range kids {
		set.Keys = append(set.Keys, jose.JSONWebKey{
			Key:       &key.PublicKey,
			KeyID:     kid,
			Algorithm: "RS256",
			Use:       "sig",
		})
	}
	return set
}

// jwksServer serves whatever key set the returned setter was last given.
func jwksServer(t *testing.T, initial jose.JSONWebKeySet) (*httptest.Server, func(jose.JSONWebKeySet)) {
	t.Helper()
	var mu sync.Mutex
	current := initial

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(current)
	}))
	t.Cleanup(srv.Close)

	return srv, func(set jose.JSONWebKeySet) {
		mu.Lock()
		current = set
		mu.Unlock()
	}
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	raw, err := tok.SignedString(key)
	assert.NoError(t, err)
	return raw
}

func TestVerifySignature_ValidToken(t *testing.T) {
	key := newTestKey(t)
	srv, _ := jwksServer(t, jwksFor(map[string]*rsa.PrivateKey{"key-1": key}))
	cache := keyset.NewCache(srv.URL, 0, 0)

	raw := signToken(t, key, "key-1", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
	assert.NoError(t, cache.VerifySignature(context.Background(), raw, "key-1"))
}

func TestVerifySignature_WrongKey(t *testing.T) {
	published := newTestKey(t)
	attacker := newTestKey(t)
	srv, _ := jwksServer(t, jwksFor(map[string]*rsa.PrivateKey{"key-1": published}))
	cache := keyset.NewCache(srv.URL, 0, 0)

	raw := signToken(t, attacker, "key-1", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
	err := cache.VerifySignature(context.Background(), raw, "key-1")
	assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
}

func TestVerifySignature_KeyRotation(t *testing.T) {
	oldKey := newTestKey(t)
	newKey := newTestKey(t)
	srv, setKeys := jwksServer(t, jwksFor(map[string]*rsa.PrivateKey{"key-old": oldKey}))
	cache := keyset.NewCache(srv.URL, 0, 0)

	// Warm the snapshot with only the old key.
	assert.NoError(t, cache.Refresh(context.Background()))

	// Provider rotates; a token arrives signed with a kid not in the snapshot.
	setKeys(jwksFor(map[string]*rsa.PrivateKey{"key-old": oldKey, "key-new": newKey}))
	raw := signToken(t, newKey, "key-new", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
	assert.NoError(t, cache.VerifySignature(context.Background(), raw, "key-new"))
}

func TestVerifySignature_KeyServerUnreachable(t *testing.T) {
	srv, _ := jwksServer(t, jwksFor(map[string]*rsa.PrivateKey{"key-1": newTestKey(t)}))
	url := srv.URL
	srv.Close()

	cache := keyset.NewCache(url, time.Second, 0)
	raw := signToken(t, newTestKey(t), "key-1", jwt.MapClaims{"sub": "user-1"})
	err := cache.VerifySignature(context.Background(), raw, "key-1")
	assert.ErrorIs(t, err, domain.ErrKeyFetch)
}

func TestVerifySignature_KeyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cache := keyset.NewCache(srv.URL, 0, 0)
	raw := signToken(t, newTestKey(t), "key-1", jwt.MapClaims{"sub": "user-1"})
	err := cache.VerifySignature(context.Background(), raw, "key-1")
	assert.ErrorIs(t, err, domain.ErrKeyFetch)
}

func TestVerifySignature_ConcurrentReaders(t *testing.T) {
	key := newTestKey(t)
	srv, _ := jwksServer(t, jwksFor(map[string]*rsa.PrivateKey{"key-1": key}))
	cache := keyset.NewCache(srv.URL, 0, 0)
	raw := signToken(t, key, "key-1", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.VerifySignature(context.Background(), raw, "key-1"))
		}()
	}
	wg.Wait()
}
