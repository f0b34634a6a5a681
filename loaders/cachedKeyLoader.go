package loaders

import (
	"time"

	"github.com/iden3/go-plonk-verifier/cache"
)

const (
	defaultCacheSize = 128
	defaultCacheTTL  = time.Hour
)

// CachedKeyLoader wraps another loader and keeps loaded keys in memory.
// Verification keys are immutable per circuit, so the cache is read-through
// with a long TTL by default.
//
// Example:
//
//	loader := NewCachedKeyLoader(FSKeyLoader{Dir: "/path/to/keys"})
//
// Custom TTL:
//
//	loader := NewCachedKeyLoader(FSKeyLoader{Dir: dir}, WithTTL(time.Minute))
type CachedKeyLoader struct {
	loader VerificationKeyLoader
	cache  cache.ICache[[]byte]
	size   int64
	ttl    time.Duration
}

// Option defines functional option for configuring CachedKeyLoader
type Option func(*CachedKeyLoader)

// WithCacheSize sets the maximum number of cached keys
func WithCacheSize(size int64) Option {
	return func(l *CachedKeyLoader) {
		l.size = size
	}
}

// WithTTL sets the cache entry lifetime
func WithTTL(ttl time.Duration) Option {
	return func(l *CachedKeyLoader) {
		l.ttl = ttl
	}
}

// NewCachedKeyLoader creates a caching wrapper around loader
func NewCachedKeyLoader(loader VerificationKeyLoader, opts ...Option) *CachedKeyLoader {
	l := &CachedKeyLoader{
		loader: loader,
		size:   defaultCacheSize,
		ttl:    defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cache = cache.NewInMemoryCache[[]byte](l.size, l.ttl)
	return l
}

// Load returns the cached key bytes or falls through to the wrapped loader.
// Load failures are not cached.
func (l *CachedKeyLoader) Load(circuit string) ([]byte, error) {
	if key, ok := l.cache.Get(circuit); ok {
		return key, nil
	}
	key, err := l.loader.Load(circuit)
	if err != nil {
		return nil, err
	}
	l.cache.Set(circuit, key)
	return key, nil
}
