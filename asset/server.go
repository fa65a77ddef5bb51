package asset

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadError wraps a failure from an asset's Load method with the key that
// failed, so callers can log or retry without re-deriving it.
type LoadError struct {
	Path string
	Type reflect.Type
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("asset: load %s (%s): %v", e.Path, e.Type, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader decodes one asset value of type T from bytes read through an Io,
// given caller-supplied arguments. Implementations are passed to Load
// directly on each call.
type Loader[T any, A comparable] func(ctx context.Context, io Io, path string, args A) (T, error)

// cacheKey identifies one cached asset: its Go type, source path, and
// decode arguments (held as an interface value, so args of different
// concrete types never compare equal in the same map).
type cacheKey struct {
	typ  reflect.Type
	path string
	args any
}

// Server owns a content-addressable cache of decoded assets keyed by
// (type, path, args). Concurrent requests for the same key share a single
// in-flight decode via singleflight; a bounded worker pool runs the actual
// Loader calls so a burst of requests can't spawn unbounded goroutines.
type Server struct {
	io Io

	mu    sync.RWMutex
	cache map[cacheKey]any

	group singleflight.Group
	sem   chan struct{}
}

// NewServer creates a Server reading through io, running at most
// maxConcurrentDecodes Loader calls at a time.
func NewServer(io Io, maxConcurrentDecodes int) *Server {
	if maxConcurrentDecodes < 1 {
		maxConcurrentDecodes = 1
	}
	return &Server{
		io:    io,
		cache: make(map[cacheKey]any),
		sem:   make(chan struct{}, maxConcurrentDecodes),
	}
}

// Load fetches path through the Server's Io and decodes it with loader,
// returning a cached value if this exact (type, path, args) was already
// loaded. Concurrent calls for the same key block on one shared decode.
func Load[T any, A comparable](ctx context.Context, s *Server, path string, args A, loader Loader[T, A]) (T, error) {
	var zero T
	typ := reflect.TypeOf(zero)
	key := cacheKey{typ: typ, path: path, args: args}

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cached.(T), nil
	}
	s.mu.RUnlock()

	groupKey := fmt.Sprintf("%v:%s:%v", typ, path, args)
	v, err, _ := s.group.Do(groupKey, func() (any, error) {
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		defer func() { <-s.sem }()

		val, err := loader(ctx, s.io, path, args)
		if err != nil {
			return nil, &LoadError{Path: path, Type: typ, Err: err}
		}

		s.mu.Lock()
		s.cache[key] = val
		s.mu.Unlock()
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Evict drops one cached entry, forcing the next Load of the same key to
// re-decode. Used by patch/overlay reloads.
func Evict[T any, A comparable](s *Server, path string, args A) {
	var zero T
	key := cacheKey{typ: reflect.TypeOf(zero), path: path, args: args}
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}
