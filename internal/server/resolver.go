package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/pable/csinsights/internal/faceit"
	"github.com/pable/csinsights/internal/maps"
	"github.com/pable/csinsights/internal/storage"
)

// ErrMapUnknown is returned when the upstream match document names no map.
var ErrMapUnknown = errors.New("match has no map")

// MapResolver infers the map a FACEIT match was played on.
type MapResolver interface {
	ResolveMap(ctx context.Context, matchID string) (string, error)
}

// Resolver looks maps up through the FACEIT API, remembering answers in an
// optional SQLite cache. Concurrent lookups for one match share a request.
type Resolver struct {
	client *faceit.Client
	cache  *storage.DB
	ttl    time.Duration
	logger *log.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewResolver returns a Resolver. cache may be nil to disable caching; a
// non-positive ttl keeps cache entries forever.
func NewResolver(client *faceit.Client, cache *storage.DB, ttl time.Duration, logger *log.Logger) *Resolver {
	return &Resolver{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveMap returns the normalized map name for matchID.
func (r *Resolver) ResolveMap(ctx context.Context, matchID string) (string, error) {
	if m, ok := r.cached(matchID); ok {
		if m == "" {
			return "", ErrMapUnknown
		}
		return m, nil
	}

	// Shared by every waiter, so one caller going away must not cancel it.
	// The client timeout still bounds the request.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(matchID, func() (any, error) {
		return r.fetch(fetchCtx, matchID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// cached returns the stored map for matchID when a fresh entry exists.
func (r *Resolver) cached(matchID string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	entry, err := r.cache.GetMatchLookup(matchID)
	if err != nil {
		r.logger.Warn("cache read failed", "match_id", matchID, "err", err)
		return "", false
	}
	if entry == nil || entry.Expired(r.now(), r.ttl) {
		return "", false
	}
	return entry.MapName, true
}

func (r *Resolver) fetch(ctx context.Context, matchID string) (string, error) {
	raw, err := r.client.Match(ctx, matchID)
	if err != nil {
		return "", fmt.Errorf("resolve map for %s: %w", matchID, err)
	}

	var name string
	if picked, ok := faceit.MatchMap(raw); ok {
		name = maps.Normalize(picked)
	}

	if r.cache != nil {
		if err := r.cache.PutMatchLookup(matchID, name, raw, r.now()); err != nil {
			r.logger.Warn("cache write failed", "match_id", matchID, "err", err)
		}
	}

	if name == "" {
		return "", ErrMapUnknown
	}
	return name, nil
}
