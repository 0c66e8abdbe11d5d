package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/metrics"
)

// Outcome tags how a response was produced. It is exposed in the X-Cache header.
type Outcome string

const (
	OutcomeMiss     Outcome = "MISS"
	OutcomeHit      Outcome = "HIT"
	OutcomeRefresh  Outcome = "REFRESH"
	OutcomeFallback Outcome = "HIT-FALLBACK"
)

// ErrUpstreamUnavailable is returned when the fetch failed and no previous entry exists.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// Entry is one cached result. It stays in the store after its ttl has passed
// so it can be served when a refresh fails.
type Entry struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
}

// Fresh reports whether the entry is still within its ttl at now.
func (e Entry) Fresh(now time.Time) bool {
	return now.Sub(e.StoredAt) < e.TTL
}

// Result is what the layer hands back to callers.
type Result struct {
	Payload []byte
	Outcome Outcome
	Elapsed time.Duration
}

// FetchFunc produces a fresh value. A non-nil error means the upstream failed.
type FetchFunc func(ctx context.Context) (any, error)

// Layer is a cache-aside wrapper around a Store.
//
// Per key it moves between EMPTY, FRESH and STALE:
// a fresh entry is served without calling fetch (HIT); otherwise fetch runs and a
// success is stored (MISS when there was no entry, REFRESH when there was); a failed
// fetch serves the previous payload unchanged (HIT-FALLBACK) or, with no entry,
// returns ErrUpstreamUnavailable. Concurrent misses on one key are not coalesced.
type Layer struct {
	name      string
	store     Store
	retention time.Duration
	log       *slog.Logger
	now       func() time.Time
}

// NewLayer creates a Layer. retention is the store-level expiry of entries and
// should be well above any ttl; zero keeps entries until overwritten.
func NewLayer(name string, store Store, retention time.Duration, log *slog.Logger) *Layer {
	return &Layer{
		name:      name,
		store:     store,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Load returns the payload for key following the cache-aside policy described on Layer.
func (l *Layer) Load(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (Result, error) {
	const op = "cache.Layer.Load"

	log := l.log.With(sl.Op(op), slog.String("cache", l.name), slog.String("key", key))
	start := l.now()

	var prev Entry
	found, err := l.store.Get(ctx, key, &prev)
	if err != nil {
		log.Warn("cache read failed, treating as empty", sl.Err(err))
		found = false
	}

	if found && prev.Fresh(start) {
		return l.result(prev.Payload, OutcomeHit, start), nil
	}

	value, fetchErr := fetch(ctx)
	if fetchErr != nil {
		if found {
			log.Warn("refresh failed, serving stale entry",
				slog.Time("stored_at", prev.StoredAt), sl.Err(fetchErr))
			return l.result(prev.Payload, OutcomeFallback, start), nil
		}
		metrics.CacheRequests.WithLabelValues(l.name, "UNAVAILABLE").Inc()
		return Result{Elapsed: l.now().Sub(start)}, fmt.Errorf("%s: %w: %w", op, ErrUpstreamUnavailable, fetchErr)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return Result{Elapsed: l.now().Sub(start)}, fmt.Errorf("%s: %w", op, err)
	}

	outcome := OutcomeMiss
	if found {
		outcome = OutcomeRefresh
	}

	entry := Entry{Payload: payload, StoredAt: l.now(), TTL: ttl}
	if err := l.store.Set(ctx, key, entry, l.retention); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}

	return l.result(payload, outcome, start), nil
}

func (l *Layer) result(payload []byte, outcome Outcome, start time.Time) Result {
	l.count(outcome)
	return Result{
		Payload: payload,
		Outcome: outcome,
		Elapsed: l.now().Sub(start),
	}
}

func (l *Layer) count(outcome Outcome) {
	metrics.CacheRequests.WithLabelValues(l.name, string(outcome)).Inc()
}
