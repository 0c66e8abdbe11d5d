// Package course orchestrates the course list and detail queries: it builds the
// cache keys, runs the upstream fetch and normalization on a miss and hands the
// result to the cache layer.
package course

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/damoacook/damoacook-back/internal/cache"
	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/hrdnet"
	"github.com/damoacook/damoacook-back/internal/lib/paginate"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/models"
)

// ErrCourseNotFound is returned when the detail endpoint has no record for the session.
var ErrCourseNotFound = errors.New("course not found")

// notFound is the cached payload of a detail query the upstream has no record for.
var notFound = json.RawMessage("null")

// Fetcher is the upstream registry client.
type Fetcher interface {
	List(ctx context.Context, p hrdnet.ListParams) ([]hrdnet.Raw, error)
	Detail(ctx context.Context, p hrdnet.DetailParams) ([]hrdnet.Raw, error)
}

// Resolver finds the institution id of a course session.
type Resolver interface {
	Resolve(ctx context.Context, courseID, session string) (string, error)
}

// Loader is the cache-aside layer.
type Loader interface {
	Load(ctx context.Context, key string, ttl time.Duration, fetch cache.FetchFunc) (cache.Result, error)
}

// Service serves course lists and details through the cache layer.
type Service struct {
	fetcher   Fetcher
	resolver  Resolver
	lists     Loader
	details   Loader
	store     cache.Store
	retention time.Duration
	cfg       config.HRDNet
	loc       *time.Location
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a Service. lists and details are the cache layers of the
// two queries; store keeps resolved institution ids for retention, the same
// store-level expiry the layers give their entries, so a resolved query can
// still fall back to its stale detail.
func NewService(fetcher Fetcher, resolver Resolver, lists, details Loader, store cache.Store,
	retention time.Duration, cfg config.HRDNet, loc *time.Location, log *slog.Logger) *Service {
	return &Service{
		fetcher:   fetcher,
		resolver:  resolver,
		lists:     lists,
		details:   details,
		store:     store,
		retention: retention,
		cfg:       cfg,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// List returns the page envelope for q as JSON.
func (s *Service) List(ctx context.Context, q models.ListQuery) (cache.Result, error) {
	const op = "services.course.List"

	start := s.now()
	res, err := s.lists.Load(ctx, q.CacheKey(), s.cfg.ListTTL, func(ctx context.Context) (any, error) {
		raws, err := s.fetcher.List(ctx, hrdnet.ListParams{
			Page:         1,
			PageSize:     s.cfg.UpstreamPageSize,
			Organization: q.Organization,
			StartDate:    q.StartDate,
			EndDate:      q.EndDate,
			SortCol:      q.SortCol,
			SortDir:      q.SortDir,
		})
		if err != nil {
			return nil, err
		}
		records := hrdnet.NormalizeList(raws, s.today(), s.log)
		return paginate.Paginate(records, q.Page, q.PageSize), nil
	})
	res.Elapsed = s.now().Sub(start)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Detail returns one course session as JSON. A missing institution id is
// resolved first and the resolution is remembered. An empty upstream answer is
// cached like a record and reported as ErrCourseNotFound.
func (s *Service) Detail(ctx context.Context, q models.DetailQuery) (cache.Result, error) {
	const op = "services.course.Detail"

	start := s.now()
	if q.InstitutionID == "" {
		id, err := s.resolveInstitution(ctx, q)
		if err != nil {
			return cache.Result{Elapsed: s.now().Sub(start)}, fmt.Errorf("%s: %w", op, err)
		}
		q.InstitutionID = id
	}

	res, err := s.details.Load(ctx, q.CacheKey(), s.cfg.DetailTTL, func(ctx context.Context) (any, error) {
		raws, err := s.fetcher.Detail(ctx, hrdnet.DetailParams{
			CourseID:      q.CourseID,
			SessionIndex:  q.SessionIndex,
			InstitutionID: q.InstitutionID,
		})
		if err != nil {
			return nil, err
		}
		if len(raws) == 0 {
			return notFound, nil
		}
		return hrdnet.NormalizeDetail(raws[0], q, s.today()), nil
	})
	res.Elapsed = s.now().Sub(start)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	if len(res.Payload) == 0 || bytes.Equal(res.Payload, notFound) {
		return res, fmt.Errorf("%s: %w", op, ErrCourseNotFound)
	}
	return res, nil
}

func (s *Service) resolveInstitution(ctx context.Context, q models.DetailQuery) (string, error) {
	key := q.ResolutionKey()
	log := s.log.With(slog.String("key", key))

	var id string
	found, err := s.store.Get(ctx, key, &id)
	if err != nil {
		log.Warn("failed to read resolved institution", sl.Err(err))
	}
	if found && id != "" {
		return id, nil
	}

	id, err = s.resolver.Resolve(ctx, q.CourseID, q.SessionIndex)
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, key, id, s.retention); err != nil {
		log.Warn("failed to cache resolved institution", sl.Err(err))
	}
	return id, nil
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}
