package hrdnet

import (
	"context"
	"log/slog"

	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/metrics"
)

// Searcher is the list query used by the resolver.
type Searcher interface {
	SearchList(ctx context.Context, p ListParams) ([]Raw, error)
}

// Resolver recovers a missing institution id by scanning the list endpoint
// filtered by course id. The scan is bounded by maxPages pages of pageSize records.
type Resolver struct {
	searcher Searcher
	maxPages int
	pageSize int
	log      *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(searcher Searcher, maxPages, pageSize int, log *slog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		maxPages: maxPages,
		pageSize: pageSize,
		log:      log,
	}
}

// Resolve returns the institution id of the given course session.
// A page that fails to load is skipped; an empty page ends the scan.
// ErrInstitutionNotFound is returned when nothing matched within the budget.
func (r *Resolver) Resolve(ctx context.Context, courseID, session string) (string, error) {
	const op = "hrdnet.Resolver.Resolve"

	log := r.log.With(
		sl.Op(op),
		slog.String("course_id", courseID),
		slog.String("session_index", session),
	)

	for page := 1; page <= r.maxPages; page++ {
		metrics.ResolverPages.Inc()

		records, err := r.searcher.SearchList(ctx, ListParams{
			Page:     page,
			PageSize: r.pageSize,
			CourseID: courseID,
		})
		if err != nil {
			log.Warn("resolver page failed, skipping", slog.Int("page", page), sl.Err(err))
			continue
		}
		if len(records) == 0 {
			log.Debug("resolver reached end of results", slog.Int("page", page))
			break
		}

		for _, rec := range records {
			if Lookup(rec, SessionAliases) != session {
				continue
			}
			if id := Lookup(rec, InstitutionIDAliases); id != "" {
				log.Info("institution resolved", slog.Int("page", page), slog.String("institution_id", id))
				return id, nil
			}
		}
	}

	log.Warn("institution not resolved")
	return "", ErrInstitutionNotFound
}
