// Package warmer keeps the landing page of the course list loaded so most
// visitors are served from the cache.
package warmer

import (
	"context"
	"log/slog"
	"time"

	"github.com/damoacook/damoacook-back/internal/cache"
	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/models"
)

// Lister is the course list query.
type Lister interface {
	List(ctx context.Context, q models.ListQuery) (cache.Result, error)
}

// Service loads the default list query on a fixed interval.
type Service struct {
	lister   Lister
	cfg      config.HRDNet
	interval time.Duration
	loc      *time.Location
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a Service that warms every cfg.WarmInterval.
func NewService(lister Lister, cfg config.HRDNet, loc *time.Location, log *slog.Logger) *Service {
	return &Service{
		lister:   lister,
		cfg:      cfg,
		interval: cfg.WarmInterval,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// Run warms once immediately and then on every tick until ctx is done.
// A non-positive interval disables warming.
func (s *Service) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("course list warming disabled")
		return
	}

	s.warm(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *Service) warm(ctx context.Context) {
	const op = "services.warmer.warm"
	log := s.log.With(sl.Op(op))

	q := models.DefaultListQuery(s.cfg.OrganName, s.now().In(s.loc).Year(), s.cfg.DefaultPageSize)
	res, err := s.lister.List(ctx, q)
	if err != nil {
		log.Warn("failed to warm course list", sl.Err(err))
		return
	}
	log.Debug("course list warmed", slog.String("cache", string(res.Outcome)))
}
