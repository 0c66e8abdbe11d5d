// Package list serves GET /api/lectures/hrd, the paginated course list of the academy.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/damoacook/damoacook-back/internal/cache"
	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/http/request"
	"github.com/damoacook/damoacook-back/internal/http/response"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/models"
)

// Service returns the cached list envelope.
type Service interface {
	List(ctx context.Context, q models.ListQuery) (cache.Result, error)
}

// Handler parses and validates the list query before any upstream call.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	cfg      config.HRDNet
	loc      *time.Location
	now      func() time.Time
}

// New creates a Handler. cfg supplies the default organization and page size.
func New(log *slog.Logger, service Service, cfg config.HRDNet, loc *time.Location) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: request.NewValidator("query"),
		cfg:      cfg,
		loc:      loc,
		now:      time.Now,
	}
}

// ServeHTTP godoc
// @Summary List courses
// @Description Returns one page of the academy's Work24 courses. Responses carry X-Cache and X-Elapsed-ms.
// @Tags Courses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(8)
// @Param organ query string false "Training organization name"
// @Param start query string false "Search window start, YYYYMMDD"
// @Param end query string false "Search window end, YYYYMMDD"
// @Param sort_col query string false "Upstream sort column" default(2)
// @Param sort query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} paginate.Page[models.CourseRecord]
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /api/lectures/hrd [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, bad := h.parse(r)
	if bad != "" {
		log.Info("invalid query parameter", slog.String("param", bad))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.InvalidParam(bad))
		return
	}

	if err := h.validate.Struct(q); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.List(r.Context(), q)
	if err != nil {
		if errors.Is(err, cache.ErrUpstreamUnavailable) {
			log.Error("course list unavailable", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(response.CodeUpstreamUnavailable, "course registry is unavailable"))
			return
		}
		log.Error("failed to list courses", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not list courses"))
		return
	}

	log.Info("course list served",
		slog.String("cache", string(res.Outcome)),
		slog.Duration("elapsed", res.Elapsed),
	)
	response.Cached(w, res.Payload, string(res.Outcome), res.Elapsed)
}

// parse fills defaults. It returns the name of a parameter that is not an integer.
func (h *Handler) parse(r *http.Request) (models.ListQuery, string) {
	v := r.URL.Query()
	def := models.DefaultListQuery(h.cfg.OrganName, h.now().In(h.loc).Year(), h.cfg.DefaultPageSize)

	page, ok := request.IntParam(v.Get("page"), def.Page)
	if !ok {
		return models.ListQuery{}, "page"
	}
	size, ok := request.IntParam(v.Get("page_size"), def.PageSize)
	if !ok {
		return models.ListQuery{}, "page_size"
	}

	return models.ListQuery{
		Organization: request.StringParam(v.Get("organ"), def.Organization),
		StartDate:    request.StringParam(v.Get("start"), def.StartDate),
		EndDate:      request.StringParam(v.Get("end"), def.EndDate),
		Page:         page,
		PageSize:     size,
		SortCol:      request.StringParam(v.Get("sort_col"), def.SortCol),
		SortDir:      strings.ToUpper(request.StringParam(v.Get("sort"), def.SortDir)),
	}, ""
}
