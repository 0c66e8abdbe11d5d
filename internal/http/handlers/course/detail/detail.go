// Package detail serves GET /api/lectures/hrd/{courseID}.
package detail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/damoacook/damoacook-back/internal/cache"
	"github.com/damoacook/damoacook-back/internal/hrdnet"
	"github.com/damoacook/damoacook-back/internal/http/request"
	"github.com/damoacook/damoacook-back/internal/http/response"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/models"
	"github.com/damoacook/damoacook-back/internal/services/course"
)

// Service returns the cached course detail.
type Service interface {
	Detail(ctx context.Context, q models.DetailQuery) (cache.Result, error)
}

// Handler validates the session query and maps service errors to status codes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: request.NewValidator("query"),
	}
}

// ServeHTTP godoc
// @Summary Course detail
// @Description Returns one course session. A missing institution_id is resolved from the list endpoint.
// @Tags Courses
// @Produce json
// @Param courseID path string true "Course id"
// @Param session_index query string true "Session index"
// @Param institution_id query string false "Institution id"
// @Success 200 {object} models.CourseRecord
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /api/lectures/hrd/{courseID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.detail"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := models.DetailQuery{
		CourseID:      request.StringParam(chi.URLParam(r, "courseID"), ""),
		SessionIndex:  request.StringParam(r.URL.Query().Get("session_index"), ""),
		InstitutionID: request.StringParam(r.URL.Query().Get("institution_id"), ""),
	}
	log = log.With(slog.String("course_id", q.CourseID), slog.String("session_index", q.SessionIndex))

	if err := h.validate.Struct(q); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Detail(r.Context(), q)
	switch {
	case err == nil:
	case errors.Is(err, hrdnet.ErrInstitutionNotFound):
		log.Warn("institution could not be resolved", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeResolutionFailure, "institution id could not be resolved"))
		return
	case errors.Is(err, course.ErrCourseNotFound):
		log.Info("course not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "course not found"))
		return
	case errors.Is(err, cache.ErrUpstreamUnavailable):
		log.Error("course detail unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error(response.CodeUpstreamUnavailable, "course registry is unavailable"))
		return
	default:
		log.Error("failed to read course", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read course"))
		return
	}

	log.Info("course detail served", slog.String("cache", string(res.Outcome)))
	response.Cached(w, res.Payload, string(res.Outcome), res.Elapsed)
}
