// Package create serves POST /api/inquiries, the public course inquiry form.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/damoacook/damoacook-back/internal/http/request"
	"github.com/damoacook/damoacook-back/internal/http/response"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/models"
	"github.com/damoacook/damoacook-back/internal/services/inquiry"
)

const maxBodyBytes = 64 << 10

type Service interface {
	Create(ctx context.Context, req models.InquiryRequest) (models.Inquiry, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: request.NewValidator("json"),
	}
}

// ServeHTTP godoc
// @Summary Submit an inquiry
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body models.InquiryRequest true "Inquiry"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/inquiries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.inquiry.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.InquiryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	inq, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, inquiry.ErrInvalidInquiry) {
			log.Info("inquiry rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeValidation, invalidReason(err)))
			return
		}
		log.Error("failed to create inquiry", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not create inquiry"))
		return
	}

	log.Info("inquiry created", slog.String("inquiry_id", inq.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(inq))
}

// invalidReason keeps only the text after the sentinel.
func invalidReason(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, inquiry.ErrInvalidInquiry.Error()+": "); i >= 0 {
		return msg[i+len(inquiry.ErrInvalidInquiry.Error())+2:]
	}
	return inquiry.ErrInvalidInquiry.Error()
}
