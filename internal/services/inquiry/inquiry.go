// Package inquiry stores course inquiries and announces them to the notifier.
package inquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/models"
)

const minMessageLength = 5

// ErrInvalidInquiry marks input rejected after trimming.
var ErrInvalidInquiry = errors.New("invalid inquiry")

// Repository persists inquiries.
type Repository interface {
	CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error)
}

// Notifier publishes new-inquiry events.
type Notifier interface {
	Publish(message any) error
}

// Service handles the intake form.
type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService creates a Service.
func NewService(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create trims and checks req, stores it and publishes a notification.
// A failed publish is logged; the inquiry is already stored.
func (s *Service) Create(ctx context.Context, req models.InquiryRequest) (models.Inquiry, error) {
	const op = "services.inquiry.Create"

	inq := models.Inquiry{
		ID:        s.newID(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now().UTC(),
	}
	switch {
	case inq.Name == "":
		return models.Inquiry{}, fmt.Errorf("%s: %w: name is empty", op, ErrInvalidInquiry)
	case inq.Phone == "":
		return models.Inquiry{}, fmt.Errorf("%s: %w: phone is empty", op, ErrInvalidInquiry)
	case utf8.RuneCountInString(inq.Message) < minMessageLength:
		return models.Inquiry{}, fmt.Errorf("%s: %w: message must be at least %d characters",
			op, ErrInvalidInquiry, minMessageLength)
	}

	stored, err := s.repo.CreateInquiry(ctx, inq)
	if err != nil {
		return models.Inquiry{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("inquiry stored", slog.String("inquiry_id", stored.ID))

	err = s.notifier.Publish(models.InquiryNotification{
		InquiryID: stored.ID,
		Name:      stored.Name,
		Phone:     stored.Phone,
		Message:   stored.Message,
		CreatedAt: stored.CreatedAt,
	})
	if err != nil {
		s.log.Error("failed to publish inquiry notification", slog.String("inquiry_id", stored.ID), sl.Err(err))
	}
	return stored, nil
}

// LogNotifier only logs notifications. It is used when no broker is configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Publish(message any) error {
	n.Log.Info("inquiry notification not sent, no broker configured", slog.Any("message", message))
	return nil
}
