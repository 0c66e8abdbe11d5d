package repository

import (
	"context"
	"fmt"

	"github.com/damoacook/damoacook-back/internal/models"
)

// CreateInquiry inserts inq and returns it with the stored created_at.
func (s *Storage) CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	const op = "storage.CreateInquiry"

	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO inquiries (id, name, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		inq.ID, inq.Name, inq.Phone, inq.Message, inq.CreatedAt,
	).Scan(&inq.CreatedAt)
	if err != nil {
		return models.Inquiry{}, fmt.Errorf("%s: %w", op, err)
	}
	return inq, nil
}
