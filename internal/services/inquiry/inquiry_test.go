package inquiry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damoacook/damoacook-back/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	args := m.Called(ctx, inq)
	return args.Get(0).(models.Inquiry), args.Error(1)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Publish(message any) error {
	return m.Called(message).Error(0)
}

var fixedNow = time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)

func newTestService(repo *RepoMock, notifier *NotifierMock) *Service {
	s := NewService(repo, notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	s.newID = func() string { return "id-1" }
	return s
}

func TestService_Create(t *testing.T) {
	want := models.Inquiry{
		ID: "id-1", Name: "홍길동", Phone: "010-1234-5678",
		Message: "주말반 문의드립니다", CreatedAt: fixedNow,
	}

	repo := new(RepoMock)
	repo.On("CreateInquiry", mock.Anything, want).Return(want, nil).Once()
	notifier := new(NotifierMock)
	notifier.On("Publish", models.InquiryNotification{
		InquiryID: "id-1", Name: "홍길동", Phone: "010-1234-5678",
		Message: "주말반 문의드립니다", CreatedAt: fixedNow,
	}).Return(nil).Once()

	got, err := newTestService(repo, notifier).Create(context.Background(), models.InquiryRequest{
		Name: "  홍길동 ", Phone: "010-1234-5678\n", Message: "  주말반 문의드립니다  ",
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  models.InquiryRequest
		msg  string
	}{
		{"blank name", models.InquiryRequest{Name: "   ", Phone: "010", Message: "hello there"}, "name"},
		{"blank phone", models.InquiryRequest{Name: "a", Phone: " ", Message: "hello there"}, "phone"},
		{"short message after trim", models.InquiryRequest{Name: "a", Phone: "010", Message: "  안녕하세  "}, "at least 5"},
		{"four characters", models.InquiryRequest{Name: "a", Phone: "010", Message: "문의합니"}, "at least 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			notifier := new(NotifierMock)

			_, err := newTestService(repo, notifier).Create(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidInquiry)
			assert.Contains(t, err.Error(), tt.msg)
			repo.AssertNotCalled(t, "CreateInquiry", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateInquiry", mock.Anything, mock.Anything).Return(models.Inquiry{}, errors.New("db down"))
	notifier := new(NotifierMock)

	_, err := newTestService(repo, notifier).Create(context.Background(), models.InquiryRequest{
		Name: "a", Phone: "010", Message: "hello there",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	notifier.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestService_Create_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateInquiry", mock.Anything, mock.Anything).
		Return(models.Inquiry{ID: "id-1", Name: "a"}, nil)
	notifier := new(NotifierMock)
	notifier.On("Publish", mock.Anything).Return(errors.New("broker down"))

	got, err := newTestService(repo, notifier).Create(context.Background(), models.InquiryRequest{
		Name: "a", Phone: "010", Message: "hello there",
	})

	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
}
