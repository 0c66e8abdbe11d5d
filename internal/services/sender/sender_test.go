package sender

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damoacook/damoacook-back/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	return m.Called().String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error { return m.Called(from).Error(0) }

func (m *MockSMTPClient) Rcpt(to string) error { return m.Called(to).Error(0) }

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error { return m.Called().Error(0) }

func (m *MockSMTPClient) Quit() error { return m.Called().Error(0) }

type bufferWriter struct {
	bytes.Buffer
	closed bool
}

func (b *bufferWriter) Close() error {
	b.closed = true
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var kst = time.FixedZone("KST", 9*60*60)

const notification = `{"inquiry_id":"b7f1","name":"홍길동","phone":"010-1234-5678","message":"한식 과정 문의드립니다","created_at":"2025-03-10T01:30:00Z"}`

func TestSenderService_SendInquiry(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := &bufferWriter{}

	transport.On("GetSMTPUser").Return("academy@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "academy@example.com").Return(nil).Once()
	client.On("Rcpt", "staff1@example.com").Return(nil).Once()
	client.On("Rcpt", "staff2@example.com").Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	service := NewSenderService(transport, []string{"staff1@example.com", "staff2@example.com"}, kst, newNoopLogger())

	err := service.SendInquiry([]byte(notification))
	require.NoError(t, err)

	msg := writer.String()
	assert.True(t, writer.closed)
	assert.Contains(t, msg, "To: staff1@example.com, staff2@example.com")
	assert.Contains(t, msg, "Subject: "+mime.BEncoding.Encode("UTF-8", "[수강문의] 홍길동 님으로부터"))
	assert.Contains(t, msg, "연락처: 010-1234-5678")
	assert.Contains(t, msg, "접수일시: 2025-03-10 10:30")
	assert.Contains(t, msg, "한식 과정 문의드립니다")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_SendInquiryErrors(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		recipients   []string
		setupMocks   func(*MockTransport)
		errorMessage string
	}{
		{
			name:         "invalid JSON",
			body:         `invalid json`,
			recipients:   []string{"staff@example.com"},
			setupMocks:   func(_ *MockTransport) {},
			errorMessage: "error unmarshalling message",
		},
		{
			name:         "no recipients",
			body:         notification,
			setupMocks:   func(_ *MockTransport) {},
			errorMessage: ErrNoRecipients.Error(),
		},
		{
			name:       "SMTP connection error",
			body:       notification,
			recipients: []string{"staff@example.com"},
			setupMocks: func(t *MockTransport) {
				t.On("GetSMTPUser").Return("academy@example.com")
				t.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			errorMessage: "connection error",
		},
		{
			name:       "recipient rejected",
			body:       notification,
			recipients: []string{"staff@example.com"},
			setupMocks: func(t *MockTransport) {
				client := new(MockSMTPClient)
				t.On("GetSMTPUser").Return("academy@example.com")
				t.On("Connect").Return(client, nil).Once()
				client.On("Mail", "academy@example.com").Return(nil)
				client.On("Rcpt", "staff@example.com").Return(errors.New("550 no such user"))
				client.On("Close").Return(nil)
			},
			errorMessage: "550 no such user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			tt.setupMocks(transport)
			service := NewSenderService(transport, tt.recipients, kst, newNoopLogger())

			err := service.SendInquiry([]byte(tt.body))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMessage)
			transport.AssertExpectations(t)
		})
	}
}

func TestInquirySubject(t *testing.T) {
	assert.Equal(t, "[수강문의] 김철수 님으로부터", InquirySubject("김철수"))
}
