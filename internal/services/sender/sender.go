// Package sender delivers staff e-mail notifications for new inquiries.
package sender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/lib/smtp"
	"github.com/damoacook/damoacook-back/internal/models"
)

// ErrNoRecipients is returned when no staff address is configured.
var ErrNoRecipients = errors.New("no inquiry recipients configured")

// SenderService turns inquiry notifications into e-mails.
type SenderService struct {
	transport  smtp.TransportInterface
	recipients []string
	loc        *time.Location
	log        *slog.Logger
}

// NewSenderService creates a SenderService sending to recipients.
func NewSenderService(transport smtp.TransportInterface, recipients []string, loc *time.Location, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:  transport,
		recipients: recipients,
		loc:        loc,
		log:        log,
	}
}

// SendInquiry handles one queued models.InquiryNotification.
func (s *SenderService) SendInquiry(body []byte) error {
	const op = "services.sender.SendInquiry"

	var n models.InquiryNotification
	if err := json.Unmarshal(body, &n); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if len(s.recipients) == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}

	if err := s.sendEmail(s.recipients, InquirySubject(n.Name), s.inquiryBody(n)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("inquiry notification sent", slog.String("inquiry_id", n.InquiryID))
	return nil
}

// InquirySubject is the staff mail subject for an inquiry from name.
func InquirySubject(name string) string {
	return fmt.Sprintf("[수강문의] %s 님으로부터", name)
}

func (s *SenderService) inquiryBody(n models.InquiryNotification) string {
	return fmt.Sprintf("이름: %s\n연락처: %s\n접수일시: %s\n\n%s\n",
		n.Name, n.Phone, n.CreatedAt.In(s.loc).Format("2006-01-02 15:04"), n.Message)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + mime.BEncoding.Encode("UTF-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}
	return nil
}
