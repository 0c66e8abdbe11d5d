// Package notifier wires the worker that e-mails staff about new inquiries.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/lib/rabbitmq"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/lib/smtp"
	senderservice "github.com/damoacook/damoacook-back/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.notifier.New"

	recipients := cfg.Inquiry.Recipients()
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%s: %w", op, senderservice.ErrNoRecipients)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.InquiryQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(transport, recipients, cfg.Location(), logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run consumes inquiry events until ctx is done.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.InquiryCreatedQueue, a.senderService.SendInquiry, a.logger)
	if err != nil {
		a.logger.Error("failed to start inquiry consumer", sl.Err(err))
		return err
	}
	a.logger.Info("inquiry notifier consuming", slog.String("queue", rabbitmq.InquiryCreatedQueue))

	<-ctx.Done()
	a.logger.Info("inquiry notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
