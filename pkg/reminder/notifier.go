package reminder

import (
	"context"
	"pantrypal/internal/utils/mailing"

	"go.uber.org/zap"
)

// Notifier delivers a reminder that has come due.
type Notifier interface {
	Notify(ctx context.Context, rec Record) error
}

type MailNotifier struct {
	mailer mailing.Mailer
	to     string
}

func NewMailNotifier(mailer mailing.Mailer, to string) *MailNotifier {
	return &MailNotifier{mailer: mailer, to: to}
}

func (n *MailNotifier) Notify(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.mailer.SendMail(n.to, rec.Title, rec.Body)
}

// LogNotifier writes reminders to the log. Used when no mail server is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, rec Record) error {
	n.logger.Info("reminder due",
		zap.String("reminder_id", rec.ID),
		zap.String("title", rec.Title),
		zap.String("body", rec.Body),
		zap.Time("fire_at", rec.FireAt),
	)
	return nil
}
