package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Mailer là contract cho email delivery
// Delivery thật (SES/SendGrid) nằm ngoài scope - chỉ cần stub
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetToken string) error
}

// LogMailer ghi email ra log thay vì gửi thật
// Dùng cho development và test environments
type LogMailer struct {
	From string
}

func NewLogMailer(from string) *LogMailer {
	return &LogMailer{From: from}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, resetToken string) error {
	log.Info().
		Str("from", m.From).
		Str("to", to).
		Str("reset_token", resetToken).
		Msg("[EMAIL] Password reset email (stub)")
	return nil
}
