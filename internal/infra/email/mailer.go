// Package email sends outbound notifications over SMTP.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"

	jwemail "github.com/jordan-wright/email"
	"go.uber.org/zap"
)

// Config holds SMTP settings. An empty Host disables sending.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// AdminRecipients receive escalation alerts and copies of notices
	// for tenants without an email on file.
	AdminRecipients []string
}

// Mailer implements port.Notifier over SMTP. When no host is
// configured every send is a logged no-op, so callers never need to
// special-case a disabled mailer.
type Mailer struct {
	cfg    Config
	logger *zap.Logger
}

// NewMailer creates a Mailer.
func NewMailer(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

func (m *Mailer) send(ctx context.Context, to []string, subject, body string) error {
	if !m.Enabled() {
		m.logger.Debug("email: disabled, skipping send",
			zap.String("subject", subject),
		)
		return nil
	}
	if len(to) == 0 {
		m.logger.Warn("email: no recipients", zap.String("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := jwemail.NewEmail()
	e.From = m.cfg.From
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := e.Send(addr, auth); err != nil {
		m.logger.Error("email: send failed",
			zap.String("subject", subject),
			zap.Strings("to", to),
			zap.Error(err),
		)
		return &domain.ErrExternalService{Service: "smtp", Err: err}
	}

	m.logger.Info("email: sent",
		zap.String("subject", subject),
		zap.Strings("to", to),
	)
	return nil
}

// SendBillNotice emails a tenant that a new bill has been issued.
// Tenants without an email on file fall back to the admin recipients.
func (m *Mailer) SendBillNotice(ctx context.Context, tenant *domain.Tenant, bill *domain.BillRecord) error {
	to := []string{tenant.Email}
	if tenant.Email == "" {
		to = m.cfg.AdminRecipients
	}

	subject := fmt.Sprintf("Rent bill for %s — %s", bill.Month, tenant.Name)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour rent bill for %s is now available.\n\nUnit: %s\nAmount due: %.2f\n\nPlease settle on or before the due date stated in your lease.\n",
		tenant.Name, bill.Month, tenant.Unit, bill.TotalBill,
	)
	return m.send(ctx, to, subject, body)
}

// SendEscalationAlert emails the admins that a tenant's rent
// escalation anniversary is coming up.
func (m *Mailer) SendEscalationAlert(ctx context.Context, tenant *domain.Tenant, anniversary time.Time) error {
	subject := fmt.Sprintf("Rent escalation due: %s", tenant.Name)
	body := fmt.Sprintf(
		"Tenant %s (unit %s) reaches a lease anniversary on %s.\n\nEscalation terms: %s\n\nReview the rate and update the tenant record before the next billing cycle.\n",
		tenant.Name, tenant.Unit, anniversary.Format("2006-01-02"), tenant.EscalationDetails,
	)
	return m.send(ctx, m.cfg.AdminRecipients, subject, body)
}
