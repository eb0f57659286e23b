package notify

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SMTPTransport delivers messages over plain SMTP as
// multipart/alternative with text and HTML parts.
type SMTPTransport struct {
	addr string
	auth smtp.Auth
}

// NewSMTPTransport builds a transport for the given host:port address.
func NewSMTPTransport(addr string, auth smtp.Auth) *SMTPTransport {
	return &SMTPTransport{addr: addr, auth: auth}
}

// Send delivers the message and returns a generated message id.
func (t *SMTPTransport) Send(ctx context.Context, from, to, subject, html, text string) (string, error) {
	messageID := uuid.NewString()
	boundary := "part-" + messageID

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	if err := smtp.SendMail(t.addr, t.auth, from, []string{to}, []byte(b.String())); err != nil {
		return "", err
	}
	return messageID, nil
}

// LogTransport is the development fallback used when no SMTP address is
// configured: it logs the message instead of delivering it.
type LogTransport struct {
	logger *zap.Logger
}

// NewLogTransport builds the fallback transport.
func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

// Send logs the rendered message and reports success.
func (t *LogTransport) Send(_ context.Context, from, to, subject, _, text string) (string, error) {
	messageID := uuid.NewString()
	t.logger.Info("mail transport stub",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("message_id", messageID),
		zap.Int("text_bytes", len(text)))
	return messageID, nil
}
