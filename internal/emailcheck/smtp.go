package emailcheck

import (
	"context"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// probeMailbox asks the MX host whether the mailbox exists via
// HELO/MAIL/RCPT without sending anything. Best effort: a definitive
// 250 means true, a definitive 5xx rejection means false, everything
// else (timeouts, greylisting, blocked port 25) is nil/inconclusive.
func probeMailbox(ctx context.Context, mxHost, from, email string, timeout time.Duration) *bool {
	dialer := net.Dialer{Timeout: timeout}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(mxHost, "25"))
	if err != nil {
		return nil
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))

	cl, err := smtp.NewClient(conn, mxHost)
	if err != nil {
		_ = conn.Close()
		return nil
	}
	defer cl.Close()

	if err := cl.Hello("verification.leadgen.local"); err != nil {
		return nil
	}
	if err := cl.Mail(from); err != nil {
		return nil
	}

	err = cl.Rcpt(email)
	_ = cl.Quit()

	if err == nil {
		ok := true
		return &ok
	}
	if isPermanentReject(err) {
		ok := false
		return &ok
	}
	return nil
}

// isPermanentReject treats only an explicit 5xx reply as "mailbox does
// not exist".
func isPermanentReject(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "550") || strings.HasPrefix(msg, "551") ||
		strings.HasPrefix(msg, "553") || strings.HasPrefix(msg, "554")
}
