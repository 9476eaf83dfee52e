// Package emailcheck annotates candidate addresses with a confidence
// tier from DNS MX presence and an optional SMTP mailbox probe.
package emailcheck

import (
	"context"
	"net"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"leadgen-engine/internal/domain"
)

// Confidence tiers. The tier is a pure function of
// (has_mx, smtp_enabled, smtp_result, pattern_match); see Tier.
const (
	ConfidenceVerified     = 95
	ConfidenceInconclusive = 70
	ConfidencePattern      = 70
	ConfidencePlain        = 60
	ConfidenceInvalid      = 0

	StatusVerified = "verified"
	StatusLikely   = "likely"
	StatusInvalid  = "invalid"
)

// Local parts that suggest a monitored business mailbox.
var commonLocalParts = map[string]struct{}{
	"sales": {}, "info": {}, "contact": {}, "hello": {},
	"support": {}, "business": {}, "inquiry": {},
}

// Tier maps a validation outcome to (confidence, status).
//
//	no MX                                   -> 0, invalid
//	MX + SMTP confirmed                     -> 95, verified
//	MX + SMTP rejected                      -> 0, invalid
//	MX + SMTP inconclusive                  -> 70, likely
//	MX, SMTP off, common local part         -> 70, likely
//	MX, SMTP off, anything else             -> 60, likely
func Tier(hasMX, smtpEnabled bool, smtpValid *bool, patternMatch bool) (int, string) {
	if !hasMX {
		return ConfidenceInvalid, StatusInvalid
	}
	if smtpEnabled {
		switch {
		case smtpValid == nil:
			return ConfidenceInconclusive, StatusLikely
		case *smtpValid:
			return ConfidenceVerified, StatusVerified
		default:
			return ConfidenceInvalid, StatusInvalid
		}
	}
	if patternMatch {
		return ConfidencePattern, StatusLikely
	}
	return ConfidencePlain, StatusLikely
}

// IsCommonLocalPart reports whether the address uses a generic business
// mailbox name like sales@ or info@.
func IsCommonLocalPart(email string) bool {
	local, _, ok := strings.Cut(strings.ToLower(email), "@")
	if !ok {
		return false
	}
	_, found := commonLocalParts[local]
	return found
}

// Checker runs MX and optional SMTP checks. Lookup and probe are
// injectable so tests never touch the network.
type Checker struct {
	VerifySMTP bool
	Timeout    time.Duration

	LookupMX func(ctx context.Context, mailDomain string) ([]*net.MX, error)
	Probe    func(ctx context.Context, mxHost, email string) *bool
}

func NewChecker(verifySMTP bool, timeout time.Duration, probeFrom string) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Checker{
		VerifySMTP: verifySMTP,
		Timeout:    timeout,
	}
	c.LookupMX = func(ctx context.Context, mailDomain string) ([]*net.MX, error) {
		lctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return net.DefaultResolver.LookupMX(lctx, mailDomain)
	}
	c.Probe = func(ctx context.Context, mxHost, email string) *bool {
		return probeMailbox(ctx, mxHost, probeFrom, email, timeout)
	}
	return c
}

// Validate checks one company's candidate addresses. Addresses of a
// single candidate are probed concurrently (bounded); results keep the
// input order and drop entries with no valid MX.
func (c *Checker) Validate(ctx context.Context, emails []string, scraped bool) []domain.EmailDetail {
	if len(emails) == 0 {
		return nil
	}

	results := make([]domain.EmailDetail, len(emails))
	var g errgroup.Group
	g.SetLimit(4)

	for i, email := range emails {
		i, email := i, email
		g.Go(func() error {
			results[i] = c.checkOne(ctx, email, scraped)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.EmailDetail, 0, len(results))
	for _, r := range results {
		if r.Confidence > ConfidenceInvalid {
			out = append(out, r)
		}
	}
	return out
}

func (c *Checker) checkOne(ctx context.Context, email string, scraped bool) domain.EmailDetail {
	d := domain.EmailDetail{
		Email:   email,
		Scraped: scraped,
		Persona: DetectPersona(email),
	}

	_, mailDomain, ok := strings.Cut(email, "@")
	if !ok || mailDomain == "" {
		d.Status = StatusInvalid
		return d
	}

	mxs, err := c.LookupMX(ctx, mailDomain)
	d.HasMX = err == nil && len(mxs) > 0

	if d.HasMX && c.VerifySMTP {
		mxHost := strings.TrimSuffix(mxs[0].Host, ".")
		d.SMTPValid = c.Probe(ctx, mxHost, email)
	}

	d.Confidence, d.Status = Tier(d.HasMX, c.VerifySMTP, d.SMTPValid, IsCommonLocalPart(email))
	return d
}
