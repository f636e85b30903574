// Package auth supplies the identity cookie the game-stats API expects.
package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// AppID is the fixed application id the stats endpoint is registered under.
const AppID = "101491592"

// Credentials holds the raw identity fields, typically sourced from config
// or environment variables.
type Credentials struct {
	OpenID  string `yaml:"openid"`
	Token   string `yaml:"token"`
	AccType string `yaml:"acctype"` // qc or wx
}

// Source validates credentials and renders the request cookie.
type Source struct {
	creds Credentials
	log   *slog.Logger
}

func NewSource(creds Credentials, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{creds: creds, log: log}
}

// Cookie returns the cookie string for outbound requests, or an error when
// the credentials are absent or malformed. Suspiciously short fields are
// logged but allowed through; the server is the authority on validity.
func (s *Source) Cookie(ctx context.Context) (string, error) {
	c := s.creds
	if c.OpenID == "" {
		return "", fmt.Errorf("openid is empty")
	}
	if c.Token == "" {
		return "", fmt.Errorf("token is empty")
	}
	if c.AccType != "qc" && c.AccType != "wx" {
		return "", fmt.Errorf("acctype %q is not one of qc, wx", c.AccType)
	}

	if len(c.OpenID) < 10 {
		s.log.Warn("openid looks too short", "length", len(c.OpenID))
	}
	if len(c.Token) < 20 {
		s.log.Warn("token looks too short", "length", len(c.Token))
	}

	cookie := fmt.Sprintf("openid=%s; acctype=%s; appid=%s; access_token=%s",
		c.OpenID, c.AccType, AppID, c.Token)
	s.log.Debug("cookie assembled", "length", len(cookie))
	return cookie, nil
}
