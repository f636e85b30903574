package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCookieFormat(t *testing.T) {
	s := NewSource(Credentials{
		OpenID:  "ABCDEF1234567890",
		Token:   "TOKENTOKENTOKENTOKEN1234",
		AccType: "qc",
	}, testLogger())

	cookie, err := s.Cookie(context.Background())
	if err != nil {
		t.Fatalf("Cookie: %v", err)
	}
	want := "openid=ABCDEF1234567890; acctype=qc; appid=101491592; access_token=TOKENTOKENTOKENTOKEN1234"
	if cookie != want {
		t.Errorf("cookie = %q, want %q", cookie, want)
	}
}

func TestCookieRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no openid", Credentials{Token: "t", AccType: "qc"}},
		{"no token", Credentials{OpenID: "o", AccType: "qc"}},
		{"bad acctype", Credentials{OpenID: "o", Token: "t", AccType: "qq"}},
		{"empty acctype", Credentials{OpenID: "o", Token: "t"}},
	}

	for _, tt := range tests {
		s := NewSource(tt.creds, testLogger())
		if _, err := s.Cookie(context.Background()); err == nil {
			t.Errorf("%s: Cookie succeeded, want error", tt.name)
		}
	}
}

func TestCookieShortFieldsAllowed(t *testing.T) {
	// Short openid/token are warned about but not rejected.
	s := NewSource(Credentials{OpenID: "short", Token: "short", AccType: "wx"}, testLogger())
	cookie, err := s.Cookie(context.Background())
	if err != nil {
		t.Fatalf("Cookie: %v", err)
	}
	if !strings.Contains(cookie, "acctype=wx") {
		t.Errorf("cookie = %q", cookie)
	}
}
