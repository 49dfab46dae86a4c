// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ipv4 loopback", "127.0.0.1", "127.0.0.1"},
		{"ipv6 loopback", "::1", "127.0.0.1"},
		{"mapped loopback", "::ffff:127.0.0.1", "127.0.0.1"},
		{"other loopback", "127.0.0.53", "127.0.0.1"},
		{"expanded ipv6 loopback", "0:0:0:0:0:0:0:1", "127.0.0.1"},
		{"bracketed ipv6 loopback", "[::1]", "127.0.0.1"},
		{"whitespace", "  203.0.113.7 ", "203.0.113.7"},
		{"mapped public", "::ffff:203.0.113.7", "203.0.113.7"},
		{"uppercase ipv6", "2001:DB8::1", "2001:db8::1"},
		{"expanded ipv6", "2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1"},
		{"zoned ipv6", "fe80::1%eth0", "fe80::1"},
		{"not an ip", "unknown", "unknown"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTokenLoopbackForms(t *testing.T) {
	h := NewHasher("")
	canonical := h.Token("127.0.0.1")

	for _, raw := range []string{"::1", "::ffff:127.0.0.1", " 127.0.0.1", "[::1]"} {
		if got := h.Token(raw); got != canonical {
			t.Errorf("Token(%q) = %s, want %s", raw, got, canonical)
		}
	}
}

func TestTokenIsSHA256Hex(t *testing.T) {
	h := NewHasher("")
	token := h.Token("203.0.113.7")

	sum := sha256.Sum256([]byte("203.0.113.7"))
	if string(token) != hex.EncodeToString(sum[:]) {
		t.Errorf("Token() = %s, want plain sha256 hex", token)
	}
	if len(token) != 64 {
		t.Errorf("Token() length = %d, want 64", len(token))
	}
}

func TestTokenSalted(t *testing.T) {
	plain := NewHasher("").Token("203.0.113.7")
	salted := NewHasher("pepper").Token("203.0.113.7")
	other := NewHasher("other").Token("203.0.113.7")

	if salted == plain {
		t.Error("salted token should differ from plain token")
	}
	if salted == other {
		t.Error("different salts should produce different tokens")
	}
	if len(salted) != 64 {
		t.Errorf("salted token length = %d, want 64", len(salted))
	}

	// Deterministic for the same salt
	if again := NewHasher("pepper").Token("203.0.113.7"); again != salted {
		t.Error("salted token is not deterministic")
	}
}

func TestTokenDistinctOrigins(t *testing.T) {
	h := NewHasher("")
	if h.Token("203.0.113.7") == h.Token("203.0.113.8") {
		t.Error("distinct origins produced the same token")
	}
}

func TestClientOrigin(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "connecting ip wins",
			headers: map[string]string{HeaderConnectingIP: "198.51.100.1", HeaderForwardedFor: "203.0.113.9"},
			want:    "198.51.100.1",
		},
		{
			name:    "forwarded for first entry",
			headers: map[string]string{HeaderForwardedFor: "203.0.113.9, 10.0.0.1"},
			want:    "203.0.113.9",
		},
		{
			name:    "forwarded for single",
			headers: map[string]string{HeaderForwardedFor: "203.0.113.9"},
			want:    "203.0.113.9",
		},
		{
			name:    "no headers",
			headers: nil,
			want:    Loopback,
		},
		{
			name:    "blank headers",
			headers: map[string]string{HeaderConnectingIP: "  ", HeaderForwardedFor: " ,10.0.0.1"},
			want:    Loopback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientOrigin(req); got != tt.want {
				t.Errorf("ClientOrigin() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	h := NewHasher("")

	req := httptest.NewRequest("POST", "/api/vote", nil)
	req.Header.Set(HeaderConnectingIP, "::1")

	if got, want := h.FromRequest(req), h.Token("127.0.0.1"); got != want {
		t.Errorf("FromRequest() = %s, want %s", got, want)
	}
}

func TestTokenShort(t *testing.T) {
	token := NewHasher("").Token("203.0.113.7")
	if len(token.Short()) != 12 {
		t.Errorf("Short() length = %d, want 12", len(token.Short()))
	}
	if Token("abc").Short() != "abc" {
		t.Error("Short() should return short tokens unchanged")
	}
}
