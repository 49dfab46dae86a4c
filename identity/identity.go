// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/netip"
	"strings"
)

// Loopback is the canonical form every loopback origin is normalized to.
const Loopback = "127.0.0.1"

// Edge headers carrying the client address
const (
	HeaderConnectingIP = "CF-Connecting-IP"
	HeaderForwardedFor = "X-Forwarded-For"
)

// Token is a hex encoded one-way digest of a normalized network origin
type Token string

// Short returns a prefix of the token that is safe to put in logs
func (t Token) Short() string {
	if len(t) <= 12 {
		return string(t)
	}
	return string(t[:12])
}

type Hasher struct {
	salt []byte
}

// NewHasher returns a Hasher. An empty salt selects plain SHA-256.
func NewHasher(salt string) *Hasher {
	h := &Hasher{}
	if salt != "" {
		h.salt = []byte(salt)
	}
	return h
}

// Token derives the identity token for a raw origin string.
// Any input is hashable.
func (h *Hasher) Token(raw string) Token {
	normalized := []byte(Normalize(raw))

	var sum []byte
	if h.salt != nil {
		mac := hmac.New(sha256.New, h.salt)
		mac.Write(normalized)
		sum = mac.Sum(nil)
	} else {
		digest := sha256.Sum256(normalized)
		sum = digest[:]
	}
	return Token(hex.EncodeToString(sum))
}

// FromRequest derives the token for the request's client origin
func (h *Hasher) FromRequest(r *http.Request) Token {
	return h.Token(ClientOrigin(r))
}

// Normalize maps equivalent textual forms of one origin to a single string.
// Values that are not IP addresses are only trimmed.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	// Bracketed IPv6 as sent by some proxies
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return s
	}

	addr = addr.Unmap().WithZone("")
	if addr.IsLoopback() {
		return Loopback
	}
	return addr.String()
}

// ClientOrigin returns the client address reported by the edge.
// Falls back to the loopback address when no header is present.
func ClientOrigin(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get(HeaderConnectingIP)); ip != "" {
		return ip
	}

	if xff := r.Header.Get(HeaderForwardedFor); xff != "" {
		// Take first IP in chain
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	return Loopback
}
