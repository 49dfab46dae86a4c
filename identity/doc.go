// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity derives anonymous voter identity tokens.

# Tokens

A token is the SHA-256 digest of the voter's normalized network origin,
hex encoded (64 characters). The raw address is never stored:

	h := identity.NewHasher("")
	token := h.Token("203.0.113.7")

When a salt is configured the digest becomes HMAC-SHA256 keyed by the salt,
so tokens cannot be recomputed from a list of candidate addresses without it:

	h := identity.NewHasher(cfg.IPHashSalt)

# Normalization

Loopback addresses in any textual form (::1, ::ffff:127.0.0.1, 127.0.0.2)
collapse to 127.0.0.1 before hashing, IPv4-mapped IPv6 addresses are
unmapped and IPv6 addresses are written in canonical form. The same origin
therefore always yields the same token.

# Client Origin

ClientOrigin picks the origin from edge headers, in order:

  - CF-Connecting-IP
  - X-Forwarded-For (first entry)
  - 127.0.0.1
*/
package identity
