// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package sec provides cryptographic primitives for identity management.

It isolates security-sensitive code (password hashing, session token signing)
from the domain logic. Components are injected into the application layer via
small interfaces so they can be mocked in tests.

Architecture:

  - TokenCodec: issues and verifies tamper-evident session tokens.
  - Password hashing: argon2id with per-hash random salt.
  - Identity: the verified principal carried in request context.
*/
package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Identity is the authenticated principal exposed to downstream handlers.
//
// It is produced exclusively by session verification and injected into the
// request context by the authentication middleware.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// tokenDelimiter joins the token fields. User IDs are UUIDs and expiry is a
// decimal integer, so "." can never appear inside a field.
const tokenDelimiter = "."

// TokenCodec issues and verifies signed, self-describing session tokens.
//
// # Format
//
// A token is `userID.expiresAtUnix.signature` where signature is the
// hex-encoded HMAC-SHA256 of `userID.expiresAtUnix` under a server-held
// secret. Because the expiry lives inside the signed payload, verification is
// a pure function of the token and the secret; no server-side session table
// is needed to detect staleness.
//
// # Tradeoff
//
// Tokens are stateless: sign-out deletes the client cookie but cannot
// invalidate a copied token before its natural expiry.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec creates a codec signing with the given secret.
//
// The secret must be non-empty; config.Load enforces this for production
// deployments before the codec is ever constructed.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue serializes userID and expiresAt into a signed token string.
//
// Tokens are immutable once issued; issuing a new token fully replaces any
// prior one on the client.
func (codec *TokenCodec) Issue(userID string, expiresAt time.Time) string {
	payload := userID + tokenDelimiter + strconv.FormatInt(expiresAt.Unix(), 10)
	return payload + tokenDelimiter + codec.sign(payload)
}

// Verify checks a token's structure, signature, and expiry.
//
// It returns the embedded userID only when every check passes:
//
//  1. Exactly three delimited fields, none empty.
//  2. The signature hex-decodes and matches a freshly computed signature over
//     the reconstructed payload. The comparison is constant-time; a length
//     mismatch rejects immediately (length is not secret, content is).
//  3. The expiry parses as an integer and lies in the future.
func (codec *TokenCodec) Verify(token string) (string, bool) {
	parts := strings.Split(token, tokenDelimiter)
	if len(parts) != 3 {
		return "", false
	}

	userID, expiresAtField, signature := parts[0], parts[1], parts[2]
	if userID == "" || expiresAtField == "" || signature == "" {
		return "", false
	}

	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}

	payload := userID + tokenDelimiter + expiresAtField
	expected := codec.mac(payload)

	// hmac.Equal is constant-time for equal-length inputs and bails on a
	// length mismatch, which is exactly the required behavior.
	if !hmac.Equal(supplied, expected) {
		return "", false
	}

	expiresAtUnix, err := strconv.ParseInt(expiresAtField, 10, 64)
	if err != nil {
		return "", false
	}

	if !codec.now().Before(time.Unix(expiresAtUnix, 0)) {
		return "", false
	}

	return userID, true
}

// sign returns the hex-encoded HMAC-SHA256 over payload.
func (codec *TokenCodec) sign(payload string) string {
	return hex.EncodeToString(codec.mac(payload))
}

func (codec *TokenCodec) mac(payload string) []byte {
	h := hmac.New(sha256.New, codec.secret)
	h.Write([]byte(payload))
	return h.Sum(nil)
}
