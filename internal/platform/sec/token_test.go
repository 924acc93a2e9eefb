// Copyright (c) 2026 IronLog. All rights reserved.

package sec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCodec returns a codec with a deterministic clock for expiry testing.
func fixedCodec(secret string, now time.Time) *TokenCodec {
	codec := NewTokenCodec(secret)
	codec.now = func() time.Time { return now }
	return codec
}

/*
TestTokenCodec_RoundTrip verifies that a freshly issued token resolves back
to the same user ID before its expiry.
*/
func TestTokenCodec_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", now)

	token := codec.Issue("user-123", now.Add(time.Hour))

	userID, ok := codec.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "user-123", userID)
}

/*
TestTokenCodec_TamperedSignature verifies that flipping any single character
of the signature portion invalidates the token.
*/
func TestTokenCodec_TamperedSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", now)

	token := codec.Issue("user-123", now.Add(time.Hour))
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	signature := parts[2]
	for i := 0; i < len(signature); i++ {
		mutated := []byte(signature)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(mutated)

		_, ok := codec.Verify(tampered)
		assert.False(t, ok, "signature mutation at index %d must be rejected", i)
	}
}

/*
TestTokenCodec_Expiry verifies that an untampered token is rejected once its
embedded expiry has passed.
*/
func TestTokenCodec_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", issuedAt)

	token := codec.Issue("user-123", issuedAt.Add(time.Hour))

	// 1. Valid right up until the deadline
	codec.now = func() time.Time { return issuedAt.Add(time.Hour - time.Second) }
	_, ok := codec.Verify(token)
	assert.True(t, ok)

	// 2. Invalid exactly at the deadline (now >= expiresAt)
	codec.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, ok = codec.Verify(token)
	assert.False(t, ok)

	// 3. Invalid afterward
	codec.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, ok = codec.Verify(token)
	assert.False(t, ok)
}

/*
TestTokenCodec_MalformedTokens verifies that structurally broken tokens are
rejected without panicking.
*/
func TestTokenCodec_MalformedTokens(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", now)

	valid := codec.Issue("user-123", now.Add(time.Hour))
	signature := strings.Split(valid, ".")[2]

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one field", "user-123"},
		{"two fields", "user-123.1234567890"},
		{"four fields", valid + ".extra"},
		{"empty user id", "." + "1234567890" + "." + signature},
		{"empty expiry", "user-123.." + signature},
		{"empty signature", "user-123.1234567890."},
		{"non-hex signature", "user-123.1234567890.zzzz"},
		{"non-numeric expiry", "user-123.soon." + signature},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := codec.Verify(tc.token)
			assert.False(t, ok)
		})
	}
}

/*
TestTokenCodec_SecretIsolation verifies that tokens signed under one secret
never verify under another.
*/
func TestTokenCodec_SecretIsolation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := fixedCodec("secret-a", now)
	verifier := fixedCodec("secret-b", now)

	token := issuer.Issue("user-123", now.Add(time.Hour))

	_, ok := verifier.Verify(token)
	assert.False(t, ok)
}
