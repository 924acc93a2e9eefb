// Copyright (c) 2026 IronLog. All rights reserved.

package sec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestHashPassword_VerifyRoundTrip verifies that a hashed password validates
against the original plaintext and nothing else.
*/
func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	match, err := CheckPasswordHash("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CheckPasswordHash("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, match)

	match, err = CheckPasswordHash("", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

/*
TestHashPassword_SaltUniqueness verifies that hashing the same password twice
produces distinct hashes (per-hash random salt).
*/
func TestHashPassword_SaltUniqueness(t *testing.T) {
	first, err := HashPassword("abcdef")
	require.NoError(t, err)

	second, err := HashPassword("abcdef")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	match, err := CheckPasswordHash("abcdef", first)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CheckPasswordHash("abcdef", second)
	require.NoError(t, err)
	assert.True(t, match)
}

/*
TestCheckPasswordHash_Malformed verifies that broken stored hashes surface a
decode error and never report a match.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$AAAA",
		"$bcrypt$whatever",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	}

	for _, malformed := range cases {
		match, err := CheckPasswordHash("abcdef", malformed)
		assert.ErrorIs(t, err, ErrMalformedHash, malformed)
		assert.False(t, match, malformed)
	}
}
