package token_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	apperrors "github.com/midorigaoka/coop-gateway/internal/errors"
	"github.com/midorigaoka/coop-gateway/token"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func withFixedClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := token.NowTimeFunc
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = prev })
}

func TestCodec_RoundTrip(t *testing.T) {
	withFixedClock(t, testNow)
	codec := token.NewCodec(testSecret, 0)

	claims := codec.NewSession("member-1", "Alice", "alice@example.com")
	raw, err := codec.Encode(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(raw, "."), 3)

	decoded, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "member-1", decoded.MemberID())
	require.Equal(t, "Alice", decoded.Name)
	require.Equal(t, "alice@example.com", decoded.Email)
	require.Equal(t, testNow.Unix(), decoded.IssuedAt.Unix())
	require.Equal(t, testNow.Add(token.DefaultLifetime).Unix(), decoded.ExpiresAt.Unix())
}

func TestCodec_Deterministic(t *testing.T) {
	withFixedClock(t, testNow)
	codec := token.NewCodec(testSecret, 0)

	claims := codec.NewSession("member-1", "Alice", "alice@example.com")
	first, err := codec.Encode(claims)
	require.NoError(t, err)
	second, err := codec.Encode(claims)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCodec_ExpiryIsIssuedAtPlusLifetime(t *testing.T) {
	withFixedClock(t, testNow)
	codec := token.NewCodec(testSecret, 48*time.Hour)

	claims := codec.NewSession("member-1", "Alice", "alice@example.com")
	require.Equal(t, claims.IssuedAt.Add(48*time.Hour), claims.ExpiresAt.Time)
}

func TestCodec_TamperDetection(t *testing.T) {
	withFixedClock(t, testNow)
	codec := token.NewCodec(testSecret, 0)

	raw, err := codec.Encode(codec.NewSession("member-1", "Alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("altered payload claim", func(t *testing.T) {
		parts := strings.Split(raw, ".")
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)

		altered := strings.Replace(string(payload), `"Alice"`, `"Mallory"`, 1)
		require.NotEqual(t, string(payload), altered)
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(altered))

		_, err = codec.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("altered signature", func(t *testing.T) {
		tampered := raw[:len(raw)-1]
		if raw[len(raw)-1] == 'A' {
			tampered += "B"
		} else {
			tampered += "A"
		}
		_, err := codec.Verify(tampered)
		require.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := token.NewCodec("another-secret", 0)
		_, err := other.Verify(raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})
}

func TestCodec_ExpiryEnforcement(t *testing.T) {
	withFixedClock(t, testNow)
	codec := token.NewCodec(testSecret, 0)

	raw, err := codec.Encode(codec.NewSession("member-1", "Alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("valid until just before expiry", func(t *testing.T) {
		token.NowTimeFunc = func() time.Time { return testNow.Add(token.DefaultLifetime - time.Second) }
		_, err := codec.Verify(raw)
		require.NoError(t, err)
	})

	t.Run("expired one second past", func(t *testing.T) {
		token.NowTimeFunc = func() time.Time { return testNow.Add(token.DefaultLifetime + time.Second) }
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

func TestCodec_MalformedInput(t *testing.T) {
	codec := token.NewCodec(testSecret, 0)

	for _, raw := range []string{
		"",
		"not-a-token",
		"one.two",
		"one.two.three.four",
		"..",
		"a..c",
		"a.b.c",
	} {
		_, err := codec.Verify(raw)
		require.Error(t, err, "input %q must be rejected", raw)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken, "input %q", raw)
	}
}
