package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"finledger/internal/ledger/adapters/services"
	"finledger/internal/ledger/config"
	svc "finledger/internal/ledger/ports/services"
)

const testSecret = "test-secret"

func TestPlain(t *testing.T) {
	ctx := context.Background()
	plain := services.NewPlain()

	stored, err := plain.Hash(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored)

	ok, err := plain.Verify(ctx, "secret", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, wrong := range []string{"Secret", "secret ", "", "secre"} {
		ok, err = plain.Verify(ctx, wrong, stored)
		require.NoError(t, err)
		assert.False(t, ok, "password %q must not match", wrong)
	}
}

func TestBcrypt(t *testing.T) {
	ctx := context.Background()
	hasher := services.NewBcrypt(bcrypt.MinCost)

	stored, err := hasher.Hash(ctx, "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored)
	assert.True(t, strings.HasPrefix(stored, "$2a$"))

	ok, err := hasher.Verify(ctx, "secret", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(ctx, "wrong", stored)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify(ctx, "secret", "not-a-hash")
	assert.Error(t, err)

	_, err = hasher.Hash(ctx, strings.Repeat("x", 100))
	assert.ErrorIs(t, err, svc.ErrHashingFailed)
}

func TestNewBcrypt_ClampsCost(t *testing.T) {
	hasher := services.NewBcrypt(1)

	stored, err := hasher.Hash(context.Background(), "secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(stored))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestJWT_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tokens := services.NewJWT(testSecret, time.Hour, "finledger")

	before := time.Now()
	token, expiresAt, err := tokens.GenerateAccessToken(ctx, 42, "ana@mail.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := tokens.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWT_Rejects(t *testing.T) {
	ctx := context.Background()
	tokens := services.NewJWT(testSecret, time.Hour, "finledger")

	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func(subject, issuer string) services.Claims {
		return services.Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
	}

	expired, _, err := services.NewJWT(testSecret, -time.Minute, "finledger").GenerateAccessToken(ctx, 1, "")
	require.NoError(t, err)
	otherKey, _, err := services.NewJWT("another-secret", time.Hour, "finledger").GenerateAccessToken(ctx, 1, "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "expired", token: expired},
		{name: "wrong key", token: otherKey},
		{name: "unsigned", token: sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid("1", "finledger"))},
		{name: "wrong issuer", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid("1", "someone-else"))},
		{name: "non numeric subject", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid("ana", "finledger"))},
		{name: "zero subject", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid("0", "finledger"))},
		{
			name: "no expiry",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), services.Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "finledger"},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tokens.ValidateAccessToken(ctx, tt.token)

			require.ErrorIs(t, err, svc.ErrInvalidJWTToken)
			assert.Zero(t, userID)
		})
	}
}

func TestJWT_EmptySecret(t *testing.T) {
	_, _, err := services.NewJWT("", time.Hour, "finledger").GenerateAccessToken(context.Background(), 1, "")

	assert.ErrorIs(t, err, svc.ErrGeneratingJWTToken)
}

func TestServiceFactory(t *testing.T) {
	jwtCfg := config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: "1m", Issuer: "finledger"}

	plain := services.NewServiceFactory(config.SecurityConfig{PasswordMode: config.PasswordModePlain}, jwtCfg)
	assert.IsType(t, services.ServicePlain{}, plain.PasswordService())
	assert.IsType(t, &services.ServiceJWT{}, plain.TokenService())

	hashed := services.NewServiceFactory(config.SecurityConfig{PasswordMode: config.PasswordModeBcrypt, BCryptCost: bcrypt.MinCost}, jwtCfg)
	assert.IsType(t, &services.ServiceBcrypt{}, hashed.PasswordService())
}
