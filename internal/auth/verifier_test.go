package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"pulsewatch/internal/apperrors"
)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, pemKey
}

func signRS256(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerifier_Verify(t *testing.T) {
	key, pemKey := generateKeyPair(t)
	verifier, err := NewVerifier(pemKey)
	require.NoError(t, err)

	now := time.Now()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantSub string
		wantErr error
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				return signRS256(t, key, jwt.MapClaims{
					"sub": "user_123",
					"iat": now.Unix(),
					"exp": now.Add(time.Hour).Unix(),
				})
			},
			wantSub: "user_123",
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signRS256(t, key, jwt.MapClaims{
					"sub": "user_123",
					"exp": now.Add(-time.Hour).Unix(),
				})
			},
			wantErr: apperrors.ErrTokenExpired,
		},
		{
			name: "token not valid yet",
			token: func(t *testing.T) string {
				return signRS256(t, key, jwt.MapClaims{
					"sub": "user_123",
					"nbf": now.Add(time.Hour).Unix(),
					"exp": now.Add(2 * time.Hour).Unix(),
				})
			},
			wantErr: apperrors.ErrTokenNotYetValid,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				return signRS256(t, key, jwt.MapClaims{
					"exp": now.Add(time.Hour).Unix(),
				})
			},
			wantErr: apperrors.ErrMissingSubject,
		},
		{
			name: "wrong signing algorithm",
			token: func(t *testing.T) string {
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"sub": "user_123",
					"exp": now.Add(time.Hour).Unix(),
				}).SignedString([]byte("hmac-secret"))
				require.NoError(t, err)
				return s
			},
			wantErr: apperrors.ErrInvalidToken,
		},
		{
			name: "signed with a different key",
			token: func(t *testing.T) string {
				otherKey, _ := generateKeyPair(t)
				return signRS256(t, otherKey, jwt.MapClaims{
					"sub": "user_123",
					"exp": now.Add(time.Hour).Unix(),
				})
			},
			wantErr: apperrors.ErrInvalidToken,
		},
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
			wantErr: apperrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := verifier.Verify(tt.token(t))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantSub, sub)
		})
	}
}

func TestNewVerifier_BadKey(t *testing.T) {
	_, err := NewVerifier([]byte("not a pem key"))
	require.Error(t, err)
}
