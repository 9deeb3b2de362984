package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"pulsewatch/internal/apperrors"
)

// Verifier validates bearer tokens against a fixed RSA public key and
// extracts the subject claim. Identity management itself is external; the
// subject is treated as an opaque user id.
type Verifier struct {
	publicKey *rsa.PublicKey
}

func NewVerifier(pemKey []byte) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}
	return &Verifier{publicKey: key}, nil
}

// Verify checks signature, expiry and not-before on tokenStr and returns
// the subject claim. Only RS256 is accepted; a token signed with any other
// algorithm is rejected as invalid rather than falling back.
func (v *Verifier) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return v.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	if err != nil {
		return "", classify(err)
	}
	if !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperrors.ErrMissingSubject
	}
	return sub, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return apperrors.ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.ErrInvalidToken
	default:
		return fmt.Errorf("%w: %v", apperrors.ErrVerification, err)
	}
}
