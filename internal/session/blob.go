package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/folio/folio-go/internal/model"
)

var ErrInvalidBlob = errors.New("invalid session blob")

// identityClaims carries a cached identity. The email travels as the subject.
type identityClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// EncodeIdentity renders id as an unsigned JWT. The result is a UI cache
// entry, not a credential; the server never sees or trusts it.
func EncodeIdentity(id model.Identity) (string, error) {
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "folio",
			Subject:  id.Email,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Role: id.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	return token.SignedString(jwt.UnsafeAllowNoneSignatureType)
}

// DecodeIdentity parses a blob produced by EncodeIdentity.
func DecodeIdentity(blob string) (model.Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodNone.Alg()}),
		jwt.WithIssuer("folio"),
	)
	token, err := parser.ParseWithClaims(blob, &identityClaims{}, func(*jwt.Token) (interface{}, error) {
		return jwt.UnsafeAllowNoneSignatureType, nil
	})
	if err != nil {
		return model.Identity{}, ErrInvalidBlob
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || claims.Subject == "" {
		return model.Identity{}, ErrInvalidBlob
	}
	if claims.Role != model.RoleUser && claims.Role != model.RoleAdmin {
		return model.Identity{}, ErrInvalidBlob
	}

	return model.Identity{Email: claims.Subject, Role: claims.Role}, nil
}
