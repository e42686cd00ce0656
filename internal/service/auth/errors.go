// Package auth validates the bearer tokens that carry the opaque user
// identity. Token issuance happens in the external session collaborator;
// this package only verifies signatures and claims.
package auth

import "errors"

// Token validation errors.
var (
	// ErrInvalidToken is returned when a token is malformed or its signature
	// does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's not-before is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrWrongTokenType is returned when a token's type claim is not "access".
	ErrWrongTokenType = errors.New("wrong token type")
)
