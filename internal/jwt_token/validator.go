package jwttoken

import (
	dErrors "parrainage/pkg/domain-errors"
	authmw "parrainage/pkg/platform/middleware/auth"
)

// Validator exposes a JWTService as the bearer token validator the auth
// middleware expects.
type Validator struct {
	service *JWTService
}

func NewValidator(service *JWTService) *Validator {
	return &Validator{service: service}
}

// ValidateToken checks signature, issuer and expiry, and requires a subject
// and a role claim. Parsing them into domain types is left to the middleware.
func (v *Validator) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token lacks subject or role")
	}
	return &authmw.JWTClaims{SubjectID: claims.Subject, Role: claims.Role}, nil
}
