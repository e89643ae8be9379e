package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time source
// for predictable expiry testing. The refresh lifetime is fixed at twice
// the access lifetime, which is all the tests need.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        tokenLifetime,
		refreshTokenLifetime: 2 * tokenLifetime,
		timeFunc:             timeFunc,
		clockSkew:            0,
	}
}
