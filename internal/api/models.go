package api

// Request structures for the authentication endpoints. The task and
// registration payloads decode directly into service parameter types so
// field-level validation stays in one place.

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateTaskStatusRequest defines the payload for the task status
// endpoint.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// RefreshTokenRequest defines the payload for the token refresh
// endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// TokenData is the token portion of authentication payloads. ExpiresIn
// is the access token lifetime in seconds.
type TokenData struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int    `json:"expires_in"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
