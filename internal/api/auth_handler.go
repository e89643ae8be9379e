package api

import (
	"log/slog"
	"net/http"

	"github.com/taskdo/taskdo-api/internal/api/middleware"
	"github.com/taskdo/taskdo-api/internal/api/shared"
	"github.com/taskdo/taskdo-api/internal/service"
	"github.com/taskdo/taskdo-api/internal/service/auth"
)

// AuthHandler handles registration, login, and token refresh.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// loginData is the payload of a successful login: the account fields
// plus a fresh token pair.
type loginData struct {
	service.UserData
	TokenData
}

// Register handles POST /api/auth/register/.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var params service.RegisterParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result := h.userService.Register(r.Context(), params)
	if !result.Success {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, result)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// Login handles POST /api/auth/login/. On success the envelope data
// carries the account fields together with an access and refresh token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if !result.Success {
		shared.RespondWithJSON(w, r, http.StatusUnauthorized, result)
		return
	}

	userData, ok := result.Data.(service.UserData)
	if !ok {
		slog.Error("unexpected authentication payload type")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication failed")
		return
	}

	tokens, err := h.issueTokens(r, userData)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	result.Data = loginData{UserData: userData, TokenData: tokens}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RefreshToken handles POST /api/auth/refresh/. A valid refresh token
// yields a brand new token pair; the old refresh token is not reusable
// once expired.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Refresh token is required")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	access, err := h.jwtService.GenerateToken(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, service.SuccessResult(
		"Token refreshed successfully",
		TokenData{
			Access:    access,
			Refresh:   refresh,
			ExpiresIn: int(h.jwtService.AccessTokenLifetime().Seconds()),
		},
	))
}

// Me handles GET /api/auth/me/. It returns the authenticated caller's
// account fields; a token whose user no longer exists is rejected.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	result := h.userService.GetProfile(r.Context(), userID)
	if !result.Success {
		shared.RespondWithJSON(w, r, http.StatusUnauthorized, result)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// issueTokens generates an access and refresh token pair for the given
// account.
func (h *AuthHandler) issueTokens(r *http.Request, user service.UserData) (TokenData, error) {
	access, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		return TokenData{}, err
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		return TokenData{}, err
	}
	return TokenData{
		Access:    access,
		Refresh:   refresh,
		ExpiresIn: int(h.jwtService.AccessTokenLifetime().Seconds()),
	}, nil
}
