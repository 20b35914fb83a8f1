package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/folha-audit/payroll-audit-go/internal/domain/auth"
	"github.com/folha-audit/payroll-audit-go/internal/handler/http/response"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/jwt"
	authservice "github.com/folha-audit/payroll-audit-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService *authservice.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService *authservice.AuthService) AuthHandler {
	return &authHandlerImpl{jwtService: jwtService, authService: authService}
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, refreshToken, refreshExpiry, err := h.authService.Login(r.Context(), req)
	if err != nil {
		slog.Error("Login failed", "username", req.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken, refreshExpiry))
	response.Success(w, tokens)
}

func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokens)
}

func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		h.authService.Logout(r.Context(), cookie.Value)
	}

	// Expire the cookie client-side as well.
	http.SetCookie(w, h.jwtService.RefreshTokenCookie("", 0))
	response.SuccessWithMessage(w, "Logged out", nil)
}
