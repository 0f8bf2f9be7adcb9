package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// TokenHandler handles token issuance requests.
type TokenHandler struct {
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewTokenHandler creates a new TokenHandler with the given dependencies.
func NewTokenHandler(tokenService service.TokenService, logger *slog.Logger) *TokenHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TokenHandler")
	}
	return &TokenHandler{
		tokenService: tokenService,
		logger:       logger.With(slog.String("component", "token_handler")),
	}
}

// Obtain handles POST /api/token/
func (h *TokenHandler) Obtain(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenObtainRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	pair, err := h.tokenService.Obtain(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to issue token.")
		return
	}

	log.Debug("token pair issued")
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Refresh handles POST /api/token/refresh/
func (h *TokenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req TokenRefreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to refresh token.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}
