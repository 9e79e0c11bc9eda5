package handler

import (
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Authentication — /v1/auth
// ============================================================

func authLoginHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/login")
		defer span.End()

		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		resp, err := svc.Login(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// authRefreshHandler re-issues a token for an active session, sliding
// the idle window forward.
func authRefreshHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/refresh")
		defer span.End()

		user := UserFromContext(ctx)
		if user == nil {
			writeError(w, http.StatusUnauthorized, "no active session")
			return
		}

		resp, err := svc.Refresh(ctx, user)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// authLogoutHandler ends the session from the server's point of view.
// Tokens are stateless, so the client drops its copy; the handler logs
// the event and confirms.
func authLogoutHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user != nil {
			logger.Info("logout", zap.String("username", user.Username))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func authMeHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "no active session")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
