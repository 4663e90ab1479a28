package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
)

// auth is an HTTP middleware that enforces JWT bearer authentication.
//
// It reads the "Authorization" header, extracts the bearer token, validates
// it via [fakeapi.AccountService.Authenticate] and stores the user id in the
// request context under [utils.UserIDCtxKey].
//
// Rejections are answered with 401 and a {"detail": ...} body, which is the
// signal for the client to refresh its access token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Msg("request without credentials")
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		userID, err := h.services.AccountService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
