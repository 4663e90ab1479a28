package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
)

type errorResponse struct {
	status int
	key    string
	msg    string
}

var errorResponseMap = map[error]errorResponse{
	fakeapi.ErrInvalidCredentials:   {http.StatusUnauthorized, "error", app.MsgInvalidCredentials},
	fakeapi.ErrEmailNotVerified:     {http.StatusForbidden, "error", app.MsgEmailNotVerified},
	fakeapi.ErrEmailAlreadyVerified: {http.StatusOK, "message", app.MsgEmailAlreadyVerified},
	fakeapi.ErrWrongPassword:        {http.StatusBadRequest, "error", app.MsgCurrentPasswordIncorrect},
	fakeapi.ErrSamePassword:         {http.StatusBadRequest, "error", app.MsgSamePassword},
	fakeapi.ErrTokenInvalid:         {http.StatusUnauthorized, "detail", app.MsgTokenInvalid},
	fakeapi.ErrApplicantNotFound:    {http.StatusNotFound, "detail", app.MsgApplicantNotFound},
	fakeapi.ErrUserNotFound:         {http.StatusNotFound, "detail", "User not found."},
	fakeapi.ErrTokenCreationFailed:  {http.StatusInternalServerError, "error", app.MsgInternalServerError},

	ErrInvalidJSON:                {http.StatusBadRequest, "detail", "JSON parse error."},
	ErrInvalidForm:                {http.StatusBadRequest, "detail", "Multipart form parse error."},
	ErrInvalidGzip:                {http.StatusBadRequest, "detail", "Invalid gzip data."},
	ErrEmptyAuthorizationHeader:   {http.StatusUnauthorized, "detail", app.MsgNoCredentials},
	ErrInvalidAuthorizationHeader: {http.StatusUnauthorized, "detail", app.MsgTokenInvalid},
}

// writeError renders err as a JSON error body. Field errors become
// {"field": ["msg"]}; known sentinels use their status and message; anything
// else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		log.Debug().Err(err).Msg("validation failed")
		utils.WriteJSON(w, map[string][]string(fieldErrs), http.StatusBadRequest)
		return
	}

	resp, ok := responseFromError(err)
	if !ok {
		log.Err(err).Msg("unexpected error")
		utils.WriteJSON(w, map[string]string{"error": app.MsgInternalServerError}, http.StatusInternalServerError)
		return
	}

	log.Debug().Err(err).Int("status", resp.status).Send()
	body := map[string]string{resp.key: resp.msg}
	if resp.status == http.StatusUnauthorized && resp.key == "detail" && resp.msg == app.MsgTokenInvalid {
		body["code"] = "token_not_valid"
	}
	utils.WriteJSON(w, body, resp.status)
}

func responseFromError(err error) (errorResponse, bool) {
	for target, resp := range errorResponseMap {
		if errors.Is(err, target) {
			return resp, true
		}
	}
	return errorResponse{}, false
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, map[string]string{"detail": "Not found."}, http.StatusNotFound)
}
