package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type httpServerAdapter struct {
	client  *utils.HTTPClient
	session *session.Manager
	ids     *utils.UUIDGenerator

	logoutTimeout time.Duration

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter]
// bound to sess. It validates the base URL from cfg.HTTPAddress and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.HTTPAddress cannot be parsed as an absolute URL.
func NewHTTPServerAdapter(cfg config.Adapter, sess *session.Manager, logger *logger.Logger) (ServerAdapter, error) {
	u, err := url.Parse(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid adapter http address %q: address must include host and scheme", cfg.HTTPAddress)
	}

	return &httpServerAdapter{
		client:        utils.NewHTTPClient(cfg.HTTPAddress, cfg.RequestTimeout),
		session:       sess,
		ids:           utils.NewUUIDGenerator(),
		logoutTimeout: cfg.LogoutTimeout,
		logger:        logger,
	}, nil
}

// sendFunc issues one attempt of a request on a freshly built *resty.Request.
// It is called again, with a new request, when the attempt is replayed.
type sendFunc func(r *resty.Request) (*resty.Response, error)

func (h *httpServerAdapter) newRequest(ctx context.Context, requestID, token string) *resty.Request {
	r := h.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// public sends a request that never carries a bearer token and never
// triggers a refresh.
func (h *httpServerAdapter) public(ctx context.Context, op string, send sendFunc) (*resty.Response, error) {
	requestID := h.ids.Generate()

	resp, err := send(h.newRequest(ctx, requestID, ""))
	return h.finish(op, requestID, resp, err)
}

// authed sends a request with the session's bearer token. A 401 triggers one
// refresh through the session manager followed by exactly one replay; a 401
// on the replay is returned as is.
func (h *httpServerAdapter) authed(ctx context.Context, op string, send sendFunc) (*resty.Response, error) {
	requestID := h.ids.Generate()
	token := h.session.Token()

	resp, err := send(h.newRequest(ctx, requestID, token))
	if err != nil || resp.StatusCode() != http.StatusUnauthorized {
		return h.finish(op, requestID, resp, err)
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.authed").
		Str("op", op).
		Str("request_id", requestID).
		Msg("access token rejected, refreshing")

	newToken, err := h.session.Refresh(ctx, token, h.RefreshAccessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err = send(h.newRequest(ctx, requestID, newToken))
	return h.finish(op, requestID, resp, err)
}

func (h *httpServerAdapter) finish(op, requestID string, resp *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpServerAdapter.finish").
			Str("op", op).
			Str("request_id", requestID).
			Msg("request failed")
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}

	if err := mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("op", op).
			Str("request_id", requestID).
			Int("status", resp.StatusCode()).
			Msg("request rejected")
		return resp, fmt.Errorf("%s: %w", op, err)
	}

	h.logger.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode()).
		Msg("request done")
	return resp, nil
}

func decodeBody(op string, resp *resty.Response, target any) error {
	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrDecodingResponse, err)
	}
	return nil
}
