// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/store"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// backend is a minimal stand-in for the REST API. Only validAccess is
// accepted on authenticated routes; a refresh with validRefresh rotates it.
type backend struct {
	mu           sync.Mutex
	validAccess  string
	validRefresh string
	nextAccess   string
	failRefresh  bool
	refreshDelay time.Duration
	rejectAll    bool

	refreshCalls atomic.Int32
	authHeaders  []string
	requestIDs   []string
	forms        []map[string]string
	documents    []string
}

func (b *backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.authHeaders = append(b.authHeaders, strings.Join(r.Header.Values("Authorization"), ","))
	b.requestIDs = append(b.requestIDs, r.Header.Get(RequestIDHeader))
}

func (b *backend) authorized(r *http.Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.rejectAll && r.Header.Get("Authorization") == "Bearer "+b.validAccess
}

func (b *backend) unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type","code":"token_not_valid"}`))
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.refreshCalls.Add(1)
		if b.refreshDelay > 0 {
			time.Sleep(b.refreshDelay)
		}

		var req models.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failRefresh || req.Refresh != b.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
			return
		}
		b.validAccess = b.nextAccess
		_ = json.NewEncoder(w).Encode(models.RefreshResponse{Access: b.nextAccess})
	})

	mux.HandleFunc("POST /api/user/login/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Login successful","user":{"id":1,"email":"staff@example.com","full_name":"Staff","is_verified":true},"tokens":{"access":"a1","refresh":"r1"}}`))
	})

	mux.HandleFunc("GET /api/user/me/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if !b.authorized(r) {
			b.unauthorized(w)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"email":"staff@example.com","full_name":"Staff","is_verified":true}`))
	})

	mux.HandleFunc("PUT /api/user/update-profile/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if !b.authorized(r) {
			b.unauthorized(w)
			return
		}
		_, _ = w.Write([]byte(`{"message":"Profile updated successfully","user":{"id":1,"email":"staff@example.com","full_name":"Renamed"}}`))
	})

	mux.HandleFunc("POST /api/user/register/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["user with this email already exists."],"password":["This password is too short.","This password is too common."]}`))
	})

	mux.HandleFunc("GET /applicants/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if !b.authorized(r) {
			b.unauthorized(w)
			return
		}
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":3,"full_name":"Jane Doe","interested_course":"` + r.URL.Query().Get("interested_course") + `","academics":[]}]}`))
	})

	mux.HandleFunc("POST /applicants/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if !b.authorized(r) {
			b.unauthorized(w)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		form := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			form[k] = v[0]
		}
		doc := ""
		if f, _, err := r.FormFile("document"); err == nil {
			content, _ := io.ReadAll(f)
			doc = string(content)
		}
		b.mu.Lock()
		b.forms = append(b.forms, form)
		b.documents = append(b.documents, doc)
		b.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Applicant created successfully","data":{"id":12,"full_name":"` + form["full_name"] + `","academics":[]}}`))
	})

	mux.HandleFunc("GET /applicants/{id}/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if !b.authorized(r) {
			b.unauthorized(w)
			return
		}
		if r.PathValue("id") == "404" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"No Applicant matches the given query."}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":` + r.PathValue("id") + `,"full_name":"Jane Doe","overall_score":7.5,"academics":[]}`))
	})

	mux.HandleFunc("POST /api/user/logout/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

type fixture struct {
	backend *backend
	session *session.Manager
	adapter ServerAdapter
	expired atomic.Int32
}

func newFixture(t *testing.T, b *backend, cfg config.Adapter) *fixture {
	t.Helper()

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	cfg.HTTPAddress = srv.URL
	sess := session.NewManager(store.NewMemorySessionStorage(), logger.Nop())
	a, err := NewHTTPServerAdapter(cfg, sess, logger.Nop())
	require.NoError(t, err)

	f := &fixture{backend: b, session: sess, adapter: a}
	sess.OnExpired(func(error) { f.expired.Add(1) })
	return f
}

func (f *fixture) login(t *testing.T, access, refresh string) {
	t.Helper()
	require.NoError(t, f.session.Start(context.Background(), models.Tokens{Access: access, Refresh: refresh}, models.User{ID: "1"}))
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	sess := session.NewManager(store.NewMemorySessionStorage(), logger.Nop())

	for _, addr := range []string{"localhost:8000", "://bad", "/relative"} {
		_, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: addr}, sess, logger.Nop())
		assert.Error(t, err, addr)
	}
}

func TestAuthed_AttachesBearerOnceAndRequestID(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a1"}, config.Adapter{})
	f.login(t, "a1", "r1")

	user, err := f.adapter.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", user.Email)

	require.Len(t, f.backend.authHeaders, 1)
	assert.Equal(t, "Bearer a1", f.backend.authHeaders[0])
	assert.NotEmpty(t, f.backend.requestIDs[0])
}

func TestPublic_NoBearerAndNoRefresh(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a1", validRefresh: "r1", nextAccess: "a2"}, config.Adapter{})
	f.login(t, "stale", "r1")

	_, err := f.adapter.Login(context.Background(), models.Credentials{Email: "staff@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	assert.Equal(t, int32(0), f.backend.refreshCalls.Load())
	assert.Equal(t, "", f.backend.authHeaders[0])
	assert.Equal(t, "stale", f.session.Token(), "a failed login must not touch the session")
}

func TestLogin_DecodesTokensAndUser(t *testing.T) {
	f := newFixture(t, &backend{}, config.Adapter{})

	resp, err := f.adapter.Login(context.Background(), models.Credentials{Email: "staff@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{Access: "a1", Refresh: "r1"}, resp.Tokens)
	assert.Equal(t, models.FlexString("1"), resp.User.ID)
}

func TestAuthed_RefreshesAndReplaysOnce(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a2", validRefresh: "r1", nextAccess: "a2"}, config.Adapter{})
	f.login(t, "a1", "r1")

	_, err := f.adapter.GetApplicant(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.backend.refreshCalls.Load())
	assert.Equal(t, "a2", f.session.Token())

	// original, refresh, replay
	require.Len(t, f.backend.authHeaders, 3)
	assert.Equal(t, "Bearer a1", f.backend.authHeaders[0])
	assert.Equal(t, "", f.backend.authHeaders[1])
	assert.Equal(t, "Bearer a2", f.backend.authHeaders[2])
	assert.Equal(t, f.backend.requestIDs[0], f.backend.requestIDs[2], "replay keeps the request id")
}

func TestAuthed_SecondUnauthorizedIsNotRetried(t *testing.T) {
	b := &backend{validAccess: "a2", validRefresh: "r1", nextAccess: "a2", rejectAll: true}
	f := newFixture(t, b, config.Adapter{})
	f.login(t, "a1", "r1")

	_, err := f.adapter.ListApplicants(context.Background(), models.ApplicantFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, int32(1), b.refreshCalls.Load())
	// original, refresh, replay
	assert.Len(t, b.authHeaders, 3)
	// the refreshed session stays usable
	assert.Equal(t, "a2", f.session.Token())
	assert.Equal(t, int32(0), f.expired.Load())
}

func TestAuthed_RefreshFailurePurgesSession(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a2", failRefresh: true}, config.Adapter{})
	f.login(t, "a1", "r1")

	_, err := f.adapter.Analytics(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	assert.Equal(t, session.Anonymous, f.session.State())
	assert.Empty(t, f.session.Token())
	assert.Equal(t, int32(1), f.expired.Load())
}

func TestAuthed_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	b := &backend{validAccess: "a2", validRefresh: "r1", nextAccess: "a2", refreshDelay: 50 * time.Millisecond}
	f := newFixture(t, b, config.Adapter{})
	f.login(t, "a1", "r1")

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.adapter.GetApplicant(context.Background(), "3")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), b.refreshCalls.Load())
	assert.Equal(t, "a2", f.session.Token())
}

func TestCreateApplicant_MultipartSurvivesReplay(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a2", validRefresh: "r1", nextAccess: "a2"}, config.Adapter{})
	f.login(t, "a1", "r1")

	in := models.ApplicantInput{
		PersonalInfo: models.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", InterestedCourse: models.CourseMasters},
		TestScore:    models.TestScore{TestType: models.TestIELTS, OverallScore: "7.5", AttendedDate: "2026-01-15"},
		Academics: []models.Academic{
			{DegreeLevel: models.DegreeBachelors, DegreeTitle: "BSc", Institution: "MIT", PassedYear: "2024", ObtainedMark: "3.8"},
		},
		Document: &models.Document{Name: "cv.pdf", Content: []byte("%PDF-1.4 test")},
	}

	applicant, err := f.adapter.CreateApplicant(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.FlexString("12"), applicant.ID)
	assert.Equal(t, "Jane Doe", applicant.FullName)

	require.Len(t, f.backend.forms, 1, "only the replay reaches the form handler")
	form := f.backend.forms[0]
	assert.Equal(t, "Masters", form["interested_course"])
	assert.Equal(t, "7.5", form["overall_score"])

	var academics []models.Academic
	require.NoError(t, json.Unmarshal([]byte(form["academics"]), &academics))
	require.Len(t, academics, 1)
	assert.Equal(t, "MIT", academics[0].Institution)

	assert.Equal(t, "%PDF-1.4 test", f.backend.documents[0])
}

func TestListApplicants_FilterQuery(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a1"}, config.Adapter{})
	f.login(t, "a1", "r1")

	list, err := f.adapter.ListApplicants(context.Background(), models.ApplicantFilter{InterestedCourse: models.CoursePhD})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Results, 1)
	assert.Equal(t, models.CoursePhD, list.Results[0].InterestedCourse)
}

func TestGetApplicant_NumericScoresAndNotFound(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a1"}, config.Adapter{})
	f.login(t, "a1", "r1")

	applicant, err := f.adapter.GetApplicant(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, models.FlexString("5"), applicant.ID)
	assert.Equal(t, models.FlexString("7.5"), applicant.OverallScore)

	_, err = f.adapter.GetApplicant(context.Background(), "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile_DecodesUser(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a1"}, config.Adapter{})
	f.login(t, "a1", "r1")

	user, err := f.adapter.UpdateProfile(context.Background(), models.UpdateProfileRequest{FullName: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.FullName)
}

func TestRegister_FieldErrors(t *testing.T) {
	f := newFixture(t, &backend{}, config.Adapter{})

	err := f.adapter.Register(context.Background(), models.RegisterRequest{Email: "staff@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"user with this email already exists."}, apiErr.Fields["email"])
	assert.Len(t, apiErr.Fields["password"], 2)
	assert.Equal(t,
		"email: user with this email already exists.; password: This password is too short. This password is too common.",
		apiErr.FieldSummary())
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	sess := session.NewManager(store.NewMemorySessionStorage(), logger.Nop())
	a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: addr, RequestTimeout: time.Second}, sess, logger.Nop())
	require.NoError(t, err)

	_, err = a.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestLogout_BoundedByTimeout(t *testing.T) {
	f := newFixture(t, &backend{validAccess: "a1"}, config.Adapter{LogoutTimeout: 20 * time.Millisecond})
	f.login(t, "a1", "r1")

	start := time.Now()
	err := f.adapter.Logout(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
	assert.Equal(t, int32(0), f.backend.refreshCalls.Load())
}
