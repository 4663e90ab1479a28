package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register/", h.register)
		r.Post("/api/user/login/", h.login)
		r.Get("/api/user/verify-email/{uid}/{token}/", h.verifyEmail)
		r.Post("/api/user/forgot-password/", h.forgotPassword)
		r.Post("/api/user/reset-password/{uid}/{token}/", h.resetPassword)
		r.Post("/api/token/refresh/", h.refreshToken)
		r.Get("/media/"+documentRoute, h.document)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout/", h.logout)
		r.Get("/api/user/me/", h.me)
		r.Put("/api/user/update-profile/", h.updateProfile)
		r.Post("/api/user/change-password/", h.changePassword)

		r.Route("/applicants", func(r chi.Router) {
			r.Get("/", h.listApplicants)
			r.Post("/", h.createApplicant)
			r.Get("/analytics/", h.analytics)
			r.Get("/{id}/", h.getApplicant)
			r.Put("/{id}/", h.updateApplicant)
			r.Delete("/{id}/", h.deleteApplicant)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	router.NotFound(notFound)

	return router
}
