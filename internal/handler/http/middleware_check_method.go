// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-applicant-desk/internal/utils"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// Chi calls it when the path matches a route but the method does not. The
// handler answers 405 with an Allow header listing the methods registered
// for the matched pattern and a {"detail": ...} body.
//
// Allowed methods are probed with [chi.Mux.Match], so parameterised routes
// such as /applicants/{id}/ are covered as well.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		} {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}
		for i, method := range allowed {
			if i == 0 {
				w.Header().Set("Allow", method)
				continue
			}
			w.Header().Add("Allow", method)
		}

		utils.WriteJSON(w, map[string]string{
			"detail": fmt.Sprintf("Method %q not allowed.", r.Method),
		}, http.StatusMethodNotAllowed)
	}
}
