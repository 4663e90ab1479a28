// Package session owns the client credential lifecycle.
//
// A [Manager] holds the access token, refresh token and cached user profile,
// mirrors them into a [store.SessionStorage], and moves between three states:
//
//	Anonymous ──Start──▶ Authenticated ──401──▶ RefreshPending
//	    ▲                     ▲                      │
//	    │                     └──── refresh ok ──────┤
//	    └──────────── refresh failed / Clear ────────┘
//
// Concurrent callers that observe a 401 for the same access token share a
// single refresh call. Callers whose token has already been replaced get the
// current token without triggering another refresh.
package session
