// Package middleware holds the HTTP middleware shared by all routes.
package middleware

import "net/http"

// Middleware wraps an http.Handler. It has the shape chi.Router.Use expects.
type Middleware func(http.Handler) http.Handler
