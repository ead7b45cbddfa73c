package httphandler

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	usernameHeader  = "X-User-Id"
	csrfCookieName  = "csrf_token"
	csrfTokenHeader = "X-Csrf-Token"
)

// Username returns the authenticated client identifier.
//
// Authentication itself is an upstream concern, the service
// trusts the header set by the gateway.
func Username(r *http.Request) string {
	return r.Header.Get(usernameHeader)
}

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// CSRFToken guards mutating requests with a double-submit token:
// the cookie issued on safe requests must be echoed in the
// X-Csrf-Token header.
func CSRFToken(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if _, err := r.Cookie(csrfCookieName); err != nil {
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    newCSRFToken(),
					Path:     "/",
					HttpOnly: false,
					SameSite: http.SameSiteStrictMode,
				})
			}
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(csrfCookieName)
		if err != nil || !tokensEqual(cookie.Value, r.Header.Get(csrfTokenHeader)) {
			http.Error(w, "invalid form token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func tokensEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
