// Package csrf implements the double-submit check the HRMS front-end already
// speaks: a csrftoken cookie echoed back as the csrfmiddlewaretoken form field
// or the X-CSRFToken header.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

const (
	CookieName = "csrftoken"
	FormField  = "csrfmiddlewaretoken"
	HeaderName = "X-CSRFToken"

	tokenBytes = 32
)

var (
	ErrMissingToken  = errors.New("CSRF cookie not set")
	ErrTokenMismatch = errors.New("CSRF token missing or incorrect")
)

// NewToken returns a random hex token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Verify checks the submitted token of an unsafe request against its cookie.
// It parses the form, so handlers can read r.PostForm afterwards.
func Verify(r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ErrMissingToken
	}

	submitted := strings.TrimSpace(r.Header.Get(HeaderName))
	if submitted == "" {
		if err := r.ParseForm(); err == nil {
			submitted = strings.TrimSpace(r.PostForm.Get(FormField))
		}
	}
	if submitted == "" {
		return ErrTokenMismatch
	}

	if subtle.ConstantTimeCompare([]byte(submitted), []byte(cookie.Value)) != 1 {
		return ErrTokenMismatch
	}
	return nil
}

func isSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// Middleware issues the cookie on safe requests and enforces it on unsafe ones.
// onFailure writes the rejection; nil falls back to a plain 403.
func Middleware(onFailure func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusForbidden)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafe(r.Method) {
				if c, err := r.Cookie(CookieName); err != nil || c.Value == "" {
					token, err := NewToken()
					if err != nil {
						onFailure(w, r, err)
						return
					}
					http.SetCookie(w, &http.Cookie{
						Name:     CookieName,
						Value:    token,
						Path:     "/",
						SameSite: http.SameSiteLaxMode,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			if err := Verify(r); err != nil {
				onFailure(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
