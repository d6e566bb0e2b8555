package http

import (
	"net/http"
	"strings"

	"github.com/prabesh187/recipe-sharing-platform/pkg/httputil"
)

// userIDHeader carries the authenticated user's identity, set by the API
// gateway. Authentication itself happens upstream.
const userIDHeader = "X-User-ID"

// ContentTypeJSON rejects write requests whose body is not declared as JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireUserID extracts the user ID header, writing a 401 when absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "X-User-ID header is required",
			},
		})
		return "", false
	}
	return userID, true
}
