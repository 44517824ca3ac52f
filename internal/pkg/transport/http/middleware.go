package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/travelapp/flight-booking-client/internal/pkg/logger"
)

type MiddlewareFunc func(http.Handler) http.Handler

// SessionCookieName carries the workflow session identity. One workflow
// instance exists per session.
const SessionCookieName = "booking_session"

func Recoverer(logger *slog.Logger) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if err, _ := rvr.(error); errors.Is(err, http.ErrAbortHandler) {
						// we don't recover http.ErrAbortHandler so the response
						// to the client is aborted, this should not be logged
						panic(rvr)
					}

					logger.ErrorContext(req.Context(), "panic occurred", slog.Any("message", rvr), slog.String("stack_trace", string(debug.Stack())))
					respWriter.WriteHeader(http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}

// RequestID propagates the caller's request id or issues a new one.
func RequestID() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			reqID := req.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}

			respWriter.Header().Set("X-Request-ID", reqID)

			ctx := context.WithValue(req.Context(), logger.RequestIDKey, reqID)
			next.ServeHTTP(respWriter, req.WithContext(ctx))
		})
	}
}

// SessionID reads the session cookie, issuing a fresh one for new
// visitors, and puts the id on the context.
func SessionID() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			var sessionID string

			if cookie, err := req.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				sessionID = uuid.NewString()
				http.SetCookie(respWriter, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
				})
			}

			ctx := context.WithValue(req.Context(), logger.SessionIDKey, sessionID)
			next.ServeHTTP(respWriter, req.WithContext(ctx))
		})
	}
}

// CORSMiddleware set CORS related headers.
func CORSMiddleware() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, // allow the dev frontend
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "OPTIONS", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Origin", "Content-Type"},
		AllowCredentials: true,
	})
}
