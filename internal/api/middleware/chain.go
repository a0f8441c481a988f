package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/cors"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recover превращает панику в обработчике в 500
func Recover(log Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("%s %s - panic: %v", r.Method, r.URL.Path, fmt.Sprint(rec))
					w.Header().Set("Connection", "close")
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLog пишет метод, путь, статус и длительность запроса
func RequestLog(log Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("%s %s %s - %d (%s)", r.RemoteAddr, r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
		})
	}
}

// CORS разрешает React фронтенду ходить в API с нужными заголовками
func CORS(allowedOrigins []string) alice.Constructor {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", HeaderUserID, HeaderUserRole},
		AllowCredentials: true,
	})
	return c.Handler
}

// Chain общая цепочка: CORS -> recover -> лог запроса
func Chain(log Logger, allowedOrigins []string) alice.Chain {
	return alice.New(CORS(allowedOrigins), Recover(log), RequestLog(log))
}
