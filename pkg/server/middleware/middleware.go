/* Copyright 2025 Libram Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package middleware provides middleware for the server routes
package middleware

import (
	"net/http"

	"github.com/libram/libram/pkg/server/app"
	"github.com/libram/libram/pkg/server/log"
)

// Middleware is a function signature for a middleware
type Middleware func(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler

// APIMw is the middleware for the api routes
func APIMw(h http.HandlerFunc, a *app.App, rateLimit bool) http.Handler {
	return ApplyLimit(h, rateLimit)
}

// NotSupported is a handler for routes that are no longer supported
func NotSupported(w http.ResponseWriter, r *http.Request) {
	DoError(w, "not supported", nil, http.StatusGone)
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func logging(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		inner.ServeHTTP(&sw, r)

		log.WithFields(log.Fields{
			"method":     r.Method,
			"uri":        r.RequestURI,
			"statusCode": sw.statusCode,
			"remoteAddr": lookupIP(r),
		}).Info("incoming request")
	})
}

func recoverPanic(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(log.Fields{
					"uri":   r.RequestURI,
					"panic": rec,
				}).Error("recovered from panic")

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		inner.ServeHTTP(w, r)
	})
}

// Global applies the middleware for all routes
func Global(h http.Handler) http.Handler {
	return recoverPanic(logging(h))
}
