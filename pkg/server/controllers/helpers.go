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

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/libram/libram/pkg/server/app"
	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/log"
	"github.com/libram/libram/pkg/server/middleware"
	"github.com/libram/libram/pkg/server/presenters"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

func parseForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}

	return formDecoder.Decode(dst, r.PostForm)
}

// parseRequestData decodes the request payload into the given destination.
// JSON requests carry a JSON body. Everything else is treated as a form.
func parseRequestData(r *http.Request, dst interface{}) error {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return err
		}

		return nil
	}

	return parseForm(r, dst)
}

// getStatusCode returns the status code for the given application error
func getStatusCode(err error) int {
	switch {
	case app.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, app.ErrLoginInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrDuplicateEmail),
		errors.Is(err, app.ErrDuplicateCategoryName),
		errors.Is(err, app.ErrDuplicateISBN),
		errors.Is(err, app.ErrDuplicateReview):
		return http.StatusConflict
	case errors.Is(err, app.ErrEmailRequired),
		errors.Is(err, app.ErrPasswordRequired),
		errors.Is(err, app.ErrPasswordTooShort),
		errors.Is(err, app.ErrPasswordConfirmationMismatch):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// handleJSONError logs the error and responds with the matching status code.
// Internal errors are not leaked to the client.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := getStatusCode(err)

	if statusCode == http.StatusInternalServerError {
		middleware.DoError(w, msg, err, statusCode)
		return
	}

	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).Info(msg + ": " + err.Error())

	respondJSON(w, statusCode, errorResponse{Error: err.Error()})
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON responds with the JSON-encoding of the given interface
func respondJSON(w http.ResponseWriter, statusCode int, i interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(i); err != nil {
		middleware.DoError(w, "encoding response", err, http.StatusInternalServerError)
	}
}

func respondWithSession(w http.ResponseWriter, statusCode int, session *database.Session) {
	setSessionCookie(w, session.Key, session.ExpiresAt)
	respondJSON(w, statusCode, presenters.PresentSession(*session))
}

func setSessionCookie(w http.ResponseWriter, key string, expires time.Time) {
	cookie := http.Cookie{
		Name:     "auth",
		Value:    key,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(w, &cookie)
}

func unsetSessionCookie(w http.ResponseWriter) {
	expire := time.Now().Add(time.Hour * -24 * 30)
	cookie := http.Cookie{
		Name:     "auth",
		Value:    "",
		Expires:  expire,
		Path:     "/",
		HttpOnly: true,
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.SetCookie(w, &cookie)
}

// GetCredential extracts a session key from the request
func GetCredential(r *http.Request) (string, error) {
	return middleware.GetCredential(r)
}

func parsePageParams(r *http.Request) (page, perPage int) {
	q := r.URL.Query()

	page = 1
	if v := q.Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}

	perPage = 20
	if v := q.Get("per_page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			perPage = parsed
		}
	}

	return page, perPage
}

func parseFloatParam(r *http.Request, name string) (*float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, app.ValidationError{Field: name, Message: "must be a number"}
	}

	return &parsed, nil
}
