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

package middleware

import (
	"net/http"
	"strings"

	"github.com/libram/libram/pkg/server/log"
)

// GetCredential extracts a session key from the request from the request header. Concretely,
// it first looks at the 'Authorization' header. If it is empty, it looks at the cookie.
func GetCredential(r *http.Request) (string, error) {
	ret := getSessionKeyFromAuth(r)

	if ret == "" {
		var err error
		ret, err = getSessionKeyFromCookie(r)

		if err != nil {
			return "", err
		}
	}

	return ret, nil
}

func getSessionKeyFromCookie(r *http.Request) (string, error) {
	c, err := r.Cookie("auth")

	if err == http.ErrNoCookie {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return c.Value, nil
}

func getSessionKeyFromAuth(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	payload := strings.TrimPrefix(h, "Bearer ")
	if payload == h {
		return ""
	}

	return payload
}

// DoError logs the error and responds with the given status code with a generic
// status text
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	var message string
	if err == nil {
		message = msg
	} else {
		message = msg + ": " + err.Error()
	}

	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).Error(message)

	statusText := http.StatusText(statusCode)
	http.Error(w, statusText, statusCode)
}

// RespondUnauthorized responds with 401 and requests authorization
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="libram"`)
	DoError(w, "unauthorized", nil, http.StatusUnauthorized)
}
