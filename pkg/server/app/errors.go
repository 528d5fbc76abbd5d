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

package app

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a nonexistent resource
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is an error for an operation the user may not perform
	ErrPermissionDenied = errors.New("permission denied")
	// ErrLoginInvalid is an error for invalid credentials
	ErrLoginInvalid = errors.New("wrong email and password combination")
	// ErrEmailRequired is an error for an empty email
	ErrEmailRequired = errors.New("email is required")
	// ErrPasswordRequired is an error for an empty password
	ErrPasswordRequired = errors.New("password is required")
	// ErrPasswordTooShort is an error for a password that is too short
	ErrPasswordTooShort = errors.New("password should be longer than 8 characters")
	// ErrPasswordConfirmationMismatch is an error for a mismatched password confirmation
	ErrPasswordConfirmationMismatch = errors.New("password confirmation does not match password")
	// ErrDuplicateEmail is an error for an email that is already registered
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrDuplicateCategoryName is an error for a category name that is taken
	ErrDuplicateCategoryName = errors.New("a category with the name already exists")
	// ErrDuplicateISBN is an error for an ISBN that is already cataloged
	ErrDuplicateISBN = errors.New("a book with the ISBN already exists")
	// ErrDuplicateReview is an error for a second concurrent review of the
	// same book by the same user
	ErrDuplicateReview = errors.New("the user has already reviewed the book")
)

// ValidationError is an error for malformed input. Field names the offending
// input so that callers can surface per-field detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// isUniqueViolation checks if the given error is a uniqueness constraint
// violation from SQLite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
