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

// Package crypt provides cryptographic utilities
package crypt

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

// GetRandomStr generates a cryptographically secure random string encoded
// in base64, built from the given number of random bytes
func GetRandomStr(bits int) (string, error) {
	b := make([]byte, bits)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "reading random bits")
	}

	return base64.StdEncoding.EncodeToString(b), nil
}
