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

package database

import (
	"gorm.io/gorm"
)

// PreloadBook preloads associations of a book
func PreloadBook(conn *gorm.DB) *gorm.DB {
	return conn.Preload("Category").Preload("Reviews").Preload("Reviews.User")
}

// PreloadReview preloads associations of a review
func PreloadReview(conn *gorm.DB) *gorm.DB {
	return conn.Preload("User").Preload("Book")
}
