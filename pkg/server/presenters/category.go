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

package presenters

import (
	"time"

	"github.com/libram/libram/pkg/server/database"
)

// Category is a result of PresentCategory
type Category struct {
	UUID        string    `json:"uuid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// PresentCategory presents a category
func PresentCategory(category database.Category) Category {
	return Category{
		UUID:        category.UUID,
		CreatedAt:   FormatTS(category.CreatedAt),
		UpdatedAt:   FormatTS(category.UpdatedAt),
		Name:        category.Name,
		Description: category.Description,
	}
}

// PresentCategories presents categories
func PresentCategories(categories []database.Category) []Category {
	ret := []Category{}

	for _, category := range categories {
		p := PresentCategory(category)
		ret = append(ret, p)
	}

	return ret
}
