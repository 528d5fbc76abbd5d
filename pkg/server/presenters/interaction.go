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

// Interaction is a result of PresentInteraction. FirstViewedAt is the
// creation time of the row; LastViewedAt its last update.
type Interaction struct {
	Book          InteractionBook `json:"book"`
	ViewCount     int             `json:"view_count"`
	FirstViewedAt time.Time       `json:"first_viewed_at"`
	LastViewedAt  time.Time       `json:"last_viewed_at"`
}

// InteractionBook is a nested book for PresentInteraction
type InteractionBook struct {
	UUID   string `json:"uuid"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// PresentInteraction presents an interaction
func PresentInteraction(interaction database.Interaction) Interaction {
	return Interaction{
		Book: InteractionBook{
			UUID:   interaction.Book.UUID,
			Title:  interaction.Book.Title,
			Author: interaction.Book.Author,
		},
		ViewCount:     interaction.ViewCount,
		FirstViewedAt: FormatTS(interaction.CreatedAt),
		LastViewedAt:  FormatTS(interaction.UpdatedAt),
	}
}

// PresentInteractions presents interactions
func PresentInteractions(interactions []database.Interaction) []Interaction {
	ret := []Interaction{}

	for _, interaction := range interactions {
		p := PresentInteraction(interaction)
		ret = append(ret, p)
	}

	return ret
}
