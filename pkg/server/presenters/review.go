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

// Review is a result of PresentReview
type Review struct {
	UUID      string     `json:"uuid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Content   string     `json:"content"`
	Rating    int        `json:"rating"`
	Book      ReviewBook `json:"book"`
	User      ReviewUser `json:"user"`
}

// ReviewBook is a nested book for PresentReview
type ReviewBook struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
}

// ReviewUser is a nested user for PresentReview
type ReviewUser struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// PresentReview presents a review
func PresentReview(review database.Review) Review {
	return Review{
		UUID:      review.UUID,
		CreatedAt: FormatTS(review.CreatedAt),
		UpdatedAt: FormatTS(review.UpdatedAt),
		Content:   review.Content,
		Rating:    review.Rating,
		Book: ReviewBook{
			UUID:  review.Book.UUID,
			Title: review.Book.Title,
		},
		User: ReviewUser{
			UUID: review.User.UUID,
			Name: review.User.Name,
		},
	}
}

// PresentReviews presents reviews
func PresentReviews(reviews []database.Review) []Review {
	ret := []Review{}

	for _, review := range reviews {
		p := PresentReview(review)
		ret = append(ret, p)
	}

	return ret
}
