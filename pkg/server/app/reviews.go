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
	"errors"

	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/helpers"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}

	return nil
}

// SubmitReview records the given user's review of the given book. A user
// holds at most one review per book. If one exists already, its content and
// rating are replaced and created is false. Otherwise a new review is
// inserted and created is true.
func (a *App) SubmitReview(user database.User, book database.Book, content string, rating int) (database.Review, bool, error) {
	if err := validateRating(rating); err != nil {
		return database.Review{}, false, err
	}
	if content == "" {
		return database.Review{}, false, ValidationError{Field: "content", Message: "is required"}
	}

	tx := a.DB.Begin()

	var review database.Review
	err := tx.Where("book_id = ? AND user_id = ?", book.ID, user.ID).First(&review).Error

	if err == nil {
		review.Content = content
		review.Rating = rating
		if err := tx.Save(&review).Error; err != nil {
			tx.Rollback()
			return database.Review{}, false, pkgErrors.Wrap(err, "updating review")
		}

		tx.Commit()
		return review, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return database.Review{}, false, pkgErrors.Wrap(err, "finding review")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		tx.Rollback()
		return database.Review{}, false, err
	}

	review = database.Review{
		UUID:    uuid,
		BookID:  book.ID,
		UserID:  user.ID,
		Content: content,
		Rating:  rating,
	}
	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		// A concurrent submission for the same pair can slip in between the
		// lookup and the insert.
		if isUniqueViolation(err) {
			return database.Review{}, false, ErrDuplicateReview
		}
		return database.Review{}, false, pkgErrors.Wrap(err, "inserting review")
	}

	tx.Commit()

	return review, true, nil
}

// UpdateReviewParams is the parameters for updating a review
type UpdateReviewParams struct {
	Content *string
	Rating  *int
}

// UpdateReview updates the given review
func (a *App) UpdateReview(review database.Review, p UpdateReviewParams) (database.Review, error) {
	if p.Content != nil {
		if *p.Content == "" {
			return review, ValidationError{Field: "content", Message: "is required"}
		}
		review.Content = *p.Content
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return review, err
		}
		review.Rating = *p.Rating
	}

	if err := a.DB.Save(&review).Error; err != nil {
		return review, pkgErrors.Wrap(err, "updating review")
	}

	return review, nil
}

// DeleteReview deletes the given review
func (a *App) DeleteReview(review database.Review) error {
	if err := a.DB.Delete(&review).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting review")
	}

	return nil
}

// GetReviewsParams is params for finding reviews
type GetReviewsParams struct {
	BookUUID string
	UserUUID string
	Page     int
	PerPage  int
}

// GetReviewsResult is the result of getting reviews
type GetReviewsResult struct {
	Reviews []database.Review
	Total   int64
}

func getReviewsBaseQuery(db *gorm.DB, p GetReviewsParams) *gorm.DB {
	conn := db.Model(&database.Review{})

	if p.BookUUID != "" {
		conn = conn.Where("reviews.book_id IN (SELECT id FROM books WHERE uuid = ?)", p.BookUUID)
	}
	if p.UserUUID != "" {
		conn = conn.Where("reviews.user_id IN (SELECT id FROM users WHERE uuid = ?)", p.UserUUID)
	}

	return conn
}

// GetReviews returns reviews matching the params, newest first
func (a *App) GetReviews(p GetReviewsParams) (GetReviewsResult, error) {
	var total int64
	if err := getReviewsBaseQuery(a.DB, p).Count(&total).Error; err != nil {
		return GetReviewsResult{}, pkgErrors.Wrap(err, "counting total")
	}

	reviews := []database.Review{}
	if total != 0 {
		conn := database.PreloadReview(getReviewsBaseQuery(a.DB, p)).
			Order("reviews.created_at DESC, reviews.id DESC")
		conn = paginate(conn, p.Page, p.PerPage)

		if err := conn.Find(&reviews).Error; err != nil {
			return GetReviewsResult{}, pkgErrors.Wrap(err, "finding reviews")
		}
	}

	return GetReviewsResult{Reviews: reviews, Total: total}, nil
}

// GetReviewByUUID retrieves a review by the uuid
func (a *App) GetReviewByUUID(uuid string) (database.Review, error) {
	var review database.Review
	err := database.PreloadReview(a.DB.Where("uuid = ?", uuid)).First(&review).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Review{}, ErrNotFound
	} else if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "finding review")
	}

	return review, nil
}
