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
	"github.com/libram/libram/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
)

// recommendationLimit caps every recommendation list.
const recommendationLimit = 10

// likedRatingFloor is the lowest rating that counts as a signal of interest
// in a book's category.
const likedRatingFloor = 4

// GetRecommendedBooks returns up to ten books for the given user. A nil user
// gets the popular list. A signed-in user gets books from the categories
// they have viewed or rated highly, excluding books they have already
// viewed. A user with no viewing or rating history gets the popular list as
// well.
func (a *App) GetRecommendedBooks(user *database.User) ([]database.Book, error) {
	if user == nil {
		return a.getPopularBooks()
	}

	categoryIDs, err := a.getInterestCategoryIDs(user.ID)
	if err != nil {
		return nil, err
	}
	if len(categoryIDs) == 0 {
		return a.getPopularBooks()
	}

	// Books the user has already viewed are never recommended back, even
	// when that leaves the list short or empty.
	books := []database.Book{}
	err = annotateRatings(a.DB.Model(&database.Book{})).
		Preload("Category").
		Where("books.category_id IN (?)", categoryIDs).
		Where("books.id NOT IN (SELECT book_id FROM interactions WHERE user_id = ?)", user.ID).
		Order("average_rating DESC, books.id ASC").
		Limit(recommendationLimit).
		Find(&books).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding recommendations")
	}

	return books, nil
}

// getPopularBooks returns the highest rated books that have at least one
// review
func (a *App) getPopularBooks() ([]database.Book, error) {
	books := []database.Book{}
	err := a.DB.Model(&database.Book{}).
		Select(bookRatingFields).
		Joins("INNER JOIN reviews ON reviews.book_id = books.id").
		Group("books.id").
		Preload("Category").
		Order("average_rating DESC, books.id ASC").
		Limit(recommendationLimit).
		Find(&books).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding popular books")
	}

	return books, nil
}

// getInterestCategoryIDs returns the ids of the categories of books the user
// has viewed, unioned with those of books the user rated at or above the
// liked floor
func (a *App) getInterestCategoryIDs(userID int) ([]int, error) {
	viewed := []int{}
	err := a.DB.Model(&database.Interaction{}).
		Joins("INNER JOIN books ON books.id = interactions.book_id").
		Where("interactions.user_id = ?", userID).
		Distinct().
		Pluck("books.category_id", &viewed).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding viewed categories")
	}

	liked := []int{}
	err = a.DB.Model(&database.Review{}).
		Joins("INNER JOIN books ON books.id = reviews.book_id").
		Where("reviews.user_id = ? AND reviews.rating >= ?", userID, likedRatingFloor).
		Distinct().
		Pluck("books.category_id", &liked).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding liked categories")
	}

	seen := map[int]bool{}
	ids := []int{}
	for _, id := range append(viewed, liked...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}
