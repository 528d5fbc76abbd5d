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

// Book is a result of PresentBook
type Book struct {
	UUID          string       `json:"uuid"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Category      BookCategory `json:"category"`
	ISBN          string       `json:"isbn"`
	Publisher     string       `json:"publisher"`
	PublishDate   time.Time    `json:"publish_date"`
	Price         float64      `json:"price"`
	Pages         int          `json:"pages"`
	Language      string       `json:"language"`
	Description   string       `json:"description"`
	AverageRating float64      `json:"average_rating"`
	ReviewCount   int64        `json:"review_count"`
}

// BookCategory is a nested category for PresentBook
type BookCategory struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// BookDetail is a result of PresentBookDetail
type BookDetail struct {
	Book
	Reviews []Review `json:"reviews"`
}

// PresentBook presents a book
func PresentBook(book database.Book) Book {
	return Book{
		UUID:      book.UUID,
		CreatedAt: FormatTS(book.CreatedAt),
		UpdatedAt: FormatTS(book.UpdatedAt),
		Title:     book.Title,
		Author:    book.Author,
		Category: BookCategory{
			UUID: book.Category.UUID,
			Name: book.Category.Name,
		},
		ISBN:          book.ISBN,
		Publisher:     book.Publisher,
		PublishDate:   FormatTS(book.PublishDate),
		Price:         book.Price,
		Pages:         book.Pages,
		Language:      book.Language,
		Description:   book.Description,
		AverageRating: FormatRating(book.AverageRating),
		ReviewCount:   book.ReviewCount,
	}
}

// PresentBooks presents books
func PresentBooks(books []database.Book) []Book {
	ret := []Book{}

	for _, book := range books {
		p := PresentBook(book)
		ret = append(ret, p)
	}

	return ret
}

// PresentBookDetail presents a book along with its reviews
func PresentBookDetail(book database.Book) BookDetail {
	reviews := []Review{}
	for _, review := range book.Reviews {
		// Preloading the reviews of a book does not load the book back into
		// each review. Fill in the association before presenting.
		review.Book = book
		reviews = append(reviews, PresentReview(review))
	}

	return BookDetail{
		Book:    PresentBook(book),
		Reviews: reviews,
	}
}
