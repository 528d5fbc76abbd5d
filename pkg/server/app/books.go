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
	"strings"
	"time"

	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/helpers"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookRatingFields annotates each book row with the mean rating and the
// count of its reviews. With no reviews the mean is NULL, which sorts after
// any real mean in a descending order and scans as 0.
const bookRatingFields = "books.*, AVG(reviews.rating) AS average_rating, COUNT(reviews.id) AS review_count"

func annotateRatings(conn *gorm.DB) *gorm.DB {
	return conn.Select(bookRatingFields).
		Joins("LEFT JOIN reviews ON reviews.book_id = books.id").
		Group("books.id")
}

func paginate(conn *gorm.DB, page, perPage int) *gorm.DB {
	if page > 0 {
		offset := perPage * (page - 1)
		conn = conn.Offset(offset)
	}

	conn = conn.Limit(perPage)

	return conn
}

// CreateBookParams is the parameters for creating a book
type CreateBookParams struct {
	Title        string
	Author       string
	CategoryUUID string
	ISBN         string
	Publisher    string
	PublishDate  time.Time
	Price        float64
	Pages        int
	Language     string
	Description  string
}

func (p CreateBookParams) validate() error {
	if p.Title == "" {
		return ValidationError{Field: "title", Message: "is required"}
	}
	if p.Author == "" {
		return ValidationError{Field: "author", Message: "is required"}
	}
	if p.ISBN == "" {
		return ValidationError{Field: "isbn", Message: "is required"}
	}
	if p.CategoryUUID == "" {
		return ValidationError{Field: "category", Message: "is required"}
	}

	return nil
}

// CreateBook creates a book in the category named by the params
func (a *App) CreateBook(p CreateBookParams) (database.Book, error) {
	if err := p.validate(); err != nil {
		return database.Book{}, err
	}

	category, err := a.GetCategoryByUUID(p.CategoryUUID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return database.Book{}, ValidationError{Field: "category", Message: "does not exist"}
		}
		return database.Book{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Book{}, err
	}

	book := database.Book{
		UUID:        uuid,
		Title:       p.Title,
		Author:      p.Author,
		CategoryID:  category.ID,
		ISBN:        p.ISBN,
		Publisher:   p.Publisher,
		PublishDate: p.PublishDate,
		Price:       p.Price,
		Pages:       p.Pages,
		Language:    p.Language,
		Description: p.Description,
	}
	if err := a.DB.Create(&book).Error; err != nil {
		if isUniqueViolation(err) {
			return database.Book{}, ErrDuplicateISBN
		}
		return database.Book{}, pkgErrors.Wrap(err, "inserting book")
	}

	book.Category = category

	return book, nil
}

// UpdateBookParams is the parameters for updating a book
type UpdateBookParams struct {
	Title        *string
	Author       *string
	CategoryUUID *string
	ISBN         *string
	Publisher    *string
	PublishDate  *time.Time
	Price        *float64
	Pages        *int
	Language     *string
	Description  *string
}

// UpdateBook updates the given book
func (a *App) UpdateBook(book database.Book, p UpdateBookParams) (database.Book, error) {
	if p.Title != nil {
		if *p.Title == "" {
			return book, ValidationError{Field: "title", Message: "is required"}
		}
		book.Title = *p.Title
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.CategoryUUID != nil {
		category, err := a.GetCategoryByUUID(*p.CategoryUUID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return book, ValidationError{Field: "category", Message: "does not exist"}
			}
			return book, err
		}
		book.CategoryID = category.ID
		book.Category = category
	}
	if p.ISBN != nil {
		book.ISBN = *p.ISBN
	}
	if p.Publisher != nil {
		book.Publisher = *p.Publisher
	}
	if p.PublishDate != nil {
		book.PublishDate = *p.PublishDate
	}
	if p.Price != nil {
		book.Price = *p.Price
	}
	if p.Pages != nil {
		book.Pages = *p.Pages
	}
	if p.Language != nil {
		book.Language = *p.Language
	}
	if p.Description != nil {
		book.Description = *p.Description
	}

	if err := a.DB.Save(&book).Error; err != nil {
		if isUniqueViolation(err) {
			return book, ErrDuplicateISBN
		}
		return book, pkgErrors.Wrap(err, "updating book")
	}

	return book, nil
}

// DeleteBook deletes the given book. Reviews and interactions are removed
// by the schema's cascading constraints.
func (a *App) DeleteBook(book database.Book) error {
	if err := a.DB.Delete(&book).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting book")
	}

	return nil
}

// GetBooksParams is params for finding books
type GetBooksParams struct {
	Page    int
	PerPage int
}

// GetBooksResult is the result of getting books
type GetBooksResult struct {
	Books []database.Book
	Total int64
}

// GetBooks returns books ordered by newest first
func (a *App) GetBooks(params GetBooksParams) (GetBooksResult, error) {
	var total int64
	if err := a.DB.Model(database.Book{}).Count(&total).Error; err != nil {
		return GetBooksResult{}, pkgErrors.Wrap(err, "counting total")
	}

	books := []database.Book{}
	if total != 0 {
		conn := annotateRatings(a.DB.Model(&database.Book{})).
			Preload("Category").
			Order("books.created_at DESC, books.id DESC")
		conn = paginate(conn, params.Page, params.PerPage)

		if err := conn.Find(&books).Error; err != nil {
			return GetBooksResult{}, pkgErrors.Wrap(err, "finding books")
		}
	}

	return GetBooksResult{Books: books, Total: total}, nil
}

// GetBookByUUID retrieves a book by the uuid, annotated with its rating and
// preloaded with its category and reviews
func (a *App) GetBookByUUID(uuid string) (database.Book, error) {
	var book database.Book
	conn := annotateRatings(a.DB.Model(&database.Book{})).Where("books.uuid = ?", uuid)
	err := database.PreloadBook(conn).First(&book).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Book{}, ErrNotFound
	} else if err != nil {
		return database.Book{}, pkgErrors.Wrap(err, "finding book")
	}

	return book, nil
}

// SearchBooksParams is params for searching books. Nil fields constrain
// nothing.
type SearchBooksParams struct {
	Query        string
	CategoryUUID string
	MinPrice     *float64
	MaxPrice     *float64
	MinRating    *float64
	Page         int
	PerPage      int
}

func searchBooksBaseQuery(db *gorm.DB, p SearchBooksParams) *gorm.DB {
	conn := annotateRatings(db.Model(&database.Book{}))

	if p.Query != "" {
		pattern := "%" + strings.ToLower(p.Query) + "%"
		conn = conn.Where(
			"LOWER(books.title) LIKE ? OR LOWER(books.author) LIKE ? OR LOWER(books.description) LIKE ? OR LOWER(books.isbn) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if p.CategoryUUID != "" {
		conn = conn.Where("books.category_id IN (SELECT id FROM categories WHERE uuid = ?)", p.CategoryUUID)
	}

	if p.MinPrice != nil {
		conn = conn.Where("books.price >= ?", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		conn = conn.Where("books.price <= ?", *p.MaxPrice)
	}

	// A book without reviews has a NULL mean rating and never matches an
	// active min_rating filter.
	if p.MinRating != nil {
		conn = conn.Having("AVG(reviews.rating) >= ?", *p.MinRating)
	}

	return conn
}

// SearchBooks returns books matching the given filters. An empty result is
// a defined success case, not an error.
func (a *App) SearchBooks(p SearchBooksParams) (GetBooksResult, error) {
	var total int64
	countQuery := searchBooksBaseQuery(a.DB, p).Session(&gorm.Session{})
	if err := a.DB.Table("(?) AS matched", countQuery).Count(&total).Error; err != nil {
		return GetBooksResult{}, pkgErrors.Wrap(err, "counting total")
	}

	books := []database.Book{}
	if total != 0 {
		conn := searchBooksBaseQuery(a.DB, p).
			Preload("Category").
			Order("books.created_at DESC, books.id DESC")
		conn = paginate(conn, p.Page, p.PerPage)

		if err := conn.Find(&books).Error; err != nil {
			return GetBooksResult{}, pkgErrors.Wrap(err, "finding books")
		}
	}

	return GetBooksResult{Books: books, Total: total}, nil
}
