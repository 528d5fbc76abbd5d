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

package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/libram/libram/pkg/server/app"
	"github.com/libram/libram/pkg/server/context"
	"github.com/libram/libram/pkg/server/log"
	"github.com/libram/libram/pkg/server/permissions"
	"github.com/libram/libram/pkg/server/presenters"
)

// NewBooks creates a new Books controller
func NewBooks(app *app.App) *Books {
	return &Books{
		app: app,
	}
}

// Books is a book controller
type Books struct {
	app *app.App
}

// BooksResponse is the response for a paginated list of books
type BooksResponse struct {
	Books []presenters.Book `json:"books"`
	Total int64             `json:"total"`
}

// Index handles GET /v1/books
func (b *Books) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)

	result, err := b.app.GetBooks(app.GetBooksParams{Page: page, PerPage: perPage})
	if err != nil {
		handleJSONError(w, err, "getting books")
		return
	}

	respondJSON(w, http.StatusOK, BooksResponse{
		Books: presenters.PresentBooks(result.Books),
		Total: result.Total,
	})
}

// Show handles GET /v1/books/{bookUUID}. A view by a signed in user is
// recorded as an interaction.
func (b *Books) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookUUID := vars["bookUUID"]

	book, err := b.app.GetBookByUUID(bookUUID)
	if err != nil {
		handleJSONError(w, err, "getting book")
		return
	}

	if user := context.User(r.Context()); user != nil {
		if err := b.app.RecordBookView(user.ID, book.ID); err != nil {
			// The view count is best effort. The book itself is still served.
			log.ErrorWrap(err, "recording book view")
		}
	}

	respondJSON(w, http.StatusOK, presenters.PresentBookDetail(book))
}

// Search handles GET /v1/books/search
func (b *Books) Search(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	q := r.URL.Query()

	params := app.SearchBooksParams{
		Query:        q.Get("q"),
		CategoryUUID: q.Get("category"),
		Page:         page,
		PerPage:      perPage,
	}

	var err error
	if params.MinPrice, err = parseFloatParam(r, "min_price"); err != nil {
		handleJSONError(w, err, "parsing min_price")
		return
	}
	if params.MaxPrice, err = parseFloatParam(r, "max_price"); err != nil {
		handleJSONError(w, err, "parsing max_price")
		return
	}
	if params.MinRating, err = parseFloatParam(r, "min_rating"); err != nil {
		handleJSONError(w, err, "parsing min_rating")
		return
	}

	result, err := b.app.SearchBooks(params)
	if err != nil {
		handleJSONError(w, err, "searching books")
		return
	}

	respondJSON(w, http.StatusOK, BooksResponse{
		Books: presenters.PresentBooks(result.Books),
		Total: result.Total,
	})
}

// Recommended handles GET /v1/books/recommended
func (b *Books) Recommended(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	books, err := b.app.GetRecommendedBooks(user)
	if err != nil {
		handleJSONError(w, err, "getting recommendations")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBooks(books))
}

// BookForm is the form data for a book
type BookForm struct {
	Title       *string  `schema:"title" json:"title"`
	Author      *string  `schema:"author" json:"author"`
	Category    *string  `schema:"category" json:"category"`
	ISBN        *string  `schema:"isbn" json:"isbn"`
	Publisher   *string  `schema:"publisher" json:"publisher"`
	PublishDate *string  `schema:"publish_date" json:"publish_date"`
	Price       *float64 `schema:"price" json:"price"`
	Pages       *int     `schema:"pages" json:"pages"`
	Language    *string  `schema:"language" json:"language"`
	Description *string  `schema:"description" json:"description"`
}

func parsePublishDate(raw string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, app.ValidationError{Field: "publish_date", Message: "must be a date of the form YYYY-MM-DD"}
	}

	return parsed, nil
}

// Create handles POST /v1/books
func (b *Books) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.ManageCatalog(user) {
		handleJSONError(w, app.ErrPermissionDenied, "creating book")
		return
	}

	var form BookForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	params := app.CreateBookParams{}
	if form.Title != nil {
		params.Title = *form.Title
	}
	if form.Author != nil {
		params.Author = *form.Author
	}
	if form.Category != nil {
		params.CategoryUUID = *form.Category
	}
	if form.ISBN != nil {
		params.ISBN = *form.ISBN
	}
	if form.Publisher != nil {
		params.Publisher = *form.Publisher
	}
	if form.PublishDate != nil {
		parsed, err := parsePublishDate(*form.PublishDate)
		if err != nil {
			handleJSONError(w, err, "parsing publish date")
			return
		}
		params.PublishDate = parsed
	}
	if form.Price != nil {
		params.Price = *form.Price
	}
	if form.Pages != nil {
		params.Pages = *form.Pages
	}
	if form.Language != nil {
		params.Language = *form.Language
	}
	if form.Description != nil {
		params.Description = *form.Description
	}

	book, err := b.app.CreateBook(params)
	if err != nil {
		handleJSONError(w, err, "creating book")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentBook(book))
}

// Update handles PATCH /v1/books/{bookUUID}
func (b *Books) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.ManageCatalog(user) {
		handleJSONError(w, app.ErrPermissionDenied, "updating book")
		return
	}

	vars := mux.Vars(r)
	bookUUID := vars["bookUUID"]

	book, err := b.app.GetBookByUUID(bookUUID)
	if err != nil {
		handleJSONError(w, err, "finding book")
		return
	}

	var form BookForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	params := app.UpdateBookParams{
		Title:        form.Title,
		Author:       form.Author,
		CategoryUUID: form.Category,
		ISBN:         form.ISBN,
		Publisher:    form.Publisher,
		Price:        form.Price,
		Pages:        form.Pages,
		Language:     form.Language,
		Description:  form.Description,
	}
	if form.PublishDate != nil {
		parsed, err := parsePublishDate(*form.PublishDate)
		if err != nil {
			handleJSONError(w, err, "parsing publish date")
			return
		}
		params.PublishDate = &parsed
	}

	book, err = b.app.UpdateBook(book, params)
	if err != nil {
		handleJSONError(w, err, "updating book")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBook(book))
}

// Delete handles DELETE /v1/books/{bookUUID}
func (b *Books) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.ManageCatalog(user) {
		handleJSONError(w, app.ErrPermissionDenied, "deleting book")
		return
	}

	vars := mux.Vars(r)
	bookUUID := vars["bookUUID"]

	book, err := b.app.GetBookByUUID(bookUUID)
	if err != nil {
		handleJSONError(w, err, "finding book")
		return
	}

	if err := b.app.DeleteBook(book); err != nil {
		handleJSONError(w, err, "deleting book")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
