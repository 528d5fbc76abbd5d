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
	"fmt"
	"net/http"
	"testing"

	"github.com/libram/libram/pkg/assert"
	"github.com/libram/libram/pkg/server/app"
	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/presenters"
	"github.com/libram/libram/pkg/server/testutils"
)

func TestGetBooks(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	category := testutils.SetupCategoryData(db, "Science Fiction")
	testutils.SetupBookData(db, category, "Dune", "9780441172719")
	testutils.SetupBookData(db, category, "Foundation", "9780553293357")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", "/api/v1/books", "")
	res := testutils.HTTPDo(t, req)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload BooksResponse
	testutils.MustUnmarshalJSON(t, res, &payload)

	assert.Equal(t, payload.Total, int64(2), "total mismatch")
	assert.Equal(t, len(payload.Books), 2, "book count mismatch")
	assert.Equal(t, payload.Books[0].Category.Name, "Science Fiction", "category name mismatch")
}

func TestGetBook(t *testing.T) {
	t.Run("anonymous view leaves no interaction", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		category := testutils.SetupCategoryData(db, "Science Fiction")
		book := testutils.SetupBookData(db, category, "Dune", "9780441172719")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/books/%s", book.UUID), "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var payload presenters.BookDetail
		testutils.MustUnmarshalJSON(t, res, &payload)
		assert.Equal(t, payload.Title, "Dune", "title mismatch")

		var interactionCount int64
		testutils.MustExec(t, db.Model(&database.Interaction{}).Count(&interactionCount), "counting interaction")
		assert.Equal(t, interactionCount, int64(0), "interaction count mismatch")
	})

	t.Run("signed in view records an interaction", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		category := testutils.SetupCategoryData(db, "Science Fiction")
		book := testutils.SetupBookData(db, category, "Dune", "9780441172719")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/books/%s", book.UUID), "")
		res := testutils.HTTPAuthDo(t, db, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var interaction database.Interaction
		testutils.MustExec(t, db.First(&interaction), "finding interaction")
		assert.Equal(t, interaction.UserID, user.ID, "user id mismatch")
		assert.Equal(t, interaction.BookID, book.ID, "book id mismatch")
		assert.Equal(t, interaction.ViewCount, 1, "view count mismatch")
	})

	t.Run("nonexistent book", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/books/%s", testutils.MustUUID(t)), "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
	})
}

func TestSearchBooks(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	scifi := testutils.SetupCategoryData(db, "Science Fiction")
	history := testutils.SetupCategoryData(db, "History")
	testutils.SetupBookData(db, scifi, "Foundation", "9780553293357")
	testutils.SetupBookData(db, history, "SPQR", "9781631492228")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", "/api/v1/books/search?q=FOUNDATION", "")
	res := testutils.HTTPDo(t, req)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload BooksResponse
	testutils.MustUnmarshalJSON(t, res, &payload)

	assert.Equal(t, payload.Total, int64(1), "total mismatch")
	assert.Equal(t, payload.Books[0].Title, "Foundation", "title mismatch")
}

func TestCreateBook(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		admin := testutils.SetupAdminData(db, "admin@example.com", "pass1234")
		category := testutils.SetupCategoryData(db, "Science Fiction")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		body := fmt.Sprintf(`{"title": "Dune", "author": "Frank Herbert", "category": "%s", "isbn": "9780441172719", "publish_date": "1965-08-01", "price": 9.99, "pages": 412, "language": "en"}`, category.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/v1/books", body)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPAuthDo(t, db, req, admin)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "")

		var bookCount int64
		testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting book")
		assert.Equal(t, bookCount, int64(1), "book count mismatch")
	})

	t.Run("non-admin", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		category := testutils.SetupCategoryData(db, "Science Fiction")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		body := fmt.Sprintf(`{"title": "Dune", "author": "Frank Herbert", "category": "%s", "isbn": "9780441172719"}`, category.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/v1/books", body)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPAuthDo(t, db, req, user)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")

		var bookCount int64
		testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting book")
		assert.Equal(t, bookCount, int64(0), "book count mismatch")
	})
}

func TestRecommendedBooks(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	category := testutils.SetupCategoryData(db, "Science Fiction")
	dune := testutils.SetupBookData(db, category, "Dune", "9780441172719")
	testutils.SetupReviewData(db, alice, dune, "a classic", 5)

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	// the route serves guests as well
	req := testutils.MakeReq(server.URL, "GET", "/api/v1/books/recommended", "")
	res := testutils.HTTPDo(t, req)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload []presenters.Book
	testutils.MustUnmarshalJSON(t, res, &payload)

	assert.Equal(t, len(payload), 1, "book count mismatch")
	assert.Equal(t, payload[0].Title, "Dune", "title mismatch")
}
