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
	"testing"

	"github.com/libram/libram/pkg/assert"
	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		category, err := a.CreateCategory("Science Fiction", "Space and beyond")
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var count int64
		testutils.MustExec(t, db.Model(&database.Category{}).Count(&count), "counting category")
		assert.Equal(t, count, int64(1), "category count mismatch")
		assert.Equal(t, category.Name, "Science Fiction", "category name mismatch")
		assert.NotEqual(t, category.UUID, "", "category uuid mismatch")
	})

	t.Run("duplicate name", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		testutils.SetupCategoryData(db, "Science Fiction")

		a := NewTest()
		a.DB = db
		_, err := a.CreateCategory("Science Fiction", "")

		assert.Equal(t, err, ErrDuplicateCategoryName, "error mismatch")
	})

	t.Run("missing name", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		_, err := a.CreateCategory("", "no name")

		assert.Equal(t, IsValidationError(err), true, "error type mismatch")
	})
}

func TestGetCategories(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	testutils.SetupCategoryData(db, "Science Fiction")
	testutils.SetupCategoryData(db, "History")
	testutils.SetupCategoryData(db, "Poetry")

	a := NewTest()
	a.DB = db
	categories, err := a.GetCategories()
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, len(categories), 3, "category count mismatch")
	assert.Equal(t, categories[0].Name, "History", "ordering mismatch")
	assert.Equal(t, categories[1].Name, "Poetry", "ordering mismatch")
	assert.Equal(t, categories[2].Name, "Science Fiction", "ordering mismatch")
}

func TestDeleteCategory(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	category := testutils.SetupCategoryData(db, "Science Fiction")
	other := testutils.SetupCategoryData(db, "History")
	book := testutils.SetupBookData(db, category, "Dune", "9780441172719")
	testutils.SetupBookData(db, other, "SPQR", "9781631492228")
	testutils.SetupReviewData(db, user, book, "a classic", 5)

	a := NewTest()
	a.DB = db
	if err := a.DeleteCategory(category); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	// deleting a category removes its books and their reviews
	var categoryCount, bookCount, reviewCount int64
	testutils.MustExec(t, db.Model(&database.Category{}).Count(&categoryCount), "counting category")
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting book")
	testutils.MustExec(t, db.Model(&database.Review{}).Count(&reviewCount), "counting review")

	assert.Equal(t, categoryCount, int64(1), "category count mismatch")
	assert.Equal(t, bookCount, int64(1), "book count mismatch")
	assert.Equal(t, reviewCount, int64(0), "review count mismatch")
}

func TestGetCategoryByUUID(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	category := testutils.SetupCategoryData(db, "Science Fiction")

	a := NewTest()
	a.DB = db

	found, err := a.GetCategoryByUUID(category.UUID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}
	assert.Equal(t, found.ID, category.ID, "category id mismatch")

	_, err = a.GetCategoryByUUID(testutils.MustUUID(t))
	assert.Equal(t, err, ErrNotFound, "error mismatch")
}
