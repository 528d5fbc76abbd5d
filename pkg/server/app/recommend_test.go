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
	"fmt"
	"testing"

	"github.com/libram/libram/pkg/assert"
	"github.com/libram/libram/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestGetRecommendedBooks_Anonymous(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")
	category := testutils.SetupCategoryData(db, "Science Fiction")

	dune := testutils.SetupBookData(db, category, "Dune", "9780441172719")
	foundation := testutils.SetupBookData(db, category, "Foundation", "9780553293357")
	testutils.SetupBookData(db, category, "Unreviewed", "9780000000001")

	testutils.SetupReviewData(db, alice, dune, "a classic", 5)
	testutils.SetupReviewData(db, bob, dune, "liked it", 4)
	testutils.SetupReviewData(db, alice, foundation, "fine", 3)

	a := NewTest()
	a.DB = db
	books, err := a.GetRecommendedBooks(nil)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	// unreviewed books are left out, the rest sorted by mean rating
	assert.Equal(t, len(books), 2, "book count mismatch")
	assert.Equal(t, books[0].Title, "Dune", "first book mismatch")
	assert.Equal(t, books[1].Title, "Foundation", "second book mismatch")
	assert.Equal(t, books[0].AverageRating, 4.5, "average rating mismatch")
}

func TestGetRecommendedBooks_Personalized(t *testing.T) {
	t.Run("categories from viewed books", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		scifi := testutils.SetupCategoryData(db, "Science Fiction")
		history := testutils.SetupCategoryData(db, "History")

		dune := testutils.SetupBookData(db, scifi, "Dune", "9780441172719")
		testutils.SetupBookData(db, scifi, "Foundation", "9780553293357")
		testutils.SetupBookData(db, history, "SPQR", "9781631492228")

		a := NewTest()
		a.DB = db
		if err := a.RecordBookView(alice.ID, dune.ID); err != nil {
			t.Fatal(errors.Wrap(err, "recording view"))
		}

		books, err := a.GetRecommendedBooks(&alice)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		// only the viewed category is drawn from, and the viewed book
		// itself is excluded
		assert.Equal(t, len(books), 1, "book count mismatch")
		assert.Equal(t, books[0].Title, "Foundation", "book mismatch")
	})

	t.Run("categories from high ratings", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		scifi := testutils.SetupCategoryData(db, "Science Fiction")
		history := testutils.SetupCategoryData(db, "History")

		dune := testutils.SetupBookData(db, scifi, "Dune", "9780441172719")
		testutils.SetupBookData(db, scifi, "Foundation", "9780553293357")
		spqr := testutils.SetupBookData(db, history, "SPQR", "9781631492228")
		testutils.SetupBookData(db, history, "Rubicon", "9781400078974")

		// a low rating is not an interest signal
		testutils.SetupReviewData(db, alice, dune, "loved it", 5)
		testutils.SetupReviewData(db, alice, spqr, "dry", 2)

		a := NewTest()
		a.DB = db
		books, err := a.GetRecommendedBooks(&alice)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, len(books), 2, "book count mismatch")
		for _, book := range books {
			assert.Equal(t, book.CategoryID, scifi.ID, "category mismatch")
		}
	})

	t.Run("no history falls back to the popular list", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")
		scifi := testutils.SetupCategoryData(db, "Science Fiction")

		dune := testutils.SetupBookData(db, scifi, "Dune", "9780441172719")
		testutils.SetupReviewData(db, bob, dune, "liked it", 4)

		a := NewTest()
		a.DB = db
		books, err := a.GetRecommendedBooks(&alice)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, len(books), 1, "book count mismatch")
		assert.Equal(t, books[0].Title, "Dune", "book mismatch")
	})

	t.Run("exhausted categories yield an empty list", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		scifi := testutils.SetupCategoryData(db, "Science Fiction")

		dune := testutils.SetupBookData(db, scifi, "Dune", "9780441172719")

		a := NewTest()
		a.DB = db
		if err := a.RecordBookView(alice.ID, dune.ID); err != nil {
			t.Fatal(errors.Wrap(err, "recording view"))
		}

		// the only candidate book is the one already viewed. There is no
		// fallback to the popular list in that case.
		books, err := a.GetRecommendedBooks(&alice)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, len(books), 0, "book count mismatch")
	})

	t.Run("at most ten books", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		scifi := testutils.SetupCategoryData(db, "Science Fiction")

		dune := testutils.SetupBookData(db, scifi, "Dune", "9780441172719")
		for i := 0; i < 12; i++ {
			testutils.SetupBookData(db, scifi, fmt.Sprintf("Book %d", i), fmt.Sprintf("978000000%04d", i))
		}

		a := NewTest()
		a.DB = db
		if err := a.RecordBookView(alice.ID, dune.ID); err != nil {
			t.Fatal(errors.Wrap(err, "recording view"))
		}

		books, err := a.GetRecommendedBooks(&alice)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, len(books), 10, "book count mismatch")
	})
}
