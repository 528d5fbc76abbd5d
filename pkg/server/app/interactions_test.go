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

func TestRecordBookView(t *testing.T) {
	t.Run("first view creates an interaction", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		category := testutils.SetupCategoryData(db, "Science Fiction")
		book := testutils.SetupBookData(db, category, "Dune", "9780441172719")

		a := NewTest()
		a.DB = db
		if err := a.RecordBookView(user.ID, book.ID); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var interaction database.Interaction
		testutils.MustExec(t, db.First(&interaction), "finding interaction")
		assert.Equal(t, interaction.UserID, user.ID, "user id mismatch")
		assert.Equal(t, interaction.BookID, book.ID, "book id mismatch")
		assert.Equal(t, interaction.ViewCount, 1, "view count mismatch")
	})

	t.Run("repeat views increment the count", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		category := testutils.SetupCategoryData(db, "Science Fiction")
		book := testutils.SetupBookData(db, category, "Dune", "9780441172719")

		a := NewTest()
		a.DB = db
		for i := 0; i < 3; i++ {
			if err := a.RecordBookView(user.ID, book.ID); err != nil {
				t.Fatal(errors.Wrap(err, "executing"))
			}
		}

		var count int64
		var interaction database.Interaction
		testutils.MustExec(t, db.Model(&database.Interaction{}).Count(&count), "counting interaction")
		testutils.MustExec(t, db.First(&interaction), "finding interaction")

		assert.Equal(t, count, int64(1), "interaction count mismatch")
		assert.Equal(t, interaction.ViewCount, 3, "view count mismatch")
	})

	t.Run("views by different users are separate", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")
		category := testutils.SetupCategoryData(db, "Science Fiction")
		book := testutils.SetupBookData(db, category, "Dune", "9780441172719")

		a := NewTest()
		a.DB = db
		if err := a.RecordBookView(alice.ID, book.ID); err != nil {
			t.Fatal(errors.Wrap(err, "executing for alice"))
		}
		if err := a.RecordBookView(bob.ID, book.ID); err != nil {
			t.Fatal(errors.Wrap(err, "executing for bob"))
		}

		var count int64
		testutils.MustExec(t, db.Model(&database.Interaction{}).Count(&count), "counting interaction")
		assert.Equal(t, count, int64(2), "interaction count mismatch")
	})
}
