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
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		user, err := a.CreateUser("alice", "alice@example.com", "pass1234", "pass1234")
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var userCount int64
		var userRecord database.User
		testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting user")
		testutils.MustExec(t, db.First(&userRecord), "finding user")

		assert.Equal(t, userCount, int64(1), "user count mismatch")
		assert.Equal(t, userRecord.Email.String, "alice@example.com", "user email mismatch")
		assert.Equal(t, userRecord.Admin, false, "user admin mismatch")

		passwordErr := bcrypt.CompareHashAndPassword([]byte(userRecord.Password.String), []byte("pass1234"))
		assert.Equal(t, passwordErr, nil, "Password mismatch")

		// the profile must be created along with the user
		var profileCount int64
		var profileRecord database.UserProfile
		testutils.MustExec(t, db.Model(&database.UserProfile{}).Count(&profileCount), "counting profile")
		testutils.MustExec(t, db.First(&profileRecord), "finding profile")

		assert.Equal(t, profileCount, int64(1), "profile count mismatch")
		assert.Equal(t, profileRecord.UserID, user.ID, "profile user id mismatch")
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		testutils.SetupUserData(db, "alice@example.com", "somepassword")

		a := NewTest()
		a.DB = db
		_, err := a.CreateUser("alice", "alice@example.com", "newpassword", "newpassword")

		assert.Equal(t, err, ErrDuplicateEmail, "error mismatch")

		var userCount int64
		testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting user")
		assert.Equal(t, userCount, int64(1), "user count mismatch")

		// the transaction must leave no orphan profile behind
		var profileCount int64
		testutils.MustExec(t, db.Model(&database.UserProfile{}).Count(&profileCount), "counting profile")
		assert.Equal(t, profileCount, int64(0), "profile count mismatch")
	})

	t.Run("password too short", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		_, err := a.CreateUser("alice", "alice@example.com", "short", "short")

		assert.Equal(t, err, ErrPasswordTooShort, "error mismatch")
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		_, err := a.CreateUser("alice", "alice@example.com", "pass1234", "pass12345")

		assert.Equal(t, err, ErrPasswordConfirmationMismatch, "error mismatch")
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		setup := testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := NewTest()
		a.DB = db
		user, err := a.Authenticate("alice@example.com", "pass1234")
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, user.ID, setup.ID, "user id mismatch")
	})

	t.Run("wrong password", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := NewTest()
		a.DB = db
		_, err := a.Authenticate("alice@example.com", "wrongpassword")

		assert.Equal(t, err, ErrLoginInvalid, "error mismatch")
	})

	t.Run("nonexistent email", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		_, err := a.Authenticate("bob@example.com", "pass1234")

		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestRemoveUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	category := testutils.SetupCategoryData(db, "Fiction")
	book := testutils.SetupBookData(db, category, "Dune", "9780441172719")
	testutils.SetupReviewData(db, user, book, "a classic", 5)

	a := NewTest()
	a.DB = db
	if err := a.RemoveUser("alice@example.com"); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var userCount, reviewCount, bookCount int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting user")
	testutils.MustExec(t, db.Model(&database.Review{}).Count(&reviewCount), "counting review")
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting book")

	assert.Equal(t, userCount, int64(0), "user count mismatch")
	assert.Equal(t, reviewCount, int64(0), "review count mismatch")
	assert.Equal(t, bookCount, int64(1), "book count mismatch")
}
