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
	"net/http/httptest"
	"testing"

	"github.com/libram/libram/pkg/assert"
	"github.com/libram/libram/pkg/server/app"
	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/presenters"
	"github.com/libram/libram/pkg/server/testutils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func assertResponseSessionCookie(t *testing.T, db *gorm.DB, res *http.Response) {
	var session database.Session
	testutils.MustExec(t, db.First(&session), "getting session")

	c := testutils.GetCookieByName(res.Cookies(), "auth")
	assert.Equal(t, c.Value, session.Key, "session key mismatch")
	assert.Equal(t, c.Path, "/", "session path mismatch")
	assert.Equal(t, c.HttpOnly, true, "session HTTPOnly mismatch")
	assert.Equal(t, c.Expires.Unix(), session.ExpiresAt.Unix(), "session Expires mismatch")
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		emailBackend := testutils.MockEmailbackendImplementation{}
		a := app.NewTest()
		a.EmailBackend = &emailBackend
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/register",
			`{"name": "alice", "email": "alice@example.com", "password": "pass1234", "password_confirmation": "pass1234"}`)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "")

		var user database.User
		testutils.MustExec(t, db.Where("email = ?", "alice@example.com").First(&user), "finding user")
		assert.Equal(t, user.Name, "alice", "Name mismatch")
		passwordErr := bcrypt.CompareHashAndPassword([]byte(user.Password.String), []byte("pass1234"))
		assert.Equal(t, passwordErr, nil, "Password mismatch")

		var profileCount int64
		testutils.MustExec(t, db.Model(&database.UserProfile{}).Count(&profileCount), "counting profile")
		assert.Equal(t, profileCount, int64(1), "profile count mismatch")

		// welcome email
		assert.Equal(t, len(emailBackend.Emails), 1, "email queue count mismatch")
		assert.DeepEqual(t, emailBackend.Emails[0].To, []string{"alice@example.com"}, "email to mismatch")

		// after register, should sign in user
		assertResponseSessionCookie(t, db, res)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/register",
			`{"name": "alice", "email": "alice@example.com", "password": "pass1234", "password_confirmation": "pass1234"}`)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusConflict, "")
	})

	t.Run("registration disabled", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := app.NewTest()
		a.DB = db
		a.DisableRegistration = true
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/register",
			`{"name": "alice", "email": "alice@example.com", "password": "pass1234", "password_confirmation": "pass1234"}`)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "")

		var userCount int64
		testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting user")
		assert.Equal(t, userCount, int64(0), "user count mismatch")
	})
}

func TestSignin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/signin",
			`{"email": "alice@example.com", "password": "pass1234"}`)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var payload presenters.Session
		testutils.MustUnmarshalJSON(t, res, &payload)

		var session database.Session
		testutils.MustExec(t, db.First(&session), "finding session")
		assert.Equal(t, payload.Key, session.Key, "session key mismatch")
	})

	t.Run("wrong password", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/signin",
			`{"email": "alice@example.com", "password": "wrongpassword"}`)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")

		var sessionCount int64
		testutils.MustExec(t, db.Model(&database.Session{}).Count(&sessionCount), "counting session")
		assert.Equal(t, sessionCount, int64(0), "session count mismatch")
	})
}

func TestSignout(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	session := testutils.SetupSession(db, user)

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "POST", "/api/v1/signout", "")
	req.Header.Set("Authorization", "Bearer "+session.Key)

	res := testutils.HTTPDo(t, req)

	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	var sessionCount int64
	testutils.MustExec(t, db.Model(&database.Session{}).Count(&sessionCount), "counting session")
	assert.Equal(t, sessionCount, int64(0), "session count mismatch")
}

func TestProfile(t *testing.T) {
	t.Run("get requires authentication", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/api/v1/account/profile", "")
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
	})

	t.Run("update", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "PATCH", "/api/v1/account/profile",
			`{"bio": "avid reader", "favorite_genres": "scifi,history"}`)
		req.Header.Set("Content-Type", "application/json")

		res := testutils.HTTPAuthDo(t, db, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var profile database.UserProfile
		testutils.MustExec(t, db.Where("user_id = ?", user.ID).First(&profile), "finding profile")
		assert.Equal(t, profile.Bio, "avid reader", "bio mismatch")
		assert.Equal(t, profile.FavoriteGenres, "scifi,history", "favorite genres mismatch")
	})
}

func TestShowUserProfile(t *testing.T) {
	setup := func(t *testing.T) (*gorm.DB, *httptest.Server, database.User) {
		t.Helper()

		db := testutils.InitMemoryDB(t)
		alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)

		return db, server, alice
	}

	t.Run("admin reads any profile", func(t *testing.T) {
		db, server, alice := setup(t)
		defer server.Close()

		admin := testutils.SetupAdminData(db, "admin@example.com", "pass1234")

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/users/%s/profile", alice.UUID), "")
		res := testutils.HTTPAuthDo(t, db, req, admin)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var payload presenters.Profile
		testutils.MustUnmarshalJSON(t, res, &payload)
		assert.Equal(t, payload.User.Name, "alice", "name mismatch")
	})

	t.Run("owner reads own profile", func(t *testing.T) {
		db, server, alice := setup(t)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/users/%s/profile", alice.UUID), "")
		res := testutils.HTTPAuthDo(t, db, req, alice)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")
	})

	t.Run("other user is denied", func(t *testing.T) {
		db, server, alice := setup(t)
		defer server.Close()

		bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/v1/users/%s/profile", alice.UUID), "")
		res := testutils.HTTPAuthDo(t, db, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "")
	})
}

func TestHistory(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")
	category := testutils.SetupCategoryData(db, "Science Fiction")
	dune := testutils.SetupBookData(db, category, "Dune", "9780441172719")
	foundation := testutils.SetupBookData(db, category, "Foundation", "9780553293357")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	// views by other users must not show up in alice's history
	for _, bookID := range []int{dune.ID, dune.ID, foundation.ID} {
		if err := a.RecordBookView(alice.ID, bookID); err != nil {
			t.Fatal(errors.Wrap(err, "recording view"))
		}
	}
	if err := a.RecordBookView(bob.ID, dune.ID); err != nil {
		t.Fatal(errors.Wrap(err, "recording view"))
	}

	req := testutils.MakeReq(server.URL, "GET", "/api/v1/account/history", "")
	res := testutils.HTTPAuthDo(t, db, req, alice)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var payload []presenters.Interaction
	testutils.MustUnmarshalJSON(t, res, &payload)

	assert.Equal(t, len(payload), 2, "interaction count mismatch")
	titles := map[string]int{}
	for _, interaction := range payload {
		titles[interaction.Book.Title] = interaction.ViewCount
	}
	assert.Equal(t, titles["Dune"], 2, "Dune view count mismatch")
	assert.Equal(t, titles["Foundation"], 1, "Foundation view count mismatch")
}
