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
	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/log"
	"github.com/libram/libram/pkg/server/permissions"
	"github.com/libram/libram/pkg/server/presenters"
	pkgErrors "github.com/pkg/errors"
)

// NewUsers creates a new Users controller
func NewUsers(app *app.App) *Users {
	return &Users{
		app: app,
	}
}

// Users is a user controller
type Users struct {
	app *app.App
}

// RegistrationForm is the form data for registering
type RegistrationForm struct {
	Name                 string `schema:"name" json:"name"`
	Email                string `schema:"email" json:"email"`
	Password             string `schema:"password" json:"password"`
	PasswordConfirmation string `schema:"password_confirmation" json:"password_confirmation"`
}

// Register handles registration
func (u *Users) Register(w http.ResponseWriter, r *http.Request) {
	if u.app.DisableRegistration {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "registration is disabled"})
		return
	}

	var form RegistrationForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	user, err := u.app.CreateUser(form.Name, form.Email, form.Password, form.PasswordConfirmation)
	if err != nil {
		handleJSONError(w, err, "creating user")
		return
	}

	session, err := u.app.SignIn(&user)
	if err != nil {
		handleJSONError(w, err, "signing in a user")
		return
	}

	if err := u.app.SendWelcomeEmail(user); err != nil {
		log.ErrorWrap(err, "sending welcome email")
	}

	respondWithSession(w, http.StatusCreated, session)
}

// LoginForm is the form data for log in
type LoginForm struct {
	Email    string `schema:"email" json:"email"`
	Password string `schema:"password" json:"password"`
}

func (u *Users) login(form LoginForm) (*database.Session, error) {
	if form.Email == "" {
		return nil, app.ErrEmailRequired
	}
	if form.Password == "" {
		return nil, app.ErrPasswordRequired
	}

	user, err := u.app.Authenticate(form.Email, form.Password)
	if err != nil {
		// If the user is not found, treat it as invalid login
		if err == app.ErrNotFound {
			return nil, app.ErrLoginInvalid
		}

		return nil, err
	}

	s, err := u.app.SignIn(user)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Login handles login
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	session, err := u.login(form)
	if err != nil {
		handleJSONError(w, err, "logging in user")
		return
	}

	respondWithSession(w, http.StatusOK, session)
}

func (u *Users) logout(r *http.Request) (bool, error) {
	key, err := GetCredential(r)
	if err != nil {
		return false, pkgErrors.Wrap(err, "getting credentials")
	}

	if key == "" {
		return false, nil
	}

	if err = u.app.DeleteSession(key); err != nil {
		return false, pkgErrors.Wrap(err, "deleting session")
	}

	return true, nil
}

// Logout handles logout
func (u *Users) Logout(w http.ResponseWriter, r *http.Request) {
	ok, err := u.logout(r)
	if err != nil {
		handleJSONError(w, err, "logging out")
		return
	}

	if ok {
		unsetSessionCookie(w)
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProfile handles getting the profile of the authenticated user
func (u *Users) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	profile, err := u.app.GetUserProfile(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting profile")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentProfile(*user, profile))
}

// ShowProfile handles getting the profile of the user named by the route.
// Users read their own profile; admins read any.
func (u *Users) ShowProfile(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	userUUID := vars["userUUID"]

	target, err := u.app.GetUserByUUID(userUUID)
	if err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	if !permissions.ViewProfile(user, target.ID) {
		handleJSONError(w, app.ErrPermissionDenied, "viewing profile")
		return
	}

	profile, err := u.app.GetUserProfile(target.ID)
	if err != nil {
		handleJSONError(w, err, "getting profile")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentProfile(target, profile))
}

// GetHistory handles getting the viewing history of the authenticated user
func (u *Users) GetHistory(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	interactions, err := u.app.GetUserInteractions(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting interactions")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentInteractions(interactions))
}

// ProfileForm is the form data for updating a profile
type ProfileForm struct {
	Avatar         *string `schema:"avatar" json:"avatar"`
	Bio            *string `schema:"bio" json:"bio"`
	BirthDate      *string `schema:"birth_date" json:"birth_date"`
	FavoriteGenres *string `schema:"favorite_genres" json:"favorite_genres"`
}

// UpdateProfile handles updating the profile of the authenticated user
func (u *Users) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if !permissions.ModifyProfile(user, user.ID) {
		handleJSONError(w, app.ErrPermissionDenied, "updating profile")
		return
	}

	var form ProfileForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	params := app.UpdateProfileParams{
		Avatar:         form.Avatar,
		Bio:            form.Bio,
		FavoriteGenres: form.FavoriteGenres,
	}
	if form.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *form.BirthDate)
		if err != nil {
			handleJSONError(w, app.ValidationError{Field: "birth_date", Message: "must be a date of the form YYYY-MM-DD"}, "parsing birth date")
			return
		}
		params.BirthDate = &parsed
	}

	profile, err := u.app.UpdateUserProfile(user.ID, params)
	if err != nil {
		handleJSONError(w, err, "updating profile")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentProfile(*user, profile))
}
