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

	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/helpers"
	"github.com/libram/libram/pkg/server/log"
	pkgErrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.Clock.Now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return pkgErrors.Wrap(err, "updating last_login_at")
	}

	return nil
}

// CreateUser creates a user along with its profile. The profile is created
// in the same transaction so that a user without a profile cannot exist.
func (a *App) CreateUser(name, email, password, passwordConfirmation string) (database.User, error) {
	if name == "" {
		return database.User{}, ValidationError{Field: "name", Message: "is required"}
	}
	if email == "" {
		return database.User{}, ErrEmailRequired
	}
	if len(password) < 8 {
		return database.User{}, ErrPasswordTooShort
	}
	if password != passwordConfirmation {
		return database.User{}, ErrPasswordConfirmationMismatch
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Model(database.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "counting user")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "hashing password")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		tx.Rollback()
		return database.User{}, err
	}

	user := database.User{
		UUID:     uuid,
		Name:     name,
		Email:    database.ToNullString(email),
		Password: database.ToNullString(string(hashedPassword)),
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return database.User{}, ErrDuplicateEmail
		}
		return database.User{}, pkgErrors.Wrap(err, "saving user")
	}

	profile := database.UserProfile{
		UserID: user.ID,
	}
	if err := tx.Create(&profile).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "saving user profile")
	}

	if err := a.TouchLastLoginAt(user, tx); err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "updating last login")
	}

	tx.Commit()

	return user, nil
}

// Authenticate authenticates a user
func (a *App) Authenticate(email, password string) (*database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password.String), []byte(password))
	if err != nil {
		return nil, ErrLoginInvalid
	}

	return &user, nil
}

// SignIn signs in a user
func (a *App) SignIn(user *database.User) (*database.Session, error) {
	err := a.TouchLastLoginAt(*user, a.DB)
	if err != nil {
		log.ErrorWrap(err, "touching login timestamp")
	}

	session, err := a.CreateSession(user.ID)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "creating session")
	}

	return &session, nil
}

// GetUserByEmail retrieves a user with the given email
func (a *App) GetUserByEmail(email string) (database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// GetUserByUUID retrieves a user with the given uuid
func (a *App) GetUserByUUID(uuid string) (database.User, error) {
	var user database.User
	err := a.DB.Where("uuid = ?", uuid).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// RemoveUser removes the user with the given email along with the user's
// sessions. Reviews, interactions, and the profile are removed by the
// schema's cascading constraints.
func (a *App) RemoveUser(email string) error {
	user, err := a.GetUserByEmail(email)
	if err != nil {
		return err
	}

	tx := a.DB.Begin()

	if err := a.DeleteUserSessions(tx, user.ID); err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting sessions")
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user")
	}

	tx.Commit()

	return nil
}

// UpdateUserPassword hashes and updates the password of the given user
func UpdateUserPassword(db *gorm.DB, user database.User, password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkgErrors.Wrap(err, "hashing password")
	}

	if err := db.Model(&user).Update("password", database.ToNullString(string(hashedPassword))).Error; err != nil {
		return pkgErrors.Wrap(err, "updating password")
	}

	return nil
}

// SetUserAdmin updates the admin role of the given user
func (a *App) SetUserAdmin(user database.User, admin bool) error {
	if err := a.DB.Model(&user).Update("admin", admin).Error; err != nil {
		return pkgErrors.Wrap(err, "updating admin role")
	}

	return nil
}
