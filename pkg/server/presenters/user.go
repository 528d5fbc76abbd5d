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

package presenters

import (
	"time"

	"github.com/libram/libram/pkg/server/database"
)

// User is a result of PresentUser
type User struct {
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
}

// PresentUser presents a user
func PresentUser(user database.User) User {
	return User{
		UUID:      user.UUID,
		CreatedAt: FormatTS(user.CreatedAt),
		Name:      user.Name,
		Email:     user.Email.String,
		Admin:     user.Admin,
	}
}

// Profile is a result of PresentProfile
type Profile struct {
	User           User       `json:"user"`
	Avatar         string     `json:"avatar"`
	Bio            string     `json:"bio"`
	BirthDate      *time.Time `json:"birth_date"`
	FavoriteGenres string     `json:"favorite_genres"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PresentProfile presents a profile along with its user
func PresentProfile(user database.User, profile database.UserProfile) Profile {
	return Profile{
		User:           PresentUser(user),
		Avatar:         profile.Avatar,
		Bio:            profile.Bio,
		BirthDate:      profile.BirthDate,
		FavoriteGenres: profile.FavoriteGenres,
		UpdatedAt:      FormatTS(profile.UpdatedAt),
	}
}

// Session is a result of PresentSession
type Session struct {
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
}

// PresentSession presents a session
func PresentSession(session database.Session) Session {
	return Session{
		Key:       session.Key,
		ExpiresAt: session.ExpiresAt.Unix(),
	}
}
