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
	"time"

	"github.com/libram/libram/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetUserProfile retrieves the profile of the user of the given id. The
// profile is created at user creation; if it is missing regardless, for
// instance after a partial import, it is created on the spot.
func (a *App) GetUserProfile(userID int) (database.UserProfile, error) {
	var profile database.UserProfile
	err := a.DB.Where("user_id = ?", userID).First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = database.UserProfile{UserID: userID}
		if err := a.DB.Create(&profile).Error; err != nil {
			return database.UserProfile{}, pkgErrors.Wrap(err, "creating missing profile")
		}

		return profile, nil
	} else if err != nil {
		return database.UserProfile{}, pkgErrors.Wrap(err, "finding profile")
	}

	return profile, nil
}

// UpdateProfileParams is the parameters for updating a profile
type UpdateProfileParams struct {
	Avatar         *string
	Bio            *string
	BirthDate      *time.Time
	FavoriteGenres *string
}

// UpdateUserProfile updates the profile of the user of the given id
func (a *App) UpdateUserProfile(userID int, p UpdateProfileParams) (database.UserProfile, error) {
	profile, err := a.GetUserProfile(userID)
	if err != nil {
		return database.UserProfile{}, err
	}

	if p.Avatar != nil {
		profile.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if p.BirthDate != nil {
		profile.BirthDate = p.BirthDate
	}
	if p.FavoriteGenres != nil {
		profile.FavoriteGenres = *p.FavoriteGenres
	}

	if err := a.DB.Save(&profile).Error; err != nil {
		return database.UserProfile{}, pkgErrors.Wrap(err, "saving profile")
	}

	return profile, nil
}
