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
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// RecordBookView notes that the user of the given id has viewed the book of
// the given id. The first view inserts an interaction with a count of one.
// Later views increment the count in place.
func (a *App) RecordBookView(userID, bookID int) error {
	tx := a.DB.Begin()

	var interaction database.Interaction
	err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&interaction).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		interaction = database.Interaction{
			UserID:    userID,
			BookID:    bookID,
			ViewCount: 1,
		}
		if err := tx.Create(&interaction).Error; err != nil {
			tx.Rollback()
			if isUniqueViolation(err) {
				// Lost a race with a concurrent first view. Fall through to
				// an increment instead.
				return a.incrementViewCount(userID, bookID)
			}
			return pkgErrors.Wrap(err, "inserting interaction")
		}

		tx.Commit()
		return nil
	} else if err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "finding interaction")
	}

	if err := tx.Model(&interaction).Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "incrementing view count")
	}

	tx.Commit()

	return nil
}

func (a *App) incrementViewCount(userID, bookID int) error {
	err := a.DB.Model(&database.Interaction{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return pkgErrors.Wrap(err, "incrementing view count")
	}

	return nil
}

// GetUserInteractions returns the interactions of the user of the given id,
// most recently updated first
func (a *App) GetUserInteractions(userID int) ([]database.Interaction, error) {
	interactions := []database.Interaction{}
	err := a.DB.Where("user_id = ?", userID).
		Preload("Book").
		Order("updated_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding interactions")
	}

	return interactions, nil
}
