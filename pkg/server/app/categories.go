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
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateCategory creates a category with the given name and description
func (a *App) CreateCategory(name, description string) (database.Category, error) {
	if name == "" {
		return database.Category{}, ValidationError{Field: "name", Message: "is required"}
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Category{}, err
	}

	category := database.Category{
		UUID:        uuid,
		Name:        name,
		Description: description,
	}
	if err := a.DB.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return database.Category{}, ErrDuplicateCategoryName
		}
		return database.Category{}, pkgErrors.Wrap(err, "inserting category")
	}

	return category, nil
}

// UpdateCategoryParams is the parameters for updating a category
type UpdateCategoryParams struct {
	Name        *string
	Description *string
}

// UpdateCategory updates the given category
func (a *App) UpdateCategory(category database.Category, p UpdateCategoryParams) (database.Category, error) {
	if p.Name != nil {
		if *p.Name == "" {
			return category, ValidationError{Field: "name", Message: "is required"}
		}
		category.Name = *p.Name
	}
	if p.Description != nil {
		category.Description = *p.Description
	}

	if err := a.DB.Save(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return category, ErrDuplicateCategoryName
		}
		return category, pkgErrors.Wrap(err, "updating category")
	}

	return category, nil
}

// DeleteCategory deletes the given category. Its books, and their reviews
// and interactions, are removed by the schema's cascading constraints.
func (a *App) DeleteCategory(category database.Category) error {
	if err := a.DB.Delete(&category).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting category")
	}

	return nil
}

// GetCategories returns all categories ordered by name
func (a *App) GetCategories() ([]database.Category, error) {
	categories := []database.Category{}
	if err := a.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding categories")
	}

	return categories, nil
}

// GetCategoryByUUID retrieves a category by the uuid
func (a *App) GetCategoryByUUID(uuid string) (database.Category, error) {
	var category database.Category
	err := a.DB.Where("uuid = ?", uuid).First(&category).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Category{}, ErrNotFound
	} else if err != nil {
		return database.Category{}, pkgErrors.Wrap(err, "finding category")
	}

	return category, nil
}
