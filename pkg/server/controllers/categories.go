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

	"github.com/gorilla/mux"
	"github.com/libram/libram/pkg/server/app"
	"github.com/libram/libram/pkg/server/context"
	"github.com/libram/libram/pkg/server/permissions"
	"github.com/libram/libram/pkg/server/presenters"
)

// NewCategories creates a new Categories controller
func NewCategories(app *app.App) *Categories {
	return &Categories{
		app: app,
	}
}

// Categories is a category controller
type Categories struct {
	app *app.App
}

// Index handles GET /v1/categories
func (c *Categories) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.app.GetCategories()
	if err != nil {
		handleJSONError(w, err, "getting categories")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCategories(categories))
}

// Show handles GET /v1/categories/{categoryUUID}
func (c *Categories) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryUUID := vars["categoryUUID"]

	category, err := c.app.GetCategoryByUUID(categoryUUID)
	if err != nil {
		handleJSONError(w, err, "getting category")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCategory(category))
}

// CategoryForm is the form data for a category
type CategoryForm struct {
	Name        *string `schema:"name" json:"name"`
	Description *string `schema:"description" json:"description"`
}

// Create handles POST /v1/categories
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.ManageCatalog(user) {
		handleJSONError(w, app.ErrPermissionDenied, "creating category")
		return
	}

	var form CategoryForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	var name, description string
	if form.Name != nil {
		name = *form.Name
	}
	if form.Description != nil {
		description = *form.Description
	}

	category, err := c.app.CreateCategory(name, description)
	if err != nil {
		handleJSONError(w, err, "creating category")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentCategory(category))
}

// Update handles PATCH /v1/categories/{categoryUUID}
func (c *Categories) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.ManageCatalog(user) {
		handleJSONError(w, app.ErrPermissionDenied, "updating category")
		return
	}

	vars := mux.Vars(r)
	categoryUUID := vars["categoryUUID"]

	category, err := c.app.GetCategoryByUUID(categoryUUID)
	if err != nil {
		handleJSONError(w, err, "finding category")
		return
	}

	var form CategoryForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	category, err = c.app.UpdateCategory(category, app.UpdateCategoryParams{
		Name:        form.Name,
		Description: form.Description,
	})
	if err != nil {
		handleJSONError(w, err, "updating category")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCategory(category))
}

// Delete handles DELETE /v1/categories/{categoryUUID}
func (c *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if !permissions.ManageCatalog(user) {
		handleJSONError(w, app.ErrPermissionDenied, "deleting category")
		return
	}

	vars := mux.Vars(r)
	categoryUUID := vars["categoryUUID"]

	category, err := c.app.GetCategoryByUUID(categoryUUID)
	if err != nil {
		handleJSONError(w, err, "finding category")
		return
	}

	if err := c.app.DeleteCategory(category); err != nil {
		handleJSONError(w, err, "deleting category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
