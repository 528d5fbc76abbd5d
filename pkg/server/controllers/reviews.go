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

// NewReviews creates a new Reviews controller
func NewReviews(app *app.App) *Reviews {
	return &Reviews{
		app: app,
	}
}

// Reviews is a review controller
type Reviews struct {
	app *app.App
}

// ReviewsResponse is the response for a paginated list of reviews
type ReviewsResponse struct {
	Reviews []presenters.Review `json:"reviews"`
	Total   int64               `json:"total"`
}

// Index handles GET /v1/reviews
func (c *Reviews) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	q := r.URL.Query()

	result, err := c.app.GetReviews(app.GetReviewsParams{
		BookUUID: q.Get("book"),
		UserUUID: q.Get("user"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		handleJSONError(w, err, "getting reviews")
		return
	}

	respondJSON(w, http.StatusOK, ReviewsResponse{
		Reviews: presenters.PresentReviews(result.Reviews),
		Total:   result.Total,
	})
}

// Show handles GET /v1/reviews/{reviewUUID}
func (c *Reviews) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reviewUUID := vars["reviewUUID"]

	review, err := c.app.GetReviewByUUID(reviewUUID)
	if err != nil {
		handleJSONError(w, err, "getting review")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReview(review))
}

// ReviewForm is the form data for creating a review
type ReviewForm struct {
	Book    string `schema:"book" json:"book"`
	Content string `schema:"content" json:"content"`
	Rating  int    `schema:"rating" json:"rating"`
}

// Create handles POST /v1/reviews. Submitting a second review for the same
// book replaces the first one and responds with a 200 instead of a 201.
func (c *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form ReviewForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if form.Book == "" {
		handleJSONError(w, app.ValidationError{Field: "book", Message: "is required"}, "validating payload")
		return
	}

	book, err := c.app.GetBookByUUID(form.Book)
	if err != nil {
		handleJSONError(w, err, "finding book")
		return
	}

	review, created, err := c.app.SubmitReview(*user, book, form.Content, form.Rating)
	if err != nil {
		handleJSONError(w, err, "submitting review")
		return
	}

	review.Book = book
	review.User = *user

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}

	respondJSON(w, statusCode, presenters.PresentReview(review))
}

// UpdateReviewForm is the form data for updating a review
type UpdateReviewForm struct {
	Content *string `schema:"content" json:"content"`
	Rating  *int    `schema:"rating" json:"rating"`
}

// Update handles PATCH /v1/reviews/{reviewUUID}
func (c *Reviews) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	reviewUUID := vars["reviewUUID"]

	review, err := c.app.GetReviewByUUID(reviewUUID)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	if !permissions.ModifyReview(user, review) {
		handleJSONError(w, app.ErrPermissionDenied, "updating review")
		return
	}

	var form UpdateReviewForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	review, err = c.app.UpdateReview(review, app.UpdateReviewParams{
		Content: form.Content,
		Rating:  form.Rating,
	})
	if err != nil {
		handleJSONError(w, err, "updating review")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReview(review))
}

// Delete handles DELETE /v1/reviews/{reviewUUID}
func (c *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	reviewUUID := vars["reviewUUID"]

	review, err := c.app.GetReviewByUUID(reviewUUID)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	if !permissions.ModifyReview(user, review) {
		handleJSONError(w, app.ErrPermissionDenied, "deleting review")
		return
	}

	if err := c.app.DeleteReview(review); err != nil {
		handleJSONError(w, err, "deleting review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
