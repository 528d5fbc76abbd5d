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
	mw "github.com/libram/libram/pkg/server/middleware"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/v1/signin", c.Users.Login, true},
		{"POST", "/v1/signout", c.Users.Logout, true},
		{"GET", "/v1/account/profile", mw.Auth(a.DB, c.Users.GetProfile), true},
		{"PATCH", "/v1/account/profile", mw.Auth(a.DB, c.Users.UpdateProfile), true},
		{"GET", "/v1/account/history", mw.Auth(a.DB, c.Users.GetHistory), true},
		{"GET", "/v1/users/{userUUID}/profile", mw.Auth(a.DB, c.Users.ShowProfile), true},

		{"GET", "/v1/categories", c.Categories.Index, true},
		{"POST", "/v1/categories", mw.Auth(a.DB, c.Categories.Create), true},
		{"GET", "/v1/categories/{categoryUUID}", c.Categories.Show, true},
		{"PATCH", "/v1/categories/{categoryUUID}", mw.Auth(a.DB, c.Categories.Update), true},
		{"DELETE", "/v1/categories/{categoryUUID}", mw.Auth(a.DB, c.Categories.Delete), true},

		// The search and recommended patterns must precede the bookUUID
		// pattern so that they are not captured by it.
		{"GET", "/v1/books", c.Books.Index, true},
		{"GET", "/v1/books/search", c.Books.Search, true},
		{"GET", "/v1/books/recommended", mw.OptionalAuth(a.DB, c.Books.Recommended), true},
		{"GET", "/v1/books/{bookUUID}", mw.OptionalAuth(a.DB, c.Books.Show), true},
		{"POST", "/v1/books", mw.Auth(a.DB, c.Books.Create), true},
		{"PATCH", "/v1/books/{bookUUID}", mw.Auth(a.DB, c.Books.Update), true},
		{"DELETE", "/v1/books/{bookUUID}", mw.Auth(a.DB, c.Books.Delete), true},

		{"GET", "/v1/reviews", c.Reviews.Index, true},
		{"POST", "/v1/reviews", mw.Auth(a.DB, c.Reviews.Create), true},
		{"GET", "/v1/reviews/{reviewUUID}", c.Reviews.Show, true},
		{"PATCH", "/v1/reviews/{reviewUUID}", mw.Auth(a.DB, c.Reviews.Update), true},
		{"DELETE", "/v1/reviews/{reviewUUID}", mw.Auth(a.DB, c.Reviews.Delete), true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/v1/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.Handle("/health", mw.ApplyLimit(rc.Controllers.Health.Index, true)).Methods("GET")

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nAllow: /"))
	})

	return mw.Global(router), nil
}
