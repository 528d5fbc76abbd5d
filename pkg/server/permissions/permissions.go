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

// Package permissions decides whether a user may perform an operation.
// Every mutation is checked against the closed set of operations below
// before it runs.
package permissions

import (
	"github.com/libram/libram/pkg/server/database"
)

// Operation is a mutating operation subject to a permission check
type Operation int

const (
	// OpManageCatalog covers creating, editing, and deleting categories and books
	OpManageCatalog Operation = iota
	// OpModifyReview covers editing and deleting a review
	OpModifyReview
	// OpViewProfile covers reading a user profile
	OpViewProfile
	// OpModifyProfile covers editing a user profile
	OpModifyProfile
)

// Can checks if the given user can perform the given operation on a resource
// owned by the user of the id ownerID. Catalog resources have no owner; pass 0.
func Can(user *database.User, op Operation, ownerID int) bool {
	if user == nil {
		return false
	}

	switch op {
	case OpManageCatalog:
		return user.Admin
	case OpModifyReview, OpModifyProfile:
		return user.Admin || (ownerID != 0 && user.ID == ownerID)
	case OpViewProfile:
		return user.Admin || (ownerID != 0 && user.ID == ownerID)
	}

	return false
}

// ManageCatalog checks if the given user can mutate categories and books
func ManageCatalog(user *database.User) bool {
	return Can(user, OpManageCatalog, 0)
}

// ModifyReview checks if the given user can edit or delete the given review
func ModifyReview(user *database.User, review database.Review) bool {
	return Can(user, OpModifyReview, review.UserID)
}

// ViewProfile checks if the given user can read the profile of the user of
// the given id
func ViewProfile(user *database.User, ownerID int) bool {
	return Can(user, OpViewProfile, ownerID)
}

// ModifyProfile checks if the given user can edit the profile of the user of
// the given id
func ModifyProfile(user *database.User, ownerID int) bool {
	return Can(user, OpModifyProfile, ownerID)
}
