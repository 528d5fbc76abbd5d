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

package database

import (
	"database/sql"
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NullString is a nullable string column
type NullString struct {
	sql.NullString
}

// ToNullString builds a valid NullString from the given string
func ToNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

// User is a model for a user
type User struct {
	Model
	UUID        string     `json:"uuid" gorm:"uniqueIndex;type:text"`
	Name        string     `json:"name" gorm:"index"`
	Email       NullString `gorm:"uniqueIndex"`
	Password    NullString `json:"-"`
	Admin       bool       `json:"-" gorm:"default:false"`
	LastLoginAt *time.Time `json:"-"`
}

// UserProfile is a model for a user's profile. Every user has exactly one;
// it is created in the same transaction as the user.
type UserProfile struct {
	Model
	UserID         int        `json:"user_id" gorm:"uniqueIndex"`
	User           User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Avatar         string     `json:"avatar"`
	Bio            string     `json:"bio"`
	BirthDate      *time.Time `json:"birth_date"`
	FavoriteGenres string     `json:"favorite_genres"`
}

// Category is a model for a book category
type Category struct {
	Model
	UUID        string `json:"uuid" gorm:"uniqueIndex;type:text"`
	Name        string `json:"name" gorm:"uniqueIndex"`
	Description string `json:"description"`
}

// Book is a model for a book. AverageRating and ReviewCount are derived
// columns populated by queries, never stored.
type Book struct {
	Model
	UUID        string    `json:"uuid" gorm:"uniqueIndex;type:text"`
	Title       string    `json:"title" gorm:"index"`
	Author      string    `json:"author" gorm:"index"`
	CategoryID  int       `json:"category_id" gorm:"index"`
	Category    Category  `json:"category" gorm:"constraint:OnDelete:CASCADE"`
	ISBN        string    `json:"isbn" gorm:"uniqueIndex"`
	Publisher   string    `json:"publisher"`
	PublishDate time.Time `json:"publish_date"`
	Price       float64   `json:"price"`
	Pages       int       `json:"pages"`
	Language    string    `json:"language"`
	Description string    `json:"description"`
	Reviews     []Review  `json:"reviews" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`

	AverageRating float64 `json:"-" gorm:"->;-:migration"`
	ReviewCount   int64   `json:"-" gorm:"->;-:migration"`
}

// Review is a model for a user's review of a book. A user reviews a given
// book at most once.
type Review struct {
	Model
	UUID    string `json:"uuid" gorm:"uniqueIndex;type:text"`
	BookID  int    `json:"book_id" gorm:"index;uniqueIndex:idx_reviews_book_user"`
	Book    Book   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID  int    `json:"user_id" gorm:"uniqueIndex:idx_reviews_book_user"`
	User    User   `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// Interaction is a record of a user having viewed a book. CreatedAt marks the
// first view; ViewCount increments on every subsequent detail view.
type Interaction struct {
	Model
	UserID    int  `json:"user_id" gorm:"index;uniqueIndex:idx_interactions_user_book"`
	User      User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BookID    int  `json:"book_id" gorm:"index;uniqueIndex:idx_interactions_user_book"`
	Book      Book `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ViewCount int  `json:"view_count" gorm:"default:1"`
}

// Session represents a user session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"index"`
	LastUsedAt time.Time
	ExpiresAt  time.Time
}
