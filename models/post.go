package models

import (
	"time"
)

// Post is a feed item. Name and Avatar are copied from the author at
// creation time and never resynced.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	UserID    uint      `gorm:"index;not null" json:"user"`
	Likes     []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// Like records a user's like on a post. A user may like a post at most once.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"user"`
	CreatedAt time.Time `json:"-"`
}

// Comment is a reply on a post, newest-first in the post's comment list.
// Name and Avatar are denormalized from the commenter at creation time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"-"`
	UserID    uint      `gorm:"not null" json:"user"`
	Text      string    `gorm:"not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
