package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title must be at most 64 characters long")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description must be at most 1024 characters long")
	ErrEmptyImage         = errors.New("image cannot be empty")
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrMessageTooLong     = errors.New("message must be at most 1024 characters long")
)

// SnippetLength is the number of leading description characters carried by
// article listings so feed views can render a preview without the full text.
const SnippetLength = 150

// Article is a published post. Likes and Dislikes are derived from the
// reaction registry at read time; they are never stored on the row itself.
// Snippet is the truncated description computed by listing queries.
type Article struct {
	ID          int64     `json:"id"`
	Author      User      `json:"author"`
	Image       []byte    `json:"image"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Snippet     string    `json:"snippet,omitempty"`
	PublishDate time.Time `json:"publish_date"`
	Likes       int64     `json:"likes"`
	Dislikes    int64     `json:"dislikes"`
}

// NewArticle carries the fields an author supplies when publishing.
// The image arrives already decoded to raw bytes; base64 handling is the
// transport layer's concern.
type NewArticle struct {
	AuthorID    int64
	Image       []byte
	Title       string
	Description string
}

// Validate checks the article fields before they reach the store.
func (a *NewArticle) Validate() error {
	if len(a.Image) == 0 {
		return ErrEmptyImage
	}
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if len(a.Title) > 64 {
		return ErrTitleTooLong
	}
	if a.Description == "" {
		return ErrEmptyDescription
	}
	if len(a.Description) > 1024 {
		return ErrDescriptionTooLong
	}
	return nil
}

// Comment is an append-only message under an article. Author carries the
// commenting user's public profile for rendering.
type Comment struct {
	ID          int64     `json:"id"`
	Author      User      `json:"author"`
	ArticleID   int64     `json:"article_id"`
	Message     string    `json:"message"`
	PublishDate time.Time `json:"publish_date"`
}

// NewComment carries the fields needed to append a comment.
type NewComment struct {
	UserID    int64
	ArticleID int64
	Message   string
}

// Validate checks the comment fields before they reach the store.
func (c *NewComment) Validate() error {
	if c.Message == "" {
		return ErrEmptyMessage
	}
	if len(c.Message) > 1024 {
		return ErrMessageTooLong
	}
	return nil
}
