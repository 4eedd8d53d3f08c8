package model

// Post - запись в ленте сообщества.
type Post struct {
	ID        int    `db:"id" json:"id"`
	UserID    int    `db:"user_id" json:"user_id"`
	Content   string `db:"content" json:"content"`
	Timestamp string `db:"timestamp" json:"timestamp"` // произвольный текст, например "2 hours ago"
}

// PostAuthor - краткие данные автора для отображения в ленте.
type PostAuthor struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// FeedPost - запись ленты вместе с автором.
type FeedPost struct {
	Post
	Name  string     `db:"name" json:"name"`
	Email string     `db:"email" json:"email"`
	User  PostAuthor `db:"-" json:"user"`
}
