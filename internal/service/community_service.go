package service

import (
	"context"
	"net/url"
	"time"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
)

const avatarBaseURL = "https://i.pravatar.cc/150?u="

type postStore interface {
	Create(ctx context.Context, post *model.Post) (int, error)
	ListFeed(ctx context.Context, limit int) ([]model.FeedPost, error)
}

// CommunityService - лента сообщества.
type CommunityService struct {
	postRepo postStore
	now      func() time.Time
}

// NewCommunityService создает сервис ленты.
func NewCommunityService(postRepo postStore) *CommunityService {
	return &CommunityService{postRepo: postRepo, now: time.Now}
}

// AvatarURL возвращает адрес аватара, однозначно определяемый email.
func AvatarURL(email string) string {
	return avatarBaseURL + url.QueryEscape(email)
}

// Feed возвращает записи от новых к старым. limit <= 0 означает все записи.
func (s *CommunityService) Feed(ctx context.Context, limit int) ([]model.FeedPost, error) {
	posts, err := s.postRepo.ListFeed(ctx, limit)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch posts", err)
	}
	for i := range posts {
		p := &posts[i]
		p.User = model.PostAuthor{ID: p.UserID, Name: p.Name, Avatar: AvatarURL(p.Email)}
	}
	return posts, nil
}

// CreatePost публикует запись от имени пользователя.
func (s *CommunityService) CreatePost(ctx context.Context, actor Actor, content string) (int, error) {
	if blank(content) {
		return 0, apperr.NewValidation("Content is required")
	}
	id, err := s.postRepo.Create(ctx, &model.Post{
		UserID:    actor.UserID,
		Content:   content,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return 0, apperr.NewInternal("Failed to create post", err)
	}
	return id, nil
}
