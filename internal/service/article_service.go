package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"artfeeds/internal/cache"
	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/model"
	"artfeeds/internal/repository"
)

const (
	articleCacheTTL = 5 * time.Minute

	defaultPage     = 1
	defaultPageSize = 10
)

// ArticleInput carries new-article data into the service.
type ArticleInput struct {
	Title       string
	Description string
	Category    string
	TagsRaw     string
	Image       string
}

// ArticleUpdate carries a partial article update. Empty text fields keep the
// existing values; TagsRaw is normalized and, when it yields nothing, the
// existing tags are kept. Image and RemoveImages are mutually exclusive at
// the route level.
type ArticleUpdate struct {
	Title        string
	Description  string
	Category     string
	TagsProvided bool
	TagsRaw      string
	Image        string
	RemoveImages bool
}

// ListParams narrows and pages the article feed.
type ListParams struct {
	Page       int
	PageSize   int
	Categories []string
	Search     string
}

// ArticleService handles article CRUD and interaction operations.
type ArticleService interface {
	Create(ctx context.Context, userID uint, input ArticleInput) (*ArticleView, error)
	GetByID(ctx context.Context, id uint) (*ArticleView, error)
	List(ctx context.Context, params ListParams) (*ArticlePage, error)
	Update(ctx context.Context, articleID, userID uint, upd ArticleUpdate) (*ArticleView, error)
	Delete(ctx context.Context, articleID, userID uint) error
	Like(ctx context.Context, articleID, userID uint) error
	Dislike(ctx context.Context, articleID, userID uint) error
	Block(ctx context.Context, articleID, userID uint) error
}

type articleService struct {
	repo  repository.ArticleRepository
	cache *cache.Client
}

// NewArticleService creates a new article service.
func NewArticleService(repo repository.ArticleRepository, cache *cache.Client) ArticleService {
	return &articleService{
		repo:  repo,
		cache: cache,
	}
}

func (s *articleService) cacheKey(id uint) string {
	return fmt.Sprintf("article:%d", id)
}

// Create persists a new article owned by userID. An attached image is
// mandatory for new articles.
func (s *articleService) Create(ctx context.Context, userID uint, input ArticleInput) (*ArticleView, error) {
	if input.Image == "" {
		return nil, apperrors.ErrImageRequired
	}

	article := &model.Article{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        model.StringList(NormalizeTags(input.TagsRaw)),
		Images:      model.StringList{input.Image},
		CreatedByID: userID,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	// Reload so the creator association is populated in the response.
	created, err := s.repo.FindByID(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("reload article: %w", err)
	}

	return NewArticleView(created), nil
}

// GetByID retrieves an article with a read-through cache.
func (s *articleService) GetByID(ctx context.Context, id uint) (*ArticleView, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached ArticleView
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, err
	}

	view := NewArticleView(article)
	if payload, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, articleCacheTTL)
	}

	return view, nil
}

// List returns a page of articles, newest first. Filters are OR semantics:
// any of the given categories, or a case-insensitive substring match over
// title and description.
func (s *articleService) List(ctx context.Context, params ListParams) (*ArticlePage, error) {
	if params.Page < 1 {
		params.Page = defaultPage
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}

	articles, total, err := s.repo.List(ctx, repository.ArticleFilter{
		Categories: params.Categories,
		Search:     params.Search,
		Page:       params.Page,
		PageSize:   params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	data := make([]ArticleView, 0, len(articles))
	for i := range articles {
		data = append(data, *NewArticleView(&articles[i]))
	}

	totalPages := (total + int64(params.PageSize) - 1) / int64(params.PageSize)

	return &ArticlePage{
		Data:       data,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Update modifies an article owned by userID. The write itself is conditional
// on ownership so a delete racing between the check and the update surfaces
// as not-found instead of silently resurrecting fields.
func (s *articleService) Update(ctx context.Context, articleID, userID uint, upd ArticleUpdate) (*ArticleView, error) {
	existing, err := s.repo.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, err
	}
	if existing.CreatedByID != userID {
		return nil, apperrors.ErrNotArticleOwner
	}

	updates := map[string]interface{}{}
	if upd.Title != "" {
		updates["title"] = upd.Title
	}
	if upd.Description != "" {
		updates["description"] = upd.Description
	}
	if upd.Category != "" {
		updates["category"] = upd.Category
	}

	if upd.TagsProvided {
		if tags := NormalizeTags(upd.TagsRaw); len(tags) > 0 {
			updates["tags"] = model.StringList(tags)
		}
	}

	switch {
	case upd.Image != "":
		if len(existing.Images) == 0 {
			return nil, apperrors.ErrNoImageToReplace
		}
		// Replace the reference only; the old file stays on disk.
		updates["images"] = model.StringList{upd.Image}
	case upd.RemoveImages:
		updates["images"] = model.StringList{}
	}

	if len(updates) > 0 {
		rows, err := s.repo.UpdateOwned(ctx, articleID, userID, updates)
		if err != nil {
			return nil, fmt.Errorf("update article: %w", err)
		}
		if rows == 0 {
			// Ownership already verified above, so the row vanished under us.
			return nil, apperrors.ErrArticleNotFound
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(articleID))

	updated, err := s.repo.FindByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("reload article: %w", err)
	}
	return NewArticleView(updated), nil
}

// Delete hard-deletes an article owned by userID. The uploaded file is left
// in place.
func (s *articleService) Delete(ctx context.Context, articleID, userID uint) error {
	existing, err := s.repo.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrArticleNotFound
		}
		return err
	}
	if existing.CreatedByID != userID {
		return apperrors.ErrNotArticleOwner
	}

	rows, err := s.repo.DeleteOwned(ctx, articleID, userID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrArticleNotFound
	}

	return s.cache.Delete(ctx, s.cacheKey(articleID))
}

// Like puts the user in the article's like set, removing them from the
// dislike set in the same statement. Repeat calls are no-ops, as are calls
// against ids that no longer exist.
func (s *articleService) Like(ctx context.Context, articleID, userID uint) error {
	return s.react(ctx, articleID, userID, model.ReactionLike)
}

// Dislike mirrors Like with the sets swapped.
func (s *articleService) Dislike(ctx context.Context, articleID, userID uint) error {
	return s.react(ctx, articleID, userID, model.ReactionDislike)
}

// Block hides the article from the user's feed. Independent of like state.
func (s *articleService) Block(ctx context.Context, articleID, userID uint) error {
	exists, err := s.repo.Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("check article: %w", err)
	}
	if !exists {
		return nil
	}

	if err := s.repo.AddBlock(ctx, articleID, userID); err != nil {
		return fmt.Errorf("block article: %w", err)
	}

	return s.cache.Delete(ctx, s.cacheKey(articleID))
}

func (s *articleService) react(ctx context.Context, articleID, userID uint, kind string) error {
	exists, err := s.repo.Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("check article: %w", err)
	}
	if !exists {
		return nil
	}

	if err := s.repo.SetReaction(ctx, articleID, userID, kind); err != nil {
		return fmt.Errorf("set reaction: %w", err)
	}

	return s.cache.Delete(ctx, s.cacheKey(articleID))
}
