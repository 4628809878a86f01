package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artfeeds/internal/model"
)

// ArticleFilter narrows the paginated article listing.
type ArticleFilter struct {
	Categories []string
	Search     string
	Page       int
	PageSize   int
}

// ArticleRepository defines article persistence operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter ArticleFilter) ([]model.Article, int64, error)
	// UpdateOwned applies updates only when the article belongs to ownerID,
	// as a single conditional statement. Returns rows affected.
	UpdateOwned(ctx context.Context, id, ownerID uint, updates map[string]interface{}) (int64, error)
	// DeleteOwned hard-deletes the article only when it belongs to ownerID.
	DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error)
	// SetReaction upserts the user's reaction row. A user switching from like
	// to dislike (or back) is a single atomic kind swap on the unique
	// (article_id, user_id) row; repeating the same reaction is a no-op.
	SetReaction(ctx context.Context, articleID, userID uint, kind string) error
	// AddBlock records a block, idempotently.
	AddBlock(ctx context.Context, articleID, userID uint) error
}

type articleRepository struct {
	db *gorm.DB
}

// likeEscaper neutralizes LIKE metacharacters so a search term is always a
// literal substring match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Reactions").
		Preload("Blocks").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]model.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Article{})

	if len(filter.Categories) == 1 {
		query = query.Where("category = ?", filter.Categories[0])
	} else if len(filter.Categories) > 1 {
		query = query.Where("category IN ?", filter.Categories)
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []model.Article
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("CreatedBy").
		Preload("Reactions").
		Preload("Blocks").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *articleRepository) UpdateOwned(ctx context.Context, id, ownerID uint, updates map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *articleRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		Delete(&model.Article{})
	return res.RowsAffected, res.Error
}

func (r *articleRepository) SetReaction(ctx context.Context, articleID, userID uint, kind string) error {
	reaction := model.ArticleReaction{
		ArticleID: articleID,
		UserID:    userID,
		Kind:      kind,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"kind": kind}),
	}).Create(&reaction).Error
}

func (r *articleRepository) AddBlock(ctx context.Context, articleID, userID uint) error {
	block := model.ArticleBlock{
		ArticleID: articleID,
		UserID:    userID,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&block).Error
}
