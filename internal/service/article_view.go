package service

import (
	"time"

	"artfeeds/internal/model"
)

// ArticleView is the response shape for a single article: the document
// fields plus the creator's public profile and the interaction id-sets.
type ArticleView struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Tags        []string         `json:"tags"`
	Images      []string         `json:"images"`
	CreatedBy   model.PublicUser `json:"createdBy"`
	Likes       []uint           `json:"likes"`
	Dislikes    []uint           `json:"dislikes"`
	Blocks      []uint           `json:"blocks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ArticlePage is a paginated article listing with computed page count.
type ArticlePage struct {
	Data       []ArticleView `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int64         `json:"totalPages"`
}

// NewArticleView flattens a preloaded article into its response shape.
func NewArticleView(a *model.Article) *ArticleView {
	return &ArticleView{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Tags:        a.Tags,
		Images:      a.Images,
		CreatedBy:   a.CreatedBy.Public(),
		Likes:       a.LikeIDs(),
		Dislikes:    a.DislikeIDs(),
		Blocks:      a.BlockIDs(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
