package model

import "time"

// StringList is a JSON-serialized string slice column.
type StringList []string

// Reaction kinds stored in article_reactions.kind.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Article represents a user-authored post with category, tags and an
// optional image attachment.
type Article struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Category    string     `json:"category" gorm:"size:100;not null;index"`
	Tags        StringList `json:"tags" gorm:"type:json;serializer:json"`
	Images      StringList `json:"images" gorm:"type:json;serializer:json"`
	CreatedByID uint       `json:"-" gorm:"not null;index"`
	CreatedBy   User       `json:"-" gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Reactions []ArticleReaction `json:"-" gorm:"foreignKey:ArticleID"`
	Blocks    []ArticleBlock    `json:"-" gorm:"foreignKey:ArticleID"`
}

// ArticleReaction records a single user's like or dislike of an article.
// The composite unique index enforces that a user appears in at most one
// of the like/dislike sets; switching sides is an upsert on this row.
type ArticleReaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ArticleID uint      `json:"articleId" gorm:"not null;uniqueIndex:idx_article_user_reaction"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_article_user_reaction"`
	Kind      string    `json:"kind" gorm:"size:10;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleBlock records that a user hid an article from their feed.
// Independent of like/dislike state.
type ArticleBlock struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ArticleID uint      `json:"articleId" gorm:"not null;uniqueIndex:idx_article_user_block"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_article_user_block"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeIDs returns the user ids currently in the like set.
func (a *Article) LikeIDs() []uint {
	return a.reactionIDs(ReactionLike)
}

// DislikeIDs returns the user ids currently in the dislike set.
func (a *Article) DislikeIDs() []uint {
	return a.reactionIDs(ReactionDislike)
}

// BlockIDs returns the user ids that blocked this article.
func (a *Article) BlockIDs() []uint {
	ids := make([]uint, 0, len(a.Blocks))
	for _, b := range a.Blocks {
		ids = append(ids, b.UserID)
	}
	return ids
}

func (a *Article) reactionIDs(kind string) []uint {
	ids := make([]uint, 0, len(a.Reactions))
	for _, r := range a.Reactions {
		if r.Kind == kind {
			ids = append(ids, r.UserID)
		}
	}
	return ids
}
