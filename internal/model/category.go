package model

// Category is a fixed feed category; articles and user preferences refer to
// it loosely by name rather than by foreign key.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}
