package model

import "time"

// User represents a registered reader/author in the system.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FirstName    string     `json:"firstName" gorm:"size:50;not null"`
	LastName     string     `json:"lastName" gorm:"size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string     `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	DOB          *time.Time `json:"dob,omitempty"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Preferences  StringList `json:"preferences" gorm:"type:json;serializer:json"`
	Role         string     `json:"role,omitempty" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Articles []Article `json:"-" gorm:"foreignKey:CreatedByID"`
}

// PublicUser is the reduced shape embedded in article responses.
type PublicUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Public returns the reduced user shape for embedding in other payloads.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
