package models

import "time"

type Answer struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Body         string    `gorm:"column:comment;type:varchar(5000);not null" json:"body"`
	Image        *string   `gorm:"type:varchar(100)" json:"image"`
	QuestionID   uint64    `gorm:"not null;index" json:"question_id"`
	AuthorID     *uint64   `gorm:"index" json:"author_id"`
	IsBestAnswer bool      `gorm:"column:best_answer;not null;default:false" json:"is_best_answer"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Question *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// IsAuthoredBy reports whether userID wrote the answer.
func (a *Answer) IsAuthoredBy(userID uint64) bool {
	return a.AuthorID != nil && *a.AuthorID == userID
}
