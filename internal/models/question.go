package models

import "time"

type Question struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Body       string    `gorm:"column:comment;type:varchar(5000);not null" json:"body"`
	Image      *string   `gorm:"type:varchar(100)" json:"image"`
	CategoryID uint64    `gorm:"not null;index" json:"category_id"`
	AuthorID   *uint64   `gorm:"index" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags     []Tag     `gorm:"many2many:questions_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// IsAuthoredBy reports whether userID wrote the question.
func (q *Question) IsAuthoredBy(userID uint64) bool {
	return q.AuthorID != nil && *q.AuthorID == userID
}

// HasTag reports whether a tag with tagID is attached.
func (q *Question) HasTag(tagID uint64) bool {
	for _, t := range q.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// AddTag attaches tag unless it is already present.
func (q *Question) AddTag(tag Tag) {
	if q.HasTag(tag.ID) {
		return
	}
	q.Tags = append(q.Tags, tag)
}

// RemoveTag detaches the tag with tagID if present.
func (q *Question) RemoveTag(tagID uint64) {
	for i, t := range q.Tags {
		if t.ID == tagID {
			q.Tags = append(q.Tags[:i], q.Tags[i+1:]...)
			return
		}
	}
}

// TagIDs returns the ids of the attached tags in order.
func (q *Question) TagIDs() []uint64 {
	ids := make([]uint64, len(q.Tags))
	for i, t := range q.Tags {
		ids[i] = t.ID
	}
	return ids
}
