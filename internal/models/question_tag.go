package models

// QuestionTag is a row of the questions_tags join table behind Question.Tags.
type QuestionTag struct {
	QuestionID uint64 `gorm:"primarykey" json:"question_id"`
	TagID      uint64 `gorm:"primarykey" json:"tag_id"`
}

func (QuestionTag) TableName() string {
	return "questions_tags"
}
