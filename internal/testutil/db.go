// Package testutil provides an in-memory database and fixture builders for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/database"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database that lives for the duration of t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.SetupJoinTables(db))
	require.NoError(t, db.AutoMigrate(database.Models...))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string, roles ...models.Role) *models.User {
	t.Helper()

	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed",
		Nickname:     email,
		Roles:        roles,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return CreateUser(t, db, email, models.RoleUser, models.RoleAdmin)
}

func CreateCategory(t *testing.T, db *gorm.DB, title string) *models.Category {
	t.Helper()

	category := &models.Category{Title: title, Slug: slugOf(title)}
	require.NoError(t, db.Create(category).Error)
	return category
}

func CreateTag(t *testing.T, db *gorm.DB, title string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Title: title, Slug: slugOf(title)}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateQuestion stores a question in category; author may be nil.
func CreateQuestion(t *testing.T, db *gorm.DB, title string, category *models.Category, author *models.User) *models.Question {
	t.Helper()

	question := &models.Question{
		Title:      title,
		Body:       title + " body",
		CategoryID: category.ID,
	}
	if author != nil {
		question.AuthorID = &author.ID
	}
	require.NoError(t, db.Omit("Category", "Author", "Tags").Create(question).Error)
	return question
}

// CreateAnswer stores an answer to question; author may be nil.
func CreateAnswer(t *testing.T, db *gorm.DB, body string, question *models.Question, author *models.User) *models.Answer {
	t.Helper()

	answer := &models.Answer{
		Body:       body,
		QuestionID: question.ID,
	}
	if author != nil {
		answer.AuthorID = &author.ID
	}
	require.NoError(t, db.Omit("Question", "Author").Create(answer).Error)
	return answer
}

// TagQuestion attaches tags to question through the join table.
func TagQuestion(t *testing.T, db *gorm.DB, question *models.Question, tags ...*models.Tag) {
	t.Helper()

	for _, tag := range tags {
		require.NoError(t, db.Create(&models.QuestionTag{QuestionID: question.ID, TagID: tag.ID}).Error)
	}
}

func slugOf(title string) string {
	return fmt.Sprintf("%s-slug", title)
}
