// Package seed fills a database with demo categories, tags, users, questions and
// answers. It is meant for development environments only.
package seed

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every generated user.
const DefaultPassword = "password"

type Options struct {
	Categories         int
	Tags               int
	Users              int
	Questions          int
	MaxAnswers         int
	MaxTagsPerQuestion int
	// Seed makes the generated content reproducible. Zero picks a random seed.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Categories:         20,
		Tags:               20,
		Users:              10,
		Questions:          50,
		MaxAnswers:         5,
		MaxTagsPerQuestion: 3,
	}
}

// Result counts what was created.
type Result struct {
	Categories int
	Tags       int
	Users      int
	Questions  int
	Answers    int
}

// Seed inserts the fixtures in a single transaction.
func Seed(db *gorm.DB, opts Options, log *slog.Logger) (Result, error) {
	var result Result

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return result, fmt.Errorf("failed to hash seed password: %w", err)
	}

	g := &generator{faker: gofakeit.New(opts.Seed), passwordHash: string(hash)}

	err = db.Transaction(func(tx *gorm.DB) error {
		categories, err := g.categories(tx, opts.Categories)
		if err != nil {
			return err
		}
		tags, err := g.tags(tx, opts.Tags)
		if err != nil {
			return err
		}
		users, err := g.users(tx, opts.Users)
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			result = Result{Tags: len(tags), Users: len(users)}
			return nil
		}

		questions, answers := 0, 0
		for range opts.Questions {
			question, err := g.question(tx, categories, tags, users, opts.MaxTagsPerQuestion)
			if err != nil {
				return err
			}
			questions++

			n, err := g.answers(tx, question, users, opts.MaxAnswers)
			if err != nil {
				return err
			}
			answers += n
		}

		result = Result{
			Categories: len(categories),
			Tags:       len(tags),
			Users:      len(users),
			Questions:  questions,
			Answers:    answers,
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info("database seeded",
		slog.Int("categories", result.Categories),
		slog.Int("tags", result.Tags),
		slog.Int("users", result.Users),
		slog.Int("questions", result.Questions),
		slog.Int("answers", result.Answers),
	)
	return result, nil
}

type generator struct {
	faker        *gofakeit.Faker
	passwordHash string
}

func (g *generator) categories(tx *gorm.DB, n int) ([]models.Category, error) {
	categories := make([]models.Category, 0, n)
	for i := range n {
		title := fmt.Sprintf("%s %d", capitalize(g.faker.Hobby()), i+1)
		slug, err := utils.Slugify(title, constants.MaxCategorySlugLength)
		if err != nil {
			return nil, err
		}
		categories = append(categories, models.Category{Title: title, Slug: slug})
	}
	if n == 0 {
		return categories, nil
	}
	if err := tx.Create(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to create categories: %w", err)
	}
	return categories, nil
}

func (g *generator) tags(tx *gorm.DB, n int) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, n)
	for i := range n {
		word := g.faker.Noun()
		if len(word) > 24 {
			word = word[:24]
		}
		title := fmt.Sprintf("%s-%d", strings.ToLower(word), i+1)
		slug, err := utils.Slugify(title, constants.MaxTagSlugLength)
		if err != nil {
			return nil, err
		}
		tags = append(tags, models.Tag{Title: title, Slug: slug})
	}
	if n == 0 {
		return tags, nil
	}
	if err := tx.Create(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to create tags: %w", err)
	}
	return tags, nil
}

func (g *generator) users(tx *gorm.DB, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := range n {
		users = append(users, models.User{
			Email:        fmt.Sprintf("user%d@example.com", i+1),
			Nickname:     g.faker.Username(),
			PasswordHash: g.passwordHash,
			Roles:        []models.Role{models.RoleUser},
		})
	}
	if n == 0 {
		return users, nil
	}
	if err := tx.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	return users, nil
}

func (g *generator) question(tx *gorm.DB, categories []models.Category, tags []models.Tag, users []models.User, maxTags int) (*models.Question, error) {
	question := &models.Question{
		Title:      strings.TrimSuffix(g.faker.Question(), "?") + "?",
		Body:       g.faker.Paragraph(1, 3, 12, "\n"),
		CategoryID: categories[g.faker.Number(0, len(categories)-1)].ID,
		AuthorID:   g.author(users),
	}
	if len(question.Title) > constants.MaxQuestionTitleLength {
		question.Title = question.Title[:constants.MaxQuestionTitleLength]
	}
	if err := tx.Omit("Tags").Create(question).Error; err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	if len(tags) == 0 || maxTags == 0 {
		return question, nil
	}
	picked := map[uint64]bool{}
	for range g.faker.Number(0, maxTags) {
		tag := tags[g.faker.Number(0, len(tags)-1)]
		if picked[tag.ID] {
			continue
		}
		picked[tag.ID] = true
		link := models.QuestionTag{QuestionID: question.ID, TagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return nil, fmt.Errorf("failed to tag question: %w", err)
		}
	}
	return question, nil
}

func (g *generator) answers(tx *gorm.DB, question *models.Question, users []models.User, maxAnswers int) (int, error) {
	n := g.faker.Number(0, maxAnswers)
	for range n {
		answer := models.Answer{
			Body:         g.faker.Paragraph(1, 2, 10, "\n"),
			QuestionID:   question.ID,
			AuthorID:     g.author(users),
			IsBestAnswer: g.faker.Number(1, 10) == 1,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return 0, fmt.Errorf("failed to create answer: %w", err)
		}
	}
	return n, nil
}

// author picks a random user, or nil for an anonymous post about one time in five.
func (g *generator) author(users []models.User) *uint64 {
	if len(users) == 0 || g.faker.Number(1, 5) == 1 {
		return nil
	}
	id := users[g.faker.Number(0, len(users)-1)].ID
	return &id
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
