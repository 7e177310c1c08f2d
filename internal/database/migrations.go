package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// Indexes backing the listing orders and relation filters.
var indexes = []index{
	{"questions", "idx_questions_created_at", "created_at, id"},
	{"questions", "idx_questions_category_created", "category_id, created_at"},
	{"answers", "idx_answers_question_best", "question_id, best_answer, created_at"},
	{"questions_tags", "idx_questions_tags_tag_id", "tag_id"},
	{"categories", "idx_categories_slug", "slug"},
	{"tags", "idx_tags_slug", "slug"},
}

// AddIndexes creates the secondary indexes that are not declared on the models.
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}
