package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"ms-showcase/internal/database"
	"ms-showcase/internal/models"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	Bun *bun.DB
}

func (d *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := d.Bun.NewSelect().Model(&categories).Order("c.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (d *DB) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := d.Bun.NewSelect().Model(&category).Where("c.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &category, nil
}

func (d *DB) CreateCategory(ctx context.Context, category *models.Category) error {
	if _, err := d.Bun.NewInsert().Model(category).Exec(ctx); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (d *DB) CountQuestions(ctx context.Context) (int, error) {
	n, err := d.Bun.NewSelect().Model((*models.Question)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// ListQuestions returns one window of questions ordered by id.
func (d *DB) ListQuestions(ctx context.Context, offset, limit int) ([]models.Question, error) {
	questions := []models.Question{}
	err := d.Bun.NewSelect().
		Model(&questions).
		Order("q.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (d *DB) CreateQuestion(ctx context.Context, question *models.Question) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(question).Exec(ctx); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		return nil
	})
}

func (d *DB) DeleteQuestion(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.Question)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete question %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// SearchQuestions matches term case-insensitively anywhere in the question
// text. LIKE wildcards in term are matched literally.
func (d *DB) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	questions := []models.Question{}
	q, filtered := database.WhereContains(d.Bun.NewSelect().Model(&questions), "q.question", term)
	if err := q.Order("q.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	if filtered {
		return questions, nil
	}

	matched := []models.Question{}
	for _, question := range questions {
		if database.ContainsFold(question.Question, term) {
			matched = append(matched, question)
		}
	}
	return matched, nil
}

// QuestionsInCategory returns questions whose category column equals any of
// keys. No keys means every question.
func (d *DB) QuestionsInCategory(ctx context.Context, keys []string) ([]models.Question, error) {
	questions := []models.Question{}
	q := d.Bun.NewSelect().Model(&questions).Order("q.id ASC")
	if len(keys) > 0 {
		q = q.Where("q.category IN (?)", bun.In(keys))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("questions by category: %w", err)
	}
	return questions, nil
}
