package db_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-showcase/internal/database"
	"ms-showcase/internal/models"
	triviadb "ms-showcase/internal/trivia/db"
)

func setupTestDB(t *testing.T) *triviadb.DB {
	bunDB, err := database.NewInMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	t.Cleanup(func() { bunDB.Close() })
	return &triviadb.DB{Bun: bunDB}
}

func seedQuestions(t *testing.T, d *triviadb.DB, n int, category string) []models.Question {
	out := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{
			Question:   "Question number " + strconv.Itoa(i+1),
			Answer:     "Answer " + strconv.Itoa(i+1),
			Category:   category,
			Difficulty: 1 + i%5,
		}
		require.NoError(t, d.CreateQuestion(context.Background(), &q))
		out = append(out, q)
	}
	return out
}

func TestCategories(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Science", "Art"} {
		require.NoError(t, d.CreateCategory(ctx, &models.Category{Type: name}))
	}

	categories, err := d.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Science", categories[0].Type)

	got, err := d.GetCategoryByID(ctx, categories[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Art", got.Type)

	_, err = d.GetCategoryByID(ctx, 1000)
	assert.ErrorIs(t, err, triviadb.ErrNotFound)
}

func TestListQuestionsWindow(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	seeded := seedQuestions(t, d, 12, "1")

	total, err := d.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	page, err := d.ListQuestions(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, seeded[10].ID, page[0].ID)

	page, err = d.ListQuestions(ctx, 20, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestDeleteQuestion(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	seeded := seedQuestions(t, d, 2, "1")

	require.NoError(t, d.DeleteQuestion(ctx, seeded[0].ID))
	total, err := d.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	err = d.DeleteQuestion(ctx, seeded[0].ID)
	assert.ErrorIs(t, err, triviadb.ErrNotFound)
}

func TestSearchQuestions(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	q := models.Question{Question: "What is 100% of 1?", Answer: "1", Category: "1", Difficulty: 1}
	require.NoError(t, d.CreateQuestion(ctx, &q))
	seedQuestions(t, d, 3, "2")

	found, err := d.SearchQuestions(ctx, "NUMBER")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	found, err = d.SearchQuestions(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, q.ID, found[0].ID)

	found, err = d.SearchQuestions(ctx, "##")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchQuestionsNonASCII(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	q := models.Question{Question: "Which Émile wrote Germinal?", Answer: "Zola", Category: "2", Difficulty: 2}
	require.NoError(t, d.CreateQuestion(ctx, &q))
	seedQuestions(t, d, 2, "1")

	found, err := d.SearchQuestions(ctx, "émile")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, q.ID, found[0].ID)
}

func TestQuestionsInCategory(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	seedQuestions(t, d, 2, "1")
	seedQuestions(t, d, 1, "Science")
	seedQuestions(t, d, 3, "4")

	found, err := d.QuestionsInCategory(ctx, []string{"1", "Science"})
	require.NoError(t, err)
	assert.Len(t, found, 3)

	found, err = d.QuestionsInCategory(ctx, []string{"1000"})
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = d.QuestionsInCategory(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, found, 6)
}
