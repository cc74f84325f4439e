package service_test

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-showcase/internal/database"
	"ms-showcase/internal/kafka"
	"ms-showcase/internal/models"
	triviadb "ms-showcase/internal/trivia/db"
	"ms-showcase/internal/trivia/service"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event kafka.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func setupService(t *testing.T) (*service.TriviaService, *triviadb.DB, *MockPublisher) {
	bunDB, err := database.NewInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })

	d := &triviadb.DB{Bun: bunDB}
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := service.NewTriviaService(d, pub, nil, 10)
	return svc, d, pub
}

func seed(t *testing.T, d *triviadb.DB, n int, category string) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{Question: "Q" + strconv.Itoa(i), Answer: "A", Category: category, Difficulty: 2}
		require.NoError(t, d.CreateQuestion(context.Background(), &q))
		ids = append(ids, q.ID)
	}
	return ids
}

func TestPagination(t *testing.T) {
	svc, d, _ := setupService(t)
	ctx := context.Background()
	require.NoError(t, d.CreateCategory(ctx, &models.Category{Type: "Science"}))
	ids := seed(t, d, 15, "1")

	page, err := svc.Page(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 10)
	assert.Equal(t, 15, page.TotalQuestions)
	assert.Equal(t, models.CategoryMap{"1": "Science"}, page.Categories)

	page, err = svc.Page(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page.Questions, 5)
	assert.Equal(t, ids[10], page.Questions[0].ID)

	for _, p := range []int{0, -1, 3, 10000, math.MaxInt, math.MaxInt/10 + 1} {
		_, err = svc.Page(ctx, p)
		assert.ErrorIs(t, err, service.ErrPageOutOfRange, "page %d", p)
	}
}

func TestPageOneOfEmptyTable(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Page(context.Background(), 1)
	assert.ErrorIs(t, err, service.ErrPageOutOfRange)
}

func TestDeleteQuestion(t *testing.T) {
	svc, d, pub := setupService(t)
	ctx := context.Background()
	ids := seed(t, d, 2, "1")

	page, err := svc.DeleteQuestion(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalQuestions)
	assert.Equal(t, ids[1], page.Questions[0].ID)
	pub.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == kafka.QuestionDeleted && e.ID == ids[0]
	}))

	page, err = svc.DeleteQuestion(ctx, ids[1])
	require.NoError(t, err)
	assert.Empty(t, page.Questions)

	_, err = svc.DeleteQuestion(ctx, 10000)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateQuestionValidation(t *testing.T) {
	svc, d, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.CreateQuestion(ctx, service.NewQuestion{Question: "How are you?", Answer: "fine thank you", Category: "Science", Difficulty: 1})
	require.NoError(t, err)
	assert.NotZero(t, id)

	bad := []service.NewQuestion{
		{Answer: "a", Category: "1", Difficulty: 1},
		{Question: "q", Category: "1", Difficulty: 1},
		{Question: "q", Answer: "a", Difficulty: 1},
		{Question: "q", Answer: "a", Category: "1"},
	}
	for _, in := range bad {
		_, err := svc.CreateQuestion(ctx, in)
		assert.ErrorIs(t, err, service.ErrInvalidQuestion)
	}

	total, err := d.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestQuestionsByCategoryMatchesIDOrType(t *testing.T) {
	svc, d, _ := setupService(t)
	ctx := context.Background()
	require.NoError(t, d.CreateCategory(ctx, &models.Category{Type: "Science"}))
	seed(t, d, 2, "1")
	seed(t, d, 1, "Science")
	seed(t, d, 4, "Art")

	got, err := svc.QuestionsByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.QuestionsByCategory(ctx, 1000)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNextQuizQuestion(t *testing.T) {
	svc, d, _ := setupService(t)
	ctx := context.Background()
	require.NoError(t, d.CreateCategory(ctx, &models.Category{Type: "Science"}))
	science := seed(t, d, 3, "1")
	other := seed(t, d, 2, "2")
	svc.Pick = func(n int) int { return n - 1 }

	q, err := svc.NextQuizQuestion(ctx, 1, []int64{science[2]})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, science[1], q.ID)

	q, err = svc.NextQuizQuestion(ctx, 1, science)
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = svc.NextQuizQuestion(ctx, 0, science)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, other[1], q.ID)
}
