package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/go-playground/validator/v10"

	"ms-showcase/internal/kafka"
	"ms-showcase/internal/logger"
	"ms-showcase/internal/models"
	triviadb "ms-showcase/internal/trivia/db"
)

const DefaultPageSize = 10

var (
	ErrNotFound = triviadb.ErrNotFound
	// ErrPageOutOfRange is returned for a page that holds no questions.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrInvalidQuestion wraps the validation failure of a new question.
	ErrInvalidQuestion = errors.New("invalid question")
)

type TriviaDBLayer interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	CountQuestions(ctx context.Context) (int, error)
	ListQuestions(ctx context.Context, offset, limit int) ([]models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id int64) error
	SearchQuestions(ctx context.Context, term string) ([]models.Question, error)
	QuestionsInCategory(ctx context.Context, keys []string) ([]models.Question, error)
}

type TriviaService struct {
	DB       TriviaDBLayer
	Events   kafka.Publisher
	Log      *logger.Logger
	PageSize int
	// Pick returns a number in [0, n).
	Pick func(n int) int
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func NewTriviaService(db TriviaDBLayer, events kafka.Publisher, log *logger.Logger, pageSize int) *TriviaService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if events == nil {
		events = kafka.NopPublisher{}
	}
	return &TriviaService{
		DB:       db,
		Events:   events,
		Log:      log,
		PageSize: pageSize,
		Pick:     rand.IntN,
	}
}

type NewQuestion struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,min=1"`
}

type QuestionPage struct {
	Questions      []models.Question
	TotalQuestions int
	Categories     models.CategoryMap
}

func (s *TriviaService) Categories(ctx context.Context) (models.CategoryMap, error) {
	categories, err := s.DB.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(models.CategoryMap, len(categories))
	for _, c := range categories {
		out[strconv.FormatInt(c.ID, 10)] = c.Type
	}
	return out, nil
}

// Page returns the 1-based page of questions ordered by id together with
// the category map. A page past the last question, including page 1 of an
// empty table, is ErrPageOutOfRange.
func (s *TriviaService) Page(ctx context.Context, page int) (*QuestionPage, error) {
	result, err := s.page(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("page %d: %w", page, ErrPageOutOfRange)
	}
	return result, nil
}

func (s *TriviaService) page(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, ErrPageOutOfRange)
	}
	total, err := s.DB.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}

	// compare page counts so a huge page number cannot overflow the offset
	questions := []models.Question{}
	pages := (total + s.PageSize - 1) / s.PageSize
	if page <= pages {
		questions, err = s.DB.ListQuestions(ctx, (page-1)*s.PageSize, s.PageSize)
		if err != nil {
			return nil, err
		}
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{Questions: questions, TotalQuestions: total, Categories: categories}, nil
}

// DeleteQuestion removes a question and returns the first page of what is
// left, which may be empty.
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int64) (*QuestionPage, error) {
	if err := s.DB.DeleteQuestion(ctx, id); err != nil {
		return nil, err
	}
	s.Log.LogDatabase("DELETE", "questions", fmt.Sprintf("id=%d", id))
	s.publish(ctx, kafka.QuestionDeleted, id)
	return s.page(ctx, 1)
}

func (s *TriviaService) CreateQuestion(ctx context.Context, in NewQuestion) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	q := models.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	if err := s.DB.CreateQuestion(ctx, &q); err != nil {
		s.Log.Error("TRIVIA", fmt.Sprintf("Question could not be created: %v", err))
		return 0, err
	}
	s.Log.LogDatabase("INSERT", "questions", fmt.Sprintf("id=%d", q.ID))
	s.publish(ctx, kafka.QuestionCreated, q.ID)
	return q.ID, nil
}

func (s *TriviaService) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	return s.DB.SearchQuestions(ctx, term)
}

// QuestionsByCategory returns questions filed under the category either by
// its id or by its type name. An unknown id yields no questions.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	keys, err := s.categoryKeys(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.DB.QuestionsInCategory(ctx, keys)
}

func (s *TriviaService) categoryKeys(ctx context.Context, categoryID int64) ([]string, error) {
	keys := []string{strconv.FormatInt(categoryID, 10)}
	category, err := s.DB.GetCategoryByID(ctx, categoryID)
	switch {
	case errors.Is(err, ErrNotFound):
		return keys, nil
	case err != nil:
		return nil, err
	}
	return append(keys, category.Type), nil
}

// NextQuizQuestion picks a random question from the category, or from every
// category when categoryID is 0, skipping ids in previous. It returns nil
// once the category is exhausted.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*models.Question, error) {
	var keys []string
	if categoryID != 0 {
		var err error
		if keys, err = s.categoryKeys(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	questions, err := s.DB.QuestionsInCategory(ctx, keys)
	if err != nil {
		return nil, err
	}

	asked := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}
	remaining := questions[:0]
	for _, q := range questions {
		if _, ok := asked[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return nil, nil
	}

	pick := s.Pick
	if pick == nil {
		pick = rand.IntN
	}
	q := remaining[pick(len(remaining))]
	return &q, nil
}

func (s *TriviaService) publish(ctx context.Context, eventType string, id int64) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, kafka.NewEvent(eventType, id, "")); err != nil {
		s.Log.Warn("KAFKA", fmt.Sprintf("Failed to publish %s for %d: %v", eventType, id, err))
	}
}
