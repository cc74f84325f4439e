package trivia_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ms-showcase/internal/logger"
	"ms-showcase/internal/models"
	"ms-showcase/internal/trivia/service"
	"ms-showcase/internal/utils"
)

type Handler struct {
	Service *service.TriviaService
	Logger  *logger.Logger
}

func NewHandler(svc *service.TriviaService, log *logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// Routes mounts the trivia API on r. It must be called before any other
// route is registered on r.
func (h *Handler) Routes(r chi.Router) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusMethodNotAllowed)
	})

	r.Get("/categories", h.GetCategories)
	r.Get("/categories/{categoryID}/questions", h.GetQuestionsByCategory)
	r.Get("/questions", h.GetQuestions)
	r.Get("/questions/", h.GetQuestions)
	r.Post("/questions", h.CreateQuestion)
	r.Post("/questions/", h.CreateQuestion)
	r.Delete("/questions/{questionID}", h.DeleteQuestion)
	r.Post("/search", h.SearchQuestions)
	r.Post("/quizzes", h.PlayQuiz)
}

type questionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory *int64            `json:"current_category"`
}

type pageResponse struct {
	questionsResponse
	Categories models.CategoryMap `json:"categories"`
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.Categories(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteError(w, http.StatusNotFound)
			return
		}
		page = n
	}

	result, err := h.Service.Page(r.Context(), page)
	if err != nil {
		if errors.Is(err, service.ErrPageOutOfRange) {
			utils.WriteError(w, http.StatusNotFound)
			return
		}
		h.internalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pageResponse{
		questionsResponse: questionsResponse{
			Success:        true,
			Questions:      result.Questions,
			TotalQuestions: result.TotalQuestions,
		},
		Categories: result.Categories,
	})
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity)
		return
	}

	result, err := h.Service.DeleteQuestion(r.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.Logger.Error("TRIVIA", fmt.Sprintf("Question %d could not be deleted: %v", id, err))
		}
		utils.WriteError(w, http.StatusUnprocessableEntity)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"questions":       result.Questions,
		"total_questions": result.TotalQuestions,
	})
}

type createQuestionRequest struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   flexString `json:"category"`
	Difficulty flexInt    `json:"difficulty"`
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	id, err := h.Service.CreateQuestion(r.Context(), service.NewQuestion{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Category:   strings.TrimSpace(string(req.Category)),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"created_id": id,
	})
}

func (h *Handler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchTerm *string `json:"searchTerm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SearchTerm == nil {
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	questions, err := h.Service.SearchQuestions(r.Context(), strings.TrimSpace(*req.SearchTerm))
	if err != nil {
		h.internalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

func (h *Handler) GetQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound)
		return
	}

	questions, err := h.Service.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.internalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: &id,
	})
}

type quizRequest struct {
	PreviousQuestions []flexInt `json:"previous_questions"`
	QuizCategory      *struct {
		ID   flexInt `json:"id"`
		Type string  `json:"type"`
	} `json:"quiz_category"`
}

func (h *Handler) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizCategory == nil {
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	previous := make([]int64, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		previous = append(previous, int64(id))
	}

	question, err := h.Service.NextQuizQuestion(r.Context(), int64(req.QuizCategory.ID), previous)
	if err != nil {
		h.internalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.Logger.Error("TRIVIA", err.Error())
	utils.WriteError(w, http.StatusInternalServerError)
}
