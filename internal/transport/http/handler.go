package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quizhub-service/internal/app"
	"quizhub-service/internal/domain"
)

// Handler exposes the quiz use cases as a JSON request/response API. Route
// dispatch and status mapping live here; all behavior belongs to the service.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// NewRouter builds the chi router for the API surface.
func NewRouter(service *app.QuizService) *chi.Mux {
	h := NewHandler(service)

	r := chi.NewRouter()
	r.Use(Recovery)
	r.Use(RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/init", h.Init)
		r.Post("/register", h.Register)
		r.Post("/mark-read", h.MarkRead)
		r.Post("/submit", h.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/save-config", h.SaveConfig)
			r.Post("/create-quiz", h.CreateQuiz)
			r.Post("/toggle-promote", h.TogglePromote)
			r.Post("/delete-quiz", h.DeleteQuiz)
			r.Post("/save-lottery", h.SaveLottery)
			r.Post("/reset-lottery", h.ResetLottery)
			r.Post("/update-score", h.UpdateScore)
			r.Post("/delete-submission", h.DeleteSubmission)
			r.Post("/stats", h.Stats)
			r.Post("/get-users", h.GetUsers)
			r.Post("/send-message", h.SendMessage)
			r.Post("/delete-message", h.DeleteMessage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// decodeBody parses the JSON payload. A malformed or empty body decodes to the
// zero payload, which then fails the operation's own validation.
func decodeBody(r *http.Request, out any) {
	_ = json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrSubmissionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateSubmission),
		errors.Is(err, domain.ErrPhoneRequired),
		errors.Is(err, domain.ErrNoMessages):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	decodeBody(r, &req)

	catalog, err := h.service.Init(r.Context(), req.UserID)
	if errors.Is(err, domain.ErrStoreUnavailable) {
		// Degrade to a fixed demo catalog so the caller can always render.
		writeJSON(w, http.StatusOK, app.DemoCatalog())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string              `json:"userId"`
		UserData domain.Registration `json:"userData"`
	}
	decodeBody(r, &req)

	user, err := h.service.Register(r.Context(), req.UserID, req.UserData)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		User    domain.User `json:"user"`
	}{Success: true, User: user})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	decodeBody(r, &req)

	if err := h.service.MarkRead(r.Context(), req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"userId"`
		QuizID  string `json:"quizId"`
		Answers []any  `json:"answers"`
	}
	decodeBody(r, &req)

	result, err := h.service.Submit(r.Context(), req.UserID, req.QuizID, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		Score   int  `json:"score"`
		Total   int  `json:"total"`
	}{Success: true, Score: result.Score, Total: result.Total})
}

func (h *Handler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID string              `json:"adminId"`
		Config  domain.SystemConfig `json:"config"`
	}
	decodeBody(r, &req)

	if err := h.service.SaveConfig(r.Context(), req.AdminID, req.Config); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID string      `json:"adminId"`
		Quiz    domain.Quiz `json:"quiz"`
	}
	decodeBody(r, &req)

	quiz, err := h.service.CreateQuiz(r.Context(), req.AdminID, req.Quiz)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}{Success: true, ID: quiz.ID})
}

func (h *Handler) TogglePromote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID  string `json:"adminId"`
		QuizID   string `json:"quizId"`
		Promoted bool   `json:"promoted"`
	}
	decodeBody(r, &req)

	if err := h.service.TogglePromote(r.Context(), req.AdminID, req.QuizID, req.Promoted); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID string `json:"adminId"`
		QuizID  string `json:"quizId"`
	}
	decodeBody(r, &req)

	if err := h.service.DeleteQuiz(r.Context(), req.AdminID, req.QuizID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) SaveLottery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID   string   `json:"adminId"`
		QuizID    string   `json:"quizId"`
		WinnerIDs []string `json:"winnerIds"`
	}
	decodeBody(r, &req)

	if err := h.service.SaveLottery(r.Context(), req.AdminID, req.QuizID, req.WinnerIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) ResetLottery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID string `json:"adminId"`
		QuizID  string `json:"quizId"`
	}
	decodeBody(r, &req)

	if err := h.service.ResetLottery(r.Context(), req.AdminID, req.QuizID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID  string `json:"adminId"`
		QuizID   string `json:"quizId"`
		UserID   string `json:"userId"`
		NewScore int    `json:"newScore"`
	}
	decodeBody(r, &req)

	if err := h.service.UpdateScore(r.Context(), req.AdminID, req.QuizID, req.UserID, req.NewScore); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID      string `json:"adminId"`
		QuizID       string `json:"quizId"`
		TargetUserID string `json:"targetUserId"`
	}
	decodeBody(r, &req)

	if err := h.service.DeleteSubmission(r.Context(), req.AdminID, req.QuizID, req.TargetUserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID string `json:"adminId"`
		QuizID  string `json:"quizId"`
	}
	decodeBody(r, &req)

	stats, err := h.service.Stats(r.Context(), req.AdminID, req.QuizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID string `json:"adminId"`
	}
	decodeBody(r, &req)

	users, err := h.service.GetUsers(r.Context(), req.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Users []domain.UserRecord `json:"users"`
	}{Users: users})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID      string          `json:"adminId"`
		TargetUserID json.RawMessage `json:"targetUserId"`
		Message      string          `json:"message"`
	}
	decodeBody(r, &req)

	if err := h.service.SendMessage(r.Context(), req.AdminID, decodeUserIDs(req.TargetUserID), req.Message); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID      string `json:"adminId"`
		TargetUserID string `json:"targetUserId"`
		MessageID    string `json:"messageId"`
	}
	decodeBody(r, &req)

	messages, err := h.service.DeleteMessage(r.Context(), req.AdminID, req.TargetUserID, req.MessageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success  bool             `json:"success"`
		Messages []domain.Message `json:"messages"`
	}{Success: true, Messages: messages})
}

// decodeUserIDs accepts a single id or a set of ids. Ids may arrive as JSON
// strings or numbers, so values are coerced through any. The field comes out
// of an already-decoded body, so it is always valid JSON or absent.
func decodeUserIDs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case []any:
		ids := make([]string, 0, len(t))
		for _, item := range t {
			ids = append(ids, coerceID(item))
		}
		return ids
	default:
		return []string{coerceID(t)}
	}
}

func coerceID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; ids are integral.
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
