package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizhub-service/internal/domain"
	"quizhub-service/internal/kv"
)

// Register creates or updates a user record. Phone is mandatory. Incoming
// fields are shallow-merged onto the existing record, so repeated registration
// with the same data is a no-op and stored messages survive.
func (s *QuizService) Register(ctx context.Context, userID string, data domain.Registration) (domain.User, error) {
	if data.Phone == "" {
		return domain.User{}, domain.ErrPhoneRequired
	}
	if err := s.requireStore(); err != nil {
		return domain.User{}, err
	}

	var user domain.User
	if _, err := s.getJSON(ctx, kv.UserKey(userID), &user); err != nil {
		return domain.User{}, err
	}

	if data.FirstName != "" {
		user.FirstName = data.FirstName
	}
	if data.LastName != "" {
		user.LastName = data.LastName
	}
	user.Phone = data.Phone

	if err := s.putJSON(ctx, kv.UserKey(userID), user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// MarkRead flags every message of the user as read. A missing user or an
// empty message list is a successful no-op.
func (s *QuizService) MarkRead(ctx context.Context, userID string) error {
	if err := s.requireStore(); err != nil {
		return err
	}

	var user domain.User
	ok, err := s.getJSON(ctx, kv.UserKey(userID), &user)
	if err != nil {
		return err
	}
	if !ok || len(user.Messages) == 0 {
		return nil
	}
	for i := range user.Messages {
		user.Messages[i].Read = true
	}
	return s.putJSON(ctx, kv.UserKey(userID), user)
}

// Submit scores a quiz attempt exactly once per (quiz, user) pair and persists
// it. The duplicate check is read-then-write: without a conditional-write
// capability on the store, two concurrent submissions can both pass the check
// and the last write wins. That window is an accepted limitation of the store
// contract; backends implementing kv.ConditionalStore close it.
func (s *QuizService) Submit(ctx context.Context, userID, quizID string, answers []any) (domain.SubmitResult, error) {
	if err := s.requireStore(); err != nil {
		return domain.SubmitResult{}, err
	}

	subKey := kv.SubmissionKey(quizID, userID)
	if _, exists, err := s.store.Get(ctx, subKey); err != nil {
		return domain.SubmitResult{}, err
	} else if exists {
		return domain.SubmitResult{}, domain.ErrDuplicateSubmission
	}

	var quiz domain.Quiz
	ok, err := s.getJSON(ctx, kv.QuizKey(quizID), &quiz)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if !ok {
		return domain.SubmitResult{}, domain.ErrQuizNotFound
	}

	score, total := scoreAnswers(quiz.Questions, answers)

	submission := domain.Submission{
		UserID:      userID,
		Score:       score,
		Total:       total,
		SubmittedAt: s.nowMillis(),
		Answers:     answers,
	}
	raw, err := json.Marshal(submission)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("encode %s: %w", subKey, err)
	}

	if cs, supported := s.store.(kv.ConditionalStore); supported {
		created, err := cs.PutIfAbsent(ctx, subKey, raw)
		if err != nil {
			return domain.SubmitResult{}, err
		}
		if !created {
			return domain.SubmitResult{}, domain.ErrDuplicateSubmission
		}
	} else if err := s.store.Put(ctx, subKey, raw); err != nil {
		return domain.SubmitResult{}, err
	}

	return domain.SubmitResult{Score: score, Total: total}, nil
}

// scoreAnswers grades answers positionally against the quiz questions.
// Text-type questions are never auto-scored and contribute to neither score
// nor total. A missing answer is zero credit; extra answers are ignored.
func scoreAnswers(questions []domain.Question, answers []any) (score, total int) {
	for i, q := range questions {
		if q.Type == domain.QuestionTypeText {
			continue
		}
		points := q.PointsOrDefault()
		if points > 0 {
			total += points
		}
		if i >= len(answers) {
			continue
		}
		if normalizeAnswer(answers[i]) == normalizeAnswer(q.CorrectAnswer) {
			score += points
		}
	}
	return score, total
}

// normalizeAnswer coerces an answer of any JSON type to a trimmed, lowercased
// string for case-insensitive comparison.
func normalizeAnswer(v any) string {
	var raw string
	switch t := v.(type) {
	case string:
		raw = t
	case nil:
		return ""
	default:
		raw = fmt.Sprint(t)
	}
	return strings.ToLower(strings.TrimSpace(raw))
}
