package app_test

import (
	"context"
	"errors"
	"testing"

	"quizhub-service/internal/domain"
)

func TestSubmitScoring(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	quiz := activeQuiz("q1")
	quiz.Questions = []domain.Question{
		{Type: "choice", CorrectAnswer: "A", Points: intPtr(2)},
		{Type: "text"},
	}
	mustCreateQuiz(t, service, quiz)

	// Case-insensitive, whitespace-trimmed match; text never scored.
	result, err := service.Submit(ctx, "u1", "q1", []any{" a ", "anything"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 2 || result.Total != 2 {
		t.Fatalf("expected score=2 total=2, got %+v", result)
	}
}

func TestSubmitDefaultPointsAndMissingAnswers(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	quiz := activeQuiz("q1")
	quiz.Questions = []domain.Question{
		{Type: "choice", CorrectAnswer: "yes"},   // default 1 point
		{Type: "choice", CorrectAnswer: "no"},    // unanswered, zero credit
		{Type: "choice", CorrectAnswer: "maybe"}, // unanswered
	}
	mustCreateQuiz(t, service, quiz)

	result, err := service.Submit(ctx, "u1", "q1", []any{"YES"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 || result.Total != 3 {
		t.Fatalf("expected score=1 total=3, got %+v", result)
	}
}

func TestSubmitIgnoresExtraAnswers(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	mustCreateQuiz(t, service, activeQuiz("q1"))

	result, err := service.Submit(ctx, "u1", "q1", []any{"4", "stray", "more"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 2 || result.Total != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSubmitDuplicateLeavesFirstIntact(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	mustCreateQuiz(t, service, activeQuiz("q1"))

	first, err := service.Submit(ctx, "u1", "q1", []any{"4"})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err = service.Submit(ctx, "u1", "q1", []any{"3"})
	if !errors.Is(err, domain.ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	catalog, err := service.Init(ctx, "u1")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(catalog.History) != 1 || catalog.History[0].Score != first.Score {
		t.Fatalf("first submission must survive, got %+v", catalog.History)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Submit(context.Background(), "u1", "missing", []any{"4"})
	if !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestRegisterRequiresPhone(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	_, err := service.Register(ctx, "u1", domain.Registration{FirstName: "No", LastName: "Phone"})
	if !errors.Is(err, domain.ErrPhoneRequired) {
		t.Fatalf("expected phone validation error, got %v", err)
	}

	keys, _ := store.List(ctx, "")
	if len(keys) != 0 {
		t.Fatalf("validation failure must not write, found keys %v", keys)
	}
}

func TestRegisterMergePreservesExistingFields(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	if _, err := service.Register(ctx, "u1", domain.Registration{FirstName: "Ada", LastName: "Lovelace", Phone: "111"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := service.SendMessage(ctx, adminID, []string{"u1"}, "welcome"); err != nil {
		t.Fatalf("send message: %v", err)
	}

	// Re-registering with a partial payload keeps the rest of the record.
	user, err := service.Register(ctx, "u1", domain.Registration{Phone: "222"})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if user.FirstName != "Ada" || user.LastName != "Lovelace" || user.Phone != "222" {
		t.Fatalf("unexpected merged user %+v", user)
	}
	if len(user.Messages) != 1 {
		t.Fatalf("messages must survive registration, got %+v", user.Messages)
	}
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	mustRegister(t, service, "u1")
	if err := service.SendMessage(ctx, adminID, []string{"u1"}, "one"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := service.SendMessage(ctx, adminID, []string{"u1"}, "two"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := service.MarkRead(ctx, "u1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	catalog, _ := service.Init(ctx, "u1")
	for _, m := range catalog.UserData.Messages {
		if !m.Read {
			t.Fatalf("expected all messages read, got %+v", catalog.UserData.Messages)
		}
	}

	// Unknown users are a successful no-op.
	if err := service.MarkRead(ctx, "ghost"); err != nil {
		t.Fatalf("mark read for unknown user: %v", err)
	}
}
