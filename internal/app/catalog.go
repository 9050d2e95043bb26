package app

import (
	"context"
	"slices"

	"quizhub-service/internal/domain"
	"quizhub-service/internal/kv"
)

// Init assembles the personalized catalog for one caller: the quizzes they are
// allowed to see, their attempt history, the system config, and admin-only
// counts. It is strictly read-only.
func (s *QuizService) Init(ctx context.Context, userID string) (domain.Catalog, error) {
	if err := s.requireStore(); err != nil {
		return domain.Catalog{}, err
	}

	catalog := domain.Catalog{
		Quizzes: []domain.CatalogQuiz{},
		History: []domain.HistoryEntry{},
		IsAdmin: s.isAdmin(userID),
	}

	var user domain.User
	registered, err := s.getJSON(ctx, kv.UserKey(userID), &user)
	if err != nil {
		return domain.Catalog{}, err
	}
	catalog.Registered = registered
	catalog.UserData = user

	// Absent config falls back to the default without persisting it.
	catalog.Config = domain.DefaultSystemConfig()
	if _, err := s.getJSON(ctx, kv.ConfigKey, &catalog.Config); err != nil {
		return domain.Catalog{}, err
	}

	quizKeys, err := s.store.List(ctx, kv.QuizPrefix)
	if err != nil {
		return domain.Catalog{}, err
	}

	now := s.nowMillis()
	for _, key := range quizKeys {
		var quiz domain.Quiz
		ok, err := s.getJSON(ctx, key, &quiz)
		if err != nil {
			return domain.Catalog{}, err
		}
		if !ok {
			continue
		}

		var submission domain.Submission
		submitted, err := s.getJSON(ctx, kv.SubmissionKey(quiz.ID, userID), &submission)
		if err != nil {
			return domain.Catalog{}, err
		}

		// History is never gated by visibility; the caller already participated.
		if submitted {
			catalog.History = append(catalog.History, domain.HistoryEntry{
				ID:    quiz.ID,
				Title: quiz.Title,
				Score: submission.Score,
				Total: submission.Total,
				Date:  submission.SubmittedAt,
			})
		}

		// Future quizzes the caller has not attempted must not leak at all.
		if !catalog.IsAdmin && quiz.StartTime > now && !submitted {
			continue
		}

		entry := domain.CatalogQuiz{Quiz: quiz}
		switch {
		case submitted:
			entry.UserStatus = domain.StatusSubmitted
		case quiz.EndTime < now:
			entry.UserStatus = domain.StatusExpired
		default:
			entry.UserStatus = domain.StatusActive
		}

		if quiz.Winners != nil {
			entry.LotteryDone = true
			entry.IsWinner = slices.Contains(quiz.Winners, userID)
		}

		if !catalog.IsAdmin {
			entry.Questions = redactQuestions(quiz.Questions)
		}

		catalog.Quizzes = append(catalog.Quizzes, entry)
	}

	if catalog.IsAdmin {
		userKeys, err := s.store.List(ctx, kv.UserPrefix)
		if err != nil {
			return domain.Catalog{}, err
		}
		catalog.Meta = &domain.CatalogMeta{
			TotalUsers:   len(userKeys),
			TotalQuizzes: len(catalog.Quizzes),
		}
	}

	return catalog, nil
}

// redactQuestions strips answer keys before a non-admin response.
func redactQuestions(questions []domain.Question) []domain.Question {
	redacted := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.CorrectAnswer = ""
		redacted[i] = q
	}
	return redacted
}

// DemoCatalog is the fixed init fallback served when no store capability is
// bound, so the caller always receives a renderable result.
func DemoCatalog() domain.Catalog {
	return domain.Catalog{
		Registered: false,
		IsAdmin:    true,
		UserData: domain.User{
			FirstName: "System",
			LastName:  "Admin",
			Phone:     "09120000000",
		},
		Quizzes: []domain.CatalogQuiz{},
		History: []domain.HistoryEntry{},
		Config:  domain.SystemConfig{},
		IsDemo:  true,
	}
}
