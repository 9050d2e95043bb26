package app

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"quizhub-service/internal/domain"
	"quizhub-service/internal/kv"
)

// statsFetchLimit bounds the fan-out when joining submissions to users.
const statsFetchLimit = 8

func newMessageID() string {
	return uuid.NewString()
}

// SaveConfig overwrites the system config wholesale.
func (s *QuizService) SaveConfig(ctx context.Context, adminID string, cfg domain.SystemConfig) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}
	return s.putJSON(ctx, kv.ConfigKey, cfg)
}

// CreateQuiz stores a quiz under its id, assigning a timestamp-derived id when
// the caller supplies none. Existing quizzes with the same id are overwritten;
// records are un-versioned and last write wins.
func (s *QuizService) CreateQuiz(ctx context.Context, adminID string, quiz domain.Quiz) (domain.Quiz, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return domain.Quiz{}, err
	}
	if quiz.ID == "" {
		quiz.ID = strconv.FormatInt(s.nowMillis(), 10)
	}
	if err := s.putJSON(ctx, kv.QuizKey(quiz.ID), quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// TogglePromote sets the promoted flag on an existing quiz.
func (s *QuizService) TogglePromote(ctx context.Context, adminID, quizID string, promoted bool) error {
	return s.updateQuiz(ctx, adminID, quizID, func(quiz *domain.Quiz) {
		quiz.Promoted = promoted
	})
}

// DeleteQuiz removes the quiz key. Submissions for the quiz are intentionally
// left orphaned; there is no cascade.
func (s *QuizService) DeleteQuiz(ctx context.Context, adminID, quizID string) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}
	return s.store.Delete(ctx, kv.QuizKey(quizID))
}

// SaveLottery replaces the quiz's winner set wholesale, finalizing the lottery.
func (s *QuizService) SaveLottery(ctx context.Context, adminID, quizID string, winnerIDs []string) error {
	if winnerIDs == nil {
		winnerIDs = []string{}
	}
	return s.updateQuiz(ctx, adminID, quizID, func(quiz *domain.Quiz) {
		quiz.Winners = winnerIDs
	})
}

// ResetLottery removes the winner set entirely, reverting lotteryDone for all
// future reads.
func (s *QuizService) ResetLottery(ctx context.Context, adminID, quizID string) error {
	return s.updateQuiz(ctx, adminID, quizID, func(quiz *domain.Quiz) {
		quiz.Winners = nil
	})
}

// updateQuiz is the shared read-modify-write for single-quiz mutations. Under
// concurrent admin calls the last write wins; admin concurrency is assumed low.
func (s *QuizService) updateQuiz(ctx context.Context, adminID, quizID string, mutate func(*domain.Quiz)) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}
	var quiz domain.Quiz
	ok, err := s.getJSON(ctx, kv.QuizKey(quizID), &quiz)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrQuizNotFound
	}
	mutate(&quiz)
	return s.putJSON(ctx, kv.QuizKey(quizID), quiz)
}

// UpdateScore overrides the score on an existing submission in place. Total is
// deliberately not recomputed; it stays frozen at submission time.
func (s *QuizService) UpdateScore(ctx context.Context, adminID, quizID, userID string, newScore int) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}
	key := kv.SubmissionKey(quizID, userID)
	var submission domain.Submission
	ok, err := s.getJSON(ctx, key, &submission)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	submission.Score = newScore
	return s.putJSON(ctx, key, submission)
}

// DeleteSubmission removes a submission unconditionally, which re-enables the
// duplicate check and lets the user submit again.
func (s *QuizService) DeleteSubmission(ctx context.Context, adminID, quizID, userID string) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}
	return s.store.Delete(ctx, kv.SubmissionKey(quizID, userID))
}

// Stats enumerates every submission for a quiz and joins each to its user
// record, substituting a placeholder identity when the user is gone (deleted
// quizzes orphan submissions by design, so dangling references are expected).
func (s *QuizService) Stats(ctx context.Context, adminID, quizID string) (domain.QuizStats, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return domain.QuizStats{}, err
	}

	stats := domain.QuizStats{
		Participants: []domain.Participant{},
		Questions:    []domain.Question{},
		Winners:      []string{},
	}

	var quiz domain.Quiz
	if ok, err := s.getJSON(ctx, kv.QuizKey(quizID), &quiz); err != nil {
		return domain.QuizStats{}, err
	} else if ok {
		stats.ID = quiz.ID
		if quiz.Questions != nil {
			stats.Questions = quiz.Questions
		}
		if quiz.Winners != nil {
			stats.Winners = quiz.Winners
		}
	}

	subKeys, err := s.store.List(ctx, kv.SubmissionPrefix(quizID))
	if err != nil {
		return domain.QuizStats{}, err
	}

	participants := make([]*domain.Participant, len(subKeys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsFetchLimit)
	for i, key := range subKeys {
		i, key := i, key
		g.Go(func() error {
			var submission domain.Submission
			ok, err := s.getJSON(gctx, key, &submission)
			if err != nil || !ok {
				return err
			}
			participant := &domain.Participant{Submission: submission, QuizID: quizID}
			found, err := s.getJSON(gctx, kv.UserKey(submission.UserID), &participant.UserInfo)
			if err != nil {
				return err
			}
			if !found {
				participant.UserInfo = domain.User{FirstName: "unknown", LastName: "", Phone: "---"}
			}
			participants[i] = participant
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.QuizStats{}, err
	}
	for _, p := range participants {
		if p != nil {
			stats.Participants = append(stats.Participants, *p)
		}
	}
	return stats, nil
}

// GetUsers returns every registered user, deriving ids from the key suffix.
func (s *QuizService) GetUsers(ctx context.Context, adminID string) ([]domain.UserRecord, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return nil, err
	}

	keys, err := s.store.List(ctx, kv.UserPrefix)
	if err != nil {
		return nil, err
	}
	users := make([]domain.UserRecord, 0, len(keys))
	for _, key := range keys {
		var user domain.User
		ok, err := s.getJSON(ctx, key, &user)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		users = append(users, domain.UserRecord{ID: kv.UserIDFromKey(key), User: user})
	}
	return users, nil
}

// SendMessage delivers a message to one or more users, prepending it unread to
// each recipient's list. Ids without a user record are silently skipped.
func (s *QuizService) SendMessage(ctx context.Context, adminID string, targetIDs []string, text string) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}

	for _, userID := range targetIDs {
		var user domain.User
		ok, err := s.getJSON(ctx, kv.UserKey(userID), &user)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		message := domain.Message{
			ID:   s.newID(),
			Text: text,
			Date: s.nowMillis(),
			Read: false,
		}
		user.Messages = append([]domain.Message{message}, user.Messages...)
		if err := s.putJSON(ctx, kv.UserKey(userID), user); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMessage removes one message by id from a user's list and returns the
// remaining messages in order. Deleting an id that is already gone is a no-op,
// so repeating a delete returns the same (shorter) list. An absent user record
// is an error; an absent or empty list on an existing user is just empty.
func (s *QuizService) DeleteMessage(ctx context.Context, adminID, userID, messageID string) ([]domain.Message, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return nil, err
	}

	var user domain.User
	ok, err := s.getJSON(ctx, kv.UserKey(userID), &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoMessages
	}

	kept := make([]domain.Message, 0, len(user.Messages))
	for _, m := range user.Messages {
		if m.ID != messageID {
			kept = append(kept, m)
		}
	}
	user.Messages = kept
	if err := s.putJSON(ctx, kv.UserKey(userID), user); err != nil {
		return nil, err
	}
	return kept, nil
}
