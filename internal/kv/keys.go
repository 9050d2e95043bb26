package kv

import "strings"

// Key prefixes for the flat namespace. Entities are associated by naming
// convention only; there is no foreign-key enforcement in the store.
const (
	UserPrefix       = "user:"
	QuizPrefix       = "quiz:"
	submissionPrefix = "sub:"
	ConfigKey        = "system:config"
)

// UserKey returns the key holding a user record.
func UserKey(userID string) string {
	return UserPrefix + userID
}

// QuizKey returns the key holding a quiz record.
func QuizKey(quizID string) string {
	return QuizPrefix + quizID
}

// SubmissionKey returns the key holding one user's submission for a quiz.
func SubmissionKey(quizID, userID string) string {
	return submissionPrefix + quizID + ":" + userID
}

// SubmissionPrefix returns the prefix under which all submissions for a quiz live.
func SubmissionPrefix(quizID string) string {
	return submissionPrefix + quizID + ":"
}

// UserIDFromKey recovers the user id from a user key.
func UserIDFromKey(key string) string {
	return strings.TrimPrefix(key, UserPrefix)
}
