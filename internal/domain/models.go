package domain

// Message is a notification delivered to a single user by an administrator.
// Messages live inside the user record, newest first.
type Message struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date int64  `json:"date"` // unix milliseconds
	Read bool   `json:"read"`
}

// User is the registered identity of a participant.
type User struct {
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
}

// Registration carries the profile fields a user supplies when registering.
type Registration struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// QuestionTypeText marks a free-text question that is never auto-scored.
const QuestionTypeText = "text"

// Question is a single quiz question. CorrectAnswer must never reach a
// non-admin caller; the catalog strips it before responding.
type Question struct {
	Type          string   `json:"type"`
	Text          string   `json:"text,omitempty"`
	Options       []string `json:"options,omitempty"`
	Points        *int     `json:"points,omitempty"` // nil means 1
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// PointsOrDefault resolves the question's point value, defaulting to 1.
func (q Question) PointsOrDefault() int {
	if q.Points == nil {
		return 1
	}
	return *q.Points
}

// Quiz is a scheduled competition. A non-nil Winners slice means the lottery
// has been run for this quiz; nil means it has not.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   int64      `json:"startTime"` // unix milliseconds
	EndTime     int64      `json:"endTime"`   // unix milliseconds
	Questions   []Question `json:"questions"`
	Promoted    bool       `json:"promoted"`
	Winners     []string   `json:"winners,omitempty"`
}

// Submission is a scored quiz attempt, at most one per (quiz, user). Score and
// Total are frozen at submission time; later quiz edits do not change them.
// Answers are stored verbatim, unvalidated.
type Submission struct {
	UserID      string `json:"userId"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	SubmittedAt int64  `json:"submittedAt"` // unix milliseconds
	Answers     []any  `json:"answers"`
}

// SystemConfig holds display and branding settings, stored as a singleton.
type SystemConfig struct {
	SystemTitle  string `json:"systemTitle"`
	Announcement string `json:"announcement"`
	HeaderImage  string `json:"headerImage"`
	BgImage      string `json:"bgImage"`
}

// DefaultSystemConfig is the read-only fallback when no config has been saved.
// It is never persisted.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{SystemTitle: "Quiz Competition Hub"}
}

// Per-user quiz statuses derived at catalog time.
const (
	StatusSubmitted = "submitted"
	StatusExpired   = "expired"
	StatusActive    = "active"
)

// CatalogQuiz is a quiz decorated with caller-specific state for the catalog.
type CatalogQuiz struct {
	Quiz
	UserStatus  string `json:"userStatus"`
	LotteryDone bool   `json:"lotteryDone"`
	IsWinner    bool   `json:"isWinner"`
}

// HistoryEntry summarizes one past attempt for the catalog history list.
type HistoryEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
	Total int    `json:"total"`
	Date  int64  `json:"date"`
}

// CatalogMeta carries admin-only aggregate counts.
type CatalogMeta struct {
	TotalUsers   int `json:"totalUsers"`
	TotalQuizzes int `json:"totalQuizzes"`
}

// Catalog is the personalized init response for one caller.
type Catalog struct {
	Registered bool           `json:"registered"`
	UserData   User           `json:"userData"`
	IsAdmin    bool           `json:"isAdmin"`
	Quizzes    []CatalogQuiz  `json:"quizzes"`
	History    []HistoryEntry `json:"history"`
	Config     SystemConfig   `json:"config"`
	Meta       *CatalogMeta   `json:"meta,omitempty"`
	IsDemo     bool           `json:"isDemo,omitempty"`
}

// Participant joins a submission to the identity of the user who made it.
type Participant struct {
	Submission
	QuizID   string `json:"id"`
	UserInfo User   `json:"userInfo"`
}

// QuizStats is the admin view of everyone who attempted a quiz.
type QuizStats struct {
	Participants []Participant `json:"participants"`
	Questions    []Question    `json:"questions"`
	ID           string        `json:"id,omitempty"`
	Winners      []string      `json:"winners"`
}

// UserRecord pairs a user with the id recovered from its store key.
type UserRecord struct {
	ID string `json:"id"`
	User
}

// SubmitResult is what a caller learns about their own attempt.
type SubmitResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
