package constants

const (
	// ContextKeyUserID is the key used for the user id in both the session and the gin context.
	ContextKeyUserID = "user_id"
	// ContextKeyActor holds the loaded *models.User for the current request.
	ContextKeyActor = "actor"
	// ContextKeyQuestion and ContextKeyAnswer hold resources loaded by the access gates.
	ContextKeyQuestion = "question"
	ContextKeyAnswer   = "answer"

	SessionCookieName = "forum_session"

	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Field limits, mirrored by the column sizes in models.
const (
	MaxCategoryTitleLength = 255
	MaxCategorySlugLength  = 64
	MaxTagTitleLength      = 32
	MaxTagSlugLength       = 32
	MaxQuestionTitleLength = 255
	MaxCommentLength       = 5000
	MaxImageLength         = 100
	MaxEmailLength         = 180
	MaxNicknameLength      = 64
)

// MaxSuggestedTags caps how many tags the suggester may return for one question.
const MaxSuggestedTags = 5
