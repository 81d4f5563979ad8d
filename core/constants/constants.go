package constants

import "time"

const (
	DefaultRequestTimeout = 5 * time.Second

	ContextTokenData = "token_data"

	ScopeTokenGroup = "group"

	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Redis keys
const (
	RedisKeyOverlap           = "planwise:overlap:"
	RedisKeyOverlapGeneration = "planwise:overlap:gen:"
)

// Background task types
const (
	TaskOverlapRefresh = "overlap:refresh"
)

// Postgres SQLSTATE codes
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
