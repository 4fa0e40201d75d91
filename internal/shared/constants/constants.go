package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Resource tables show a fixed page of ten rows
	DefaultPage     = 1
	DefaultPageSize = 10

	// Admin reviews are gathered from at most this many clinics
	DefaultReviewClinicCap = 10

	// Member dashboard recent lists
	DefaultRecentLimit = 5

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyViewer    = "viewer"
	ContextKeyToken     = "access_token"
	ContextKeySessionID = "session_id"
	ContextKeyRequestID = "request_id"
)
