package constants

// HTTP Header Names
const (
	HeaderContentType    = "Content-Type"
	HeaderUserAgent      = "User-Agent"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
	HeaderRetryAfter     = "Retry-After"
	HeaderRateLimit      = "X-RateLimit-Limit"
	HeaderRateLimitLeft  = "X-RateLimit-Remaining"
	HeaderExposeHeaders  = "Access-Control-Expose-Headers"
	HeaderAllowedHeaders = "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, Accept, Origin, Cache-Control"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
)

// Common HTTP Error Messages
const (
	MsgNotFound           = "Resource not found"
	MsgBadRequest         = "Invalid request"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
	MsgTooManyRequests    = "Too many requests"
	MsgInvalidID          = "The id must be a valid UUID"
	MsgInvalidSlug        = "The slug must be between 5 and 50 characters"
	MsgEmptyUpdate        = "At least one field must be provided"
)

// MsgSuccessSuffix follows the request method in every success body
const MsgSuccessSuffix = " success"
