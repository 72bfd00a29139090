package constants

// Application Information
const (
	AppName    = "Parameter Registry"
	AppVersion = "1.0.0"
	APIPrefix  = "/api/v1"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "3000"
	DefaultEnvironment = EnvDevelopment
)

// Redis Key Prefixes
const (
	RedisKeyPrefix    = "registry:"
	RedisKeyRateLimit = RedisKeyPrefix + "ratelimit:"
)
