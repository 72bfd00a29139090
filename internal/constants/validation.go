package constants

// MaxSlugAttempts bounds the parameter slug retry loop on duplicate keys
const MaxSlugAttempts = 5
