package contextkeys

type contextKey string

const (
	UserIDKey     contextKey = "UserID"
	ClaimsKey     contextKey = "AccessClaims"
	DeviceHashKey contextKey = "DeviceHash"
)
