package contextkeys

type contextKey string

// DBContextKey stores the *gorm.DB (pool or an outer transaction) for a request.
const DBContextKey = contextKey("db")

// UserIDKey is the gin context key the auth middleware sets to the caller's id.
const UserIDKey = "userID"
