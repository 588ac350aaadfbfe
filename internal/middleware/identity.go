package middleware

import "github.com/labstack/echo/v4"

// Keys under which JWTAuth stores the authenticated identity in the Echo
// context.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// UserID returns the authenticated user's id. ok is false when the request
// did not pass through JWTAuth.
func UserID(c echo.Context) (id int64, ok bool) {
	id, ok = c.Get(ContextUserID).(int64)
	return id, ok && id > 0
}

// Email returns the authenticated user's email, or "" for anonymous
// requests.
func Email(c echo.Context) string {
	v, _ := c.Get(ContextEmail).(string)
	return v
}
