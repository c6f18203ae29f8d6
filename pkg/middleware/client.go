package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ClientCookie = "CROP_CLIENT_ID"
	ClientKey    = "uid" // echo.Context key holding the client id
)

// ClientID gives every browser a stable anonymous id, the server-side
// stand-in for its local storage. An explicit ?uid= wins over the cookie.
func ClientID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.QueryParam("uid")
			if uid == "" {
				if ck, err := c.Cookie(ClientCookie); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				uid = uuid.NewString()
			}
			c.SetCookie(&http.Cookie{Name: ClientCookie, Value: uid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
			c.Set(ClientKey, uid)
			return next(c)
		}
	}
}

// Client returns the id ClientID stored on c, or "".
func Client(c echo.Context) string {
	uid, _ := c.Get(ClientKey).(string)
	return uid
}
