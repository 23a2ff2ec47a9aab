package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// sessionCookieName is the cookie the browser client sends back with every
// request. SameSite=None because the frontend is served from a different
// origin than the API.
const sessionCookieName = "token"

func setSessionCookie(c *gin.Context, token string, validity time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
