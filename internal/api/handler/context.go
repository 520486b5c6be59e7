package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the authenticated username injected by the Auth
// middleware. An empty value means the middleware did not run for this
// route; fail closed with 401 rather than proceeding ownerless.
func ctxSubject(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
