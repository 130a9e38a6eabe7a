package routes

import "github.com/labstack/echo/v4"

func RegisterHealthRoutes(e *echo.Echo) {
	ok := func(c echo.Context) error {
		return c.NoContent(200)
	}

	e.GET("/healthz", ok)
	e.GET("/readyz", ok)
}
