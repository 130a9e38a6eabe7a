package http

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/modelscout/modelscout/core/config"
	"github.com/modelscout/modelscout/core/http/routes"
	"github.com/modelscout/modelscout/core/schema"
	"github.com/modelscout/modelscout/core/services"
)

//go:embed static/*
var embedDirStatic embed.FS

// API builds the echo application: JSON API for the browser UI plus the
// embedded static UI itself.
func API(appConfig *config.ApplicationConfig, catalogService *services.CatalogService) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		if c.Response().Committed {
			return
		}
		if jsonErr := c.JSON(code, schema.ErrorResponse{
			Error: &schema.APIError{Message: err.Error(), Code: code},
		}); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("failed to write error response")
		}
	}

	e.Use(middleware.Recover())
	if appConfig.CORS {
		e.Use(middleware.CORS())
	}

	routes.RegisterHealthRoutes(e)
	routes.RegisterAPIRoutes(e, catalogService)

	if !appConfig.DisableWebUI {
		static, err := fs.Sub(embedDirStatic, "static")
		if err != nil {
			return nil, err
		}
		e.StaticFS("/", static)
	}

	return e, nil
}
