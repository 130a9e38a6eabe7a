package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/modelscout/modelscout/core/catalog"
	"github.com/modelscout/modelscout/core/export"
	"github.com/modelscout/modelscout/core/schema"
	"github.com/modelscout/modelscout/core/services"
)

// RegisterAPIRoutes registers the JSON API consumed by the web UI.
func RegisterAPIRoutes(e *echo.Echo, catalogService *services.CatalogService) {

	e.GET("/api/catalogs", func(c echo.Context) error {
		return c.JSON(http.StatusOK, schema.CatalogsResponse{Catalogs: catalogService.Catalogs()})
	})

	e.POST("/api/search", func(c echo.Context) error {
		input := new(schema.SearchRequest)
		if err := c.Bind(input); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if input.Catalog == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "catalog is required")
		}

		params := catalog.SearchParams{
			Query:      input.Query,
			Types:      input.Types,
			BaseModels: input.BaseModels,
			NSFW:       input.NSFW,
			Limit:      input.Limit,
		}
		session, err := catalogService.Search(c.Request().Context(), input.Catalog, input.SessionID, params, input.Max)
		if err != nil {
			log.Error().Err(err).Str("catalog", input.Catalog).Msg("catalog search failed")
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}

		models := session.Models
		if models == nil {
			models = catalog.Models{}
		}
		return c.JSON(http.StatusOK, schema.SearchResponse{
			SessionID: session.ID,
			Catalog:   session.Catalog,
			Models:    models,
		})
	})

	// Server-side filter over a cached session, so the UI can narrow a result
	// set without re-fetching from the upstream.
	e.GET("/api/session/:id/models", func(c echo.Context) error {
		session, err := catalogService.Session(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}

		models := session.Models
		if filter := c.QueryParam("filter"); filter != "" {
			models = models.Search(filter)
		}
		total := len(models)

		page, _ := strconv.Atoi(c.QueryParam("page"))
		pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
		if page > 0 && pageSize > 0 {
			models = models.Paginate(page, pageSize)
		}
		if models == nil {
			models = catalog.Models{}
		}

		return c.JSON(http.StatusOK, schema.SessionModelsResponse{
			SessionID: session.ID,
			Catalog:   session.Catalog,
			Total:     total,
			Models:    models,
		})
	})

	e.POST("/api/export", func(c echo.Context) error {
		input := new(schema.ExportRequest)
		if err := c.Bind(input); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if input.SessionID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
		}
		format := input.Format
		if format == "" {
			format = export.FormatJSON
		}
		if format != export.FormatJSON && format != export.FormatCSV {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		}

		manifest, err := catalogService.Export(input.SessionID, input.ModelIDs)
		if err != nil {
			// A stale selection id is the caller's mistake, a missing session
			// is lost state.
			if errors.Is(err, services.ErrModelNotInSession) {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}

		c.Response().Header().Set(echo.HeaderContentType, export.ContentType(format))
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=manifest.%s", format))
		c.Response().WriteHeader(http.StatusOK)
		return export.Write(c.Response(), manifest, format)
	})

	e.POST("/api/validate", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		report, err := catalog.ValidateManifest(body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, report)
	})
}
