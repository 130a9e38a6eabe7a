package schema

import (
	"github.com/modelscout/modelscout/core/catalog"
)

type APIError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type CatalogsResponse struct {
	Catalogs []string `json:"catalogs"`
}

type SearchRequest struct {
	Catalog    string   `json:"catalog"`
	Query      string   `json:"query,omitempty"`
	Types      []string `json:"types,omitempty"`
	BaseModels []string `json:"base_models,omitempty"`
	NSFW       bool     `json:"nsfw,omitempty"`
	// Limit is the upstream page size, Max caps the total fetched.
	Limit int `json:"limit,omitempty"`
	Max   int `json:"max,omitempty"`
	// SessionID reuses an existing session; empty starts a new one.
	SessionID string `json:"session_id,omitempty"`
}

type SearchResponse struct {
	SessionID string         `json:"session_id"`
	Catalog   string         `json:"catalog"`
	Models    catalog.Models `json:"models"`
}

// SessionModelsResponse is one filtered page of a cached session. Total is
// the match count before pagination.
type SessionModelsResponse struct {
	SessionID string         `json:"session_id"`
	Catalog   string         `json:"catalog"`
	Total     int            `json:"total"`
	Models    catalog.Models `json:"models"`
}

type ExportRequest struct {
	SessionID string   `json:"session_id"`
	ModelIDs  []string `json:"model_ids,omitempty"`
	// Format is "json" or "csv"; json when empty.
	Format string `json:"format,omitempty"`
}
