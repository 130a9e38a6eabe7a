package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/modelscout/modelscout/core/catalog"
	"github.com/modelscout/modelscout/pkg/xsync"
)

// CatalogClient is implemented by each upstream adapter.
type CatalogClient interface {
	Name() string
	SearchPage(ctx context.Context, params catalog.SearchParams) (*catalog.Page, error)
	SearchAll(ctx context.Context, params catalog.SearchParams, maxItems int) (catalog.Models, error)
}

// Session is the request-scoped cache of one fetch. It is replaced wholesale
// by the next Search for the same session and is the only state Export reads,
// so concurrent callers cannot interfere.
type Session struct {
	ID        string         `json:"id"`
	Catalog   string         `json:"catalog"`
	CreatedAt time.Time      `json:"created_at"`
	Models    catalog.Models `json:"models"`
}

const DefaultSessionTTL = 30 * time.Minute

var (
	// ErrSessionNotFound covers both unknown and already-expired session ids.
	ErrSessionNotFound = errors.New("unknown or expired session")
	// ErrModelNotInSession marks a selection id absent from the session,
	// a caller mistake rather than lost state.
	ErrModelNotInSession = errors.New("model is not part of session")
)

// CatalogService owns the catalog adapters and the per-session result
// caches.
type CatalogService struct {
	clients    map[string]CatalogClient
	sessions   *xsync.SyncedMap[string, *Session]
	sessionTTL time.Duration
}

func NewCatalogService(sessionTTL time.Duration, clients ...CatalogClient) *CatalogService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	s := &CatalogService{
		clients:    map[string]CatalogClient{},
		sessions:   xsync.NewSyncedMap[string, *Session](),
		sessionTTL: sessionTTL,
	}
	for _, c := range clients {
		s.clients[c.Name()] = c
	}
	return s
}

// Catalogs returns the registered catalog names, sorted.
func (s *CatalogService) Catalogs() []string {
	names := make([]string, 0, len(s.clients))
	for name := range s.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *CatalogService) Client(name string) (CatalogClient, error) {
	client, ok := s.clients[name]
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q", name)
	}
	return client, nil
}

// Search fetches up to maxItems models from one catalog and stores the
// result set under a fresh session id, or under sessionID when the caller
// wants to reuse its session.
func (s *CatalogService) Search(ctx context.Context, catalogName, sessionID string, params catalog.SearchParams, maxItems int) (*Session, error) {
	client, err := s.Client(catalogName)
	if err != nil {
		return nil, err
	}

	s.pruneSessions()

	models, err := client.SearchAll(ctx, params, maxItems)
	if err != nil {
		return nil, err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session := &Session{
		ID:        sessionID,
		Catalog:   catalogName,
		CreatedAt: time.Now(),
		Models:    models,
	}
	s.sessions.Set(session.ID, session)
	log.Debug().Str("catalog", catalogName).Str("session", session.ID).Int("models", len(models)).Msg("search results cached")
	return session, nil
}

// Session returns a cached session, or an error when it is unknown or
// already expired.
func (s *CatalogService) Session(id string) (*Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok || time.Since(session.CreatedAt) > s.sessionTTL {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return session, nil
}

// Export resolves the selected model ids against the session cache and runs
// the manifest pipeline over them. An empty selection exports the whole
// result set. Models without a downloadable file are silently skipped.
func (s *CatalogService) Export(sessionID string, modelIDs []string) (catalog.Manifest, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return catalog.Manifest{}, err
	}

	selected := session.Models
	if len(modelIDs) > 0 {
		selected = nil
		for _, id := range modelIDs {
			m := session.Models.FindByID(id)
			if m == nil {
				return catalog.Manifest{}, fmt.Errorf("%w: %q (session %q)", ErrModelNotInSession, id, sessionID)
			}
			selected = append(selected, m)
		}
	}

	return catalog.BuildManifest(selected), nil
}

func (s *CatalogService) pruneSessions() {
	ttl := s.sessionTTL
	removed := s.sessions.DeleteIf(func(_ string, session *Session) bool {
		return time.Since(session.CreatedAt) > ttl
	})
	if removed > 0 {
		log.Debug().Int("sessions", removed).Msg("pruned expired sessions")
	}
}
