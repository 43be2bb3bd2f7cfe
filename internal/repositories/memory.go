package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vaaler2/hirewise-backend/internal/models"
)

// MemoryStore is an in-process implementation of LinkRepository and
// ApplicationRepository. One instance serves both roles; all access goes
// through a single mutex, so it is safe for concurrent handlers.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[uuid.UUID]models.InvitationLink
	apps  map[uuid.UUID][]models.Application
	order []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[uuid.UUID]models.InvitationLink),
		apps:  make(map[uuid.UUID][]models.Application),
	}
}

// Create implements LinkRepository.
func (s *MemoryStore) Create(link *models.InvitationLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link.ID]; exists {
		return fmt.Errorf("invitation link %s already exists", link.ID)
	}

	s.links[link.ID] = *link
	s.apps[link.ID] = nil
	s.order = append(s.order, link.ID)
	return nil
}

// FindByID implements LinkRepository.
func (s *MemoryStore) FindByID(id uuid.UUID) (*models.InvitationLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[id]
	if !ok {
		return nil, models.ErrLinkNotFound
	}

	return &link, nil
}

// FindAll implements LinkRepository.
func (s *MemoryStore) FindAll() ([]models.InvitationLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]models.InvitationLink, 0, len(s.order))
	for _, id := range s.order {
		links = append(links, s.links[id])
	}

	return links, nil
}

// Append implements ApplicationRepository.
func (s *MemoryStore) Append(app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[app.LinkID]; !ok {
		return models.ErrLinkNotFound
	}

	app.Position = len(s.apps[app.LinkID]) + 1
	s.apps[app.LinkID] = append(s.apps[app.LinkID], *app)
	return nil
}

// ListByLink implements ApplicationRepository.
func (s *MemoryStore) ListByLink(linkID uuid.UUID) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.links[linkID]; !ok {
		return nil, models.ErrLinkNotFound
	}

	apps := make([]models.Application, len(s.apps[linkID]))
	copy(apps, s.apps[linkID])
	return apps, nil
}

// SaveEvaluated implements ApplicationRepository.
func (s *MemoryStore) SaveEvaluated(linkID uuid.UUID, apps []models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.apps[linkID]
	if !ok {
		return models.ErrLinkNotFound
	}
	if len(apps) != len(stored) {
		return fmt.Errorf("evaluated set has %d applications, store has %d", len(apps), len(stored))
	}

	known := make(map[uuid.UUID]bool, len(stored))
	for _, app := range stored {
		known[app.ID] = true
	}

	replacement := make([]models.Application, len(apps))
	for i, app := range apps {
		if !known[app.ID] {
			return fmt.Errorf("application %s not found under link %s", app.ID, linkID)
		}
		app.Position = i + 1
		replacement[i] = app
	}

	s.apps[linkID] = replacement
	return nil
}
