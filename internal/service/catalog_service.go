package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/maizeyield/backend/internal/domain"
)

// CatalogService owns the current state/grade catalog snapshot.
// Snapshots are immutable; Refresh publishes a new one, readers keep
// whatever snapshot they already hold.
type CatalogService struct {
	api PredictionAPI

	mu      sync.RWMutex
	current domain.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(api PredictionAPI) *CatalogService {
	return &CatalogService{api: api}
}

// Current returns the most recently published snapshot.
// The zero snapshot is returned before the first successful Refresh.
func (s *CatalogService) Current() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refresh fetches both lists concurrently and publishes a new snapshot.
// On any fetch error the previous snapshot is kept.
func (s *CatalogService) Refresh(ctx context.Context) (domain.Catalog, error) {
	var (
		states []string
		grades []string
		wg     sync.WaitGroup
		mu     sync.Mutex
		errs   []error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		list, err := s.api.FetchStates(ctx)
		mu.Lock()
		if err != nil {
			errs = append(errs, err)
		} else {
			states = list
		}
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		list, err := s.api.FetchGrades(ctx)
		mu.Lock()
		if err != nil {
			errs = append(errs, err)
		} else {
			grades = list
		}
		mu.Unlock()
	}()

	wg.Wait()

	if len(errs) > 0 {
		return domain.Catalog{}, fmt.Errorf("catalog: refresh failed: %w", errs[0])
	}

	snapshot := domain.NewCatalog(states, grades)

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	return snapshot, nil
}

// Ensure returns the current snapshot, refreshing first if none has been
// published yet.
func (s *CatalogService) Ensure(ctx context.Context) (domain.Catalog, error) {
	if snapshot := s.Current(); snapshot.Ready() {
		return snapshot, nil
	}
	return s.Refresh(ctx)
}
