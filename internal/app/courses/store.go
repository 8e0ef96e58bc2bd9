package courses

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/ganeshlonare/lms-client/internal/api"
	"github.com/ganeshlonare/lms-client/internal/app/models"
	"github.com/ganeshlonare/lms-client/internal/app/models/dto"
)

// Store caches the last-fetched course listing. The server owns the
// data; each successful fetch replaces the cached slice wholesale, no
// merging and no client-side mutation.
type Store struct {
	mu      sync.Mutex
	client  *api.Client
	courses []models.CourseSummary
}

// New creates an empty course directory backed by the API client
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// FetchAll refreshes the directory from the course listing endpoint.
// On failure the previous cache is kept.
func (s *Store) FetchAll(ctx context.Context) ([]models.CourseSummary, error) {
	var resp dto.CourseListResponse
	if err := s.client.Send(ctx, http.MethodGet, "/courses", nil, &resp); err != nil {
		return nil, err
	}

	fetched := make([]models.CourseSummary, 0, len(resp.Courses))
	for i := range resp.Courses {
		fetched = append(fetched, resp.Courses[i].ToSummary())
	}

	s.mu.Lock()
	s.courses = fetched
	s.mu.Unlock()

	return s.Courses(), nil
}

// Courses returns a copy of the cached listing
func (s *Store) Courses() []models.CourseSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CourseSummary, len(s.courses))
	copy(out, s.courses)
	return out
}

// Filter is the stateless search transform a listing view applies over
// the full cached sequence. It never touches store state.
func Filter(courses []models.CourseSummary, term string) []models.CourseSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return courses
	}

	var out []models.CourseSummary
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			out = append(out, c)
		}
	}
	return out
}
