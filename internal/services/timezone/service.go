package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

type finder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Service resolves the IANA zone of a coordinate.
type Service struct {
	finder finder

	mu    sync.Mutex
	cache map[string]*time.Location
}

var (
	instance *Service
	initErr  error
	once     sync.Once
)

// NewService returns the process-wide service. The tzf finder keeps the
// boundary data in memory, so it is built only once.
func NewService() (*Service, error) {
	once.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = NewServiceWithFinder(f)
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func NewServiceWithFinder(f finder) *Service {
	return &Service{finder: f, cache: make(map[string]*time.Location)}
}

// GetTimezone returns names like "Europe/London" for the coordinate.
func (s *Service) GetTimezone(latitude, longitude float64) (string, error) {
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

// Location is GetTimezone followed by time.LoadLocation, memoized per zone name.
func (s *Service) Location(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if loc, ok := s.cache[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone location %s: %w", name, err)
	}
	s.cache[name] = loc
	return loc, nil
}
