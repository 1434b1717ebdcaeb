package schools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/FardadA/samp-crush/internal/catalog"
)

var (
	ErrNameLength   = errors.New("school name must be 3 to 100 characters")
	ErrUnknownPlace = errors.New("province or city not in the catalog")
)

// SchoolStore persists the per-city school catalog.
type SchoolStore interface {
	Add(ctx context.Context, province, city string, names []string) (int64, error)
	List(ctx context.Context, province, city string) ([]string, error)
}

// Service is the admin side of school management: validating and saving
// the names users later pick from.
type Service struct {
	store SchoolStore
}

func NewService(store SchoolStore) *Service {
	return &Service{store: store}
}

// ValidateName normalizes a school name typed by the admin. Length bounds
// are in characters, not bytes, so Persian names count correctly.
func (s *Service) ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		return "", ErrNameLength
	}
	return name, nil
}

// Save stores the collected batch and returns how many names were new.
func (s *Service) Save(ctx context.Context, province, city string, names []string) (int64, error) {
	if !catalog.HasCity(province, city) {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnknownPlace, province, city)
	}
	if len(names) == 0 {
		return 0, nil
	}

	added, err := s.store.Add(ctx, province, city, names)
	if err != nil {
		return 0, fmt.Errorf("save schools for %s/%s: %w", province, city, err)
	}
	return added, nil
}

func (s *Service) List(ctx context.Context, province, city string) ([]string, error) {
	return s.store.List(ctx, province, city)
}
