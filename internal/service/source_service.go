package service

import (
	"context"
	"errors"
	"strings"

	"sourceboard/internal/domain"
	"sourceboard/internal/repository"
)

// SourceService coordinates source level operations backed by the repository.
type SourceService interface {
	// Create persists a new source owned by the given identity.
	Create(ctx context.Context, identity domain.Identity, title, url string) (*domain.Source, error)
	Get(ctx context.Context, id int64) (*domain.Source, error)
	List(ctx context.Context) ([]domain.Source, error)
	// Update rewrites title and url together; only the source's author may call it.
	Update(ctx context.Context, identity domain.Identity, id int64, title, url string) (*domain.Source, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}

type sourceService struct {
	sources repository.SourceRepository
}

func NewSourceService(sources repository.SourceRepository) SourceService {
	return &sourceService{sources: sources}
}

func validateSourceFields(title, url string) *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(url) == "" {
		fields["url"] = "url is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (s *sourceService) Create(ctx context.Context, identity domain.Identity, title, url string) (*domain.Source, error) {
	userID, ok := identity.UserID()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if verr := validateSourceFields(title, url); verr != nil {
		return nil, verr
	}

	source := &domain.Source{
		Title:    strings.TrimSpace(title),
		URL:      strings.TrimSpace(url),
		AuthorID: &userID,
	}
	if _, err := s.sources.Create(ctx, source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *sourceService) Get(ctx context.Context, id int64) (*domain.Source, error) {
	source, err := s.sources.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return source, nil
}

func (s *sourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sources.List(ctx)
}

func (s *sourceService) Update(ctx context.Context, identity domain.Identity, id int64, title, url string) (*domain.Source, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(identity, source); err != nil {
		return nil, err
	}
	if verr := validateSourceFields(title, url); verr != nil {
		return nil, verr
	}

	if err := s.sources.Update(ctx, id, strings.TrimSpace(title), strings.TrimSpace(url)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *sourceService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	source, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(identity, source); err != nil {
		return err
	}

	if err := s.sources.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// authorize enforces the mutation rule: only the authenticated author may
// touch a source, and an ownerless source is untouchable.
func (s *sourceService) authorize(identity domain.Identity, source *domain.Source) error {
	if !identity.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if !source.CanBeMutatedBy(identity) {
		return ErrNotAuthorized
	}
	return nil
}
