package user

import (
	"context"
	"errors"

	dom "example.com/exam-crud/internal/domain/user"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, d dom.Draft) (*dom.User, error) {
	u, err := d.Build()
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, u.Email, 0); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*dom.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, filter dom.ListFilter) ([]*dom.User, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, d dom.Draft) (*dom.User, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	u, err := d.Build()
	if err != nil {
		return nil, err
	}
	u.ID = id

	if err := s.ensureEmailFree(ctx, u.Email, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, u)
}

// DeleteUser returns the removed user so the caller can name it.
func (s *Service) DeleteUser(ctx context.Context, id int64) (*dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	other, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, dom.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return dom.ErrEmailTaken
	}
	return nil
}
