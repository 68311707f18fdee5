package memory

import (
	"context"
	"sync"

	domuser "example.com/exam-crud/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]domuser.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int64]domuser.User),
		nextID: 1,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailOwner(u.Email) != 0 {
		return nil, domuser.ErrEmailTaken
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domuser.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := r.emailOwner(email)
	if id == 0 {
		return nil, domuser.ErrUserNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, filter domuser.ListFilter) ([]*domuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domuser.User, 0, len(r.users))
	for _, u := range r.users {
		if !filter.Match(&u) {
			continue
		}
		cloned := u
		users = append(users, &cloned)
	}
	domuser.Sort(users, filter.Order)
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return nil, domuser.ErrUserNotFound
	}
	if owner := r.emailOwner(u.Email); owner != 0 && owner != u.ID {
		return nil, domuser.ErrEmailTaken
	}
	r.users[u.ID] = *u
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domuser.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) emailOwner(email string) int64 {
	for id, u := range r.users {
		if u.Email == email {
			return id
		}
	}
	return 0
}
