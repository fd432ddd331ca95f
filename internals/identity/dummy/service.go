// Package dummy is an in-process identity provider used for local
// development and tests. Passwords are bcrypt-hashed like the real
// provider would, and creation can be forced to fail to exercise the
// two-phase compensation path.
package dummy

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"schoolhub_backend/internals/identity"
)

type Service struct {
	mu    sync.Mutex
	users map[uuid.UUID]*record

	// FailCreate/FailDelete force the next matching call to return this
	// error (then reset). Test hooks.
	FailCreate error
	FailDelete error
}

type record struct {
	user         identity.User
	passwordHash []byte
	emails       map[string]struct{}
}

var _ identity.Service = (*Service)(nil)

func NewService() *Service {
	return &Service{users: map[uuid.UUID]*record{}}
}

func (s *Service) CreateUser(ctx context.Context, in identity.CreateUserInput) (identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FailCreate; err != nil {
		s.FailCreate = nil
		return identity.User{}, err
	}
	for _, r := range s.users {
		if r.user.Username == in.Username {
			return identity.User{}, identity.ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return identity.User{}, err
	}

	u := identity.User{
		ID:       uuid.New(),
		Username: in.Username,
		Name:     in.Name,
		Role:     in.Role,
		Email:    in.Email,
	}
	r := &record{user: u, passwordHash: hash, emails: map[string]struct{}{}}
	if in.Email != "" {
		r.emails[in.Email] = struct{}{}
	}
	s.users[u.ID] = r
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in identity.UpdateUserInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return identity.ErrNotFound
	}
	if in.Username != nil {
		for other, rec := range s.users {
			if other != id && rec.user.Username == *in.Username {
				return identity.ErrUsernameTaken
			}
		}
		r.user.Username = *in.Username
	}
	if in.Name != nil {
		r.user.Name = *in.Name
	}
	if in.Email != nil {
		r.user.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		r.passwordHash = hash
	}
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FailDelete; err != nil {
		s.FailDelete = nil
		return err
	}
	if _, ok := s.users[id]; !ok {
		return identity.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return identity.User{}, identity.ErrNotFound
	}
	return r.user, nil
}

func (s *Service) UpdateProfileImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return "", identity.ErrNotFound
	}
	r.user.ImageURL = "memory://profile/" + id.String()
	return r.user.ImageURL, nil
}

func (s *Service) CreateEmailAddress(ctx context.Context, id uuid.UUID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return identity.ErrNotFound
	}
	r.emails[email] = struct{}{}
	return nil
}

func (s *Service) DeleteEmailAddress(ctx context.Context, id uuid.UUID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return identity.ErrNotFound
	}
	delete(r.emails, email)
	return nil
}

// Users snapshots every stored user.
func (s *Service) Users() []identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]identity.User, 0, len(s.users))
	for _, r := range s.users {
		out = append(out, r.user)
	}
	return out
}

// CheckPassword verifies a username/password pair (dev login helper).
func (s *Service) CheckPassword(username, password string) (identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.users {
		if r.user.Username == username {
			if bcrypt.CompareHashAndPassword(r.passwordHash, []byte(password)) == nil {
				return r.user, true
			}
			return identity.User{}, false
		}
	}
	return identity.User{}, false
}
