package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"profilehub/internal/domain"
	"profilehub/internal/storage"
)

// fakeUserRepo mirrors the sqlite repository's observable behavior,
// including its error vocabulary.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User

	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return "", r.failWith
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return "", fmt.Errorf("user already exists")
		}
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) countByEmail(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, user := range r.users {
		if user.Email == email {
			n++
		}
	}
	return n
}

// fakeAttachments records uploads and hands back deterministic URLs.
type fakeAttachments struct {
	mu        sync.Mutex
	uploads   int
	deleted   []string
	uploadErr error
}

func (f *fakeAttachments) UploadAvatar(ctx context.Context, body io.Reader, filename string, opts storage.UploadOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.uploads++
	return fmt.Sprintf("https://cdn.test/avatars/%d-%s", f.uploads, filename), nil
}

func (f *fakeAttachments) DeleteByURL(ctx context.Context, rawURL string, opts storage.UploadOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, rawURL)
	return nil
}
