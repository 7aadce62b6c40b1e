package service

import (
	"context"
	"io"
	"time"

	"profilehub/internal/auth"
	"profilehub/internal/domain"
	"profilehub/internal/repository"
	"profilehub/internal/storage"
)

// AvatarUpload is a replacement avatar attachment.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProfileUpdate lists the fields a caller may overwrite. A nil pointer
// means the field was absent from the request; a present empty string is
// a no-op rather than a clear.
type ProfileUpdate struct {
	Name       *string
	Address    *string
	Phone      *string
	Occupation *string
	Avatar     *AvatarUpload
}

// ProfileService owns the profile mutation workflow plus the read paths.
type ProfileService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Load(ctx context.Context, identity auth.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, identity auth.Identity, update ProfileUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) (string, error)
}

type profileService struct {
	users       repository.UserRepository
	attachments storage.Service
	uploadOpts  storage.UploadOptions
}

func NewProfileService(users repository.UserRepository, attachments storage.Service, uploadOpts storage.UploadOptions) ProfileService {
	return &profileService{
		users:       users,
		attachments: attachments,
		uploadOpts:  uploadOpts,
	}
}

func (s *profileService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError("list users", err)
	}
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = *sanitizeUser(&users[i])
	}
	return out, nil
}

func (s *profileService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundError("data id: " + id + " not found")
		}
		return nil, storeError("get user", err)
	}
	return sanitizeUser(user), nil
}

func (s *profileService) Load(ctx context.Context, identity auth.Identity) (*domain.User, error) {
	return s.GetByID(ctx, identity.UserID)
}

// UpdateProfile merges the supplied fields into the caller's own record.
// The record is persisted, and UpdatedAt rewritten, only when at least
// one field actually changed.
func (s *profileService) UpdateProfile(ctx context.Context, identity auth.Identity, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundError("data id: " + identity.UserID + " not found")
		}
		return nil, storeError("get user", err)
	}

	dirty := false
	apply := func(dst *string, src *string) {
		if src == nil || *src == "" || *src == *dst {
			return
		}
		*dst = *src
		dirty = true
	}
	apply(&user.Name, update.Name)
	apply(&user.Address, update.Address)
	apply(&user.Phone, update.Phone)
	apply(&user.Occupation, update.Occupation)

	if update.Avatar != nil {
		if s.attachments == nil {
			return nil, storeError("upload avatar", errStorageNotConfigured)
		}
		url, err := s.attachments.UploadAvatar(ctx, update.Avatar.Body, update.Avatar.Filename, storage.UploadOptions{
			Bucket:        s.uploadOpts.Bucket,
			KeyPrefix:     s.uploadOpts.KeyPrefix,
			Region:        s.uploadOpts.Region,
			PublicBaseURL: s.uploadOpts.PublicBaseURL,
			ContentType:   update.Avatar.ContentType,
		})
		if err != nil {
			return nil, storeError("upload avatar", err)
		}
		if url != user.Avatar {
			if user.Avatar != "" {
				// best effort: a stale object is not worth failing the update
				_ = s.attachments.DeleteByURL(ctx, user.Avatar, s.uploadOpts)
			}
			user.Avatar = url
			dirty = true
		}
	}

	if dirty {
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			if isNotFound(err) {
				return nil, notFoundError("data id: " + identity.UserID + " not found")
			}
			return nil, storeError("save user", err)
		}
	}

	return sanitizeUser(user), nil
}

func (s *profileService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.users.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return "", notFoundError("data id: " + id + " not found")
		}
		return "", storeError("delete user", err)
	}
	return id, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
