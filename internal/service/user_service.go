package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/scavhunt/internal/auth"
	"github.com/mmynk/scavhunt/internal/facematch"
	"github.com/mmynk/scavhunt/internal/media"
	"github.com/mmynk/scavhunt/internal/metrics"
	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/storage"
)

// UserService handles registration and login.
type UserService struct {
	store    storage.Store
	media    media.Store
	sessions *auth.SessionManager
}

// NewUserService creates a UserService with the given backends.
func NewUserService(store storage.Store, mediaStore media.Store, sessions *auth.SessionManager) *UserService {
	return &UserService{store: store, media: mediaStore, sessions: sessions}
}

// selfieObject is the media store name for a user's selfie.
func selfieObject(userID string) string {
	return media.SelfiePrefix + userID + ".jpg"
}

// Register creates a new user from the registration form. The selfie arrives
// base64-encoded, is stored in the media store, and becomes the reference
// image for the face-match checkpoint. Returns the user and a session token.
func (s *UserService) Register(ctx context.Context, email, name, major, selfie string) (*models.User, string, error) {
	slog.Info("Register request received", "email", email)

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", validationf("please enter a valid email address")
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", validationf("name is required")
	}
	if strings.TrimSpace(major) == "" {
		return nil, "", validationf("major is required")
	}
	if selfie == "" {
		return nil, "", validationf("a selfie is required")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, "", validationf("email already registered")
	} else if !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Register failed looking up email", "email", email, "error", err)
		return nil, "", err
	}

	photo, err := facematch.DecodeImage(selfie)
	if err != nil {
		return nil, "", validationf("selfie is not a valid image: %v", err)
	}

	user := &models.User{
		ID:    uuid.New().String(),
		Email: email,
		Name:  strings.TrimSpace(name),
		Major: strings.TrimSpace(major),
	}

	url, err := s.media.Put(ctx, selfieObject(user.ID), photo, "image/jpeg")
	if err != nil {
		slog.Error("Register failed storing selfie", "user_id", user.ID, "error", err)
		return nil, "", externalErr(err)
	}
	user.SelfieURL = url

	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("Register failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return nil, "", err
	}

	metrics.Registrations.Inc()
	slog.Info("User registered", "user_id", user.ID, "email", user.Email)

	return user, token, nil
}

// Login looks up an existing user by email and reissues a session token.
// There is no credential check; the email is the whole identity.
func (s *UserService) Login(ctx context.Context, email string) (*models.User, string, error) {
	slog.Info("Login request received", "email", email)

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", validationf("please enter a valid email address")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		slog.Info("Login for unknown email", "email", email)
		return nil, "", err
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)

	return user, token, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}
