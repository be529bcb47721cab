package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/nyaruka/phonenumbers"

	"shopadmin/internal/auth"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/logging"
	"shopadmin/internal/model"
	"shopadmin/internal/mq"
	"shopadmin/internal/repository"
)

// UserProfile is the public view of an authenticated or newly registered user.
type UserProfile struct {
	ID        uint     `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

// LoginResult carries the issued token and the user's profile.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Telephone string
	IsAdmin   bool
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*UserProfile, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	users       repository.UserRepository
	tx          repository.Transactor
	hasher      auth.PasswordHasher
	tokens      *auth.JWTService
	revoked     auth.RevocationStore
	events      mq.EventPublisher
	phoneRegion string
	logger      *log.Logger
}

// AuthDeps groups the collaborators of the authentication service.
type AuthDeps struct {
	Users       repository.UserRepository
	Tx          repository.Transactor
	Hasher      auth.PasswordHasher
	Tokens      *auth.JWTService
	Revoked     auth.RevocationStore
	Events      mq.EventPublisher
	PhoneRegion string
}

// NewAuthService creates a new authentication service.
func NewAuthService(d AuthDeps) AuthService {
	return &authService{
		users:       d.Users,
		tx:          d.Tx,
		hasher:      d.Hasher,
		tokens:      d.Tokens,
		revoked:     d.Revoked,
		events:      d.Events,
		phoneRegion: d.PhoneRegion,
		logger:      logging.New("auth"),
	}
}

// Login verifies the credentials and issues a token carrying the user's roles.
// Unknown users and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	roles := user.RoleNames()
	token, _, err := s.tokens.Issue(user.ID, user.Username, roles)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Infoj(log.JSON{"msg": "login", "user_id": user.ID})
	return &LoginResult{Token: token, User: profileOf(user, roles)}, nil
}

// Register creates the user and its single role link in one transaction.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*UserProfile, error) {
	phone, err := normalizePhone(in.Telephone, s.phoneRegion)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleName := model.RoleVisitor
	if in.IsAdmin {
		roleName = model.RoleAdministrator
	}

	var created *model.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		taken, err := repos.Users.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return apperrors.ErrUsernameTaken
		}

		user := &model.User{
			Username:  in.Username,
			Password:  hash,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Telephone: phone,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}

		role, err := repos.Roles.FindByName(ctx, roleName)
		if err != nil {
			return fmt.Errorf("resolve role: %w", err)
		}
		if err := repos.Users.AssignRole(ctx, user.ID, role.ID); err != nil {
			return err
		}

		user.UserRoles = []model.UserRole{{UserID: user.ID, RoleID: role.ID, Role: *role}}
		created = user
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register %q: %w", in.Username, err)
	}

	roles := created.RoleNames()
	s.logger.Infoj(log.JSON{"msg": "user registered", "user_id": created.ID, "role": roleName})
	s.events.UserRegistered(ctx, mq.UserEvent{UserID: created.ID, Username: created.Username, Roles: roles})

	profile := profileOf(created, roles)
	return &profile, nil
}

// Logout revokes the presented token until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return auth.ErrInvalidToken
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func profileOf(user *model.User, roles []string) UserProfile {
	return UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
	}
}

// normalizePhone returns the E.164 form of raw, or nil when raw is blank.
func normalizePhone(raw, region string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, apperrors.ErrInvalidPhone
	}
	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted, nil
}
