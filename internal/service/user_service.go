package service

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"shopadmin/internal/db"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/logging"
	"shopadmin/internal/model"
	"shopadmin/internal/mq"
	"shopadmin/internal/repository"
)

// UserSummary is the listing projection of a user.
type UserSummary struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Telephone  *string    `json:"telephone"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at"`
}

// UserService exposes user administration.
type UserService interface {
	ListVisitors(ctx context.Context) ([]UserSummary, error)
	ListAdmins(ctx context.Context) ([]UserSummary, error)
	DeleteVisitor(ctx context.Context, id uint) error
}

type userService struct {
	users    repository.UserRepository
	tx       repository.Transactor
	strategy *db.ExecutionStrategy
	events   mq.EventPublisher
	logger   *log.Logger
}

// NewUserService builds a UserService. strategy decides how often a failed
// deletion transaction is replayed.
func NewUserService(users repository.UserRepository, tx repository.Transactor, strategy *db.ExecutionStrategy, events mq.EventPublisher) UserService {
	return &userService{
		users:    users,
		tx:       tx,
		strategy: strategy,
		events:   events,
		logger:   logging.New("users"),
	}
}

func (s *userService) ListVisitors(ctx context.Context) ([]UserSummary, error) {
	return s.listByRole(ctx, model.RoleVisitor)
}

func (s *userService) ListAdmins(ctx context.Context) ([]UserSummary, error) {
	return s.listByRole(ctx, model.RoleAdministrator)
}

func (s *userService) listByRole(ctx context.Context, role string) ([]UserSummary, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no %s users: %w", role, apperrors.ErrNotFound)
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			ID:         u.ID,
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Telephone:  u.Telephone,
			CreatedAt:  u.CreatedAt,
			ModifiedAt: u.ModifiedAt,
		})
	}
	return out, nil
}

// DeleteVisitor removes a visitor and all of its role links atomically.
// The whole transaction is replayed on transient database faults.
func (s *userService) DeleteVisitor(ctx context.Context, id uint) error {
	var deleted *model.User
	err := s.strategy.Execute(ctx, func(ctx context.Context) error {
		return s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
			user, err := repos.Users.FindByIDWithRoles(ctx, id)
			if err != nil {
				return err
			}
			if !user.HasRole(model.RoleVisitor) {
				return apperrors.ErrNotVisitor
			}

			if _, err := repos.Users.DeleteRoleLinks(ctx, id); err != nil {
				return fmt.Errorf("delete role links: %w", err)
			}
			if err := repos.Users.HardDelete(ctx, id); err != nil {
				return fmt.Errorf("delete user: %w", err)
			}
			deleted = user
			return nil
		})
	})
	if err != nil {
		if !apperrors.IsDomain(err) {
			s.logger.Errorj(log.JSON{"msg": "delete visitor failed", "user_id": id, "error": err.Error()})
		} else {
			s.logger.Warnj(log.JSON{"msg": "delete visitor rejected", "user_id": id, "error": err.Error()})
		}
		return err
	}

	s.logger.Infoj(log.JSON{"msg": "visitor deleted", "user_id": id})
	s.events.VisitorDeleted(ctx, mq.UserEvent{UserID: deleted.ID, Username: deleted.Username, Roles: deleted.RoleNames()})
	return nil
}
