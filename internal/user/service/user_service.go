package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/internal/user/repository"
	"github.com/reelstack/reelstack/pkg/cache"
	"github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/interfaces"
	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/pagination"
	"github.com/reelstack/reelstack/pkg/retry"
)

const (
	userTTL     = 5 * time.Minute
	userListTTL = time.Minute
)

// UserService manages accounts and the follow graph. Both sides of a follow
// edge live on the user rows themselves and are kept consistent inside one
// transaction.
type UserService struct {
	store    repository.Store
	cache    interfaces.Cache
	keys     cache.Keys
	notifier interfaces.Notifier
	retry    retry.Config
	logger   interfaces.Logger
}

// NewUserService creates a user service.
func NewUserService(store repository.Store, c interfaces.Cache, notifier interfaces.Notifier, retryCfg retry.Config, logger interfaces.Logger) *UserService {
	return &UserService{
		store:    store,
		cache:    c,
		notifier: notifier,
		retry:    retryCfg,
		logger:   logger,
	}
}

// RegisterInput is a new account as supplied by the caller.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// UserUpdate carries the mutable account fields. Nil means leave unchanged.
type UserUpdate struct {
	Email       *string
	DisplayName *string
	Password    *string
	IsActive    *bool
}

func classify(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.IsClassified(err) {
		return err
	}
	return errors.Wrap(errors.ErrorTypeInternal, "failed to "+operation, err)
}

func parseUserID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.InvalidArgumentf("invalid user id: %s", value)
	}
	return id, nil
}

// Register creates an account. The insert is retried on transient storage
// failures; a taken username or email is a conflict and never retried.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Username == "" {
		return nil, errors.InvalidArgument("username is required")
	}
	if input.Email == "" {
		return nil, errors.InvalidArgument("email is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.InvalidArgument("password must be at least 8 characters")
	}

	user := &models.User{
		ID:          uuid.New(),
		Username:    input.Username,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Role:        models.UserRoleUser,
		IsActive:    true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, classify(err, "hash password")
	}

	err := retry.Do(ctx, s.retry, func() error {
		return s.store.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, classify(err, "create user")
	}

	s.invalidateLists(ctx)
	s.logger.Info("user registered",
		interfaces.String("user_id", user.ID.String()),
		interfaces.String("username", user.Username))
	return user, nil
}

// GetUser returns a user by id, read through the cache.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := cache.GetOrFetch(ctx, s.cache, s.keys.User(userID), userTTL,
		func(ctx context.Context) (*models.User, error) {
			return s.store.GetUser(ctx, userID)
		})
	if err != nil {
		return nil, classify(err, "get user")
	}
	return user, nil
}

// GetUserByUsername returns a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, classify(err, "get user by username")
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// fail identically.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.InvalidArgument("invalid credentials")
		}
		return nil, classify(err, "get user by username")
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, errors.InvalidArgument("invalid credentials")
	}
	return user, nil
}

// UpdateUser applies the supplied field changes.
func (s *UserService) UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "get user")
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Password != nil {
		if len(*update.Password) < 8 {
			return nil, errors.InvalidArgument("password must be at least 8 characters")
		}
		if err := user.SetPassword(*update.Password); err != nil {
			return nil, classify(err, "hash password")
		}
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, classify(err, "update user")
	}
	s.invalidateUser(ctx, userID)
	return user, nil
}

// DeleteUser removes an account. Follow edges pointing at the deleted user
// are cleaned up lazily when the surviving side is read.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseUserID(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return classify(err, "delete user")
	}
	s.invalidateUser(ctx, userID)
	s.logger.Info("user deleted", interfaces.String("user_id", userID.String()))
	return nil
}

// userPage is the cached shape of one list query result.
type userPage struct {
	Users []*models.User
	Total int64
}

// ListUsers returns one page of users with its result envelope, read through
// the cache under a key derived from the query's canonical form.
func (s *UserService) ListUsers(ctx context.Context, query repository.UserQuery) ([]*models.User, pagination.Meta, error) {
	qualifier := fmt.Sprintf("%s:%t:%s:%s:%d:%d",
		query.Search, query.ActiveOnly, query.SortBy, query.SortOrder,
		query.Pagination.Page, query.Pagination.Limit)

	page, err := cache.GetOrFetch(ctx, s.cache, s.keys.UserList(qualifier), userListTTL,
		func(ctx context.Context) (userPage, error) {
			users, total, err := s.store.ListUsers(ctx, query)
			if err != nil {
				return userPage{}, err
			}
			return userPage{Users: users, Total: total}, nil
		})
	if err != nil {
		return nil, pagination.Meta{}, classify(err, "list users")
	}
	return page.Users, pagination.NewMeta(page.Total, len(page.Users), query.Pagination), nil
}

// Follow adds a follow edge between two users. Both adjacency lists move in
// one transaction; re-following is a no-op. The target is notified only when
// the edge is new.
func (s *UserService) Follow(ctx context.Context, followerID, targetID string) error {
	fid, err := parseUserID(followerID)
	if err != nil {
		return err
	}
	tid, err := parseUserID(targetID)
	if err != nil {
		return err
	}
	if fid == tid {
		return errors.InvalidArgument("users cannot follow themselves")
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}
	follower, err := tx.GetUser(ctx, fid)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get follower")
	}
	target, err := tx.GetUser(ctx, tid)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get follow target")
	}

	added := follower.Following.Add(tid)
	target.Followers.Add(fid)
	if !added {
		_ = tx.Rollback()
		return nil
	}

	if err := tx.UpdateUser(ctx, follower); err != nil {
		_ = tx.Rollback()
		return classify(err, "update follower")
	}
	if err := tx.UpdateUser(ctx, target); err != nil {
		_ = tx.Rollback()
		return classify(err, "update follow target")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit follow")
	}

	s.invalidateUser(ctx, fid)
	s.invalidateUser(ctx, tid)

	notification := interfaces.Notification{
		UserID:   tid.String(),
		SenderID: fid.String(),
		Type:     interfaces.NotificationNewFollower,
		Message:  fmt.Sprintf("%s started following you", follower.Username),
	}
	if err := s.notifier.NotifyUser(ctx, notification); err != nil {
		s.logger.Warn("new-follower notification failed",
			interfaces.String("user_id", tid.String()),
			interfaces.Error(err))
	}
	return nil
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, targetID string) error {
	fid, err := parseUserID(followerID)
	if err != nil {
		return err
	}
	tid, err := parseUserID(targetID)
	if err != nil {
		return err
	}
	if fid == tid {
		return errors.InvalidArgument("users cannot unfollow themselves")
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}
	follower, err := tx.GetUser(ctx, fid)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get follower")
	}
	target, err := tx.GetUser(ctx, tid)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get unfollow target")
	}

	removed := follower.Following.Remove(tid)
	target.Followers.Remove(fid)
	if !removed {
		_ = tx.Rollback()
		return nil
	}

	if err := tx.UpdateUser(ctx, follower); err != nil {
		_ = tx.Rollback()
		return classify(err, "update follower")
	}
	if err := tx.UpdateUser(ctx, target); err != nil {
		_ = tx.Rollback()
		return classify(err, "update unfollow target")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit unfollow")
	}

	s.invalidateUser(ctx, fid)
	s.invalidateUser(ctx, tid)
	return nil
}

// GetFollowers returns the users following the given user.
func (s *UserService) GetFollowers(ctx context.Context, id string) ([]*models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "get user")
	}
	followers, err := s.store.ListUsersByIDs(ctx, user.Followers)
	if err != nil {
		return nil, classify(err, "list followers")
	}
	return followers, nil
}

// GetFollowing returns the users the given user follows.
func (s *UserService) GetFollowing(ctx context.Context, id string) ([]*models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "get user")
	}
	following, err := s.store.ListUsersByIDs(ctx, user.Following)
	if err != nil {
		return nil, classify(err, "list following")
	}
	return following, nil
}

// invalidateUser drops a user's record key plus every cached list.
func (s *UserService) invalidateUser(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, s.keys.User(id)); err != nil {
		s.logger.Warn("cache invalidation failed",
			interfaces.String("key", s.keys.User(id)),
			interfaces.Error(err))
	}
	s.invalidateLists(ctx)
}

func (s *UserService) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, s.keys.UserListPattern()); err != nil {
		s.logger.Warn("cache pattern invalidation failed",
			interfaces.String("pattern", s.keys.UserListPattern()),
			interfaces.Error(err))
	}
}
