package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

var _ apiconnect.FriendServiceHandler = (*FriendService)(nil)

var errDeleteSelf = errors.New("cannot delete your own friend record")

// FriendService implements the FriendService RPC interface.
type FriendService struct {
	store  storage.FriendStore
	logger *slog.Logger
}

// NewFriendService creates a new FriendService.
func NewFriendService(store storage.FriendStore, logger *slog.Logger) *FriendService {
	return &FriendService{store: store, logger: logger}
}

// CreateFriend adds a friend to the caller's list.
func (s *FriendService) CreateFriend(ctx context.Context, req *connect.Request[api.CreateFriendRequest]) (*connect.Response[api.CreateFriendResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}

	friend := &models.Friend{OwnerID: userID, Name: name}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("Friend created", "friend_id", friend.ID, "user_id", userID)

	return connect.NewResponse(&api.CreateFriendResponse{Friend: toAPIFriend(friend)}), nil
}

// ListFriends returns the caller's friends, oldest first.
func (s *FriendService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}

	out := make([]*api.Friend, len(friends))
	for i, f := range friends {
		out[i] = toAPIFriend(f)
	}
	return connect.NewResponse(&api.ListFriendsResponse{Friends: out}), nil
}

// DeleteFriend removes a friend that is on no receipt.
func (s *FriendService) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.FriendID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("friend_id required"))
	}

	friend, err := s.store.GetFriend(ctx, req.Msg.FriendID)
	if err != nil {
		return nil, storageError(err)
	}
	if friend.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("friend %s is not yours", friend.ID))
	}
	if friend.IsSelf() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errDeleteSelf)
	}

	if err := s.store.DeleteFriend(ctx, friend.ID); err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("Friend deleted", "friend_id", friend.ID, "user_id", userID)

	return connect.NewResponse(&api.DeleteFriendResponse{}), nil
}
