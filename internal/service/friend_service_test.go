package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/pkg/api"
)

func TestFriendService(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created, err := env.friends.CreateFriend(ctx, as(env.owner.ID, &api.CreateFriendRequest{Name: "  Dana "}))
	require.NoError(t, err)
	assert.Equal(t, "Dana", created.Msg.Friend.Name)
	assert.False(t, created.Msg.Friend.IsSelf)

	list, err := env.friends.ListFriends(ctx, as(env.owner.ID, &api.ListFriendsRequest{}))
	require.NoError(t, err)
	names := make([]string, len(list.Msg.Friends))
	for i, f := range list.Msg.Friends {
		names[i] = f.Name
	}
	assert.ElementsMatch(t, []string{"Owner", "Alice", "Bob", "Dana"}, names)

	t.Run("empty name", func(t *testing.T) {
		_, err := env.friends.CreateFriend(ctx, as(env.owner.ID, &api.CreateFriendRequest{Name: "   "}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("other users see their own list", func(t *testing.T) {
		list, err := env.friends.ListFriends(ctx, as(env.other.ID, &api.ListFriendsRequest{}))
		require.NoError(t, err)
		assert.Empty(t, list.Msg.Friends)
	})

	t.Run("delete someone else's friend", func(t *testing.T) {
		_, err := env.friends.DeleteFriend(ctx, as(env.other.ID, &api.DeleteFriendRequest{FriendID: created.Msg.Friend.ID}))
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	})

	t.Run("delete friend on a receipt", func(t *testing.T) {
		_, err := env.receipts.CreateReceipt(ctx, as(env.owner.ID, &api.CreateReceiptRequest{ReceiptInput: env.dinner()}))
		require.NoError(t, err)

		_, err = env.friends.DeleteFriend(ctx, as(env.owner.ID, &api.DeleteFriendRequest{FriendID: env.alice.ID}))
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	})

	t.Run("delete unused friend", func(t *testing.T) {
		_, err := env.friends.DeleteFriend(ctx, as(env.owner.ID, &api.DeleteFriendRequest{FriendID: created.Msg.Friend.ID}))
		require.NoError(t, err)

		_, err = env.friends.DeleteFriend(ctx, as(env.owner.ID, &api.DeleteFriendRequest{FriendID: created.Msg.Friend.ID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}
