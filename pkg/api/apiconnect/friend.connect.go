package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

const (
	// FriendServiceName is the fully-qualified name of the FriendService service.
	FriendServiceName = "billsplit.v1.FriendService"

	FriendServiceCreateFriendProcedure = "/billsplit.v1.FriendService/CreateFriend"
	FriendServiceListFriendsProcedure  = "/billsplit.v1.FriendService/ListFriends"
	FriendServiceDeleteFriendProcedure = "/billsplit.v1.FriendService/DeleteFriend"
)

// FriendServiceHandler is implemented by the server.
type FriendServiceHandler interface {
	CreateFriend(context.Context, *connect.Request[api.CreateFriendRequest]) (*connect.Response[api.CreateFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	DeleteFriend(context.Context, *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error)
}

// NewFriendServiceHandler builds an HTTP handler from the service implementation.
func NewFriendServiceHandler(svc FriendServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + FriendServiceName + "/", route(map[string]http.Handler{
		FriendServiceCreateFriendProcedure: connect.NewUnaryHandler(FriendServiceCreateFriendProcedure, svc.CreateFriend, opts...),
		FriendServiceListFriendsProcedure:  connect.NewUnaryHandler(FriendServiceListFriendsProcedure, svc.ListFriends, opts...),
		FriendServiceDeleteFriendProcedure: connect.NewUnaryHandler(FriendServiceDeleteFriendProcedure, svc.DeleteFriend, opts...),
	})
}

// FriendServiceClient is a client for the billsplit.v1.FriendService service.
type FriendServiceClient interface {
	CreateFriend(context.Context, *connect.Request[api.CreateFriendRequest]) (*connect.Response[api.CreateFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	DeleteFriend(context.Context, *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error)
}

// NewFriendServiceClient constructs a client for the billsplit.v1.FriendService service.
func NewFriendServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FriendServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &friendServiceClient{
		createFriend: connect.NewClient[api.CreateFriendRequest, api.CreateFriendResponse](httpClient, baseURL+FriendServiceCreateFriendProcedure, opts...),
		listFriends:  connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+FriendServiceListFriendsProcedure, opts...),
		deleteFriend: connect.NewClient[api.DeleteFriendRequest, api.DeleteFriendResponse](httpClient, baseURL+FriendServiceDeleteFriendProcedure, opts...),
	}
}

type friendServiceClient struct {
	createFriend *connect.Client[api.CreateFriendRequest, api.CreateFriendResponse]
	listFriends  *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
	deleteFriend *connect.Client[api.DeleteFriendRequest, api.DeleteFriendResponse]
}

func (c *friendServiceClient) CreateFriend(ctx context.Context, req *connect.Request[api.CreateFriendRequest]) (*connect.Response[api.CreateFriendResponse], error) {
	return c.createFriend.CallUnary(ctx, req)
}

func (c *friendServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

func (c *friendServiceClient) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	return c.deleteFriend.CallUnary(ctx, req)
}
