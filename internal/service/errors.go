package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/billsplit/internal/allocation"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/storage"
)

var errAuthRequired = errors.New("authentication required")

// requireUser returns the authenticated user ID from the context.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// storageError maps storage sentinels to Connect codes.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrFriendInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// mismatchError reports a receipt that does not reconcile. The figures are
// attached as a structured error detail for clients to render.
func mismatchError(m *allocation.Mismatch) error {
	cerr := connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("receipt does not reconcile: %s", m))

	return withDetail(cerr, map[string]any{
		"calculatedTotal": m.CalculatedTotal.StringFixed(2),
		"expectedTotal":   m.ExpectedTotal.StringFixed(2),
		"difference":      m.Difference.StringFixed(2),
		"tolerance":       m.Tolerance.StringFixed(2),
	})
}

// withDetail attaches fields to cerr as a structpb.Struct detail. The error
// goes out without it when the fields cannot be encoded.
func withDetail(cerr *connect.Error, fields map[string]any) *connect.Error {
	detail, err := structpb.NewStruct(fields)
	if err != nil {
		slog.Warn("Dropping error detail", "code", cerr.Code().String(), "error", err)
		return cerr
	}
	d, err := connect.NewErrorDetail(detail)
	if err != nil {
		slog.Warn("Dropping error detail", "code", cerr.Code().String(), "error", err)
		return cerr
	}
	cerr.AddDetail(d)
	return cerr
}

// MismatchFromError extracts the mismatch figures attached by a failed
// allocation call. ok is false when err carries none.
func MismatchFromError(err error) (fields map[string]string, ok bool) {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return nil, false
	}
	for _, d := range cerr.Details() {
		msg, err := d.Value()
		if err != nil {
			continue
		}
		s, isStruct := msg.(*structpb.Struct)
		if !isStruct {
			continue
		}
		fields = make(map[string]string, len(s.GetFields()))
		for k, v := range s.GetFields() {
			fields[k] = v.GetStringValue()
		}
		return fields, true
	}
	return nil, false
}
