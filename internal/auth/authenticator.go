// Package auth handles account credentials and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/billsplit/internal/models"
)

// Authenticator verifies who is recording receipts.
// Implementations can be swapped (password, passkeys, OAuth) without touching
// the services.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's rules.
	ValidateCredential(credential string) error
}
