package store

import (
	"context"

	"github.com/MKhiriev/ai-interviewer/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialStore is the durable, device-local home of the bearer
// credential. Exactly one credential is kept, under a fixed name.
type CredentialStore interface {
	// Load returns the stored credential or [ErrCredentialNotFound].
	Load(ctx context.Context) (models.Credential, error)

	// Save stores cred, replacing any previous credential.
	Save(ctx context.Context, cred models.Credential) error

	// Clear removes the stored credential. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error

	// Revoke removes the stored credential only if its token equals token.
	// It reports whether a credential was removed, which lets concurrent
	// callers that saw the same rejected token clear it exactly once.
	Revoke(ctx context.Context, token string) (bool, error)
}
