package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetCredential(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cred := Credential{
		KeyID:      "key-1",
		SecretHash: "hash",
		Label:      "ci",
		Owner:      "team-a",
		Active:     true,
		IsAdmin:    false,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.CreateCredential(ctx, cred))

	got, err := s.GetCredential(ctx, "key-1")
	require.NoError(t, err)
	require.Equal(t, "hash", got.SecretHash)
	require.True(t, got.Active)
	require.False(t, got.IsAdmin)
}

func TestGetCredentialMissingReturnsErrNoRows(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCredential(context.Background(), "absent")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSetActiveAndAdmin(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateCredential(ctx, Credential{KeyID: "k", SecretHash: "h", CreatedAt: time.Now()}))

	require.NoError(t, s.SetActive(ctx, "k", false))
	got, err := s.GetCredential(ctx, "k")
	require.NoError(t, err)
	require.False(t, got.Active)

	require.NoError(t, s.SetAdmin(ctx, "k", true))
	got, err = s.GetCredential(ctx, "k")
	require.NoError(t, err)
	require.True(t, got.IsAdmin)
}

func TestSetActiveUnknownKeyErrors(t *testing.T) {
	s := openTestStore(t)
	err := s.SetActive(context.Background(), "nope", true)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.GetSetting(ctx, "registry_url")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetSetting(ctx, "registry_url", "https://example.com/a.yaml"))
	val, ok, err := s.GetSetting(ctx, "registry_url")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://example.com/a.yaml", val)

	require.NoError(t, s.SetSetting(ctx, "registry_url", "https://example.com/b.yaml"))
	val, _, err = s.GetSetting(ctx, "registry_url")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/b.yaml", val)
}

func TestListCredentials(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateCredential(ctx, Credential{KeyID: "a", SecretHash: "h", CreatedAt: time.Now()}))
	require.NoError(t, s.CreateCredential(ctx, Credential{KeyID: "b", SecretHash: "h", CreatedAt: time.Now()}))

	creds, err := s.ListCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 2)
}
