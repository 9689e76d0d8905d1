package auth

import (
	"context"
	"database/sql"
	"encoding/base64"
	"testing"

	"github.com/ST0x-Technology/st0x.rest.api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("s3cret")
	require.NoError(t, err)
	assert.True(t, VerifySecret(hash, "s3cret"))
	assert.False(t, VerifySecret(hash, "wrong"))
}

type fakeStore struct {
	creds map[string]*store.Credential
}

func (f *fakeStore) GetCredential(_ context.Context, keyID string) (*store.Credential, error) {
	if c, ok := f.creds[keyID]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func basicHeader(keyID, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(keyID+":"+secret))
}

func TestVerifySuccess(t *testing.T) {
	hash, err := HashSecret("s3cret")
	require.NoError(t, err)
	fs := &fakeStore{creds: map[string]*store.Credential{
		"k1": {KeyID: "k1", SecretHash: hash, Active: true, IsAdmin: true},
	}}
	v := NewVerifier(fs, nil)

	p, apiErr := v.Verify(context.Background(), basicHeader("k1", "s3cret"))
	require.Nil(t, apiErr)
	require.Equal(t, "k1", p.KeyID)
	require.True(t, p.IsAdmin)
}

func TestVerifyUnknownKeyAndWrongSecretAreIndistinguishable(t *testing.T) {
	hash, err := HashSecret("s3cret")
	require.NoError(t, err)
	fs := &fakeStore{creds: map[string]*store.Credential{
		"k1": {KeyID: "k1", SecretHash: hash, Active: true},
	}}
	v := NewVerifier(fs, nil)

	_, unknownErr := v.Verify(context.Background(), basicHeader("nope", "whatever"))
	_, wrongErr := v.Verify(context.Background(), basicHeader("k1", "wrong"))

	require.NotNil(t, unknownErr)
	require.NotNil(t, wrongErr)
	assert.Equal(t, unknownErr.Kind, wrongErr.Kind)
	assert.Equal(t, unknownErr.Message, wrongErr.Message)
	assert.Equal(t, unknownErr.HTTPStatus(), wrongErr.HTTPStatus())
}

func TestVerifyInactiveKeyRejected(t *testing.T) {
	hash, _ := HashSecret("s3cret")
	fs := &fakeStore{creds: map[string]*store.Credential{
		"k1": {KeyID: "k1", SecretHash: hash, Active: false},
	}}
	v := NewVerifier(fs, nil)
	_, apiErr := v.Verify(context.Background(), basicHeader("k1", "s3cret"))
	require.NotNil(t, apiErr)
	assert.Equal(t, "UNAUTHORIZED", string(apiErr.Kind))
}

func TestVerifyMalformedHeader(t *testing.T) {
	v := NewVerifier(&fakeStore{creds: map[string]*store.Credential{}}, nil)
	_, apiErr := v.Verify(context.Background(), "not-basic-at-all")
	require.NotNil(t, apiErr)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	err := RequireAdmin(&Principal{KeyID: "k1", IsAdmin: false})
	require.NotNil(t, err)
	assert.Equal(t, "FORBIDDEN", string(err.Kind))
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	assert.Nil(t, RequireAdmin(&Principal{KeyID: "k1", IsAdmin: true}))
}
