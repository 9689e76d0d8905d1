package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/ST0x-Technology/st0x.rest.api/internal/auth"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine/memory"
	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
	"github.com/ST0x-Technology/st0x.rest.api/internal/ratelimit"
	"github.com/ST0x-Technology/st0x.rest.api/internal/registry"
	"github.com/ST0x-Technology/st0x.rest.api/internal/store"
	"github.com/ST0x-Technology/st0x.rest.api/internal/tokenlist"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

const (
	testSeedOrderHash = "0x000000000000000000000000000000000000000000000000000000000000abcd"
	testSeedDcaHash   = "0x000000000000000000000000000000000000000000000000000000000000dca1"
	testSeedOwner     = "0x0000000000000000000000000000000000000001"
	testSeedTxHash    = "0x0000000000000000000000000000000000000000000000000000000000000088"
	testUSDC          = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
	testWETH          = "0x4200000000000000000000000000000000000006"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	provider, err := memory.Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Deps{
		Cell:     registry.New(provider),
		Store:    db,
		Verifier: auth.NewVerifier(db, nil),
		Limiter:  ratelimit.New(10_000, 10_000),
		Logger:   logging.New("error"),
		Tokens:   tokenlist.NewCache([]wire.TokenInfo{{Address: testUSDC, Symbol: "USDC", Decimals: 6}}),
		Loader:   memory.Load,
	}
}

func newTestRouter(t *testing.T) (*mux.Router, *Deps) {
	t.Helper()
	d := newTestDeps(t)
	return NewRouter(d), d
}

// seedCredential creates an active credential in d's store and returns a
// ready-to-use "key-id:secret" Basic auth header value.
func seedCredential(t *testing.T, d *Deps, admin bool) string {
	t.Helper()
	const secret = "s3cret"
	hash, err := auth.HashSecret(secret)
	require.NoError(t, err)

	cred := store.Credential{
		KeyID:      "test-key",
		SecretHash: hash,
		Label:      "test",
		Owner:      "test-owner",
		Active:     true,
		IsAdmin:    admin,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, d.Store.CreateCredential(context.Background(), cred))

	return "Basic " + base64.StdEncoding.EncodeToString([]byte(cred.KeyID+":"+secret))
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body []byte, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
