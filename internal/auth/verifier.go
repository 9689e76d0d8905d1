package auth

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
	"github.com/ST0x-Technology/st0x.rest.api/internal/store"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	KeyID   string
	IsAdmin bool
}

// CredentialStore is the subset of store.Store the verifier depends on.
type CredentialStore interface {
	GetCredential(ctx context.Context, keyID string) (*store.Credential, error)
}

// Verifier turns a Basic auth header into a Principal.
type Verifier struct {
	store  CredentialStore
	logger *logging.Logger
}

func NewVerifier(s CredentialStore, logger *logging.Logger) *Verifier {
	return &Verifier{store: s, logger: logger}
}

const authUnauthorizedMessage = "invalid credentials"

// Verify parses the Authorization header and returns an authenticated
// Principal, or a typed apierrors.Error (Unauthorized) on failure. Never
// reveals which of key-id or secret was wrong.
func (v *Verifier) Verify(ctx context.Context, authorizationHeader string) (*Principal, *apierrors.Error) {
	keyID, secret, ok := parseBasicAuth(authorizationHeader)
	if !ok {
		VerifyDecoy("")
		return nil, apierrors.Unauthorized(authUnauthorizedMessage)
	}

	cred, err := v.store.GetCredential(ctx, keyID)
	if err != nil {
		VerifyDecoy(secret)
		if !errors.Is(err, sql.ErrNoRows) && v.logger != nil {
			v.logger.WithContext(ctx).WithError(err).Warn("credential lookup failed")
		}
		if v.logger != nil {
			v.logger.WithContext(ctx).WithField("key_id", keyID).Warn("authentication failed: unknown key")
		}
		return nil, apierrors.Unauthorized(authUnauthorizedMessage)
	}

	if !cred.Active {
		VerifyDecoy(secret)
		if v.logger != nil {
			v.logger.WithContext(ctx).WithField("key_id", keyID).Warn("authentication failed: inactive key")
		}
		return nil, apierrors.Unauthorized(authUnauthorizedMessage)
	}

	if !VerifySecret(cred.SecretHash, secret) {
		if v.logger != nil {
			v.logger.WithContext(ctx).WithField("key_id", keyID).Warn("authentication failed: bad secret")
		}
		return nil, apierrors.Unauthorized(authUnauthorizedMessage)
	}

	return &Principal{KeyID: cred.KeyID, IsAdmin: cred.IsAdmin}, nil
}

type principalContextKey struct{}

// WithPrincipal stashes an authenticated Principal on ctx for downstream
// handlers and the admin gate to read.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the Principal stashed by WithPrincipal, or
// nil if the request was never authenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}

// RequireAdmin gates an admin-only route.
func RequireAdmin(p *Principal) *apierrors.Error {
	if p == nil || !p.IsAdmin {
		return apierrors.Forbidden("admin privileges required")
	}
	return nil
}

func parseBasicAuth(header string) (keyID, secret string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ExtractAuthorizationHeader is a small helper kept at the package level so
// handlers/tests don't reach into net/http directly for the header name.
func ExtractAuthorizationHeader(r *http.Request) string {
	return r.Header.Get("Authorization")
}
