package httpapi

import (
	"net/http"
	"strconv"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// orderHashParam validates a path segment as a 32-byte hex hash (spec §4.6,
// "Path parameters typed as 32-byte hex").
func orderHashParam(raw string) (string, *apierrors.Error) {
	if !wire.IsOrderHash(raw) {
		return "", apierrors.BadRequest("order hash must be 0x-prefixed 64 hex characters")
	}
	return raw, nil
}

// addressParam validates a path segment as a 20-byte hex address.
func addressParam(raw string) (string, *apierrors.Error) {
	if !wire.IsAddress(raw) {
		return "", apierrors.BadRequest("address must be 0x-prefixed 40 hex characters")
	}
	return raw, nil
}

// pagination reads page/pageSize query params, applying spec §4.6 defaults
// and bounds: page >= 1, pageSize in [1, 100].
func pagination(r *http.Request) (page, pageSize int, apiErr *apierrors.Error) {
	page = defaultPage
	pageSize = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, apierrors.BadRequest("page must be a positive integer")
		}
		page = v
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxPageSize {
			return 0, 0, apierrors.BadRequest("pageSize must be between 1 and 100")
		}
		pageSize = v
	}

	return page, pageSize, nil
}

// sinceUnix reads the optional "since" query param as a unix-seconds
// timestamp filter; 0 means "no filter".
func sinceUnix(r *http.Request) (int64, *apierrors.Error) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, apierrors.BadRequest("since must be a non-negative integer")
	}
	return v, nil
}

func decodeJSONBody(r *http.Request, dst interface{}) *apierrors.Error {
	if err := decodeStrict(r, dst); err != nil {
		return apierrors.BadRequest("malformed request body: " + err.Error())
	}
	if err := wire.Validate(dst); err != nil {
		return apierrors.BadRequest(err.Error())
	}
	return nil
}
