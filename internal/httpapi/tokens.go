package httpapi

import (
	"net/http"

	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

func (d *Deps) handleTokens(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, wire.TokenListResponse{Tokens: d.Tokens.Tokens()})
}
