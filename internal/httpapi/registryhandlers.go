package httpapi

import (
	"net/http"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/enginebridge"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

const settingRegistryURL = "registry_url"

func (d *Deps) handleGetRegistry(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, wire.RegistryResponse{RegistryURL: d.Cell.Read().SourceURL()})
}

// handlePutRegistry implements the hot-swap algorithm, spec §4.2 steps
// 1-5: validate, load-and-validate the new provider on an enginebridge
// confinement goroutine, then atomically persist-then-swap under the cell's
// exclusive handle. A failed load or failed persist leaves the prior
// provider (and the stored setting) untouched.
func (d *Deps) handlePutRegistry(w http.ResponseWriter, r *http.Request) {
	var req wire.SetRegistryRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}

	provider, err := enginebridge.Run(r.Context(), func() (engine.RegistryProvider, error) {
		return d.Loader(r.Context(), req.RegistryURL)
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.BadRequest("failed to load registry: "+err.Error()))
		return
	}

	swapErr := d.Cell.ReplaceWithPersist(provider, func() error {
		return d.Store.SetSetting(r.Context(), settingRegistryURL, req.RegistryURL)
	})
	if swapErr != nil {
		httpjson.WriteError(w, apierrors.InternalFrom(swapErr))
		return
	}

	httpjson.Write(w, http.StatusOK, wire.RegistryResponse{RegistryURL: req.RegistryURL})
}
