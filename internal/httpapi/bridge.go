package httpapi

import (
	"context"

	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/enginebridge"
	"github.com/ST0x-Technology/st0x.rest.api/internal/registry"
)

// withClient dispatches fn onto the enginebridge with a Client derived from
// the registry cell's current provider, the Go analogue of spec §4.1's
// run_with_client.
func withClient[T any](ctx context.Context, cell *registry.Cell, fn func(engine.Client) (T, error)) (T, error) {
	return enginebridge.Run(ctx, func() (T, error) {
		client, err := cell.Read().Client()
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(client)
	})
}

// withGuiState dispatches fn onto the enginebridge with a fresh GuiState
// derived from the registry cell's current provider, the Go analogue of
// spec §4.1's run_with_registry (used by the deploy handlers).
func withGuiState[T any](ctx context.Context, cell *registry.Cell, orderKey, deploymentKey string, fn func(engine.GuiState) (T, error)) (T, error) {
	return enginebridge.Run(ctx, func() (T, error) {
		gui, err := cell.Read().NewGuiState(orderKey, deploymentKey)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(gui)
	})
}
