package enginebridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsValueAndNilError(t *testing.T) {
	value, err := Run(context.Background(), func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestRunPropagatesDomainError(t *testing.T) {
	domainErr := errors.New("order not found")
	_, err := Run(context.Background(), func() (int, error) {
		return 0, domainErr
	})
	assert.Same(t, domainErr, err)
}

func TestRunRecoversWorkerPanic(t *testing.T) {
	_, err := Run(context.Background(), func() (int, error) {
		panic("engine exploded")
	})
	require.Error(t, err)
	var bridgeErr *Error
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, KindWorkerPanicked, bridgeErr.Kind)
}

func TestRunReturnsBridgeErrorOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	resultCh := make(chan error, 1)
	go func() {
		_, err := Run(ctx, func() (int, error) {
			close(started)
			time.Sleep(50 * time.Millisecond)
			return 1, nil
		})
		resultCh <- err
	}()

	<-started
	cancel()

	err := <-resultCh
	require.Error(t, err)
	var bridgeErr *Error
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, KindWorkerPanicked, bridgeErr.Kind)
}
