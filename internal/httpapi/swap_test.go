package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

func TestHandleSwapQuoteReturnsBlendedRatio(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	body, err := json.Marshal(wire.SwapQuoteRequest{
		InputToken:   testUSDC,
		OutputToken:  testWETH,
		OutputAmount: "1",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/v1/swap/quote", body, authHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp wire.SwapQuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.EstimatedInput)
	assert.NotEmpty(t, resp.EstimatedOutput)
	assert.NotEqual(t, "-", resp.EstimatedIoRatio)
}

func TestHandleSwapQuoteRejectsMalformedAddress(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	body, err := json.Marshal(wire.SwapQuoteRequest{
		InputToken:   "not-an-address",
		OutputToken:  testWETH,
		OutputAmount: "1",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/v1/swap/quote", body, authHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSwapQuoteReturnsNotFoundForUnknownPair(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	body, err := json.Marshal(wire.SwapQuoteRequest{
		InputToken:   testWETH,
		OutputToken:  testUSDC,
		OutputAmount: "1",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/v1/swap/quote", body, authHeader)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSwapCalldataReturnsReadyCalldata(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	body, err := json.Marshal(wire.SwapCalldataRequest{
		InputToken:   testUSDC,
		OutputToken:  testWETH,
		OutputAmount: "0.5",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/v1/swap/calldata", body, authHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp wire.SwapCalldataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.NeedsApproval)
	assert.NotEmpty(t, resp.Calldata)
}

func TestHandleSwapCalldataRejectsNonDecimalAmount(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	body, err := json.Marshal(wire.SwapCalldataRequest{
		InputToken:   testUSDC,
		OutputToken:  testWETH,
		OutputAmount: "not-a-number",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/v1/swap/calldata", body, authHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
