package httpapi

import (
	"math/big"
	"net/http"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

func (d *Deps) handleSwapQuote(w http.ResponseWriter, r *http.Request) {
	var req wire.SwapQuoteRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	if !wire.IsAddress(req.InputToken) || !wire.IsAddress(req.OutputToken) {
		httpjson.WriteError(w, apierrors.BadRequest("inputToken/outputToken must be 20-byte hex addresses"))
		return
	}
	targetOutput, ok := new(big.Float).SetString(req.OutputAmount)
	if !ok || targetOutput.Sign() <= 0 {
		httpjson.WriteError(w, apierrors.BadRequest("outputAmount must be a positive decimal"))
		return
	}

	type result struct {
		candidates []engine.TakeCandidate
	}

	res, err := withClient(r.Context(), d.Cell, func(client engine.Client) (result, error) {
		orders, err := client.GetOrdersForPair(r.Context(), req.InputToken, req.OutputToken)
		if err != nil {
			return result{}, err
		}
		candidates, err := client.BuildCandidatesForPair(r.Context(), orders, req.InputToken, req.OutputToken)
		if err != nil {
			return result{}, err
		}
		return result{candidates: candidates}, nil
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}
	if len(res.candidates) == 0 {
		httpjson.WriteError(w, apierrors.NotFound("no active orders for this token pair"))
		return
	}

	sim := simulateBuyUpTo(res.candidates, targetOutput)
	httpjson.Write(w, http.StatusOK, wire.SwapQuoteResponse{
		EstimatedInput:   sim.TotalInput.Text('f', -1),
		EstimatedOutput:  sim.TotalOutput.Text('f', -1),
		EstimatedIoRatio: blendedRatio(sim.TotalInput, sim.TotalOutput),
	})
}

func (d *Deps) handleSwapCalldata(w http.ResponseWriter, r *http.Request) {
	var req wire.SwapCalldataRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	if !wire.IsAddress(req.InputToken) || !wire.IsAddress(req.OutputToken) {
		httpjson.WriteError(w, apierrors.BadRequest("inputToken/outputToken must be 20-byte hex addresses"))
		return
	}
	if !wire.IsDecimal(req.OutputAmount) {
		httpjson.WriteError(w, apierrors.BadRequest("outputAmount must be a decimal string"))
		return
	}

	payload, err := withClient(r.Context(), d.Cell, func(client engine.Client) (engine.ExecutionPayload, error) {
		return client.BuildTakeOrders(r.Context(), req.InputToken, req.OutputToken, req.OutputAmount, engine.ModeBuyUpTo)
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}

	resp := wire.SwapCalldataResponse{NeedsApproval: payload.NeedsApproval, Approvals: []wire.Approval{}}
	if payload.NeedsApproval {
		if payload.Approval == nil {
			httpjson.WriteError(w, apierrors.InternalFrom(errMissingApproval))
			return
		}
		resp.Approvals = []wire.Approval{{
			Spender:  payload.Approval.Spender,
			Token:    payload.Approval.Token.Address,
			Amount:   payload.Approval.Amount,
			Calldata: toHex(payload.Approval.Calldata),
		}}
	} else {
		resp.Orderbook = payload.Orderbook
		resp.Calldata = toHex(payload.Calldata)
		resp.ExpectedSell = payload.ExpectedSell
	}

	httpjson.Write(w, http.StatusOK, resp)
}
