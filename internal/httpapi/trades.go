package httpapi

import (
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

func (d *Deps) handleTradesByTx(w http.ResponseWriter, r *http.Request) {
	txHash := mux.Vars(r)["txHash"]
	if !wire.IsOrderHash(txHash) {
		httpjson.WriteError(w, apierrors.BadRequest("tx hash must be 0x-prefixed 64 hex characters"))
		return
	}

	type tradesResult struct {
		trades []engine.Trade
		owners map[string]string // order hash -> owner
	}

	res, err := withClient(r.Context(), d.Cell, func(client engine.Client) (tradesResult, error) {
		trades, err := client.GetTradesByTx(r.Context(), txHash)
		if err != nil {
			return tradesResult{}, err
		}

		owners := make(map[string]string)
		for _, t := range trades {
			if _, cached := owners[t.OrderHash]; cached {
				continue
			}
			order, found, oerr := client.GetOrderByHash(r.Context(), t.OrderHash)
			if oerr != nil || !found {
				owners[t.OrderHash] = ""
				continue
			}
			owners[t.OrderHash] = order.Owner
		}
		return tradesResult{trades: trades, owners: owners}, nil
	})
	if err != nil {
		var indexing *engine.ErrIndexingTimeout
		if errors.As(err, &indexing) {
			httpjson.WriteError(w, apierrors.NotYetIndexed("trade data for this transaction is not yet indexed"))
			return
		}
		httpjson.WriteError(w, apierrors.As(err))
		return
	}
	if len(res.trades) == 0 {
		httpjson.WriteError(w, apierrors.NotFound("no trades found for this transaction"))
		return
	}

	entries := make([]wire.TradeEntry, 0, len(res.trades))
	totalInput := big.NewFloat(0)
	totalOutput := big.NewFloat(0)
	for _, t := range res.trades {
		input, _ := new(big.Float).SetString(t.Input.FormattedAmount)
		output, _ := new(big.Float).SetString(t.Output.FormattedAmount)
		if input == nil {
			input = big.NewFloat(0)
		}
		if output == nil {
			output = big.NewFloat(0)
		}
		totalInput.Add(totalInput, input)
		totalOutput.Add(totalOutput, output)

		entries = append(entries, wire.TradeEntry{
			OrderHash: t.OrderHash,
			Owner:     res.owners[t.OrderHash],
			Input:     t.Input.FormattedAmount,
			Output:    t.Output.FormattedAmount,
			IoRatio:   perTradeRatio(input, output),
		})
	}

	absOutput := new(big.Float).Abs(totalOutput)
	httpjson.Write(w, http.StatusOK, wire.TradesByTxResponse{
		Trades:         entries,
		TotalInput:     totalInput.Text('f', -1),
		TotalOutput:    totalOutput.Text('f', -1),
		AverageIoRatio: blendedRatio(totalInput, absOutput),
	})
}

func perTradeRatio(input, output *big.Float) string {
	abs := new(big.Float).Abs(output)
	return blendedRatio(input, abs)
}

func (d *Deps) handleTradesByAddress(w http.ResponseWriter, r *http.Request) {
	address, apiErr := addressParam(mux.Vars(r)["address"])
	if apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	page, pageSize, apiErr := pagination(r)
	if apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	since, apiErr := sinceUnix(r)
	if apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}

	type mergedTrades struct {
		entries []wire.TradeByAddressEntry
		total   int
	}

	res, err := withClient(r.Context(), d.Cell, func(client engine.Client) (mergedTrades, error) {
		var merged mergedTrades
		for _, orderbook := range client.Orderbooks() {
			tp, err := client.GetTradesForOwner(r.Context(), orderbook, address, page, pageSize, since)
			if err != nil {
				return mergedTrades{}, err
			}
			merged.total += tp.TotalCount
			for _, t := range tp.Trades {
				merged.entries = append(merged.entries, wire.TradeByAddressEntry{
					OrderHash: t.OrderHash,
					Orderbook: t.Orderbook,
					TxHash:    t.Transaction.Hash,
					Timestamp: t.Timestamp.Format(time.RFC3339),
					Input:     t.Input.FormattedAmount,
					Output:    t.Output.FormattedAmount,
				})
			}
		}
		return merged, nil
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}

	totalPages := totalPagesOf(res.total, pageSize)
	httpjson.Write(w, http.StatusOK, wire.TradesByAddressResponse{
		Trades:     res.entries,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: res.total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	})
}
