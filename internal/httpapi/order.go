package httpapi

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

var errOrderNotFound = errors.New("order not found")

const (
	dcaOrderKey      = "order"
	dcaDeploymentKey = "st0x-dca"

	solverOrderKey      = "order"
	solverDeploymentKey = "st0x-solver"
)

type orderLookupResult struct {
	order   engine.Order
	ioRatio string
	trades  []engine.Trade
}

func (d *Deps) lookupOrderDetail(r *http.Request, hash string) (orderLookupResult, error) {
	return withClient(r.Context(), d.Cell, func(client engine.Client) (orderLookupResult, error) {
		order, found, err := client.GetOrderByHash(r.Context(), hash)
		if err != nil {
			return orderLookupResult{}, err
		}
		if !found {
			return orderLookupResult{}, errOrderNotFound
		}
		if len(order.Inputs) == 0 || len(order.Outputs) == 0 {
			return orderLookupResult{}, errMissingVault
		}

		ioRatio := "-"
		if quotes, qErr := client.GetOrderQuotes(r.Context(), order); qErr == nil {
			for _, q := range quotes {
				if q.Success {
					ioRatio = q.FormattedRatio
					break
				}
			}
		}

		var trades []engine.Trade
		if t, tErr := client.GetOrderTrades(r.Context(), order); tErr == nil {
			trades = t
		}

		return orderLookupResult{order: *order, ioRatio: ioRatio, trades: trades}, nil
	})
}

func classifyOrderKind(selectedDeployment string) string {
	if strings.Contains(strings.ToLower(selectedDeployment), "dca") {
		return "Dca"
	}
	return "Solver"
}

func (d *Deps) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	hash, apiErr := orderHashParam(mux.Vars(r)["orderHash"])
	if apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}

	res, err := d.lookupOrderDetail(r, hash)
	if err != nil {
		writeOrderLookupError(w, err)
		return
	}

	order := res.order
	trades := make([]wire.TradeSummary, 0, len(res.trades))
	for _, t := range res.trades {
		trades = append(trades, wire.TradeSummary{
			TxHash:    t.Transaction.Hash,
			Timestamp: t.Timestamp.Format(time.RFC3339),
			Input:     t.Input.FormattedAmount,
			Output:    t.Output.FormattedAmount,
		})
	}

	httpjson.Write(w, http.StatusOK, wire.OrderDetail{
		OrderHash:     order.OrderHash,
		Owner:         order.Owner,
		Orderbook:     order.Orderbook,
		Active:        order.Active,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		Kind:          classifyOrderKind(order.SelectedDeployment),
		InputToken:    tokenInfoOf(order.Inputs[0].Token),
		OutputToken:   tokenInfoOf(order.Outputs[0].Token),
		InputBalance:  order.Inputs[0].FormattedBalance,
		OutputBalance: order.Outputs[0].FormattedBalance,
		IoRatio:       res.ioRatio,
		Trades:        trades,
	})
}

func writeOrderLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errOrderNotFound):
		httpjson.WriteError(w, apierrors.NotFound("order not found"))
	case errors.Is(err, errMissingVault):
		httpjson.WriteError(w, apierrors.InternalFrom(err))
	default:
		httpjson.WriteError(w, apierrors.As(err))
	}
}

func tokenInfoOf(t engine.Token) wire.TokenInfo {
	return wire.TokenInfo{Address: t.Address, Symbol: t.Symbol, Decimals: t.Decimals}
}

func (d *Deps) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req wire.CancelOrderRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	if !wire.IsOrderHash(req.OrderHash) {
		httpjson.WriteError(w, apierrors.BadRequest("orderHash must be a 32-byte hex hash"))
		return
	}

	type cancelResult struct {
		order    engine.Order
		calldata []byte
	}

	res, err := withClient(r.Context(), d.Cell, func(client engine.Client) (cancelResult, error) {
		order, found, err := client.GetOrderByHash(r.Context(), req.OrderHash)
		if err != nil {
			return cancelResult{}, err
		}
		if !found {
			return cancelResult{}, errOrderNotFound
		}
		calldata, err := client.GetRemoveCalldata(r.Context(), order)
		if err != nil {
			return cancelResult{}, err
		}
		return cancelResult{order: *order, calldata: calldata}, nil
	})
	if err != nil {
		writeOrderLookupError(w, err)
		return
	}

	var returns []wire.TokenReturn
	for _, v := range append(append([]engine.Vault{}, res.order.Inputs...), res.order.Outputs...) {
		amount, ok := new(big.Float).SetString(v.FormattedBalance)
		if !ok || amount.Sign() <= 0 {
			continue
		}
		returns = append(returns, wire.TokenReturn{Token: tokenInfoOf(v.Token), Amount: v.FormattedBalance})
	}

	httpjson.Write(w, http.StatusOK, wire.CancelOrderResponse{
		Transaction: wire.TxCall{To: res.order.Orderbook, Data: toHex(res.calldata), Value: "0"},
		Summary: wire.CancelOrderSummary{
			VaultsToWithdraw: len(returns),
			TokensReturned:   returns,
		},
	})
}

func mapApprovals(approvals []engine.Approval) []wire.Approval {
	out := make([]wire.Approval, 0, len(approvals))
	for _, a := range approvals {
		out = append(out, wire.Approval{
			Spender:  a.Spender,
			Token:    a.Token.Address,
			Amount:   a.Amount,
			Calldata: toHex(a.Calldata),
		})
	}
	return out
}

func (d *Deps) handleDeployDca(w http.ResponseWriter, r *http.Request) {
	var req wire.DeployDcaOrderRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	if !wire.IsAddress(req.InputToken) || !wire.IsAddress(req.OutputToken) {
		httpjson.WriteError(w, apierrors.BadRequest("inputToken/outputToken must be 20-byte hex addresses"))
		return
	}
	if !wire.IsDecimal(req.BudgetAmount) || !wire.IsDecimal(req.StartIo) || !wire.IsDecimal(req.FloorIo) {
		httpjson.WriteError(w, apierrors.BadRequest("budgetAmount/startIo/floorIo must be decimal strings"))
		return
	}

	args, err := withGuiState(r.Context(), d.Cell, dcaOrderKey, dcaDeploymentKey, func(gui engine.GuiState) (engine.DeploymentArgs, error) {
		if err := gui.SetSelectToken("input-token", req.InputToken); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetSelectToken("output-token", req.OutputToken); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("budget-amount", req.BudgetAmount); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("period", strconv.Itoa(req.Period)); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("period-unit", req.PeriodUnit); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("start-io", req.StartIo); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("floor-io", req.FloorIo); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetVaultID("input-vault-id", req.InputVaultID); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetVaultID("output-vault-id", req.OutputVaultID); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetDeposit("output-token", req.BudgetAmount); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		args, err := gui.GetDeploymentTransactionArgs(r.Context(), req.Owner)
		if err != nil {
			return engine.DeploymentArgs{}, apierrors.InternalFrom(err)
		}
		if args.OrderbookAddress == "" || len(args.DeploymentCalldata) == 0 {
			return engine.DeploymentArgs{}, apierrors.InternalFrom(errMissingDeploymentArgs)
		}
		return args, nil
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}

	httpjson.Write(w, http.StatusOK, wire.DeployOrderResponse{
		OrderbookAddress: args.OrderbookAddress,
		Calldata:         toHex(args.DeploymentCalldata),
		Approvals:        mapApprovals(args.Approvals),
	})
}

func (d *Deps) handleDeploySolver(w http.ResponseWriter, r *http.Request) {
	var req wire.DeploySolverOrderRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		httpjson.WriteError(w, apiErr)
		return
	}
	if !wire.IsAddress(req.InputToken) || !wire.IsAddress(req.OutputToken) {
		httpjson.WriteError(w, apierrors.BadRequest("inputToken/outputToken must be 20-byte hex addresses"))
		return
	}
	if !wire.IsDecimal(req.Amount) || !wire.IsDecimal(req.IoRatio) {
		httpjson.WriteError(w, apierrors.BadRequest("amount/ioRatio must be decimal strings"))
		return
	}

	args, err := withGuiState(r.Context(), d.Cell, solverOrderKey, solverDeploymentKey, func(gui engine.GuiState) (engine.DeploymentArgs, error) {
		if err := gui.SetSelectToken("input-token", req.InputToken); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetSelectToken("output-token", req.OutputToken); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("amount", req.Amount); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetFieldValue("io-ratio", req.IoRatio); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetVaultID("input-vault-id", req.InputVaultID); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetVaultID("output-vault-id", req.OutputVaultID); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		if err := gui.SetDeposit("output-token", req.Amount); err != nil {
			return engine.DeploymentArgs{}, apierrors.BadRequest(err.Error())
		}
		args, err := gui.GetDeploymentTransactionArgs(r.Context(), req.Owner)
		if err != nil {
			return engine.DeploymentArgs{}, apierrors.InternalFrom(err)
		}
		if args.OrderbookAddress == "" || len(args.DeploymentCalldata) == 0 {
			return engine.DeploymentArgs{}, apierrors.InternalFrom(errMissingDeploymentArgs)
		}
		return args, nil
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}

	httpjson.Write(w, http.StatusOK, wire.DeployOrderResponse{
		OrderbookAddress: args.OrderbookAddress,
		Calldata:         toHex(args.DeploymentCalldata),
		Approvals:        mapApprovals(args.Approvals),
	})
}
