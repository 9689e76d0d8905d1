package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

func orderSummaryOf(o engine.Order) wire.OrderSummary {
	return wire.OrderSummary{
		OrderHash: o.OrderHash,
		Owner:     o.Owner,
		Orderbook: o.Orderbook,
		Active:    o.Active,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func (d *Deps) handleOrdersByTx(w http.ResponseWriter, r *http.Request) {
	txHash := mux.Vars(r)["txHash"]
	if !wire.IsOrderHash(txHash) {
		httpjson.WriteError(w, apierrors.BadRequest("tx hash must be 0x-prefixed 64 hex characters"))
		return
	}

	orders, err := withClient(r.Context(), d.Cell, func(client engine.Client) ([]engine.Order, error) {
		return client.GetOrdersByTx(r.Context(), txHash)
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}

	summaries := make([]wire.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, orderSummaryOf(o))
	}
	httpjson.Write(w, http.StatusOK, wire.OrdersByTxResponse{Orders: summaries})
}

func (d *Deps) handleOrdersByAddress(w http.ResponseWriter, r *http.Request) {
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

	type ordersPage struct {
		orders []engine.Order
		total  int
	}

	res, err := withClient(r.Context(), d.Cell, func(client engine.Client) (ordersPage, error) {
		orders, total, err := client.GetOrdersForOwner(r.Context(), address, page, pageSize)
		return ordersPage{orders: orders, total: total}, err
	})
	if err != nil {
		httpjson.WriteError(w, apierrors.As(err))
		return
	}

	summaries := make([]wire.OrderSummary, 0, len(res.orders))
	for _, o := range res.orders {
		summaries = append(summaries, orderSummaryOf(o))
	}

	totalPages := totalPagesOf(res.total, pageSize)
	httpjson.Write(w, http.StatusOK, wire.OrdersByAddressResponse{
		Orders:     summaries,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: res.total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	})
}

func totalPagesOf(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
