// Package memory is an in-memory stand-in for the embedded orderbook
// engine. It implements the engine.RegistryProvider/Client/GuiState
// contract against a small seeded dataset, for local development and
// tests. A production deployment replaces this with a real engine binding.
package memory

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
)

// Dataset is the seed data a Provider serves.
type Dataset struct {
	Orders []engine.Order
	Trades []engine.Trade
}

// Provider is an in-memory engine.RegistryProvider.
type Provider struct {
	sourceURL string
	dataset   *Dataset
}

// Load simulates fetching and validating a registry from url. A url
// containing "unreachable" fails, modeling a network error; a url
// containing "invalid" fails, modeling a registry whose YAML doesn't
// validate. Anything else loads the shared seed dataset.
func Load(_ context.Context, url string) (engine.RegistryProvider, error) {
	if url == "" {
		return nil, fmt.Errorf("registry_url must not be empty")
	}
	if strings.Contains(url, "unreachable") {
		return nil, fmt.Errorf("failed to fetch registry from %s: connection refused", url)
	}
	if strings.Contains(url, "invalid") {
		return nil, fmt.Errorf("registry at %s failed schema validation", url)
	}
	return &Provider{sourceURL: url, dataset: seedDataset()}, nil
}

func (p *Provider) SourceURL() string { return p.sourceURL }

func (p *Provider) Client() (engine.Client, error) {
	return &client{dataset: p.dataset}, nil
}

func (p *Provider) NewGuiState(orderKey, deploymentKey string) (engine.GuiState, error) {
	return &guiState{orderKey: orderKey, deploymentKey: deploymentKey, fields: map[string]string{}}, nil
}

// client is the in-memory engine.Client.
type client struct {
	mu      sync.Mutex
	dataset *Dataset
}

func (c *client) GetOrderByHash(_ context.Context, hash string) (*engine.Order, bool, error) {
	hash = strings.ToLower(hash)
	for i := range c.dataset.Orders {
		if strings.ToLower(c.dataset.Orders[i].OrderHash) == hash {
			o := c.dataset.Orders[i]
			return &o, true, nil
		}
	}
	return nil, false, nil
}

func (c *client) GetOrdersForPair(_ context.Context, inputToken, outputToken string) ([]engine.Order, error) {
	inputToken, outputToken = strings.ToLower(inputToken), strings.ToLower(outputToken)
	var out []engine.Order
	for _, o := range c.dataset.Orders {
		if !o.Active || len(o.Inputs) == 0 || len(o.Outputs) == 0 {
			continue
		}
		if strings.ToLower(o.Inputs[0].Token.Address) == inputToken && strings.ToLower(o.Outputs[0].Token.Address) == outputToken {
			out = append(out, o)
		}
	}
	return out, nil
}

func (c *client) BuildCandidatesForPair(_ context.Context, orders []engine.Order, _, _ string) ([]engine.TakeCandidate, error) {
	candidates := make([]engine.TakeCandidate, 0, len(orders))
	for i := range orders {
		o := orders[i]
		if len(o.Outputs) == 0 {
			continue
		}
		maxOutput, ok := new(big.Float).SetString(o.Outputs[0].FormattedBalance)
		if !ok || maxOutput.Sign() <= 0 {
			continue
		}
		ratio := impliedRatio(o)
		candidates = append(candidates, engine.TakeCandidate{Order: &o, MaxOutput: maxOutput, Ratio: ratio})
	}
	return candidates, nil
}

// impliedRatio derives a deterministic per-order ratio from its hash so the
// in-memory dataset produces stable, distinguishable quotes.
func impliedRatio(o engine.Order) *big.Float {
	if r, ok := orderRatios[strings.ToLower(o.OrderHash)]; ok {
		return new(big.Float).SetFloat64(r)
	}
	return big.NewFloat(1.0)
}

func (c *client) GetOrderQuotes(_ context.Context, order *engine.Order) ([]engine.Quote, error) {
	ratio := impliedRatio(*order)
	return []engine.Quote{{Success: true, FormattedRatio: ratio.Text('f', -1)}}, nil
}

func (c *client) GetOrderTrades(_ context.Context, order *engine.Order) ([]engine.Trade, error) {
	var out []engine.Trade
	for _, t := range c.dataset.Trades {
		if strings.EqualFold(t.OrderHash, order.OrderHash) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *client) GetRemoveCalldata(_ context.Context, order *engine.Order) ([]byte, error) {
	return []byte("remove:" + order.OrderHash), nil
}

func (c *client) BuildTakeOrders(_ context.Context, inputToken, outputToken, outputAmount string, _ engine.TakeOrdersMode) (engine.ExecutionPayload, error) {
	return engine.ExecutionPayload{
		NeedsApproval: false,
		Orderbook:     defaultOrderbook,
		Calldata:      []byte(fmt.Sprintf("take:%s>%s:%s", inputToken, outputToken, outputAmount)),
		ExpectedSell:  outputAmount,
	}, nil
}

func (c *client) GetTradesByTx(_ context.Context, txHash string) ([]engine.Trade, error) {
	txHash = strings.ToLower(txHash)
	if txHash == notYetIndexedTxHash {
		return nil, &engine.ErrIndexingTimeout{TxHash: txHash}
	}
	var out []engine.Trade
	for _, t := range c.dataset.Trades {
		if strings.ToLower(t.Transaction.Hash) == txHash {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *client) GetTradesForOwner(_ context.Context, _ string, owner string, page, pageSize int, sinceUnix int64) (engine.TradesPage, error) {
	owner = strings.ToLower(owner)
	var all []engine.Trade
	for _, t := range c.dataset.Trades {
		if sinceUnix > 0 && t.Timestamp.Unix() < sinceUnix {
			continue
		}
		// the in-memory dataset doesn't track owner on Trade directly; we
		// approximate via the order that produced it.
		if ownerOf(t.OrderHash) == owner {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })

	total := len(all)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return engine.TradesPage{Trades: all[start:end], TotalCount: total}, nil
}

func ownerOf(orderHash string) string {
	for _, o := range seedDataset().Orders {
		if strings.EqualFold(o.OrderHash, orderHash) {
			return strings.ToLower(o.Owner)
		}
	}
	return ""
}

func (c *client) GetOrdersByTx(_ context.Context, txHash string) ([]engine.Order, error) {
	txHash = strings.ToLower(txHash)
	hashes := map[string]struct{}{}
	for _, t := range c.dataset.Trades {
		if strings.ToLower(t.Transaction.Hash) == txHash {
			hashes[strings.ToLower(t.OrderHash)] = struct{}{}
		}
	}
	var out []engine.Order
	for _, o := range c.dataset.Orders {
		if _, ok := hashes[strings.ToLower(o.OrderHash)]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (c *client) GetOrdersForOwner(_ context.Context, owner string, page, pageSize int) ([]engine.Order, int, error) {
	owner = strings.ToLower(owner)
	var all []engine.Order
	for _, o := range c.dataset.Orders {
		if strings.ToLower(o.Owner) == owner {
			all = append(all, o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (c *client) Orderbooks() []string { return []string{defaultOrderbook} }

// guiState is the in-memory engine.GuiState.
type guiState struct {
	orderKey, deploymentKey string
	fields                  map[string]string
	vaultIDs                map[string]*string
}

func (g *guiState) SetSelectToken(fieldKey, tokenAddress string) error {
	if !looksLikeAddress(tokenAddress) {
		return fmt.Errorf("invalid token address for field %q: %s", fieldKey, tokenAddress)
	}
	g.fields[fieldKey] = tokenAddress
	return nil
}

func (g *guiState) SetFieldValue(fieldKey, value string) error {
	if value == "" {
		return fmt.Errorf("field %q must not be empty", fieldKey)
	}
	g.fields[fieldKey] = value
	return nil
}

func (g *guiState) SetVaultID(fieldKey string, vaultID *string) error {
	if g.vaultIDs == nil {
		g.vaultIDs = map[string]*string{}
	}
	g.vaultIDs[fieldKey] = vaultID
	return nil
}

func (g *guiState) SetDeposit(fieldKey, amount string) error {
	if _, ok := new(big.Float).SetString(amount); !ok {
		return fmt.Errorf("invalid deposit amount for field %q: %s", fieldKey, amount)
	}
	g.fields["deposit:"+fieldKey] = amount
	return nil
}

func (g *guiState) GetDeploymentTransactionArgs(_ context.Context, owner string) (engine.DeploymentArgs, error) {
	if owner == "" {
		return engine.DeploymentArgs{}, fmt.Errorf("owner is required to build deployment args")
	}
	inputToken := g.fields["input-token"]
	return engine.DeploymentArgs{
		OrderbookAddress:   defaultOrderbook,
		DeploymentCalldata: []byte(fmt.Sprintf("deploy:%s:%s", g.orderKey, owner)),
		Approvals: []engine.Approval{
			{
				Spender:  defaultOrderbook,
				Token:    engine.Token{Address: inputToken},
				Amount:   g.fields["deposit:output-token"],
				Calldata: []byte(fmt.Sprintf("approve:%s:%s", inputToken, g.fields["deposit:output-token"])),
			},
		},
	}, nil
}

func looksLikeAddress(s string) bool {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
