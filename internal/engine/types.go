// Package engine defines the contract this gateway requires from the
// embedded orderbook engine. The engine itself is an external collaborator
// (spec §1, "out of scope"); this package pins the interface the rest of
// the gateway is written against. The subpackage memory holds a concrete
// in-memory implementation suitable for tests and local development that a
// real engine binding would replace in production.
package engine

import (
	"context"
	"math/big"
	"time"
)

// Token describes an ERC-20 token as the engine reports it.
type Token struct {
	Address  string
	Symbol   string
	Decimals uint8
}

// Vault is one side (input or output) of an order's liquidity.
type Vault struct {
	VaultID          string
	Token            Token
	FormattedBalance string // decimal string, e.g. "1.000000"
}

// Transaction identifies the on-chain transaction behind a trade.
type Transaction struct {
	Hash        string
	From        string
	BlockNumber uint64
	Timestamp   time.Time
}

// Order is a single deployed limit/DCA/solver order.
type Order struct {
	OrderHash           string
	Owner               string
	Orderbook           string
	Active              bool
	CreatedAt           time.Time
	Inputs              []Vault
	Outputs             []Vault
	SelectedDeployment  string // e.g. "st0x-dca" — used to classify Dca vs Solver
}

// VaultBalanceChange is one leg (input or output) of a trade.
type VaultBalanceChange struct {
	Token            Token
	FormattedAmount  string // signed decimal string
}

// Trade is a single execution against an order.
type Trade struct {
	ID          string
	OrderHash   string
	Orderbook   string
	Transaction Transaction
	Timestamp   time.Time
	Input       VaultBalanceChange
	Output      VaultBalanceChange
}

// Quote is the result of simulating a fill against a single order.
type Quote struct {
	Success        bool
	FormattedRatio string // "-" style sentinel is a wire-layer concern, not here
}

// TakeCandidate is a walkable unit of liquidity for a token pair, per the
// glossary's "take candidate": (order, max_output, ratio).
type TakeCandidate struct {
	Order     *Order
	MaxOutput *big.Float
	Ratio     *big.Float // input per output
}

// SimulationLeg is one consumed candidate in a buy-up-to-amount walk.
type SimulationLeg struct {
	Input  *big.Float
	Output *big.Float
}

// SimulationResult is the outcome of simulating a swap across candidates.
type SimulationResult struct {
	Legs         []SimulationLeg
	TotalInput   *big.Float
	TotalOutput  *big.Float
}

// TakeOrdersMode selects how a take-orders transaction should be built.
type TakeOrdersMode int

const (
	ModeBuyUpTo TakeOrdersMode = iota
)

// Approval is a required ERC-20 approval prior to executing calldata.
type Approval struct {
	Spender string
	Token   Token
	Amount  string // decoded from the approval calldata's amount argument
	Calldata []byte
}

// ExecutionPayload is calldata ready to submit, or a spender needing
// approval first — mirroring the engine's two take-orders response shapes.
type ExecutionPayload struct {
	NeedsApproval bool
	Approval      *Approval // set iff NeedsApproval
	Orderbook     string
	Calldata      []byte
	ExpectedSell  string
}

// DeploymentArgs is the result of building a deployment transaction from
// GUI state: destination, calldata, and any approvals required first.
type DeploymentArgs struct {
	OrderbookAddress string
	DeploymentCalldata []byte
	Approvals        []Approval
}

// PeriodUnit is a DCA order's period granularity.
type PeriodUnit string

const (
	PeriodDays    PeriodUnit = "days"
	PeriodHours   PeriodUnit = "hours"
	PeriodMinutes PeriodUnit = "minutes"
)

// GuiState is the engine's programmatic order-builder — a sequence of
// field assignments that either succeed or report a caller-facing reason
// they didn't, per spec §4.6 "Deploy DCA / Deploy Solver".
type GuiState interface {
	SetSelectToken(fieldKey, tokenAddress string) error
	SetFieldValue(fieldKey, value string) error
	SetVaultID(fieldKey string, vaultID *string) error
	SetDeposit(fieldKey, amount string) error
	GetDeploymentTransactionArgs(ctx context.Context, owner string) (DeploymentArgs, error)
}

// TradesPage is one page of owner-scoped trade history from a single orderbook.
type TradesPage struct {
	Trades     []Trade
	TotalCount int
}

// Client is the per-call handle derived from a Registry. All methods must
// only ever be invoked from the goroutine the enginebridge confines engine
// access to.
type Client interface {
	GetOrderByHash(ctx context.Context, hash string) (*Order, bool, error)
	GetOrdersForPair(ctx context.Context, inputToken, outputToken string) ([]Order, error)
	BuildCandidatesForPair(ctx context.Context, orders []Order, inputToken, outputToken string) ([]TakeCandidate, error)
	GetOrderQuotes(ctx context.Context, order *Order) ([]Quote, error)
	GetOrderTrades(ctx context.Context, order *Order) ([]Trade, error)
	GetRemoveCalldata(ctx context.Context, order *Order) ([]byte, error)
	BuildTakeOrders(ctx context.Context, inputToken, outputToken, outputAmount string, mode TakeOrdersMode) (ExecutionPayload, error)
	GetTradesByTx(ctx context.Context, txHash string) ([]Trade, error)
	GetTradesForOwner(ctx context.Context, orderbook, owner string, page, pageSize int, sinceUnix int64) (TradesPage, error)
	GetOrdersByTx(ctx context.Context, txHash string) ([]Order, error)
	GetOrdersForOwner(ctx context.Context, owner string, page, pageSize int) ([]Order, int, error)
	Orderbooks() []string
}

// RegistryProvider holds a loaded engine registry and can derive a Client
// and a GuiState builder from it. Non-threadsafe: must only be touched on
// the enginebridge's confinement goroutine.
type RegistryProvider interface {
	SourceURL() string
	Client() (Client, error)
	NewGuiState(orderKey, deploymentKey string) (GuiState, error)
}

// ErrIndexingTimeout is returned by GetTradesByTx when the engine reports
// the transaction is known but not yet indexed, per spec §4.6 "Trades by tx".
type ErrIndexingTimeout struct{ TxHash string }

func (e *ErrIndexingTimeout) Error() string {
	return "trades for tx " + e.TxHash + " are not yet indexed"
}
