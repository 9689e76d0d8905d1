// Package wire defines the JSON request/response shapes exposed at the
// HTTP boundary (spec §6), decoupled from the engine's internal types.
// Every field is lowerCamelCase on the wire; validation tags are enforced
// by github.com/go-playground/validator/v10 in internal/httpapi.
package wire

const (
	addressPattern = "^0x[0-9a-fA-F]{40}$"
	hashPattern    = "^0x[0-9a-fA-F]{64}$"
	decimalPattern = `^-?[0-9]+(\.[0-9]+)?$`
)

// TokenInfo is a fuller token description, used in order/trade payloads.
type TokenInfo struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// TokenListResponse answers GET /v1/tokens.
type TokenListResponse struct {
	Tokens []TokenInfo `json:"tokens"`
}

// SwapQuoteRequest is the body of POST /v1/swap/quote.
type SwapQuoteRequest struct {
	InputToken   string `json:"inputToken" validate:"required"`
	OutputToken  string `json:"outputToken" validate:"required"`
	OutputAmount string `json:"outputAmount" validate:"required"`
}

// SwapQuoteResponse answers POST /v1/swap/quote.
type SwapQuoteResponse struct {
	EstimatedInput    string `json:"estimatedInput"`
	EstimatedOutput   string `json:"estimatedOutput"`
	EstimatedIoRatio  string `json:"estimatedIoRatio"`
}

// SwapCalldataRequest is the body of POST /v1/swap/calldata.
type SwapCalldataRequest struct {
	InputToken   string `json:"inputToken" validate:"required"`
	OutputToken  string `json:"outputToken" validate:"required"`
	OutputAmount string `json:"outputAmount" validate:"required"`
}

// Approval is a single ERC-20 approval a caller must submit before the
// accompanying calldata, or an entry in a deploy response's approvals list.
type Approval struct {
	Spender  string `json:"spender"`
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	Calldata string `json:"calldata"`
}

// SwapCalldataResponse answers POST /v1/swap/calldata. Approvals is empty
// in the ready-to-submit case.
type SwapCalldataResponse struct {
	NeedsApproval bool       `json:"needsApproval"`
	Approvals     []Approval `json:"approvals"`
	Orderbook     string     `json:"orderbook,omitempty"`
	Calldata      string     `json:"calldata,omitempty"`
	ExpectedSell  string     `json:"expectedSell,omitempty"`
}

// DeployDcaOrderRequest is the body of POST /v1/order/dca.
type DeployDcaOrderRequest struct {
	Owner          string  `json:"owner" validate:"required"`
	InputToken     string  `json:"inputToken" validate:"required"`
	OutputToken    string  `json:"outputToken" validate:"required"`
	BudgetAmount   string  `json:"budgetAmount" validate:"required"`
	Period         int     `json:"period" validate:"required,min=1"`
	PeriodUnit     string  `json:"periodUnit" validate:"required,oneof=days hours minutes"`
	StartIo        string  `json:"startIo" validate:"required"`
	FloorIo        string  `json:"floorIo" validate:"required"`
	InputVaultID   *string `json:"inputVaultId,omitempty"`
	OutputVaultID  *string `json:"outputVaultId,omitempty"`
}

// DeploySolverOrderRequest is the body of POST /v1/order/solver.
type DeploySolverOrderRequest struct {
	Owner         string  `json:"owner" validate:"required"`
	InputToken    string  `json:"inputToken" validate:"required"`
	OutputToken   string  `json:"outputToken" validate:"required"`
	Amount        string  `json:"amount" validate:"required"`
	IoRatio       string  `json:"ioRatio" validate:"required"`
	InputVaultID  *string `json:"inputVaultId,omitempty"`
	OutputVaultID *string `json:"outputVaultId,omitempty"`
}

// DeployOrderResponse answers both deploy endpoints.
type DeployOrderResponse struct {
	OrderbookAddress string     `json:"orderbookAddress"`
	Calldata         string     `json:"calldata"`
	Approvals        []Approval `json:"approvals"`
}

// CancelOrderRequest is the body of POST /v1/order/cancel.
type CancelOrderRequest struct {
	OrderHash string `json:"orderHash" validate:"required"`
}

// TxCall is a single on-chain call a caller must submit.
type TxCall struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// TokenReturn is one vault's worth of balance returned to its owner on
// cancellation.
type TokenReturn struct {
	Token  TokenInfo `json:"token"`
	Amount string    `json:"amount"`
}

// CancelOrderSummary describes what a cancellation returns to the owner.
type CancelOrderSummary struct {
	VaultsToWithdraw int           `json:"vaultsToWithdraw"`
	TokensReturned   []TokenReturn `json:"tokensReturned"`
}

// CancelOrderResponse answers POST /v1/order/cancel.
type CancelOrderResponse struct {
	Transaction TxCall             `json:"transaction"`
	Summary     CancelOrderSummary `json:"summary"`
}

// TradeSummary is one execution against an order, as shown on an order's
// detail page.
type TradeSummary struct {
	TxHash    string `json:"txHash"`
	Timestamp string `json:"timestamp"`
	Input     string `json:"input"`
	Output    string `json:"output"`
}

// OrderDetail answers GET /v1/order/{orderHash}.
type OrderDetail struct {
	OrderHash     string         `json:"orderHash"`
	Owner         string         `json:"owner"`
	Orderbook     string         `json:"orderbook"`
	Active        bool           `json:"active"`
	CreatedAt     string         `json:"createdAt"`
	Kind          string         `json:"kind"` // "Dca" | "Solver"
	InputToken    TokenInfo      `json:"inputToken"`
	OutputToken   TokenInfo      `json:"outputToken"`
	InputBalance  string         `json:"inputBalance"`
	OutputBalance string         `json:"outputBalance"`
	IoRatio       string         `json:"ioRatio"`
	Trades        []TradeSummary `json:"trades"`
}

// OrderSummary is the compact shape used in order-listing responses.
type OrderSummary struct {
	OrderHash string `json:"orderHash"`
	Owner     string `json:"owner"`
	Orderbook string `json:"orderbook"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// OrdersByTxResponse answers GET /v1/orders/tx/{txHash}.
type OrdersByTxResponse struct {
	Orders []OrderSummary `json:"orders"`
}

// OrdersByAddressResponse answers GET /v1/orders/{address}.
type OrdersByAddressResponse struct {
	Orders     []OrderSummary `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalCount int            `json:"totalCount"`
	TotalPages int            `json:"totalPages"`
	HasMore    bool           `json:"hasMore"`
}

// TradeEntry is one trade in a trades-by-tx response.
type TradeEntry struct {
	OrderHash string `json:"orderHash"`
	Owner     string `json:"owner"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	IoRatio   string `json:"ioRatio"`
}

// TradesByTxResponse answers GET /v1/trades/tx/{txHash}.
type TradesByTxResponse struct {
	Trades          []TradeEntry `json:"trades"`
	TotalInput      string       `json:"totalInput"`
	TotalOutput     string       `json:"totalOutput"`
	AverageIoRatio  string       `json:"averageIoRatio"`
}

// TradeByAddressEntry is one trade in a trades-by-address response.
type TradeByAddressEntry struct {
	OrderHash string `json:"orderHash"`
	Orderbook string `json:"orderbook"`
	TxHash    string `json:"txHash"`
	Timestamp string `json:"timestamp"`
	Input     string `json:"input"`
	Output    string `json:"output"`
}

// TradesByAddressResponse answers GET /v1/trades/{address}.
type TradesByAddressResponse struct {
	Trades     []TradeByAddressEntry `json:"trades"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalCount int                   `json:"totalCount"`
	TotalPages int                   `json:"totalPages"`
	HasMore    bool                  `json:"hasMore"`
}

// RegistryResponse answers GET /registry.
type RegistryResponse struct {
	RegistryURL string `json:"registryUrl"`
}

// SetRegistryRequest is the body of PUT /admin/registry.
type SetRegistryRequest struct {
	RegistryURL string `json:"registryUrl" validate:"required"`
}

// HealthResponse answers GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
