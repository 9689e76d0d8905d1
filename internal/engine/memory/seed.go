package memory

import (
	"time"

	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
)

const (
	defaultOrderbook    = "0xd2938e7c9fe3597f78832ce780feb61945c377d7"
	notYetIndexedTxHash = "0x0000000000000000000000000000000000000000000000000000000000009999"

	usdc = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
	weth = "0x4200000000000000000000000000000000000006"

	seedOrderHash      = "0x000000000000000000000000000000000000000000000000000000000000abcd"
	seedDcaOrderHash   = "0x000000000000000000000000000000000000000000000000000000000000dca1"
	seedOwner          = "0x0000000000000000000000000000000000000001"
	seedTxHash         = "0x0000000000000000000000000000000000000000000000000000000000000088"
)

// orderRatios pins a deterministic io-ratio per seeded order hash so quote
// math in tests is reproducible.
var orderRatios = map[string]float64{
	seedOrderHash:    1.5,
	seedDcaOrderHash: 2.0,
}

func tokenUSDC() engine.Token { return engine.Token{Address: usdc, Symbol: "USDC", Decimals: 6} }
func tokenWETH() engine.Token { return engine.Token{Address: weth, Symbol: "WETH", Decimals: 18} }

func seedDataset() *Dataset {
	createdAt := time.Unix(1_700_000_000, 0).UTC()

	solverOrder := engine.Order{
		OrderHash: seedOrderHash,
		Owner:     seedOwner,
		Orderbook: defaultOrderbook,
		Active:    true,
		CreatedAt: createdAt,
		Inputs: []engine.Vault{
			{VaultID: "0x01", Token: tokenUSDC(), FormattedBalance: "1.000000"},
		},
		Outputs: []engine.Vault{
			{VaultID: "0x02", Token: tokenWETH(), FormattedBalance: "0.500000000000000000"},
		},
		SelectedDeployment: "st0x-solver",
	}

	dcaOrder := engine.Order{
		OrderHash: seedDcaOrderHash,
		Owner:     seedOwner,
		Orderbook: defaultOrderbook,
		Active:    true,
		CreatedAt: createdAt,
		Inputs: []engine.Vault{
			{VaultID: "0x03", Token: tokenUSDC(), FormattedBalance: "2.500000"},
		},
		Outputs: []engine.Vault{
			{VaultID: "0x04", Token: tokenWETH(), FormattedBalance: "1.250000000000000000"},
		},
		SelectedDeployment: "st0x-dca",
	}

	trade := engine.Trade{
		ID:        "0x0000000000000000000000000000000000000000000000000000000000000042",
		OrderHash: seedOrderHash,
		Orderbook: defaultOrderbook,
		Transaction: engine.Transaction{
			Hash:        seedTxHash,
			From:        "0x0000000000000000000000000000000000000002",
			BlockNumber: 100,
			Timestamp:   createdAt.Add(time.Hour),
		},
		Timestamp: createdAt.Add(time.Hour),
		Input: engine.VaultBalanceChange{
			Token:           tokenUSDC(),
			FormattedAmount: "0.500000",
		},
		Output: engine.VaultBalanceChange{
			Token:           tokenWETH(),
			FormattedAmount: "-0.250000000000000000",
		},
	}

	return &Dataset{
		Orders: []engine.Order{solverOrder, dcaOrder},
		Trades: []engine.Trade{trade},
	}
}
