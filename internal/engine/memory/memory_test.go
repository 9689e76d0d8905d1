package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsEmptyURL(t *testing.T) {
	_, err := Load(context.Background(), "")
	assert.Error(t, err)
}

func TestLoadRejectsUnreachable(t *testing.T) {
	_, err := Load(context.Background(), "https://registry.example.com/unreachable.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(context.Background(), "https://registry.example.com/invalid.yaml")
	assert.Error(t, err)
}

func TestLoadSucceeds(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)
	assert.Equal(t, "https://registry.example.com/deployments.yaml", provider.SourceURL())

	client, err := provider.Client()
	require.NoError(t, err)
	assert.Equal(t, []string{defaultOrderbook}, client.Orderbooks())
}

func TestGetOrderByHashCaseInsensitive(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)
	client, err := provider.Client()
	require.NoError(t, err)

	order, found, err := client.GetOrderByHash(context.Background(), strings.ToUpper(seedOrderHash))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, seedOwner, order.Owner)

	_, found, err = client.GetOrderByHash(context.Background(), "0xdeadbeef")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetOrdersByTx(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)
	client, err := provider.Client()
	require.NoError(t, err)

	orders, err := client.GetOrdersByTx(context.Background(), seedTxHash)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, seedOrderHash, orders[0].OrderHash)

	orders, err = client.GetOrdersByTx(context.Background(), "0xnotreal")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetOrdersForOwnerPaginates(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)
	client, err := provider.Client()
	require.NoError(t, err)

	orders, total, err := client.GetOrdersForOwner(context.Background(), seedOwner, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, orders, 1)

	orders, total, err = client.GetOrdersForOwner(context.Background(), seedOwner, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, orders, 1)

	orders, _, err = client.GetOrdersForOwner(context.Background(), "0xnobody", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetTradesByTxReportsIndexingTimeout(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)
	client, err := provider.Client()
	require.NoError(t, err)

	_, err = client.GetTradesByTx(context.Background(), notYetIndexedTxHash)
	require.Error(t, err)
}

func TestGetTradesForOwnerFiltersByOwnerAndPaginates(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)
	client, err := provider.Client()
	require.NoError(t, err)

	page, err := client.GetTradesForOwner(context.Background(), defaultOrderbook, seedOwner, 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Trades, 1)

	page, err = client.GetTradesForOwner(context.Background(), defaultOrderbook, "0xnobody", 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalCount)
}

func TestNewGuiStateBuildsDeploymentArgs(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)

	gui, err := provider.NewGuiState("order", "st0x-solver")
	require.NoError(t, err)

	require.NoError(t, gui.SetSelectToken("input-token", tokenUSDC().Address))
	require.NoError(t, gui.SetFieldValue("io-ratio", "1.5"))
	require.NoError(t, gui.SetDeposit("output-token", "0.5"))

	args, err := gui.GetDeploymentTransactionArgs(context.Background(), seedOwner)
	require.NoError(t, err)
	assert.Equal(t, defaultOrderbook, args.OrderbookAddress)
	require.Len(t, args.Approvals, 1)
	assert.Equal(t, tokenUSDC().Address, args.Approvals[0].Token.Address)
}

func TestGuiStateRejectsInvalidAddress(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)

	gui, err := provider.NewGuiState("order", "st0x-solver")
	require.NoError(t, err)

	assert.Error(t, gui.SetSelectToken("input-token", "not-an-address"))
}

func TestGuiStateRequiresOwnerForDeploymentArgs(t *testing.T) {
	provider, err := Load(context.Background(), "https://registry.example.com/deployments.yaml")
	require.NoError(t, err)

	gui, err := provider.NewGuiState("order", "st0x-solver")
	require.NoError(t, err)

	_, err = gui.GetDeploymentTransactionArgs(context.Background(), "")
	assert.Error(t, err)
}
