package tests

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/igwefaith662-collab/ReputeFi/common"
	"github.com/igwefaith662-collab/ReputeFi/insurance"
	"github.com/igwefaith662-collab/ReputeFi/token"
)

func TestInsurance_Purchase(t *testing.T) {
	s := deploySuite(t, false)
	c := s.insuranceInvoker()

	buyer := c.NewAccount(t)
	s.setReputation(t, buyer, 200, 100, 300, 230)
	s.mintTokens(t, buyer.ScriptHash(), 100)

	cb := c.WithSigners(buyer)

	// premium = 1000 * 50 / 10000 = 5, burned
	cb.Invoke(t, 1, "purchase", buyer.ScriptHash(), int64(1000), int64(50))
	s.balanceOf(t, buyer.ScriptHash(), 95)
	s.tokenInvoker().Invoke(t, 95, "totalSupply")

	stack, err := c.TestInvoke(t, "getPolicy", buyer.ScriptHash(), int64(1))
	require.NoError(t, err)
	p := stack.Pop().Array()
	require.Equal(t, int64(1000), p[0].Value().(*big.Int).Int64())
	require.Equal(t, int64(5), p[1].Value().(*big.Int).Int64())
	require.Equal(t, int64(50), p[3].Value().(*big.Int).Int64())
	require.Equal(t, true, p[4].Value().(bool))

	t.Run("small coverage rounds to zero premium", func(t *testing.T) {
		cb.Invoke(t, 2, "purchase", buyer.ScriptHash(), int64(100), int64(50))
		s.balanceOf(t, buyer.ScriptHash(), 95)
	})

	t.Run("IDs grow per user", func(t *testing.T) {
		other := c.NewAccount(t)
		s.setReputation(t, other, 200, 100, 300, 230)
		s.mintTokens(t, other.ScriptHash(), 100)
		c.WithSigners(other).Invoke(t, 1, "purchase", other.ScriptHash(), int64(1000), int64(50))
	})
}

func TestInsurance_PurchaseRejections(t *testing.T) {
	s := deploySuite(t, false)
	c := s.insuranceInvoker()

	buyer := c.NewAccount(t)
	cb := c.WithSigners(buyer)

	t.Run("no reputation record", func(t *testing.T) {
		cb.InvokeFail(t, insurance.ErrInsufficientReputation,
			"purchase", buyer.ScriptHash(), int64(1000), int64(50))
	})

	s.setReputation(t, buyer, 200, 100, 300, 230)

	cb.InvokeFail(t, insurance.ErrInvalidAmount,
		"purchase", buyer.ScriptHash(), int64(0), int64(50))

	t.Run("no witness", func(t *testing.T) {
		other := c.NewAccount(t)
		cb.InvokeFail(t, common.ErrOwnerWitnessFailed,
			"purchase", other.ScriptHash(), int64(1000), int64(50))
	})

	t.Run("unpayable premium reverts the policy", func(t *testing.T) {
		cb.InvokeFail(t, token.ErrInsufficientBalance,
			"purchase", buyer.ScriptHash(), int64(1000), int64(50))
		c.InvokeFail(t, insurance.ErrNotFound,
			"getPolicy", buyer.ScriptHash(), int64(1))
	})

	c.InvokeFail(t, insurance.ErrNotFound, "getPolicy", buyer.ScriptHash(), int64(42))
}
