package tests

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/igwefaith662-collab/ReputeFi/common"
	"github.com/igwefaith662-collab/ReputeFi/market"
	"github.com/igwefaith662-collab/ReputeFi/token"
)

func (s *settlementSuite) checkStake(t *testing.T, marketID int64, acc neotest.Signer, up, down int64) {
	stack, err := s.marketInvoker().TestInvoke(t, "getStake", marketID, acc.ScriptHash())
	require.NoError(t, err)
	st := stack.Pop().Array()
	require.Equal(t, up, st[0].Value().(*big.Int).Int64())
	require.Equal(t, down, st[1].Value().(*big.Int).Int64())
}

func TestMarket_Lifecycle(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	target := c.NewAccount(t)
	creator := c.NewAccount(t)
	down := c.NewAccount(t)
	up := c.NewAccount(t)

	s.setReputation(t, target, 200, 100, 300, 230)
	s.mintTokens(t, down.ScriptHash(), 1000)
	s.mintTokens(t, up.ScriptHash(), 1000)

	deadline := int64(s.e.Chain.BlockHeight()) + 50
	c.WithSigners(creator).Invoke(t, 1, "createMarket",
		creator.ScriptHash(), target.ScriptHash(), int64(250), deadline)

	stack, err := c.TestInvoke(t, "getMarket", int64(1))
	require.NoError(t, err)
	m := stack.Pop().Array()
	require.Equal(t, creator.ScriptHash().BytesBE(), func() []byte { b, _ := m[0].TryBytes(); return b }())
	require.Equal(t, target.ScriptHash().BytesBE(), func() []byte { b, _ := m[1].TryBytes(); return b }())
	require.Equal(t, int64(230), m[2].Value().(*big.Int).Int64())
	require.Equal(t, int64(250), m[3].Value().(*big.Int).Int64())
	require.Equal(t, deadline, m[4].Value().(*big.Int).Int64())
	require.Equal(t, false, m[7].Value().(bool))

	c.WithSigners(down).Invoke(t, stackitem.Null{}, "placeStake",
		down.ScriptHash(), int64(1), int64(100), false)
	c.WithSigners(up).Invoke(t, stackitem.Null{}, "placeStake",
		up.ScriptHash(), int64(1), int64(50), true)

	s.balanceOf(t, down.ScriptHash(), 900)
	s.balanceOf(t, up.ScriptHash(), 950)
	s.balanceOf(t, s.market, 150)
	s.checkStake(t, 1, down, 0, 100)
	s.checkStake(t, 1, up, 50, 0)
	c.Invoke(t, 150, "totalStaked")

	s.advanceChainToHeight(t, uint32(deadline)+2)

	c.WithSigners(down).InvokeFail(t, market.ErrEnded, "placeStake",
		down.ScriptHash(), int64(1), int64(10), false)

	// 230 < 250, the down side wins
	c.Invoke(t, false, "resolveMarket", int64(1))
	c.InvokeFail(t, market.ErrAlreadyResolved, "resolveMarket", int64(1))
	c.WithSigners(down).InvokeFail(t, market.ErrAlreadyResolved, "placeStake",
		down.ScriptHash(), int64(1), int64(10), false)

	c.WithSigners(down).Invoke(t, 150, "claimWinnings", down.ScriptHash(), int64(1))
	s.balanceOf(t, down.ScriptHash(), 1050)
	s.balanceOf(t, s.market, 0)

	t.Run("second claim yields nothing", func(t *testing.T) {
		c.WithSigners(down).Invoke(t, 0, "claimWinnings", down.ScriptHash(), int64(1))
		s.balanceOf(t, down.ScriptHash(), 1050)
	})

	t.Run("losing side gets nothing", func(t *testing.T) {
		c.WithSigners(up).Invoke(t, 0, "claimWinnings", up.ScriptHash(), int64(1))
		s.balanceOf(t, up.ScriptHash(), 950)
	})

	t.Run("no stake record", func(t *testing.T) {
		stranger := c.NewAccount(t)
		c.WithSigners(stranger).InvokeFail(t, market.ErrNoStake,
			"claimWinnings", stranger.ScriptHash(), int64(1))
	})
}

func TestMarket_OutcomeUp(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	target := c.NewAccount(t)
	up := c.NewAccount(t)
	down := c.NewAccount(t)

	s.setReputation(t, target, 200, 100, 300, 230)
	s.mintTokens(t, up.ScriptHash(), 1000)
	s.mintTokens(t, down.ScriptHash(), 1000)

	deadline := int64(s.e.Chain.BlockHeight()) + 30
	c.WithSigners(up).Invoke(t, 1, "createMarket",
		up.ScriptHash(), target.ScriptHash(), int64(250), deadline)

	c.WithSigners(up).Invoke(t, stackitem.Null{}, "placeStake",
		up.ScriptHash(), int64(1), int64(100), true)
	c.WithSigners(down).Invoke(t, stackitem.Null{}, "placeStake",
		down.ScriptHash(), int64(1), int64(60), false)

	// resolution reads the live score, not the creation snapshot
	s.setReputation(t, target, 300, 150, 360, 300)
	s.advanceChainToHeight(t, uint32(deadline)+2)

	c.Invoke(t, true, "resolveMarket", int64(1))
	c.WithSigners(up).Invoke(t, 160, "claimWinnings", up.ScriptHash(), int64(1))
	s.balanceOf(t, up.ScriptHash(), 1060)
}

func TestMarket_EmptyWinningPool(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	target := c.NewAccount(t)
	staker := c.NewAccount(t)

	s.setReputation(t, target, 200, 100, 300, 230)
	s.mintTokens(t, staker.ScriptHash(), 500)

	deadline := int64(s.e.Chain.BlockHeight()) + 20
	c.WithSigners(staker).Invoke(t, 1, "createMarket",
		staker.ScriptHash(), target.ScriptHash(), int64(250), deadline)
	c.WithSigners(staker).Invoke(t, stackitem.Null{}, "placeStake",
		staker.ScriptHash(), int64(1), int64(100), false)

	// the target overtakes the prediction with no stake on the up side
	s.setReputation(t, target, 300, 150, 360, 300)
	s.advanceChainToHeight(t, uint32(deadline)+2)
	c.Invoke(t, true, "resolveMarket", int64(1))

	c.WithSigners(staker).Invoke(t, 0, "claimWinnings", staker.ScriptHash(), int64(1))
	s.balanceOf(t, staker.ScriptHash(), 400)
	s.balanceOf(t, s.market, 100)
	c.Invoke(t, 100, "totalStaked")
	s.checkStake(t, 1, staker, 0, 100)
}

func TestMarket_CreateRejections(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	creator := c.NewAccount(t)
	target := c.NewAccount(t)

	deadline := int64(s.e.Chain.BlockHeight()) + 30
	c.WithSigners(creator).InvokeFail(t, market.ErrInvalidPrediction,
		"createMarket", creator.ScriptHash(), target.ScriptHash(), int64(0), deadline)

	other := c.NewAccount(t)
	c.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"createMarket", creator.ScriptHash(), target.ScriptHash(), int64(250), deadline)
}

func TestMarket_StakeRejections(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	creator := c.NewAccount(t)
	target := c.NewAccount(t)
	staker := c.NewAccount(t)
	s.mintTokens(t, staker.ScriptHash(), 50)

	deadline := int64(s.e.Chain.BlockHeight()) + 30
	c.WithSigners(creator).Invoke(t, 1, "createMarket",
		creator.ScriptHash(), target.ScriptHash(), int64(250), deadline)

	cStaker := c.WithSigners(staker)
	cStaker.InvokeFail(t, market.ErrNotFound, "placeStake",
		staker.ScriptHash(), int64(42), int64(10), true)
	cStaker.InvokeFail(t, market.ErrInvalidAmount, "placeStake",
		staker.ScriptHash(), int64(1), int64(0), true)

	t.Run("insufficient balance reverts everything", func(t *testing.T) {
		cStaker.InvokeFail(t, token.ErrInsufficientBalance, "placeStake",
			staker.ScriptHash(), int64(1), int64(100), true)

		s.balanceOf(t, staker.ScriptHash(), 50)
		s.checkStake(t, 1, staker, 0, 0)
		c.Invoke(t, 0, "totalStaked")
		stack, err := c.TestInvoke(t, "getMarket", int64(1))
		require.NoError(t, err)
		m := stack.Pop().Array()
		require.Equal(t, int64(0), m[5].Value().(*big.Int).Int64())
		require.Equal(t, int64(0), m[6].Value().(*big.Int).Int64())
	})
}

func TestMarket_ResolveAndClaimOrdering(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	creator := c.NewAccount(t)
	target := c.NewAccount(t)
	staker := c.NewAccount(t)
	s.mintTokens(t, staker.ScriptHash(), 100)

	deadline := int64(s.e.Chain.BlockHeight()) + 30
	c.WithSigners(creator).Invoke(t, 1, "createMarket",
		creator.ScriptHash(), target.ScriptHash(), int64(250), deadline)
	c.WithSigners(staker).Invoke(t, stackitem.Null{}, "placeStake",
		staker.ScriptHash(), int64(1), int64(100), false)

	c.InvokeFail(t, market.ErrNotEnded, "resolveMarket", int64(1))
	c.WithSigners(staker).InvokeFail(t, market.ErrNotResolved,
		"claimWinnings", staker.ScriptHash(), int64(1))
	c.InvokeFail(t, market.ErrNotFound, "resolveMarket", int64(42))
}

func TestMarket_RepeatableClaims(t *testing.T) {
	s := deploySuite(t, true)
	c := s.marketInvoker()

	creator := c.NewAccount(t)
	target := c.NewAccount(t)
	staker := c.NewAccount(t)
	s.mintTokens(t, staker.ScriptHash(), 100)

	deadline := int64(s.e.Chain.BlockHeight()) + 30
	c.WithSigners(creator).Invoke(t, 1, "createMarket",
		creator.ScriptHash(), target.ScriptHash(), int64(250), deadline)
	c.WithSigners(staker).Invoke(t, stackitem.Null{}, "placeStake",
		staker.ScriptHash(), int64(1), int64(100), false)

	s.advanceChainToHeight(t, uint32(deadline)+2)
	c.Invoke(t, false, "resolveMarket", int64(1))

	c.WithSigners(staker).Invoke(t, 100, "claimWinnings", staker.ScriptHash(), int64(1))
	s.balanceOf(t, staker.ScriptHash(), 100)
	s.checkStake(t, 1, staker, 0, 100)

	// the stake record survives but the pool is drained
	c.WithSigners(staker).InvokeFail(t, token.ErrInsufficientBalance,
		"claimWinnings", staker.ScriptHash(), int64(1))
}

func TestMarket_FeeRate(t *testing.T) {
	s := deploySuite(t, false)
	c := s.marketInvoker()

	c.Invoke(t, common.DefaultProtocolFeeRate, "feeRate")
	c.Invoke(t, stackitem.Null{}, "setFeeRate", int64(200))
	c.Invoke(t, 200, "feeRate")

	c.InvokeFail(t, "fee rate out of range", "setFeeRate", int64(10001))

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrCommitteeWitnessFailed,
		"setFeeRate", int64(300))
}
