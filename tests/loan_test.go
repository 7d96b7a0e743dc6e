package tests

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/igwefaith662-collab/ReputeFi/common"
	"github.com/igwefaith662-collab/ReputeFi/loan"
	"github.com/igwefaith662-collab/ReputeFi/token"
)

func TestLoan_PreferredRate(t *testing.T) {
	s := deploySuite(t, false)
	c := s.loanInvoker()

	borrower := c.NewAccount(t)
	s.setReputation(t, borrower, 1000, 1000, 1000, 1000)
	s.mintTokens(t, borrower.ScriptHash(), 50)

	cb := c.WithSigners(borrower)
	cb.Invoke(t, 1, "createLoan", borrower.ScriptHash(), int64(100), int64(4))
	s.balanceOf(t, borrower.ScriptHash(), 150)

	stack, err := c.TestInvoke(t, "getLoan", int64(1))
	require.NoError(t, err)
	l := stack.Pop().Array()
	require.Equal(t, borrower.ScriptHash().BytesBE(), func() []byte { b, _ := l[0].TryBytes(); return b }())
	require.Equal(t, int64(100), l[1].Value().(*big.Int).Int64())
	require.Equal(t, int64(common.BaseLendingRate/2), l[2].Value().(*big.Int).Int64())
	require.Equal(t, int64(1000), l[3].Value().(*big.Int).Int64())
	require.Equal(t, int64(4), l[5].Value().(*big.Int).Int64())
	require.Equal(t, false, l[6].Value().(bool))

	// the balanceOf block, three empty blocks and the repayment block,
	// 5 elapsed in total: interest = 100 * 250 * 5 / (10000 * 4) = 3
	s.e.AddNewBlock(t)
	s.e.AddNewBlock(t)
	s.e.AddNewBlock(t)
	cb.Invoke(t, 103, "repayLoan", borrower.ScriptHash(), int64(1))
	s.balanceOf(t, borrower.ScriptHash(), 47)
	s.tokenInvoker().Invoke(t, 47, "totalSupply")

	stack, err = c.TestInvoke(t, "getLoan", int64(1))
	require.NoError(t, err)
	require.Equal(t, true, stack.Pop().Array()[6].Value().(bool))

	cb.InvokeFail(t, loan.ErrAlreadyRepaid, "repayLoan", borrower.ScriptHash(), int64(1))
}

func TestLoan_BaseRate(t *testing.T) {
	s := deploySuite(t, false)
	c := s.loanInvoker()

	borrower := c.NewAccount(t)
	s.setReputation(t, borrower, 200, 100, 300, 230)
	s.mintTokens(t, borrower.ScriptHash(), 10)

	cb := c.WithSigners(borrower)

	// 230 collateralizes at most 23 RFI
	cb.InvokeFail(t, loan.ErrInsufficientReputation,
		"createLoan", borrower.ScriptHash(), int64(24), int64(2))

	cb.Invoke(t, 1, "createLoan", borrower.ScriptHash(), int64(23), int64(2))
	s.balanceOf(t, borrower.ScriptHash(), 33)

	stack, err := c.TestInvoke(t, "getLoan", int64(1))
	require.NoError(t, err)
	require.Equal(t, int64(common.BaseLendingRate),
		stack.Pop().Array()[2].Value().(*big.Int).Int64())

	// interest = 23 * 500 * 2 / (10000 * 2) = 1
	s.e.AddNewBlock(t)
	cb.Invoke(t, 24, "repayLoan", borrower.ScriptHash(), int64(1))
	s.balanceOf(t, borrower.ScriptHash(), 9)
}

func TestLoan_CreateRejections(t *testing.T) {
	s := deploySuite(t, false)
	c := s.loanInvoker()

	borrower := c.NewAccount(t)
	cb := c.WithSigners(borrower)

	cb.InvokeFail(t, loan.ErrInvalidAmount,
		"createLoan", borrower.ScriptHash(), int64(0), int64(10))
	cb.InvokeFail(t, loan.ErrInvalidDuration,
		"createLoan", borrower.ScriptHash(), int64(10), int64(0))

	t.Run("no reputation record", func(t *testing.T) {
		cb.InvokeFail(t, loan.ErrInsufficientReputation,
			"createLoan", borrower.ScriptHash(), int64(10), int64(10))
	})

	t.Run("no witness", func(t *testing.T) {
		other := c.NewAccount(t)
		cb.InvokeFail(t, common.ErrOwnerWitnessFailed,
			"createLoan", other.ScriptHash(), int64(10), int64(10))
	})

	c.InvokeFail(t, loan.ErrNotFound, "getLoan", int64(42))
}

func TestLoan_RepayGuards(t *testing.T) {
	s := deploySuite(t, false)
	c := s.loanInvoker()

	borrower := c.NewAccount(t)
	other := c.NewAccount(t)
	s.setReputation(t, borrower, 1000, 1000, 1000, 1000)

	cb := c.WithSigners(borrower)
	cb.Invoke(t, 1, "createLoan", borrower.ScriptHash(), int64(100), int64(4))

	c.WithSigners(other).InvokeFail(t, loan.ErrNotBorrower,
		"repayLoan", other.ScriptHash(), int64(1))
	c.WithSigners(other).InvokeFail(t, loan.ErrNotFound,
		"repayLoan", other.ScriptHash(), int64(42))
}

func TestLoan_RepayInsufficientBalance(t *testing.T) {
	s := deploySuite(t, false)
	c := s.loanInvoker()

	borrower := c.NewAccount(t)
	sink := c.NewAccount(t)
	s.setReputation(t, borrower, 1000, 1000, 1000, 1000)

	cb := c.WithSigners(borrower)
	cb.Invoke(t, 1, "createLoan", borrower.ScriptHash(), int64(100), int64(4))

	s.tokenInvoker().WithSigners(borrower).Invoke(t, true, "transfer",
		borrower.ScriptHash(), sink.ScriptHash(), int64(90), nil)

	cb.InvokeFail(t, token.ErrInsufficientBalance,
		"repayLoan", borrower.ScriptHash(), int64(1))

	// the failed repayment leaves the loan open
	stack, err := c.TestInvoke(t, "getLoan", int64(1))
	require.NoError(t, err)
	require.Equal(t, false, stack.Pop().Array()[6].Value().(bool))

	// elapsed 4 by the time of the successful repayment: total 102
	s.mintTokens(t, borrower.ScriptHash(), 100)
	cb.Invoke(t, 102, "repayLoan", borrower.ScriptHash(), int64(1))
	s.balanceOf(t, borrower.ScriptHash(), 8)
}

func TestLoan_IDsGrowOnSuccessOnly(t *testing.T) {
	s := deploySuite(t, false)
	c := s.loanInvoker()

	borrower := c.NewAccount(t)
	s.setReputation(t, borrower, 200, 100, 300, 230)

	cb := c.WithSigners(borrower)
	cb.Invoke(t, 1, "createLoan", borrower.ScriptHash(), int64(10), int64(10))
	cb.InvokeFail(t, loan.ErrInsufficientReputation,
		"createLoan", borrower.ScriptHash(), int64(24), int64(10))
	cb.Invoke(t, 2, "createLoan", borrower.ScriptHash(), int64(10), int64(10))
}
