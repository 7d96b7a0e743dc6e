package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/igwefaith662-collab/ReputeFi/common"
	"github.com/igwefaith662-collab/ReputeFi/token"
)

func TestToken_Info(t *testing.T) {
	s := deploySuite(t, false)
	c := s.tokenInvoker()

	c.Invoke(t, "RFI", "symbol")
	c.Invoke(t, 8, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, common.Version, "version")
}

func TestToken_Mint(t *testing.T) {
	s := deploySuite(t, false)
	c := s.tokenInvoker()

	acc := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "mint", acc.ScriptHash(), int64(500))
	c.Invoke(t, 500, "balanceOf", acc.ScriptHash())
	c.Invoke(t, 500, "totalSupply")

	t.Run("not committee", func(t *testing.T) {
		cAcc := c.WithSigners(acc)
		cAcc.InvokeFail(t, common.ErrCommitteeWitnessFailed,
			"mint", acc.ScriptHash(), int64(100))
	})

	t.Run("invalid amount", func(t *testing.T) {
		c.InvokeFail(t, "invalid amount", "mint", acc.ScriptHash(), int64(0))
	})
}

func TestToken_Transfer(t *testing.T) {
	s := deploySuite(t, false)
	c := s.tokenInvoker()

	from := c.NewAccount(t)
	to := c.NewAccount(t)
	s.mintTokens(t, from.ScriptHash(), 300)

	cFrom := c.WithSigners(from)
	cFrom.Invoke(t, true, "transfer", from.ScriptHash(), to.ScriptHash(), int64(120), nil)
	c.Invoke(t, 180, "balanceOf", from.ScriptHash())
	c.Invoke(t, 120, "balanceOf", to.ScriptHash())

	t.Run("transfer all clears the account", func(t *testing.T) {
		cFrom.Invoke(t, true, "transfer", from.ScriptHash(), to.ScriptHash(), int64(180), nil)
		c.Invoke(t, 0, "balanceOf", from.ScriptHash())
		c.Invoke(t, 300, "balanceOf", to.ScriptHash())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		cTo := c.WithSigners(to)
		cTo.Invoke(t, false, "transfer", to.ScriptHash(), from.ScriptHash(), int64(1000), nil)
	})

	t.Run("no witness", func(t *testing.T) {
		cFrom.Invoke(t, false, "transfer", to.ScriptHash(), from.ScriptHash(), int64(10), nil)
	})
}

func TestToken_SettlementOnlyMethods(t *testing.T) {
	s := deploySuite(t, false)
	c := s.tokenInvoker()

	acc := c.NewAccount(t)
	s.mintTokens(t, acc.ScriptHash(), 100)

	c.InvokeFail(t, token.ErrUnknownInvoker,
		"transferX", acc.ScriptHash(), c.NewAccount(t).ScriptHash(), int64(10), []byte{})
	c.InvokeFail(t, token.ErrUnknownInvoker,
		"mintX", acc.ScriptHash(), int64(10), []byte{})
	c.InvokeFail(t, token.ErrUnknownInvoker,
		"burnX", acc.ScriptHash(), int64(10), []byte{})
}
