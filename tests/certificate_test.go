package tests

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/igwefaith662-collab/ReputeFi/certificate"
	"github.com/igwefaith662-collab/ReputeFi/common"
)

func TestCertificate_Mint(t *testing.T) {
	s := deploySuite(t, false)
	c := s.certificateInvoker()

	acc := c.NewAccount(t)
	s.setReputation(t, acc, 200, 100, 300, 230)

	cAcc := c.WithSigners(acc)
	cAcc.Invoke(t, 1, "mint", acc.ScriptHash(), "github", int64(100))

	c.Invoke(t, stackitem.NewByteArray(acc.ScriptHash().BytesBE()), "ownerOf", int64(1))
	c.Invoke(t, 1, "balanceOf", acc.ScriptHash())
	c.Invoke(t, 1, "totalSupply")

	stack, err := c.TestInvoke(t, "getCertificate", int64(1))
	require.NoError(t, err)
	cert := stack.Pop().Array()
	require.Equal(t, acc.ScriptHash().BytesBE(), func() []byte { b, _ := cert[0].TryBytes(); return b }())
	require.Equal(t, int64(230), cert[1].Value().(*big.Int).Int64())
	require.Equal(t, []byte("github"), func() []byte { b, _ := cert[2].TryBytes(); return b }())
	mintedAt := cert[3].Value().(*big.Int).Int64()
	expiresAt := cert[4].Value().(*big.Int).Int64()
	require.Equal(t, mintedAt+100, expiresAt)

	t.Run("score is a snapshot", func(t *testing.T) {
		s.setReputation(t, acc, 300, 150, 360, 300)
		stack, err := c.TestInvoke(t, "getCertificate", int64(1))
		require.NoError(t, err)
		require.Equal(t, int64(230), stack.Pop().Array()[1].Value().(*big.Int).Int64())
	})
}

func TestCertificate_MintRejections(t *testing.T) {
	s := deploySuite(t, false)
	c := s.certificateInvoker()

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	t.Run("no reputation record", func(t *testing.T) {
		cAcc.InvokeFail(t, certificate.ErrNoRecord,
			"mint", acc.ScriptHash(), "github", int64(100))
	})

	t.Run("no witness", func(t *testing.T) {
		other := c.NewAccount(t)
		cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed,
			"mint", other.ScriptHash(), "github", int64(100))
	})
}

func TestCertificate_IDsNeverReused(t *testing.T) {
	s := deploySuite(t, false)
	c := s.certificateInvoker()

	acc := c.NewAccount(t)
	s.setReputation(t, acc, 200, 100, 300, 230)
	cAcc := c.WithSigners(acc)

	cAcc.Invoke(t, 1, "mint", acc.ScriptHash(), "github", int64(100))

	// a failed mint must not burn an ID
	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, certificate.ErrNoRecord,
		"mint", stranger.ScriptHash(), "twitter", int64(100))

	cAcc.Invoke(t, 2, "mint", acc.ScriptHash(), "defi", int64(200))
	c.Invoke(t, 2, "totalSupply")
	c.Invoke(t, 2, "balanceOf", acc.ScriptHash())
}

func TestCertificate_TokensOf(t *testing.T) {
	s := deploySuite(t, false)
	c := s.certificateInvoker()

	acc := c.NewAccount(t)
	s.setReputation(t, acc, 200, 100, 300, 230)
	cAcc := c.WithSigners(acc)

	cAcc.Invoke(t, 1, "mint", acc.ScriptHash(), "github", int64(100))
	cAcc.Invoke(t, 2, "mint", acc.ScriptHash(), "twitter", int64(100))

	stack, err := c.TestInvoke(t, "tokensOf", acc.ScriptHash())
	require.NoError(t, err)
	iter := stack.Pop().Value().(*storage.Iterator)
	ids := iteratorToArray(iter)
	require.Len(t, ids, 2)
	require.Equal(t, []byte{0x01}, func() []byte { b, _ := ids[0].TryBytes(); return b }())
	require.Equal(t, []byte{0x02}, func() []byte { b, _ := ids[1].TryBytes(); return b }())

	stack, err = c.TestInvoke(t, "tokens")
	require.NoError(t, err)
	iter = stack.Pop().Value().(*storage.Iterator)
	require.Len(t, iteratorToArray(iter), 2)
}
