package certificate

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/igwefaith662-collab/ReputeFi/common"
)

// Certificate is a snapshot attestation of an owner's reputation at mint
// time.
type Certificate struct {
	// Owner of the certificate.
	Owner interop.Hash160
	// ReputationScore is the composite score frozen at mint.
	ReputationScore int
	// Protocol is a short label of the protocol the attestation targets.
	Protocol string
	// MintedAt is the block index of the mint.
	MintedAt int
	// ExpiresAt is MintedAt plus the requested duration. The field is
	// informational, nothing in the suite enforces expiry (no sweep, no
	// consuming check).
	ExpiresAt int
}

// Prefixes used for contract data storage.
const (
	// prefixCertificate contains map from certificate ID to Certificate.
	prefixCertificate byte = 0x01
	// prefixBalance contains map from owner to the number of certificates
	// they hold.
	prefixBalance byte = 0x02
	// prefixAccountToken contains map from (owner + certificate ID) to
	// certificate ID.
	prefixAccountToken byte = 0x03
)

const (
	counterKey            = "certificateID"
	reputationContractKey = "reputationScriptHash"

	// ErrNoRecord is thrown when the minting account has no reputation
	// record at all.
	ErrNoRecord = "no reputation record"
	// ErrInsufficientReputation is thrown when the composite score is
	// below common.MinReputation.
	ErrInsufficientReputation = "insufficient reputation"
	// ErrNotFound is thrown by accessors for unknown certificate IDs.
	ErrNotFound = "certificate not found"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrReputation interop.Hash160
	})

	if len(args.addrReputation) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, reputationContractKey, args.addrReputation)
	storage.Put(ctx, counterKey, 0)

	runtime.Log("certificate contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("certificate contract updated")
}

// Symbol returns the certificate token symbol.
func Symbol() string {
	return "RCRT"
}

// Decimals returns the certificate token decimals. Certificates are
// non-divisible.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of certificates ever minted.
// Certificates are never burnt, so the mint counter is the supply.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, counterKey).(int)
}

// Mint issues a new certificate attesting the owner's current composite
// reputation for the given protocol label. Certificate IDs grow
// monotonically from 1 and are bumped only on successful mint. Can be
// invoked only by the owner.
//
// Panics with ErrNoRecord if the owner has no reputation record and with
// ErrInsufficientReputation if the composite score is below
// common.MinReputation. Returns the new certificate ID.
//
// Produces Transfer (mint) and CertificateMinted notifications.
func Mint(owner interop.Hash160, protocol string, duration int) int {
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	repContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)

	score := contract.Call(repContractAddr, "get", contract.ReadOnly, owner).(int)
	if score == 0 {
		panic(ErrNoRecord)
	}
	if score < common.MinReputation {
		panic(ErrInsufficientReputation)
	}

	id := storage.Get(ctx, counterKey).(int) + 1
	storage.Put(ctx, counterKey, id)

	now := ledger.CurrentIndex()
	cert := Certificate{
		Owner:           owner,
		ReputationScore: score,
		Protocol:        protocol,
		MintedAt:        now,
		ExpiresAt:       now + duration,
	}
	common.SetSerialized(ctx, certKey(id), cert)

	updateBalance(ctx, owner, +1)
	storage.Put(ctx, accountTokenKey(owner, id), common.ID(id))

	postTransfer(nil, owner, common.ID(id))
	runtime.Notify("CertificateMinted", owner, id, score)

	return id
}

// OwnerOf returns the owner of the specified certificate.
func OwnerOf(id int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getCertificate(ctx, id).Owner
}

// GetCertificate returns the stored certificate by ID. Panics with
// ErrNotFound for unknown IDs.
func GetCertificate(id int) Certificate {
	ctx := storage.GetReadOnlyContext()
	return getCertificate(ctx, id)
}

// Properties returns the reputation snapshot and validity bounds of the
// specified certificate.
func Properties(id int) map[string]interface{} {
	ctx := storage.GetReadOnlyContext()
	cert := getCertificate(ctx, id)
	return map[string]interface{}{
		"owner":      cert.Owner,
		"reputation": cert.ReputationScore,
		"protocol":   cert.Protocol,
		"mintedAt":   cert.MintedAt,
		"expiresAt":  cert.ExpiresAt,
	}
}

// BalanceOf returns the number of certificates held by the specified owner.
func BalanceOf(owner interop.Hash160) int {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// Tokens returns an iterator over all minted certificates.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixCertificate}, storage.ValuesOnly|storage.DeserializeValues)
}

// TokensOf returns an iterator over certificate IDs owned by the specified
// owner.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// postTransfer sends Transfer notification to the network. Certificates
// are not transferable, the only emitter is mint (from is nil), so there
// is no onNEP11Payment forwarding.
func postTransfer(from, to interop.Hash160, tokenID []byte) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
}

func getCertificate(ctx storage.Context, id int) Certificate {
	data := storage.Get(ctx, certKey(id))
	if data == nil {
		panic(ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Certificate)
}

func updateBalance(ctx storage.Context, owner interop.Hash160, delta int) {
	key := append([]byte{prefixBalance}, owner...)
	balance := 0
	if b := storage.Get(ctx, key); b != nil {
		balance = b.(int)
	}
	storage.Put(ctx, key, balance+delta)
}

func certKey(id int) []byte {
	return append([]byte{prefixCertificate}, common.ID(id)...)
}

func accountTokenKey(owner interop.Hash160, id int) []byte {
	return append(append([]byte{prefixAccountToken}, owner...), common.ID(id)...)
}
