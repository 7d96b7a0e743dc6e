package insurance

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/igwefaith662-collab/ReputeFi/common"
)

// Policy is a coverage position held by a user. Active is set on purchase
// and never transitions, there is no claims or expiry processing.
type Policy struct {
	// CoverageAmount in RFI.
	CoverageAmount int
	// PremiumPaid is the burned premium.
	PremiumPaid int
	// StartBlock is the block index of the purchase.
	StartBlock int
	// Duration of the coverage in blocks, informational.
	Duration int
	// Active flag, always true once purchased.
	Active bool
}

// Prefixes used for contract data storage.
const (
	// prefixPolicy contains map from (user + policy ID) to Policy.
	prefixPolicy byte = 0x01
	// prefixCounter contains map from user to their latest policy ID.
	prefixCounter byte = 0x02
)

const (
	tokenContractKey      = "tokenScriptHash"
	reputationContractKey = "reputationScriptHash"

	// ErrInvalidAmount is thrown for a zero coverage amount.
	ErrInvalidAmount = "invalid amount"
	// ErrInsufficientReputation is thrown when the buyer's composite
	// score is below common.MinReputation.
	ErrInsufficientReputation = "insufficient reputation"
	// ErrNotFound is thrown by accessors for unknown policies.
	ErrNotFound = "policy not found"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrToken      interop.Hash160
		addrReputation interop.Hash160
	})

	if len(args.addrToken) != interop.Hash160Len || len(args.addrReputation) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, tokenContractKey, args.addrToken)
	storage.Put(ctx, reputationContractKey, args.addrReputation)

	runtime.Log("insurance contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("insurance contract updated")
}

// Purchase sells a coverage policy priced at a flat
// common.InsurancePremiumRate of the coverage amount. The premium is burned
// from the buyer's balance through the token contract; the burn panics on
// insufficient balance, aborting the whole operation. Can be invoked only
// by the buyer.
//
// Panics with ErrInvalidAmount or ErrInsufficientReputation. Returns the
// new policy ID; IDs grow per user, monotonically from 1.
//
// Produces PolicyPurchased notification.
func Purchase(buyer interop.Hash160, coverageAmount, duration int) int {
	common.CheckOwnerWitness(buyer)

	if coverageAmount <= 0 {
		panic(ErrInvalidAmount)
	}

	ctx := storage.GetContext()
	repContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	composite := contract.Call(repContractAddr, "get", contract.ReadOnly, buyer).(int)
	if composite < common.MinReputation {
		panic(ErrInsufficientReputation)
	}

	premium := coverageAmount * common.InsurancePremiumRate / common.RateDenominator

	id := nextPolicyID(ctx, buyer)

	if premium > 0 {
		tokenContractAddr := storage.Get(ctx, tokenContractKey).(interop.Hash160)
		contract.Call(tokenContractAddr, "burnX", contract.All,
			buyer, premium, common.PremiumTransferDetails(id))
	}

	p := Policy{
		CoverageAmount: coverageAmount,
		PremiumPaid:    premium,
		StartBlock:     ledger.CurrentIndex(),
		Duration:       duration,
		Active:         true,
	}
	common.SetSerialized(ctx, policyKey(buyer, id), p)

	runtime.Notify("PolicyPurchased", buyer, id, coverageAmount, premium)
	return id
}

// GetPolicy returns the user's stored policy by ID. Panics with ErrNotFound
// for unknown policies.
func GetPolicy(user interop.Hash160, policyID int) Policy {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, policyKey(user, policyID))
	if data == nil {
		panic(ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Policy)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func nextPolicyID(ctx storage.Context, user interop.Hash160) int {
	key := append([]byte{prefixCounter}, user...)
	id := 1
	if data := storage.Get(ctx, key); data != nil {
		id = data.(int) + 1
	}
	storage.Put(ctx, key, id)
	return id
}

func policyKey(user interop.Hash160, policyID int) []byte {
	return append(append([]byte{prefixPolicy}, user...), common.ID(policyID)...)
}
