package reputationcontract

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

// Record stores component and composite reputation scores of a single user.
type Record struct {
	// GithubScore component
	GithubScore int
	// TwitterScore component
	TwitterScore int
	// DefiScore component
	DefiScore int
	// Composite is the weighted combination of the three components.
	Composite int
	// LastUpdated is the block index of the latest update.
	LastUpdated int
}

const (
	recordPrefix = 'r'

	// ErrOutOfRange is thrown when the composite score falls outside
	// [common.MinReputation, common.MaxReputation].
	ErrOutOfRange = "reputation out of range"
	// ErrNoRecord is thrown by GetRecord for unknown users.
	ErrNoRecord = "no reputation record"
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// Put overwrites the whole reputation record of the user with freshly
// supplied component scores. Composite score is the weighted average
// (3*github + 2*twitter + 5*defi) / 10, truncated toward zero. Can be
// invoked only by the user.
//
// Panics with ErrOutOfRange, leaving the previous record untouched, if the
// composite falls outside the allowed range. Returns the composite score.
//
// Produces ReputationUpdated notification.
func Put(user interop.Hash160, githubScore, twitterScore, defiScore int) int {
	common.CheckOwnerWitness(user)

	composite := (3*githubScore + 2*twitterScore + 5*defiScore) / 10
	if composite < common.MinReputation || composite > common.MaxReputation {
		panic(ErrOutOfRange)
	}

	ctx := storage.GetContext()
	rec := Record{
		GithubScore:  githubScore,
		TwitterScore: twitterScore,
		DefiScore:    defiScore,
		Composite:    composite,
		LastUpdated:  ledger.CurrentIndex(),
	}
	common.SetSerialized(ctx, recordKey(user), rec)

	runtime.Notify("ReputationUpdated", user, composite)
	return composite
}

// Get returns the stored composite score of the user, or 0 if the user has
// no record. A zero result always means an absent record: stored composites
// are never below common.MinReputation.
func Get(user interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, recordKey(user))
	if data == nil {
		return 0
	}

	return std.Deserialize(data.([]byte)).(Record).Composite
}

// GetRecord returns the full reputation record of the user. Panics with
// ErrNoRecord for unknown users.
func GetRecord(user interop.Hash160) Record {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, recordKey(user))
	if data == nil {
		panic(ErrNoRecord)
	}

	return std.Deserialize(data.([]byte)).(Record)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func recordKey(user interop.Hash160) []byte {
	return append([]byte{recordPrefix}, user...)
}
