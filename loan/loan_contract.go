package loan

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

// Loan is a reputation-collateralized credit position.
type Loan struct {
	// Borrower of the principal.
	Borrower interop.Hash160
	// Amount is the principal in RFI.
	Amount int
	// InterestRate in basis points, fixed at origination.
	InterestRate int
	// ReputationCollateral is the borrower's composite score snapshotted
	// at origination.
	ReputationCollateral int
	// StartBlock is the block index of origination.
	StartBlock int
	// Duration is the nominal loan term in blocks. Interest accrues
	// linearly against it and keeps growing past it.
	Duration int
	// Repaid transitions false to true exactly once.
	Repaid bool
}

const (
	loanPrefix = 'l'

	counterKey            = "loanID"
	tokenContractKey      = "tokenScriptHash"
	reputationContractKey = "reputationScriptHash"

	// ErrNotFound is thrown for unknown loan IDs.
	ErrNotFound = "loan not found"
	// ErrInvalidAmount is thrown for a zero principal.
	ErrInvalidAmount = "invalid amount"
	// ErrInvalidDuration is thrown for a zero term.
	ErrInvalidDuration = "invalid duration"
	// ErrInsufficientReputation is thrown when the composite score cannot
	// collateralize the requested principal.
	ErrInsufficientReputation = "insufficient reputation"
	// ErrNotBorrower is thrown when anyone but the borrower repays.
	ErrNotBorrower = "not loan borrower"
	// ErrAlreadyRepaid is thrown on double repayment.
	ErrAlreadyRepaid = "loan already repaid"
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
	storage.Put(ctx, counterKey, 0)

	runtime.Log("loan contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("loan contract updated")
}

// CreateLoan originates a loan collateralized by the borrower's composite
// reputation: the score must be at least amount * common.ReputationMultiplier.
// The interest rate follows a two-tier schedule, common.BaseLendingRate for
// scores below common.PreferredRateThreshold and half of it from the
// threshold up. Principal is minted to the borrower through the token
// contract. Can be invoked only by the borrower.
//
// Panics with ErrInvalidAmount, ErrInvalidDuration or
// ErrInsufficientReputation. Returns the new loan ID; IDs grow
// monotonically from 1 and are bumped only on success.
//
// Produces LoanCreated notification.
func CreateLoan(borrower interop.Hash160, amount, duration int) int {
	common.CheckOwnerWitness(borrower)

	if amount <= 0 {
		panic(ErrInvalidAmount)
	}
	if duration <= 0 {
		panic(ErrInvalidDuration)
	}

	ctx := storage.GetContext()
	repContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	composite := contract.Call(repContractAddr, "get", contract.ReadOnly, borrower).(int)
	if composite < amount*common.ReputationMultiplier {
		panic(ErrInsufficientReputation)
	}

	rate := common.BaseLendingRate
	if composite >= common.PreferredRateThreshold {
		rate = common.BaseLendingRate / 2
	}

	id := storage.Get(ctx, counterKey).(int) + 1
	storage.Put(ctx, counterKey, id)

	l := Loan{
		Borrower:             borrower,
		Amount:               amount,
		InterestRate:         rate,
		ReputationCollateral: composite,
		StartBlock:           ledger.CurrentIndex(),
		Duration:             duration,
		Repaid:               false,
	}
	common.SetSerialized(ctx, loanKey(id), l)

	tokenContractAddr := storage.Get(ctx, tokenContractKey).(interop.Hash160)
	contract.Call(tokenContractAddr, "mintX", contract.All,
		borrower, amount, common.LoanTransferDetails(id))

	runtime.Notify("LoanCreated", borrower, id, amount, rate)
	return id
}

// RepayLoan settles the loan: principal plus linearly accrued interest,
// amount * rate * elapsed / (10000 * duration), is burned from the
// borrower's balance. Interest is not capped at the nominal term; past the
// duration it keeps scaling with elapsed blocks. The burn panics on
// insufficient balance, aborting the whole operation. Can be invoked only
// by the borrower.
//
// Panics with ErrNotFound, ErrNotBorrower or ErrAlreadyRepaid. Returns the
// total amount burned.
//
// Produces LoanRepaid notification.
func RepayLoan(borrower interop.Hash160, loanID int) int {
	common.CheckOwnerWitness(borrower)

	ctx := storage.GetContext()
	l := getLoan(ctx, loanID)

	if !common.BytesEqual(l.Borrower, borrower) {
		panic(ErrNotBorrower)
	}
	if l.Repaid {
		panic(ErrAlreadyRepaid)
	}

	elapsed := ledger.CurrentIndex() - l.StartBlock
	interest := l.Amount * l.InterestRate * elapsed / (common.RateDenominator * l.Duration)
	total := l.Amount + interest

	tokenContractAddr := storage.Get(ctx, tokenContractKey).(interop.Hash160)
	contract.Call(tokenContractAddr, "burnX", contract.All,
		borrower, total, common.RepayTransferDetails(loanID))

	l.Repaid = true
	common.SetSerialized(ctx, loanKey(loanID), l)

	runtime.Notify("LoanRepaid", borrower, loanID, total)
	return total
}

// GetLoan returns the stored loan by ID. Panics with ErrNotFound for
// unknown IDs.
func GetLoan(loanID int) Loan {
	ctx := storage.GetReadOnlyContext()
	return getLoan(ctx, loanID)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getLoan(ctx storage.Context, loanID int) Loan {
	data := storage.Get(ctx, loanKey(loanID))
	if data == nil {
		panic(ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Loan)
}

func loanKey(loanID int) []byte {
	return append([]byte{loanPrefix}, common.ID(loanID)...)
}
