package market

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

type (
	// Market is a wager on whether the target user's composite reputation
	// will meet the prediction by the deadline.
	Market struct {
		// Creator of the market.
		Creator interop.Hash160
		// Target user whose reputation is wagered on.
		Target interop.Hash160
		// CurrentReputation is the target's composite score snapshotted
		// at creation.
		CurrentReputation int
		// PredictedReputation is the score the up side bets on.
		PredictedReputation int
		// Deadline is the block index from which the market can be
		// resolved and can no longer be staked on.
		Deadline int
		// TotalStakedUp is the up pool size.
		TotalStakedUp int
		// TotalStakedDown is the down pool size.
		TotalStakedDown int
		// Resolved is set once by ResolveMarket.
		Resolved bool
		// Outcome is valid only when Resolved is true.
		Outcome bool
	}

	// Stake is a user's directional position in one market. Amounts only
	// grow while the market is open; the winning side is zeroed by a paid
	// claim unless the contract runs with repeatable claims.
	Stake struct {
		// AmountUp staked on the up side.
		AmountUp int
		// AmountDown staked on the down side.
		AmountDown int
	}
)

// Prefixes used for contract data storage.
const (
	// prefixMarket contains map from market ID to Market.
	prefixMarket byte = 0x01
	// prefixStake contains map from (market ID + user) to Stake.
	prefixStake byte = 0x02
)

const (
	counterKey            = "marketID"
	totalStakedKey        = "totalStaked"
	feeRateKey            = "protocolFeeRate"
	repeatableClaimsKey   = "repeatableClaims"
	tokenContractKey      = "tokenScriptHash"
	reputationContractKey = "reputationScriptHash"

	// ErrNotFound is thrown for unknown market IDs.
	ErrNotFound = "market not found"
	// ErrInvalidPrediction is thrown when a market predicts a zero score.
	ErrInvalidPrediction = "invalid prediction"
	// ErrInvalidAmount is thrown for zero stake amounts.
	ErrInvalidAmount = "invalid amount"
	// ErrAlreadyResolved is thrown when staking on or resolving a market
	// that has already been resolved.
	ErrAlreadyResolved = "market already resolved"
	// ErrEnded is thrown when staking past the deadline.
	ErrEnded = "market ended"
	// ErrNotEnded is thrown when resolving before the deadline.
	ErrNotEnded = "market not ended"
	// ErrNotResolved is thrown when claiming winnings on an open market.
	ErrNotResolved = "market not resolved"
	// ErrNoStake is thrown when claiming without any stake record.
	ErrNoStake = "no stake found"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrToken        interop.Hash160
		addrReputation   interop.Hash160
		repeatableClaims bool
	})

	if len(args.addrToken) != interop.Hash160Len || len(args.addrReputation) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, tokenContractKey, args.addrToken)
	storage.Put(ctx, reputationContractKey, args.addrReputation)
	storage.Put(ctx, counterKey, 0)
	storage.Put(ctx, totalStakedKey, 0)
	storage.Put(ctx, feeRateKey, common.DefaultProtocolFeeRate)
	storage.Put(ctx, repeatableClaimsKey, args.repeatableClaims)

	if args.repeatableClaims {
		runtime.Log("market contract allows repeated claims")
	}
	runtime.Log("market contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("market contract updated")
}

// CreateMarket opens a new prediction market on the target user's future
// composite reputation. The target's current composite is snapshotted for
// reference; resolution reads the live value again. Can be invoked only by
// the creator.
//
// Panics with ErrInvalidPrediction for a zero predicted score. Returns the
// new market ID; IDs grow monotonically from 1 and are bumped only on
// success.
//
// Produces MarketCreated notification.
func CreateMarket(creator, target interop.Hash160, predictedReputation, deadline int) int {
	common.CheckOwnerWitness(creator)

	if predictedReputation == 0 {
		panic(ErrInvalidPrediction)
	}

	ctx := storage.GetContext()
	repContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	current := contract.Call(repContractAddr, "get", contract.ReadOnly, target).(int)

	id := storage.Get(ctx, counterKey).(int) + 1
	storage.Put(ctx, counterKey, id)

	m := Market{
		Creator:             creator,
		Target:              target,
		CurrentReputation:   current,
		PredictedReputation: predictedReputation,
		Deadline:            deadline,
		TotalStakedUp:       0,
		TotalStakedDown:     0,
		Resolved:            false,
		Outcome:             false,
	}
	common.SetSerialized(ctx, marketKey(id), m)

	runtime.Notify("MarketCreated", creator, id, target, predictedReputation, deadline)
	return id
}

// PlaceStake moves amount of RFI from the staker into the market pool on
// the chosen side (up is a bet that the target reaches the prediction).
// Can be invoked only by the staker. The token transfer panics on
// insufficient balance, aborting the whole operation.
//
// Panics with ErrNotFound, ErrInvalidAmount, ErrAlreadyResolved or
// ErrEnded.
//
// Produces StakePlaced notification.
func PlaceStake(staker interop.Hash160, marketID, amount int, up bool) {
	common.CheckOwnerWitness(staker)

	ctx := storage.GetContext()
	m := getMarket(ctx, marketID)

	if amount <= 0 {
		panic(ErrInvalidAmount)
	}
	if m.Resolved {
		panic(ErrAlreadyResolved)
	}
	if ledger.CurrentIndex() >= m.Deadline {
		panic(ErrEnded)
	}

	tokenContractAddr := storage.Get(ctx, tokenContractKey).(interop.Hash160)
	contract.Call(tokenContractAddr, "transferX", contract.All,
		staker, runtime.GetExecutingScriptHash(), amount,
		common.StakeTransferDetails(marketID))

	s := getStake(ctx, marketID, staker)
	if up {
		m.TotalStakedUp += amount
		s.AmountUp += amount
	} else {
		m.TotalStakedDown += amount
		s.AmountDown += amount
	}
	common.SetSerialized(ctx, marketKey(marketID), m)
	common.SetSerialized(ctx, stakeKey(marketID, staker), s)

	total := storage.Get(ctx, totalStakedKey).(int)
	storage.Put(ctx, totalStakedKey, total+amount)

	runtime.Notify("StakePlaced", staker, marketID, amount, up)
}

// ResolveMarket settles the market against the target's live composite
// reputation: the outcome is true when the current composite meets or
// exceeds the prediction. The outcome is recorded permanently; a second
// call always faults, it never recomputes a drifted reputation.
//
// Panics with ErrNotFound, ErrAlreadyResolved or ErrNotEnded. Returns the
// outcome.
//
// Produces MarketResolved notification.
func ResolveMarket(marketID int) bool {
	ctx := storage.GetContext()
	m := getMarket(ctx, marketID)

	if m.Resolved {
		panic(ErrAlreadyResolved)
	}
	if ledger.CurrentIndex() < m.Deadline {
		panic(ErrNotEnded)
	}

	repContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	current := contract.Call(repContractAddr, "get", contract.ReadOnly, m.Target).(int)

	m.Resolved = true
	m.Outcome = current >= m.PredictedReputation
	common.SetSerialized(ctx, marketKey(marketID), m)

	runtime.Notify("MarketResolved", marketID, m.Outcome, current)
	return m.Outcome
}

// ClaimWinnings pays the claimer's pari-mutuel share of the resolved
// market: their winning-side stake plus a proportional cut of the losing
// pool, s + s*L/W with integer division. A claimer with no winning-side
// stake receives 0 and no transfer is made. Unless the contract was
// deployed with repeatable claims, the paid winning-side stake is zeroed so
// a second claim yields 0. Can be invoked only by the claimer.
//
// Panics with ErrNotFound, ErrNoStake or ErrNotResolved. Returns the
// payout.
//
// Produces WinningsClaimed notification.
func ClaimWinnings(claimer interop.Hash160, marketID int) int {
	common.CheckOwnerWitness(claimer)

	ctx := storage.GetContext()
	m := getMarket(ctx, marketID)

	data := storage.Get(ctx, stakeKey(marketID, claimer))
	if data == nil {
		panic(ErrNoStake)
	}
	if !m.Resolved {
		panic(ErrNotResolved)
	}

	s := std.Deserialize(data.([]byte)).(Stake)

	var winningStake, winningPool, losingPool int
	if m.Outcome {
		winningStake = s.AmountUp
		winningPool = m.TotalStakedUp
		losingPool = m.TotalStakedDown
	} else {
		winningStake = s.AmountDown
		winningPool = m.TotalStakedDown
		losingPool = m.TotalStakedUp
	}

	payout := winningStake
	if winningPool > 0 {
		payout = winningStake + winningStake*losingPool/winningPool
	}

	if payout > 0 {
		tokenContractAddr := storage.Get(ctx, tokenContractKey).(interop.Hash160)
		contract.Call(tokenContractAddr, "transferX", contract.All,
			runtime.GetExecutingScriptHash(), claimer, payout,
			common.PayoutTransferDetails(marketID))
	}

	if !storage.Get(ctx, repeatableClaimsKey).(bool) {
		if m.Outcome {
			s.AmountUp = 0
		} else {
			s.AmountDown = 0
		}
		common.SetSerialized(ctx, stakeKey(marketID, claimer), s)
	}

	runtime.Notify("WinningsClaimed", claimer, marketID, payout)
	return payout
}

// GetMarket returns the stored market by ID. Panics with ErrNotFound for
// unknown IDs.
func GetMarket(marketID int) Market {
	ctx := storage.GetReadOnlyContext()
	return getMarket(ctx, marketID)
}

// GetStake returns the user's directional stake in the market. Unknown
// user/market pairs yield a zero stake.
func GetStake(marketID int, user interop.Hash160) Stake {
	ctx := storage.GetReadOnlyContext()
	return getStake(ctx, marketID, user)
}

// TotalStaked returns the all-time sum of stakes placed across all markets.
func TotalStaked() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, totalStakedKey).(int)
}

// FeeRate returns the protocol fee rate in basis points.
func FeeRate() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, feeRateKey).(int)
}

// SetFeeRate updates the protocol fee rate. Can be invoked only by
// committee.
func SetFeeRate(rate int) {
	common.CheckCommitteeWitness()

	if rate < 0 || rate > common.RateDenominator {
		panic("fee rate out of range")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, feeRateKey, rate)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getMarket(ctx storage.Context, marketID int) Market {
	data := storage.Get(ctx, marketKey(marketID))
	if data == nil {
		panic(ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Market)
}

func getStake(ctx storage.Context, marketID int, user interop.Hash160) Stake {
	data := storage.Get(ctx, stakeKey(marketID, user))
	if data == nil {
		return Stake{AmountUp: 0, AmountDown: 0}
	}

	return std.Deserialize(data.([]byte)).(Stake)
}

func marketKey(marketID int) []byte {
	return append([]byte{prefixMarket}, common.ID(marketID)...)
}

func stakeKey(marketID int, user interop.Hash160) []byte {
	return append(append([]byte{prefixStake}, common.ID(marketID)...), user...)
}
