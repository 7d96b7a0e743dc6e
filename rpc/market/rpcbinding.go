// Package market contains RPC wrappers for ReputeFi Market contract.
package market

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// MarketMarket is a contract-specific market.Market type used by its methods.
type MarketMarket struct {
	Creator util.Uint160
	Target util.Uint160
	CurrentReputation *big.Int
	PredictedReputation *big.Int
	Deadline *big.Int
	TotalStakedUp *big.Int
	TotalStakedDown *big.Int
	Resolved bool
	Outcome bool
}

// MarketStake is a contract-specific market.Stake type used by its methods.
type MarketStake struct {
	AmountUp *big.Int
	AmountDown *big.Int
}

// MarketCreatedEvent represents "MarketCreated" event emitted by the contract.
type MarketCreatedEvent struct {
	Creator util.Uint160
	Id *big.Int
	Target util.Uint160
	PredictedReputation *big.Int
	Deadline *big.Int
}

// StakePlacedEvent represents "StakePlaced" event emitted by the contract.
type StakePlacedEvent struct {
	Staker util.Uint160
	MarketID *big.Int
	Amount *big.Int
	Up bool
}

// MarketResolvedEvent represents "MarketResolved" event emitted by the contract.
type MarketResolvedEvent struct {
	MarketID *big.Int
	Outcome bool
	CurrentReputation *big.Int
}

// WinningsClaimedEvent represents "WinningsClaimed" event emitted by the contract.
type WinningsClaimedEvent struct {
	Claimer util.Uint160
	MarketID *big.Int
	Payout *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// FeeRate invokes `feeRate` method of contract.
func (c *ContractReader) FeeRate() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "feeRate"))
}

// GetMarket invokes `getMarket` method of contract.
func (c *ContractReader) GetMarket(marketID *big.Int) (*MarketMarket, error) {
	return itemToMarketMarket(unwrap.Item(c.invoker.Call(c.hash, "getMarket", marketID)))
}

// GetStake invokes `getStake` method of contract.
func (c *ContractReader) GetStake(marketID *big.Int, user util.Uint160) (*MarketStake, error) {
	return itemToMarketStake(unwrap.Item(c.invoker.Call(c.hash, "getStake", marketID, user)))
}

// TotalStaked invokes `totalStaked` method of contract.
func (c *ContractReader) TotalStaked() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalStaked"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ClaimWinnings creates a transaction invoking `claimWinnings` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimWinnings(claimer util.Uint160, marketID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimWinnings", claimer, marketID)
}

// ClaimWinningsTransaction creates a transaction invoking `claimWinnings` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimWinningsTransaction(claimer util.Uint160, marketID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimWinnings", claimer, marketID)
}

// ClaimWinningsUnsigned creates a transaction invoking `claimWinnings` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimWinningsUnsigned(claimer util.Uint160, marketID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimWinnings", nil, claimer, marketID)
}

// CreateMarket creates a transaction invoking `createMarket` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateMarket(creator util.Uint160, target util.Uint160, predictedReputation *big.Int, deadline *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createMarket", creator, target, predictedReputation, deadline)
}

// CreateMarketTransaction creates a transaction invoking `createMarket` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateMarketTransaction(creator util.Uint160, target util.Uint160, predictedReputation *big.Int, deadline *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createMarket", creator, target, predictedReputation, deadline)
}

// CreateMarketUnsigned creates a transaction invoking `createMarket` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateMarketUnsigned(creator util.Uint160, target util.Uint160, predictedReputation *big.Int, deadline *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createMarket", nil, creator, target, predictedReputation, deadline)
}

// PlaceStake creates a transaction invoking `placeStake` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) PlaceStake(staker util.Uint160, marketID *big.Int, amount *big.Int, up bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "placeStake", staker, marketID, amount, up)
}

// PlaceStakeTransaction creates a transaction invoking `placeStake` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PlaceStakeTransaction(staker util.Uint160, marketID *big.Int, amount *big.Int, up bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "placeStake", staker, marketID, amount, up)
}

// PlaceStakeUnsigned creates a transaction invoking `placeStake` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PlaceStakeUnsigned(staker util.Uint160, marketID *big.Int, amount *big.Int, up bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "placeStake", nil, staker, marketID, amount, up)
}

// ResolveMarket creates a transaction invoking `resolveMarket` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ResolveMarket(marketID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "resolveMarket", marketID)
}

// ResolveMarketTransaction creates a transaction invoking `resolveMarket` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ResolveMarketTransaction(marketID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "resolveMarket", marketID)
}

// ResolveMarketUnsigned creates a transaction invoking `resolveMarket` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ResolveMarketUnsigned(marketID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "resolveMarket", nil, marketID)
}

// SetFeeRate creates a transaction invoking `setFeeRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetFeeRate(rate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFeeRate", rate)
}

// SetFeeRateTransaction creates a transaction invoking `setFeeRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetFeeRateTransaction(rate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setFeeRate", rate)
}

// SetFeeRateUnsigned creates a transaction invoking `setFeeRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetFeeRateUnsigned(rate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setFeeRate", nil, rate)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToMarketMarket converts stack item into *MarketMarket.
func itemToMarketMarket(item stackitem.Item, err error) (*MarketMarket, error) {
	if err != nil {
		return nil, err
	}
	var res = new(MarketMarket)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of MarketMarket from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *MarketMarket) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 9 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	res.Target, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	index++
	res.CurrentReputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrentReputation: %w", err)
	}

	index++
	res.PredictedReputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field PredictedReputation: %w", err)
	}

	index++
	res.Deadline, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deadline: %w", err)
	}

	index++
	res.TotalStakedUp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalStakedUp: %w", err)
	}

	index++
	res.TotalStakedDown, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalStakedDown: %w", err)
	}

	index++
	res.Resolved, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Resolved: %w", err)
	}

	index++
	res.Outcome, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Outcome: %w", err)
	}

	return nil
}

// itemToMarketStake converts stack item into *MarketStake.
func itemToMarketStake(item stackitem.Item, err error) (*MarketStake, error) {
	if err != nil {
		return nil, err
	}
	var res = new(MarketStake)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of MarketStake from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *MarketStake) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.AmountUp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AmountUp: %w", err)
	}

	index++
	res.AmountDown, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AmountDown: %w", err)
	}

	return nil
}

// MarketCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "MarketCreated" name from the provided [result.ApplicationLog].
func MarketCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MarketCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MarketCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MarketCreated" {
				continue
			}
			event := new(MarketCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MarketCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MarketCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *MarketCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Target, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	index++
	e.PredictedReputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field PredictedReputation: %w", err)
	}

	index++
	e.Deadline, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deadline: %w", err)
	}

	return nil
}

// StakePlacedEventsFromApplicationLog retrieves a set of all emitted events
// with "StakePlaced" name from the provided [result.ApplicationLog].
func StakePlacedEventsFromApplicationLog(log *result.ApplicationLog) ([]*StakePlacedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StakePlacedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "StakePlaced" {
				continue
			}
			event := new(StakePlacedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StakePlacedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StakePlacedEvent or
// returns an error if it's not possible to do to so.
func (e *StakePlacedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Staker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Staker: %w", err)
	}

	index++
	e.MarketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MarketID: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Up, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Up: %w", err)
	}

	return nil
}

// MarketResolvedEventsFromApplicationLog retrieves a set of all emitted events
// with "MarketResolved" name from the provided [result.ApplicationLog].
func MarketResolvedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MarketResolvedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MarketResolvedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MarketResolved" {
				continue
			}
			event := new(MarketResolvedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MarketResolvedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MarketResolvedEvent or
// returns an error if it's not possible to do to so.
func (e *MarketResolvedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.MarketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MarketID: %w", err)
	}

	index++
	e.Outcome, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Outcome: %w", err)
	}

	index++
	e.CurrentReputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrentReputation: %w", err)
	}

	return nil
}

// WinningsClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "WinningsClaimed" name from the provided [result.ApplicationLog].
func WinningsClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*WinningsClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WinningsClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "WinningsClaimed" {
				continue
			}
			event := new(WinningsClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WinningsClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WinningsClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *WinningsClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Claimer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Claimer: %w", err)
	}

	index++
	e.MarketID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MarketID: %w", err)
	}

	index++
	e.Payout, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Payout: %w", err)
	}

	return nil
}
