package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/igwefaith662-collab/ReputeFi/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for circulation value
	CirculationKey string
}

const (
	symbol      = "RFI"
	decimals    = 8
	circulation = "TotalSupply"

	accPrefix = 'a'

	marketContractKey    = "marketScriptHash"
	loanContractKey      = "loanScriptHash"
	insuranceContractKey = "insuranceScriptHash"

	// ErrInsufficientBalance is thrown when the sender's account cannot
	// cover a transfer or a burn.
	ErrInsufficientBalance = "insufficient balance"
	// ErrUnknownInvoker is thrown when a settlement-only method is called
	// directly instead of from a registered settlement contract.
	ErrUnknownInvoker = "method must be invoked by settlement contract"
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrMarket    interop.Hash160
		addrLoan      interop.Hash160
		addrInsurance interop.Hash160
	})

	if len(args.addrMarket) != interop.Hash160Len ||
		len(args.addrLoan) != interop.Hash160Len ||
		len(args.addrInsurance) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, marketContractKey, args.addrMarket)
	storage.Put(ctx, loanContractKey, args.addrLoan)
	storage.Put(ctx, insuranceContractKey, args.addrInsurance)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Symbol is a NEP-17 standard method that returns RFI token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of RFI
// balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of RFI
// in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns RFI balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers RFI from one account
// to another. Can be invoked only by the account owner.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount, false, nil)
}

// TransferX moves RFI between arbitrary accounts without the sender's
// witness. Can be invoked only by a registered settlement contract: it is
// how the market contract pools stakes and pays winnings out.
//
// Produces Transfer and TransferX notifications. Panics if the sender's
// balance cannot cover the amount, aborting the calling transaction.
func TransferX(from, to interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()
	checkSettlementInvoker(ctx)

	if !token.transfer(ctx, from, to, amount, true, details) {
		panic(ErrInsufficientBalance)
	}
}

// Mint issues RFI to the specified account and increases total supply.
// Can be invoked only by committee; it is the initial supply seeding
// operation.
//
// Produces Mint and Transfer notifications.
func Mint(to interop.Hash160, amount int) {
	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	mint(ctx, to, amount, nil)
}

// MintX issues RFI to the specified account. Can be invoked only by a
// registered settlement contract: it is how the loan contract credits
// principal.
//
// Produces Mint and Transfer notifications.
func MintX(to interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()
	checkSettlementInvoker(ctx)

	mint(ctx, to, amount, details)
}

// BurnX removes RFI from the specified account and decreases total supply.
// Can be invoked only by a registered settlement contract: it is how loan
// repayments and insurance premiums leave circulation.
//
// Produces Burn and Transfer notifications. Panics if the account balance
// cannot cover the amount, aborting the calling transaction.
func BurnX(from interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()
	checkSettlementInvoker(ctx)

	if !token.transfer(ctx, from, nil, amount, true, details) {
		panic(ErrInsufficientBalance)
	}

	supply := token.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}

	storage.Put(ctx, token.CirculationKey, supply-amount)
	runtime.Notify("Burn", from, amount)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func mint(ctx storage.Context, to interop.Hash160, amount int, details []byte) {
	if amount <= 0 {
		panic("invalid amount")
	}

	if !token.transfer(ctx, nil, to, amount, true, details) {
		panic("can't mint assets")
	}

	supply := token.getSupply(ctx)
	storage.Put(ctx, token.CirculationKey, supply+amount)
	runtime.Notify("Mint", to, amount)
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	balance := storage.Get(ctx, accKey(holder))
	if balance != nil {
		return balance.(int)
	}

	return 0
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, internal bool, details []byte) bool {
	amountFrom, ok := t.canTransfer(ctx, from, to, amount, internal)
	if !ok {
		return false
	}

	if len(from) == interop.Hash160Len {
		if amountFrom == amount {
			storage.Delete(ctx, accKey(from))
		} else {
			storage.Put(ctx, accKey(from), amountFrom-amount)
		}
	}

	if len(to) == interop.Hash160Len {
		amountTo := t.balanceOf(ctx, to)
		storage.Put(ctx, accKey(to), amountTo+amount)
	}

	runtime.Notify("Transfer", from, to, amount)
	if internal {
		runtime.Notify("TransferX", from, to, amount, details)
	}

	return true
}

// canTransfer returns the sender's balance if the transfer can be done.
func (t Token) canTransfer(ctx storage.Context, from, to interop.Hash160, amount int, internal bool) (int, bool) {
	if amount < 0 {
		return 0, false
	}

	if !internal {
		if len(to) != interop.Hash160Len || !isUsableAddress(from) {
			runtime.Log("bad script hashes")
			return 0, false
		}
	} else if len(from) == 0 {
		return 0, true
	}

	amountFrom := t.balanceOf(ctx, from)
	if amountFrom < amount {
		runtime.Log("not enough assets")
		return 0, false
	}

	return amountFrom, true
}

// isUsableAddress checks if the sender is either a signing account or the
// calling smart contract itself.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		callingScriptHash := runtime.GetCallingScriptHash()
		if common.BytesEqual(callingScriptHash, addr) {
			return true
		}
	}

	return false
}

// checkSettlementInvoker panics unless the direct caller is one of the
// settlement contracts registered on deploy.
func checkSettlementInvoker(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	if fromKnownContract(ctx, caller, marketContractKey) ||
		fromKnownContract(ctx, caller, loanContractKey) ||
		fromKnownContract(ctx, caller, insuranceContractKey) {
		return
	}

	panic(ErrUnknownInvoker)
}

func fromKnownContract(ctx storage.Context, caller interop.Hash160, key string) bool {
	addr := storage.Get(ctx, key).(interop.Hash160)
	return common.BytesEqual(caller, addr)
}

func accKey(holder interop.Hash160) []byte {
	return append([]byte{accPrefix}, holder...)
}
