package common

var (
	stakePrefix   = []byte{0x01}
	payoutPrefix  = []byte{0x02}
	loanPrefix    = []byte{0x03}
	repayPrefix   = []byte{0x04}
	premiumPrefix = []byte{0x05}
)

// StakeTransferDetails marks a token transfer moving a stake into the
// prediction market pool.
func StakeTransferDetails(marketID int) []byte {
	return append(stakePrefix, ID(marketID)...)
}

// PayoutTransferDetails marks a token transfer paying out market winnings.
func PayoutTransferDetails(marketID int) []byte {
	return append(payoutPrefix, ID(marketID)...)
}

// LoanTransferDetails marks a token mint crediting loan principal.
func LoanTransferDetails(loanID int) []byte {
	return append(loanPrefix, ID(loanID)...)
}

// RepayTransferDetails marks a token burn settling a loan.
func RepayTransferDetails(loanID int) []byte {
	return append(repayPrefix, ID(loanID)...)
}

// PremiumTransferDetails marks a token burn collecting an insurance premium.
func PremiumTransferDetails(policyID int) []byte {
	return append(premiumPrefix, ID(policyID)...)
}
