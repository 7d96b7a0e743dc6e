/*
Token contract is the unit-of-account ledger of the ReputeFi settlement
suite.

Token contract stores RFI balances of all accounts. It is a NEP-17
compatible contract, so it can be tracked and controlled by N3 compatible
network monitors and wallet software.

Every other settlement contract moves value exclusively through this one:
the market contract pools stakes and pays winnings with TransferX, the loan
contract issues principal with MintX and settles repayments with BurnX, the
insurance contract collects premiums with BurnX. Those methods are gated to
the settlement contract hashes registered on deploy, so no external caller
can move third-party funds. Committee seeds the initial supply with Mint.

# Contract notifications

Transfer notification. This is NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

TransferX notification. This is enhanced transfer notification with details
identifying the settlement operation that moved the funds.

	TransferX:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: details
	    type: ByteArray

Mint notification. Produced when supply is seeded by committee or loan
principal is issued.

	Mint:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Burn notification. Produced when a loan is repaid or a premium is collected.

	Burn:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package token
