/*
Loan contract is the lending engine of the ReputeFi settlement suite.

Loans are collateralized by reputation rather than by deposited assets: a
borrower's composite score caps the principal they can draw, and the score
at origination is recorded with the loan. Principal enters circulation as a
token mint and leaves it, together with interest, as a burn on repayment.
Interest accrues linearly in block time against the nominal term and is
deliberately not capped once the term is exceeded.

# Contract notifications

LoanCreated notification.

	LoanCreated:
	  - name: borrower
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: amount
	    type: Integer
	  - name: rate
	    type: Integer

LoanRepaid notification.

	LoanRepaid:
	  - name: borrower
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: total
	    type: Integer
*/
package loan
