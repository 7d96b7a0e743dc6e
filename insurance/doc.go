/*
Insurance contract is the coverage engine of the ReputeFi settlement suite.

Policies are sold to accounts holding the minimum composite reputation and
are priced as a flat share of the coverage amount. The premium leaves
circulation as a token burn. This is intentionally the full scope: no
claims processing or expiry path exists, a policy only records what was
bought and when.

# Contract notifications

PolicyPurchased notification.

	PolicyPurchased:
	  - name: buyer
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: coverage
	    type: Integer
	  - name: premium
	    type: Integer
*/
package insurance
