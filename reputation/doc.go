/*
Reputation contract is the score registry of the ReputeFi settlement suite.

Reputation contract stores per-user component scores (github, twitter, defi)
together with the composite score derived from them. The composite is the
single number every other contract consults: certificates and insurance gate
on it, loans size collateral against it, prediction markets snapshot and
resolve against it. Records are overwritten wholesale on each update and are
never deleted.

The registry does not compute component scores itself; they arrive already
computed and the contract only combines and range-checks them.

# Contract notifications

ReputationUpdated notification. Produced on every accepted update.

	ReputationUpdated:
	  - name: user
	    type: Hash160
	  - name: composite
	    type: Integer
*/
package reputationcontract
