/*
Market contract is the prediction market engine of the ReputeFi settlement
suite.

A market wagers on whether a target user's composite reputation will meet
or exceed a predicted value by a deadline (a block index). Stakes are
directional and pooled: the token contract moves each stake into the market
contract account, and after resolution the losing pool is redistributed to
winners in proportion to their winning-side stake (pari-mutuel). Resolution
reads the live reputation registry once and records the outcome
permanently.

Claims are single-shot by default: a paid claim zeroes the claimed
winning-side stake, so claiming again yields nothing. Deploying with
repeatable claims preserves the historical behavior where the stake record
survives the payout.

# Contract notifications

MarketCreated notification.

	MarketCreated:
	  - name: creator
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: target
	    type: Hash160
	  - name: prediction
	    type: Integer
	  - name: deadline
	    type: Integer

StakePlaced notification.

	StakePlaced:
	  - name: staker
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: amount
	    type: Integer
	  - name: up
	    type: Boolean

MarketResolved notification.

	MarketResolved:
	  - name: id
	    type: Integer
	  - name: outcome
	    type: Boolean
	  - name: reputation
	    type: Integer

WinningsClaimed notification.

	WinningsClaimed:
	  - name: claimer
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: payout
	    type: Integer
*/
package market
