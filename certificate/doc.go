/*
Certificate contract is the reputation attestation registry of the ReputeFi
settlement suite.

Certificate contract mints non-divisible tokens that freeze the owner's
composite reputation score at a point in time, labelled with the protocol
the attestation targets. Minting is gated by the minimum composite score and
is available only to accounts with an existing reputation record. The token
surface follows the NEP-11 shape (ownerOf, balanceOf, tokens, tokensOf,
properties) but deliberately omits transfer: a certificate attests its
original owner and is not meant to change hands.

Expiry recorded in a certificate is informational. No contract in the suite
sweeps or rejects expired certificates.

# Contract notifications

Transfer notification. Produced on mint, NEP-11 style, with null sender.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

CertificateMinted notification.

	CertificateMinted:
	  - name: owner
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: reputation
	    type: Integer
*/
package certificate
