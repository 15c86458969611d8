// Package friiopp implements a Fast Reed-Solomon Interactive Oracle Proof of
// Proximity (FRI) engine: a prover convinces a verifier that a committed
// function is close to a low-degree polynomial using hash-based Merkle
// commitments and a small number of spot-checks, without revealing the
// polynomial.
//
// The protocol is non-interactive: a Fiat-Shamir transcript derives every
// verifier challenge deterministically from the ordered log of commitments,
// so the verifier replays the prover's transcript instead of talking to it.
//
// # Quick Start
//
// Proving and verifying that a polynomial is low-degree:
//
//	config := friiopp.DefaultConfig()
//	engine, err := friiopp.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	poly, err := friiopp.NewPolynomialFromInt64(engine.Field(), []int64{19, 56, 34, 48, 43, 37, 10, 0})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	transcript := engine.NewTranscript()
//	finalValue, layers, err := engine.Commit(poly, transcript)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = finalValue
//	_ = layers
//
//	if _, err := engine.Query(transcript); err != nil {
//		log.Fatal(err)
//	}
//
//	accepted, err := engine.Verify(transcript)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if accepted {
//		fmt.Println("proof accepted")
//	}
//
// The engine enforces the phase order commit, query, verify. A rejected
// proof surfaces as accepted == false, never as an error: rejecting a
// malicious proof is an expected outcome for a verifier embedded in a
// larger service.
//
// The lower-level phase functions (Commit, Query, Verify) and the building
// blocks (Field, Polynomial, Transcript) are re-exported for callers that
// manage protocol state themselves.
package friiopp
