package protocols

import (
	"bytes"
	"fmt"

	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
)

// Verify runs the FRI verify phase against the committed layers and the
// query decommitments, replaying the transcript to re-derive every
// challenge at the position the prover used.
//
// A failed check yields (false, nil): an invalid proof is an expected
// protocol outcome, not an error. Errors are reserved for structural
// problems such as an exhausted transcript or an empty layer list.
func Verify(layers []*FriLayer, decommitments []*FriDecommitment, transcript *Transcript) (bool, error) {
	if len(layers) == 0 {
		return false, fmt.Errorf("%w: no layers to verify", core.ErrMalformedInput)
	}
	if len(layers[0].Domain) == 0 {
		return false, fmt.Errorf("%w: first layer has an empty domain", core.ErrMalformedInput)
	}

	field := layers[0].Domain[0].Field()

	challenges, finalChallenge, finalValue, ok, err := replayCommitTranscript(layers, transcript, field)
	if err != nil || !ok {
		return false, err
	}

	// queries are transcript-bound: re-derive them and require the prover to
	// have used exactly this sequence
	indices, err := transcript.SampleIndices(len(layers[0].Domain), len(decommitments))
	if err != nil {
		return false, fmt.Errorf("failed to re-derive query indices: %w", err)
	}

	inv2, err := field.NewElementFromInt64(2).Inv()
	if err != nil {
		return false, fmt.Errorf("field characteristic 2 is unsupported: %w", err)
	}

	for q, decommitment := range decommitments {
		if decommitment.Index != indices[q] {
			return false, nil
		}
		if !verifyQuery(layers, decommitment, challenges, finalChallenge, finalValue, inv2) {
			return false, nil
		}
	}

	return true, nil
}

// replayCommitTranscript pulls the layer roots and the final constant in
// commit order, deriving each verifier challenge from exactly the prefix
// visible when the prover derived its counterpart. Root mismatches are a
// rejection (ok=false); a short transcript is an error.
func replayCommitTranscript(layers []*FriLayer, transcript *Transcript, field *core.Field) (
	challenges []*core.FieldElement, finalChallenge, finalValue *core.FieldElement, ok bool, err error) {

	root, err := transcript.Pull()
	if err != nil {
		return nil, nil, nil, false, fmt.Errorf("layer 0 root: %w", err)
	}
	if !bytes.Equal(root, layers[0].Root) {
		return nil, nil, nil, false, nil
	}

	challenges = make([]*core.FieldElement, 0, len(layers)-1)
	for i := 1; i < len(layers); i++ {
		challenge, err := transcript.VerifierChallenge(field)
		if err != nil {
			return nil, nil, nil, false, fmt.Errorf("round %d challenge: %w", i, err)
		}
		challenges = append(challenges, challenge)

		if root, err = transcript.Pull(); err != nil {
			return nil, nil, nil, false, fmt.Errorf("layer %d root: %w", i, err)
		}
		if !bytes.Equal(root, layers[i].Root) {
			return nil, nil, nil, false, nil
		}
	}

	if finalChallenge, err = transcript.VerifierChallenge(field); err != nil {
		return nil, nil, nil, false, fmt.Errorf("final challenge: %w", err)
	}

	finalBytes, err := transcript.Pull()
	if err != nil {
		return nil, nil, nil, false, fmt.Errorf("final value: %w", err)
	}
	finalValue = field.Sample(finalBytes)

	return challenges, finalChallenge, finalValue, true, nil
}

// verifyQuery checks one decommitment across every layer: both inclusion
// proofs against the layer root, then the fold consistency identity
//
//	folded = (e + e_sym)/2 + challenge * (e - e_sym)/(2x)
//
// against the next layer's opened evaluation, and for the last layer against
// the disclosed final constant. Arithmetic failures mean the decommitment
// carries elements from the wrong field and reject the proof.
func verifyQuery(layers []*FriLayer, decommitment *FriDecommitment,
	challenges []*core.FieldElement, finalChallenge, finalValue, inv2 *core.FieldElement) bool {

	if len(decommitment.Evaluations) != len(layers) ||
		len(decommitment.EvaluationsSym) != len(layers) ||
		len(decommitment.AuthPaths) != len(layers) ||
		len(decommitment.AuthPathsSym) != len(layers) {
		return false
	}

	for i, layer := range layers {
		n := len(layer.Domain)
		if n == 0 || n%2 != 0 {
			return false
		}
		j := decommitment.Index % n
		jSym := (j + n/2) % n

		eval := decommitment.Evaluations[i]
		evalSym := decommitment.EvaluationsSym[i]

		if !core.VerifyProof(layer.Root, eval.Bytes(), decommitment.AuthPaths[i]) {
			return false
		}
		if !core.VerifyProof(layer.Root, evalSym.Bytes(), decommitment.AuthPathsSym[i]) {
			return false
		}

		// proofs must bind the openings to the sampled positions
		if !eval.Equal(layer.Evaluations[j]) || !evalSym.Equal(layer.Evaluations[jSym]) {
			return false
		}

		challenge := finalChallenge
		if i < len(layers)-1 {
			challenge = challenges[i]
		}

		folded, err := foldEvaluationPair(eval, evalSym, layer.Domain[j], challenge, inv2)
		if err != nil {
			return false
		}

		expected := finalValue
		if i < len(layers)-1 {
			expected = decommitment.Evaluations[i+1]
		}
		if !folded.Equal(expected) {
			return false
		}
	}

	return true
}

// foldEvaluationPair recomputes the next layer's evaluation from one layer's
// symmetric pair: with f(x) = f_even(x^2) + x*f_odd(x^2),
//
//	f_even(x^2) = (f(x) + f(-x))/2
//	f_odd(x^2)  = (f(x) - f(-x))/(2x)
//
// so the fold f_even + challenge*f_odd evaluated at x^2 is recoverable from
// the pair alone.
func foldEvaluationPair(eval, evalSym, x, challenge, inv2 *core.FieldElement) (*core.FieldElement, error) {
	sum, err := eval.Add(evalSym)
	if err != nil {
		return nil, err
	}
	evenTerm, err := sum.Mul(inv2)
	if err != nil {
		return nil, err
	}

	diff, err := eval.Sub(evalSym)
	if err != nil {
		return nil, err
	}
	xInv, err := x.Inv()
	if err != nil {
		return nil, err
	}
	oddTerm, err := diff.Mul(inv2)
	if err != nil {
		return nil, err
	}
	if oddTerm, err = oddTerm.Mul(xInv); err != nil {
		return nil, err
	}
	if oddTerm, err = oddTerm.Mul(challenge); err != nil {
		return nil, err
	}

	return evenTerm.Add(oddTerm)
}
