// Package protocols implements the FRI low-degree proximity test: the
// commit, query, and verify phases over a Merkle commitment layer and a
// Fiat-Shamir transcript.
package protocols

import (
	"fmt"

	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/logger"
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/utils"
)

// FriLayer is the immutable snapshot of one round of the protocol: the
// round's polynomial, its evaluation domain, the evaluations forming the
// Merkle leaves, and the commitment root. Layers are created once during the
// commit phase and never mutated; the query phase re-opens their commitments.
type FriLayer struct {
	Polynomial  *core.Polynomial
	Domain      []*core.FieldElement
	Evaluations []*core.FieldElement
	Root        []byte

	tree *core.MerkleTree
}

// NewFriLayer evaluates the polynomial over the domain and commits to the
// ordered evaluations
func NewFriLayer(poly *core.Polynomial, domain []*core.FieldElement) (*FriLayer, error) {
	evaluations, err := poly.EvalDomain(domain)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate layer polynomial: %w", err)
	}

	leaves := make([][]byte, len(evaluations))
	for i, eval := range evaluations {
		leaves[i] = eval.Bytes()
	}

	tree, err := core.NewMerkleTree(leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to commit layer evaluations: %w", err)
	}

	return &FriLayer{
		Polynomial:  poly,
		Domain:      domain,
		Evaluations: evaluations,
		Root:        tree.Root(),
		tree:        tree,
	}, nil
}

// Commit runs the FRI commit phase: it commits the initial polynomial over
// the initial domain, then for each round derives a Fiat-Shamir challenge,
// folds the current polynomial, halves the domain, and commits the folded
// evaluations, pushing every root to the transcript. A final fold must reach
// a constant polynomial, whose canonical encoding is pushed as the
// protocol's last disclosed value.
//
// It returns the final constant together with the ordered layer list; the
// layers are retained because the query phase re-opens every round's
// commitment.
func Commit(numLayers int, p0 *core.Polynomial, transcript *Transcript, domain []*core.FieldElement) (*core.FieldElement, []*FriLayer, error) {
	if err := validateCommitParams(numLayers, p0, domain); err != nil {
		return nil, nil, err
	}

	field := p0.Field()
	log := logger.Logger()

	layers := make([]*FriLayer, 0, numLayers)

	currentPoly := p0
	currentDomain := domain

	layer, err := NewFriLayer(currentPoly, currentDomain)
	if err != nil {
		return nil, nil, fmt.Errorf("layer 0: %w", err)
	}
	layers = append(layers, layer)
	transcript.Push(layer.Root)

	for i := 1; i < numLayers; i++ {
		alpha, err := transcript.ProverChallenge(field)
		if err != nil {
			return nil, nil, fmt.Errorf("round %d challenge: %w", i, err)
		}
		log.Debug().Int("round", i).Str("alpha", alpha.String()).Msg("folding polynomial")

		if currentPoly, err = currentPoly.Fold(alpha); err != nil {
			return nil, nil, fmt.Errorf("round %d fold: %w", i, err)
		}
		currentDomain = halveDomain(currentDomain)

		if layer, err = NewFriLayer(currentPoly, currentDomain); err != nil {
			return nil, nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, layer)
		transcript.Push(layer.Root)
	}

	// final round: one more fold must produce a constant
	alpha, err := transcript.ProverChallenge(field)
	if err != nil {
		return nil, nil, fmt.Errorf("final challenge: %w", err)
	}
	log.Debug().Str("alpha", alpha.String()).Msg("final fold")

	lastPoly, err := currentPoly.Fold(alpha)
	if err != nil {
		return nil, nil, fmt.Errorf("final fold: %w", err)
	}
	if lastPoly.Degree() > 0 {
		return nil, nil, fmt.Errorf("%w: final polynomial has degree %d, want a constant",
			core.ErrMalformedInput, lastPoly.Degree())
	}

	finalValue := lastPoly.Coefficient(0)
	transcript.Push(finalValue.Bytes())

	return finalValue, layers, nil
}

// validateCommitParams enforces the layer schedule: a power-of-two domain
// large enough that every committed layer keeps an even size, and a
// coefficient count the final fold can reduce to a constant.
func validateCommitParams(numLayers int, p0 *core.Polynomial, domain []*core.FieldElement) error {
	if numLayers < 1 {
		return fmt.Errorf("%w: layer count must be at least 1", core.ErrMalformedInput)
	}
	if p0 == nil || p0.Degree() < 0 {
		return fmt.Errorf("%w: initial polynomial is empty", core.ErrMalformedInput)
	}

	n := len(domain)
	if !utils.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: domain size %d is not a power of 2", core.ErrMalformedInput, n)
	}
	if utils.Log2(n) < numLayers {
		return fmt.Errorf("%w: domain size %d cannot support %d layers", core.ErrMalformedInput, n, numLayers)
	}

	if p0.NumCoefficients() > 1<<numLayers {
		return fmt.Errorf("%w: %d coefficients cannot fold to a constant in %d rounds",
			core.ErrMalformedInput, p0.NumCoefficients(), numLayers)
	}

	field := p0.Field()
	for i, point := range domain {
		if !point.Field().Equals(field) {
			return fmt.Errorf("domain point %d: %w", i, core.ErrFieldMismatch)
		}
	}

	return nil
}

// halveDomain keeps the even-indexed points of the domain. For a domain of
// powers of a generator g this is the domain of powers of g^2: the squares
// of the first half, so each kept point is the square of the pair that folds
// onto it.
func halveDomain(domain []*core.FieldElement) []*core.FieldElement {
	halved := make([]*core.FieldElement, len(domain)/2)
	for i := range halved {
		halved[i] = domain[2*i]
	}
	return halved
}
