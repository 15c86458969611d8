package protocols

import (
	"fmt"

	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
)

// FriDecommitment holds the openings for one query: per layer, the
// evaluation at the sampled point, the evaluation at its symmetric point,
// and a Merkle authentication path for each against that layer's root.
type FriDecommitment struct {
	// Index is the sampled position in the first layer's domain; layer i
	// uses it reduced modulo that layer's domain size
	Index int

	Evaluations    []*core.FieldElement
	EvaluationsSym []*core.FieldElement
	AuthPaths      [][]core.ProofNode
	AuthPathsSym   [][]core.ProofNode
}

// Query runs the FRI query phase: it draws numQueries pseudorandom indices
// bound to the transcript and, for every layer, opens the committed
// evaluation at the sampled point and at its symmetric pair — the point that
// folds onto the same next-layer value, at index offset n/2 (the negation,
// since g^(n/2) = -1).
//
// An empty layer list yields an empty result, never an error.
func Query(g *core.FieldElement, domainSize int, layers []*FriLayer, transcript *Transcript, numQueries int) ([]*FriDecommitment, error) {
	if len(layers) == 0 {
		return []*FriDecommitment{}, nil
	}

	if err := validateQueryParams(g, domainSize, layers); err != nil {
		return nil, err
	}

	indices, err := transcript.SampleIndices(domainSize, numQueries)
	if err != nil {
		return nil, fmt.Errorf("failed to sample query indices: %w", err)
	}

	decommitments := make([]*FriDecommitment, 0, numQueries)
	for _, index := range indices {
		decommitment, err := openLayers(layers, index)
		if err != nil {
			return nil, err
		}
		decommitments = append(decommitments, decommitment)
	}

	return decommitments, nil
}

// openLayers collects one query's evaluations and authentication paths from
// every layer
func openLayers(layers []*FriLayer, index int) (*FriDecommitment, error) {
	decommitment := &FriDecommitment{
		Index:          index,
		Evaluations:    make([]*core.FieldElement, 0, len(layers)),
		EvaluationsSym: make([]*core.FieldElement, 0, len(layers)),
		AuthPaths:      make([][]core.ProofNode, 0, len(layers)),
		AuthPathsSym:   make([][]core.ProofNode, 0, len(layers)),
	}

	for i, layer := range layers {
		n := len(layer.Domain)
		j := index % n
		jSym := (j + n/2) % n

		eval, err := layer.Polynomial.Eval(layer.Domain[j])
		if err != nil {
			return nil, fmt.Errorf("layer %d evaluation: %w", i, err)
		}
		evalSym, err := layer.Polynomial.Eval(layer.Domain[jSym])
		if err != nil {
			return nil, fmt.Errorf("layer %d symmetric evaluation: %w", i, err)
		}

		authPath, err := layer.tree.Proof(j)
		if err != nil {
			return nil, fmt.Errorf("layer %d proof: %w", i, err)
		}
		authPathSym, err := layer.tree.Proof(jSym)
		if err != nil {
			return nil, fmt.Errorf("layer %d symmetric proof: %w", i, err)
		}

		decommitment.Evaluations = append(decommitment.Evaluations, eval)
		decommitment.EvaluationsSym = append(decommitment.EvaluationsSym, evalSym)
		decommitment.AuthPaths = append(decommitment.AuthPaths, authPath)
		decommitment.AuthPathsSym = append(decommitment.AuthPathsSym, authPathSym)
	}

	return decommitment, nil
}

func validateQueryParams(g *core.FieldElement, domainSize int, layers []*FriLayer) error {
	first := layers[0]
	if domainSize != len(first.Domain) {
		return fmt.Errorf("%w: domain size %d does not match the first layer's domain (%d)",
			core.ErrMalformedInput, domainSize, len(first.Domain))
	}
	if len(first.Domain) > 1 && !first.Domain[1].Equal(g) {
		return fmt.Errorf("%w: generator does not generate the first layer's domain", core.ErrMalformedInput)
	}
	for i, layer := range layers {
		if len(layer.Domain)%2 != 0 {
			return fmt.Errorf("%w: layer %d has odd domain size %d", core.ErrMalformedInput, i, len(layer.Domain))
		}
		if layer.tree == nil {
			return fmt.Errorf("%w: layer %d has no commitment", core.ErrMalformedInput, i)
		}
	}
	return nil
}
