package core

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// MerkleTree commits to an ordered sequence of byte-encoded leaves with a
// SHA3-256 binary tree. The FRI engine only relies on the root digest,
// per-index inclusion proofs, and proof validation.
type MerkleTree struct {
	root   []byte
	leaves [][]byte
	levels [][][]byte
}

// ProofNode represents a node in a Merkle inclusion proof
type ProofNode struct {
	Hash    []byte
	IsRight bool // true if the sibling is the right child
}

// NewMerkleTree creates a new Merkle tree from the given leaf data
func NewMerkleTree(data [][]byte) (*MerkleTree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: cannot build a Merkle tree with no leaves", ErrMalformedInput)
	}

	leaves := make([][]byte, len(data))
	for i, item := range data {
		leaves[i] = hashNode(item)
	}

	levels := [][][]byte{leaves}
	currentLevel := leaves

	for len(currentLevel) > 1 {
		nextLevel := make([][]byte, 0, (len(currentLevel)+1)/2)

		for i := 0; i < len(currentLevel); i += 2 {
			if i+1 < len(currentLevel) {
				nextLevel = append(nextLevel, hashPair(currentLevel[i], currentLevel[i+1]))
			} else {
				// odd level end: pair the last node with itself
				nextLevel = append(nextLevel, hashPair(currentLevel[i], currentLevel[i]))
			}
		}

		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &MerkleTree{
		root:   currentLevel[0],
		leaves: leaves,
		levels: levels,
	}, nil
}

// Root returns the Merkle root digest
func (mt *MerkleTree) Root() []byte {
	return append([]byte(nil), mt.root...)
}

// NumLeaves returns the number of committed leaves
func (mt *MerkleTree) NumLeaves() int {
	return len(mt.leaves)
}

// Proof generates the authentication path from the leaf at index to the root
func (mt *MerkleTree) Proof(index int) ([]ProofNode, error) {
	if index < 0 || index >= len(mt.leaves) {
		return nil, fmt.Errorf("%w: leaf index %d out of range [0, %d)", ErrMalformedInput, index, len(mt.leaves))
	}

	var proof []ProofNode
	currentIndex := index

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		var siblingIndex int
		var isRight bool
		if currentIndex%2 == 0 {
			siblingIndex = currentIndex + 1
			isRight = true
		} else {
			siblingIndex = currentIndex - 1
			isRight = false
		}

		if siblingIndex < len(currentLevel) {
			proof = append(proof, ProofNode{
				Hash:    append([]byte(nil), currentLevel[siblingIndex]...),
				IsRight: isRight,
			})
		} else {
			// duplicated last node
			proof = append(proof, ProofNode{
				Hash:    append([]byte(nil), currentLevel[currentIndex]...),
				IsRight: true,
			})
		}

		currentIndex /= 2
	}

	return proof, nil
}

// VerifyProof checks an authentication path against a root digest and leaf data
func VerifyProof(root []byte, leaf []byte, proof []ProofNode) bool {
	hash := hashNode(leaf)

	for _, node := range proof {
		if node.IsRight {
			hash = hashPair(hash, node.Hash)
		} else {
			hash = hashPair(node.Hash, hash)
		}
	}

	return bytes.Equal(hash, root)
}

func hashNode(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func hashPair(left, right []byte) []byte {
	combined := make([]byte, 0, len(left)+len(right))
	combined = append(combined, left...)
	combined = append(combined, right...)
	return hashNode(combined)
}
