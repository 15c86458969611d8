package friiopp

import (
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/protocols"
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/utils"
)

// Field represents a prime field
type Field = core.Field

// FieldElement represents an element in a prime field
type FieldElement = core.FieldElement

// Polynomial represents a polynomial over a prime field, coefficients in
// ascending power order
type Polynomial = core.Polynomial

// ProofNode represents one step of a Merkle authentication path
type ProofNode = core.ProofNode

// Transcript is the Fiat-Shamir proof stream shared by prover and verifier
type Transcript = protocols.Transcript

// FriLayer is one committed round of the FRI protocol
type FriLayer = protocols.FriLayer

// FriDecommitment holds the openings produced by the query phase for one query
type FriDecommitment = protocols.FriDecommitment

// Config carries the protocol parameters
type Config = utils.Config

// Re-exported constructors, so callers only import this package.
var (
	NewField               = core.NewField
	NewFieldFromUint64     = core.NewFieldFromUint64
	NewPolynomial          = core.NewPolynomial
	NewPolynomialFromInt64 = core.NewPolynomialFromInt64
	NewTranscript          = protocols.NewTranscript
	NewTranscriptWithHash  = protocols.NewTranscriptWithHash
	DeserializeTranscript  = protocols.DeserializeTranscript
	DefaultConfig          = utils.DefaultConfig
)

// Sentinel errors surfaced by the arithmetic and transcript layers.
var (
	ErrFieldMismatch       = core.ErrFieldMismatch
	ErrDivisionByZero      = core.ErrDivisionByZero
	ErrNotInvertible       = core.ErrNotInvertible
	ErrMalformedInput      = core.ErrMalformedInput
	ErrTranscriptExhausted = protocols.ErrTranscriptExhausted
)
