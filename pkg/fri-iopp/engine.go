package friiopp

import (
	"math/big"

	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/protocols"
	"github.com/zkproximity/fri-iopp/internal/fri-iopp/utils"
)

// Phase tracks the protocol progress of an Engine
type Phase int

const (
	// PhaseUninitialized is the state before the commit phase has run
	PhaseUninitialized Phase = iota

	// PhaseCommitted is the state after a successful commit phase
	PhaseCommitted

	// PhaseQueried is the state after a successful query phase
	PhaseQueried

	// PhaseVerified is the terminal state of an accepted proof
	PhaseVerified

	// PhaseRejected is the terminal state of a rejected proof
	PhaseRejected
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseCommitted:
		return "committed"
	case PhaseQueried:
		return "queried"
	case PhaseVerified:
		return "verified"
	case PhaseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Engine drives a full FRI protocol run over a fixed field, generator, and
// evaluation domain. Phases must run in order: commit, query, verify; the
// engine owns the cross-phase state (the layer list and decommitments).
type Engine struct {
	config    *utils.Config
	field     *core.Field
	generator *core.FieldElement
	domain    []*core.FieldElement

	phase         Phase
	layers        []*protocols.FriLayer
	finalValue    *core.FieldElement
	decommitments []*protocols.FriDecommitment
}

// NewEngine creates an engine from a validated configuration. The evaluation
// domain is the ordered sequence of generator powers g^0 .. g^(N-1).
func NewEngine(config *utils.Config) (*Engine, error) {
	if config == nil {
		return nil, &FRIError{Code: ErrInvalidConfig, Message: "configuration is nil"}
	}
	if err := config.Validate(); err != nil {
		return nil, &FRIError{Code: ErrInvalidConfig, Message: "invalid configuration", Cause: err}
	}

	field, err := core.NewField(config.FieldModulus)
	if err != nil {
		return nil, &FRIError{Code: ErrInvalidConfig, Message: "failed to create field", Cause: err}
	}

	generator := field.NewElement(config.Generator)
	domain := make([]*core.FieldElement, config.DomainSize)
	power := field.One()
	for i := range domain {
		domain[i] = power
		if power, err = power.Mul(generator); err != nil {
			return nil, &FRIError{Code: ErrInvalidConfig, Message: "failed to build domain", Cause: err}
		}
	}

	return &Engine{
		config:    config.Clone(),
		field:     field,
		generator: generator,
		domain:    domain,
		phase:     PhaseUninitialized,
	}, nil
}

// Field returns the engine's prime field
func (e *Engine) Field() *Field {
	return e.field
}

// Generator returns the domain generator
func (e *Engine) Generator() *FieldElement {
	return e.generator
}

// Domain returns a copy of the initial evaluation domain
func (e *Engine) Domain() []*FieldElement {
	domain := make([]*core.FieldElement, len(e.domain))
	copy(domain, e.domain)
	return domain
}

// Phase returns the engine's protocol phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// FinalValue returns the constant disclosed by the commit phase, or nil
// before it has run
func (e *Engine) FinalValue() *FieldElement {
	return e.finalValue
}

// NewTranscript creates a transcript using the configured hash function
func (e *Engine) NewTranscript() *Transcript {
	return protocols.NewTranscriptWithHash(e.config.HashFunction)
}

// NewElement creates an element of the engine's field
func (e *Engine) NewElement(value *big.Int) *FieldElement {
	return e.field.NewElement(value)
}

// Commit runs the FRI commit phase over the engine's domain
func (e *Engine) Commit(poly *Polynomial, transcript *Transcript) (*FieldElement, []*FriLayer, error) {
	if e.phase != PhaseUninitialized {
		return nil, nil, &FRIError{Code: ErrInvalidPhase,
			Message: "commit requires an uninitialized engine, current phase: " + e.phase.String()}
	}

	finalValue, layers, err := protocols.Commit(e.config.NumLayers, poly, transcript, e.Domain())
	if err != nil {
		return nil, nil, &FRIError{Code: ErrCommitFailed, Message: "commit phase failed", Cause: err}
	}

	e.layers = layers
	e.finalValue = finalValue
	e.phase = PhaseCommitted
	return finalValue, layers, nil
}

// Query runs the FRI query phase with the configured query count
func (e *Engine) Query(transcript *Transcript) ([]*FriDecommitment, error) {
	if e.phase != PhaseCommitted {
		return nil, &FRIError{Code: ErrInvalidPhase,
			Message: "query requires a committed engine, current phase: " + e.phase.String()}
	}

	decommitments, err := protocols.Query(e.generator, len(e.domain), e.layers, transcript, e.config.NumQueries)
	if err != nil {
		return nil, &FRIError{Code: ErrQueryFailed, Message: "query phase failed", Cause: err}
	}

	e.decommitments = decommitments
	e.phase = PhaseQueried
	return decommitments, nil
}

// Verify runs the FRI verify phase against the stored layers and
// decommitments, replaying the given transcript. The engine transitions to
// its terminal phase; a rejected proof is a legitimate outcome, not an error.
func (e *Engine) Verify(transcript *Transcript) (bool, error) {
	if e.phase != PhaseQueried {
		return false, &FRIError{Code: ErrInvalidPhase,
			Message: "verify requires a queried engine, current phase: " + e.phase.String()}
	}

	accepted, err := protocols.Verify(e.layers, e.decommitments, transcript)
	if err != nil {
		return false, &FRIError{Code: ErrVerifyFailed, Message: "verify phase failed", Cause: err}
	}

	if accepted {
		e.phase = PhaseVerified
	} else {
		e.phase = PhaseRejected
	}
	return accepted, nil
}

// Commit, Query, and Verify are also available without an Engine for callers
// managing their own layer lists.
var (
	Commit = protocols.Commit
	Query  = protocols.Query
	Verify = protocols.Verify
)
