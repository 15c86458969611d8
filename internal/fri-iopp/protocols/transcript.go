package protocols

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
)

// ErrTranscriptExhausted is returned when pulling past the end of the
// transcript; it indicates a round-count or protocol-flow bug, not a bad proof.
var ErrTranscriptExhausted = errors.New("transcript exhausted")

// Transcript is the Fiat-Shamir proof stream: an append-only ordered log of
// opaque byte objects plus a read cursor for verifier-side replay.
//
// The prover derives challenges by hashing the whole log; the verifier by
// hashing the prefix revealed up to its cursor. Both sides must hash exactly
// the same byte sequence at each round, which is what makes the
// non-interactive protocol replayable.
//
// A transcript has a single owner and is threaded through the phase calls by
// reference; it is not safe for concurrent use.
type Transcript struct {
	objects   [][]byte
	readIndex int
	hashFunc  string
}

// NewTranscript creates an empty transcript hashing with SHA3-256
func NewTranscript() *Transcript {
	return NewTranscriptWithHash("sha3")
}

// NewTranscriptWithHash creates an empty transcript with the given hash
// function ("sha256" or "sha3"); an empty name selects sha3
func NewTranscriptWithHash(hashFunc string) *Transcript {
	if hashFunc == "" {
		hashFunc = "sha3"
	}
	return &Transcript{
		objects:  make([][]byte, 0, 16),
		hashFunc: hashFunc,
	}
}

// Push appends an opaque object to the log
func (t *Transcript) Push(object []byte) {
	t.objects = append(t.objects, append([]byte(nil), object...))
}

// Pull returns the next unread object, advancing the read cursor
func (t *Transcript) Pull() ([]byte, error) {
	if t.readIndex >= len(t.objects) {
		return nil, ErrTranscriptExhausted
	}
	object := t.objects[t.readIndex]
	t.readIndex++
	return append([]byte(nil), object...), nil
}

// Len returns the number of objects in the log
func (t *Transcript) Len() int {
	return len(t.objects)
}

// ReadIndex returns the position of the read cursor
func (t *Transcript) ReadIndex() int {
	return t.readIndex
}

// Objects returns a copy of the ordered object log
func (t *Transcript) Objects() [][]byte {
	objects := make([][]byte, len(t.objects))
	for i, object := range t.objects {
		objects[i] = append([]byte(nil), object...)
	}
	return objects
}

// ProverChallenge hashes the serialized contents of the entire log and
// reduces the digest into a field element: the prover's view of what the
// verifier would have sent next.
func (t *Transcript) ProverChallenge(field *core.Field) (*core.FieldElement, error) {
	return t.challenge(field, len(t.objects))
}

// VerifierChallenge hashes the serialized log prefix up to the read cursor,
// i.e. only what has been revealed to the verifier so far, and reduces it
// identically to ProverChallenge.
func (t *Transcript) VerifierChallenge(field *core.Field) (*core.FieldElement, error) {
	return t.challenge(field, t.readIndex)
}

func (t *Transcript) challenge(field *core.Field, prefixLen int) (*core.FieldElement, error) {
	data, err := t.serializePrefix(prefixLen)
	if err != nil {
		return nil, err
	}
	return field.Sample(t.hash(data)), nil
}

// SampleIndices derives numIndices pseudorandom query indices in
// [0, domainSize), deterministically bound to the transcript contents. The
// prover and the verifier re-derive identical sequences from equal logs,
// which is what prevents adaptive query grinding.
func (t *Transcript) SampleIndices(domainSize int, numIndices int) ([]int, error) {
	if domainSize <= 0 {
		return nil, fmt.Errorf("%w: domain size must be positive", core.ErrMalformedInput)
	}
	if numIndices < 0 {
		return nil, fmt.Errorf("%w: negative index count", core.ErrMalformedInput)
	}

	state, err := t.serializePrefix(len(t.objects))
	if err != nil {
		return nil, err
	}

	size := big.NewInt(int64(domainSize))
	indices := make([]int, numIndices)
	for i := range indices {
		var counter [8]byte
		binary.BigEndian.PutUint64(counter[:], uint64(i))

		data := make([]byte, 0, len(state)+len(counter))
		data = append(data, state...)
		data = append(data, counter[:]...)

		digest := new(big.Int).SetBytes(t.hash(data))
		indices[i] = int(digest.Mod(digest, size).Int64())
	}

	return indices, nil
}

// Serialize encodes the ordered object log as a JSON array of byte strings
func (t *Transcript) Serialize() ([]byte, error) {
	return t.serializePrefix(len(t.objects))
}

// DeserializeTranscript reconstructs a transcript from its serialized object
// log, with the read cursor reset to the beginning
func DeserializeTranscript(data []byte, hashFunc string) (*Transcript, error) {
	var objects [][]byte
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}

	transcript := NewTranscriptWithHash(hashFunc)
	transcript.objects = objects
	return transcript, nil
}

func (t *Transcript) serializePrefix(n int) ([]byte, error) {
	data, err := json.Marshal(t.objects[:n])
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return data, nil
}

func (t *Transcript) hash(data []byte) []byte {
	switch t.hashFunc {
	case "sha256":
		h := sha256.Sum256(data)
		return h[:]
	default:
		h := sha3.Sum256(data)
		return h[:]
	}
}
