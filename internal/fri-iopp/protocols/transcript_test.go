package protocols

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/zkproximity/fri-iopp/internal/fri-iopp/core"
)

func mustField(t *testing.T, modulus int64) *core.Field {
	t.Helper()
	field, err := core.NewField(big.NewInt(modulus))
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	return field
}

func TestTranscriptPushPull(t *testing.T) {
	transcript := NewTranscript()

	objects := [][]byte{[]byte("first"), []byte("second"), []byte("third")}
	for _, object := range objects {
		transcript.Push(object)
	}

	if transcript.Len() != 3 {
		t.Fatalf("Len = %d, want 3", transcript.Len())
	}

	for i, want := range objects {
		got, err := transcript.Pull()
		if err != nil {
			t.Fatalf("Pull %d failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Pull %d = %q, want %q", i, got, want)
		}
		if transcript.ReadIndex() != i+1 {
			t.Errorf("ReadIndex after pull %d = %d, want %d", i, transcript.ReadIndex(), i+1)
		}
	}

	if _, err := transcript.Pull(); !errors.Is(err, ErrTranscriptExhausted) {
		t.Errorf("Pull past end error = %v, want ErrTranscriptExhausted", err)
	}
}

func TestTranscriptPushCopies(t *testing.T) {
	transcript := NewTranscript()

	object := []byte{1, 2, 3}
	transcript.Push(object)
	object[0] = 99

	got, err := transcript.Pull()
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if got[0] != 1 {
		t.Error("Push must copy the object, not alias it")
	}
}

func TestChallengeDerivation(t *testing.T) {
	field := mustField(t, 97)

	t.Run("Deterministic", func(t *testing.T) {
		a := NewTranscript()
		a.Push([]byte("root"))
		b := NewTranscript()
		b.Push([]byte("root"))

		ca, err := a.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}
		cb, err := b.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}
		if !ca.Equal(cb) {
			t.Error("Equal logs must derive equal challenges")
		}
	})

	t.Run("Content_Bound", func(t *testing.T) {
		a := NewTranscript()
		a.Push([]byte("root-a"))
		b := NewTranscript()
		b.Push([]byte("root-b"))

		ca, err := a.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}
		cb, err := b.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}
		if ca.Equal(cb) {
			t.Error("Different logs should derive different challenges")
		}
	})

	t.Run("Prover_Verifier_Agreement", func(t *testing.T) {
		transcript := NewTranscript()
		transcript.Push([]byte("layer-0-root"))

		// prover's challenge over the one-object log
		proverChallenge, err := transcript.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}

		// the prover commits another layer after deriving the challenge
		transcript.Push([]byte("layer-1-root"))

		// verifier replays: pulls the first root, derives at its cursor
		if _, err := transcript.Pull(); err != nil {
			t.Fatalf("Pull failed: %v", err)
		}
		verifierChallenge, err := transcript.VerifierChallenge(field)
		if err != nil {
			t.Fatalf("VerifierChallenge failed: %v", err)
		}

		if !proverChallenge.Equal(verifierChallenge) {
			t.Error("Verifier challenge at the prover's prefix must match the prover's")
		}
	})

	t.Run("Hash_Function_Bound", func(t *testing.T) {
		a := NewTranscriptWithHash("sha3")
		a.Push([]byte("root"))
		b := NewTranscriptWithHash("sha256")
		b.Push([]byte("root"))

		ca, err := a.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}
		cb, err := b.ProverChallenge(field)
		if err != nil {
			t.Fatalf("ProverChallenge failed: %v", err)
		}
		if ca.Equal(cb) {
			t.Error("Different transcript hashes should derive different challenges")
		}
	})
}

func TestSampleIndices(t *testing.T) {
	t.Run("In_Range_And_Deterministic", func(t *testing.T) {
		transcript := NewTranscript()
		transcript.Push([]byte("root"))

		indices, err := transcript.SampleIndices(8, 20)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}
		if len(indices) != 20 {
			t.Fatalf("len(indices) = %d, want 20", len(indices))
		}
		for i, index := range indices {
			if index < 0 || index >= 8 {
				t.Errorf("index %d = %d, out of [0, 8)", i, index)
			}
		}

		again, err := transcript.SampleIndices(8, 20)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}
		for i := range indices {
			if indices[i] != again[i] {
				t.Fatal("SampleIndices must be deterministic for a fixed log")
			}
		}
	})

	t.Run("Cursor_Independent", func(t *testing.T) {
		transcript := NewTranscript()
		transcript.Push([]byte("a"))
		transcript.Push([]byte("b"))

		before, err := transcript.SampleIndices(16, 5)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}

		if _, err := transcript.Pull(); err != nil {
			t.Fatalf("Pull failed: %v", err)
		}
		after, err := transcript.SampleIndices(16, 5)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}

		for i := range before {
			if before[i] != after[i] {
				t.Fatal("SampleIndices must not depend on the read cursor")
			}
		}
	})

	t.Run("Log_Bound", func(t *testing.T) {
		a := NewTranscript()
		a.Push([]byte("root-a"))
		b := NewTranscript()
		b.Push([]byte("root-b"))

		ia, err := a.SampleIndices(1<<20, 10)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}
		ib, err := b.SampleIndices(1<<20, 10)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}

		same := true
		for i := range ia {
			if ia[i] != ib[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("Different logs should sample different index sequences")
		}
	})

	t.Run("Invalid_Parameters", func(t *testing.T) {
		transcript := NewTranscript()
		if _, err := transcript.SampleIndices(0, 1); !errors.Is(err, core.ErrMalformedInput) {
			t.Errorf("SampleIndices(0, 1) error = %v, want ErrMalformedInput", err)
		}
		if _, err := transcript.SampleIndices(8, -1); !errors.Is(err, core.ErrMalformedInput) {
			t.Errorf("SampleIndices(8, -1) error = %v, want ErrMalformedInput", err)
		}
	})

	t.Run("Zero_Indices", func(t *testing.T) {
		transcript := NewTranscript()
		indices, err := transcript.SampleIndices(8, 0)
		if err != nil {
			t.Fatalf("SampleIndices failed: %v", err)
		}
		if len(indices) != 0 {
			t.Errorf("len(indices) = %d, want 0", len(indices))
		}
	})
}

func TestTranscriptSerialization(t *testing.T) {
	field := mustField(t, 97)

	transcript := NewTranscript()
	transcript.Push([]byte("root-0"))
	transcript.Push([]byte("root-1"))
	transcript.Push([]byte{0x00, 0xFF})

	data, err := transcript.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	restored, err := DeserializeTranscript(data, "sha3")
	if err != nil {
		t.Fatalf("DeserializeTranscript failed: %v", err)
	}

	if restored.Len() != transcript.Len() {
		t.Fatalf("restored Len = %d, want %d", restored.Len(), transcript.Len())
	}
	if restored.ReadIndex() != 0 {
		t.Errorf("restored ReadIndex = %d, want 0", restored.ReadIndex())
	}

	// the restored transcript must reproduce the original's challenges
	original, err := transcript.ProverChallenge(field)
	if err != nil {
		t.Fatalf("ProverChallenge failed: %v", err)
	}
	replayed, err := restored.ProverChallenge(field)
	if err != nil {
		t.Fatalf("ProverChallenge failed: %v", err)
	}
	if !original.Equal(replayed) {
		t.Error("Serialization round trip changed the challenge derivation")
	}

	for i := 0; i < transcript.Len(); i++ {
		want := transcript.Objects()[i]
		got, err := restored.Pull()
		if err != nil {
			t.Fatalf("Pull %d failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("object %d = %v, want %v", i, got, want)
		}
	}

	t.Run("Malformed_Input", func(t *testing.T) {
		if _, err := DeserializeTranscript([]byte("not json"), "sha3"); err == nil {
			t.Error("DeserializeTranscript should reject malformed data")
		}
	})
}
