package core

import (
	"fmt"
	"math/big"
)

// Field represents a prime field with modular arithmetic operations
type Field struct {
	modulus *big.Int
}

// FieldElement represents an element in a prime field, held canonically
// in [0, modulus)
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new prime field with the given modulus
func NewField(modulus *big.Int) (*Field, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("%w: modulus must be greater than 2", ErrMalformedInput)
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// NewFieldFromUint64 creates a new prime field with the given modulus
func NewFieldFromUint64(modulus uint64) (*Field, error) {
	return NewField(new(big.Int).SetUint64(modulus))
}

// Modulus returns the field modulus
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equals reports whether two fields have the same modulus
func (f *Field) Equals(other *Field) bool {
	return other != nil && f.modulus.Cmp(other.modulus) == 0
}

// ElementByteLen returns the fixed width, in bytes, of the canonical
// big-endian encoding of elements of this field
func (f *Field) ElementByteLen() int {
	return (f.modulus.BitLen() + 7) / 8
}

// NewElement creates a new field element from a big.Int, reduced into [0, modulus)
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{field: f, value: normalized}
}

// NewElementFromInt64 creates a new field element from an int64
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates a new field element from a uint64
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// Sample interprets a byte sequence as a big-endian unsigned integer and
// reduces it modulo the field prime. Used to turn hash digests into
// challenges.
func (f *Field) Sample(data []byte) *FieldElement {
	return f.NewElement(new(big.Int).SetBytes(data))
}

// Big returns the value as a big.Int
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Field returns the field this element belongs to
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition
func (fe *FieldElement) Add(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("add: %w", ErrFieldMismatch)
	}
	return fe.field.NewElement(new(big.Int).Add(fe.value, other.value)), nil
}

// Sub performs field subtraction
func (fe *FieldElement) Sub(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("sub: %w", ErrFieldMismatch)
	}
	return fe.field.NewElement(new(big.Int).Sub(fe.value, other.value)), nil
}

// Mul performs field multiplication
func (fe *FieldElement) Mul(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("mul: %w", ErrFieldMismatch)
	}
	return fe.field.NewElement(new(big.Int).Mul(fe.value, other.value)), nil
}

// Div performs field division (multiplication by the inverse)
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("div: %w", ErrFieldMismatch)
	}
	if other.IsZero() {
		return nil, fmt.Errorf("div: %w", ErrDivisionByZero)
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("div: %w", err)
	}
	return fe.Mul(inv)
}

// Neg returns the additive inverse
func (fe *FieldElement) Neg() *FieldElement {
	return fe.field.NewElement(new(big.Int).Neg(fe.value))
}

// Exp performs field exponentiation by a non-negative integer exponent
func (fe *FieldElement) Exp(exponent *big.Int) (*FieldElement, error) {
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative exponent", ErrMalformedInput)
	}
	return fe.field.NewElement(new(big.Int).Exp(fe.value, exponent, fe.field.modulus)), nil
}

// Inv computes the multiplicative inverse using the extended Euclidean
// algorithm on (value, modulus)
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.IsZero() {
		return nil, fmt.Errorf("inv: %w", ErrNotInvertible)
	}

	g, s, _ := ExtendedGCD(fe.value, fe.field.modulus)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("inv: %w", ErrNotInvertible)
	}

	// s is the Bezout coefficient of the value; reduce it into [0, modulus)
	return fe.field.NewElement(s), nil
}

// Equal reports whether two field elements are equal. Elements from
// different fields are never equal, even when their values coincide.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if other == nil || !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero checks if the element is zero
func (fe *FieldElement) IsZero() bool {
	return fe.value.Sign() == 0
}

// IsOne checks if the element is one
func (fe *FieldElement) IsOne() bool {
	return fe.value.Cmp(big.NewInt(1)) == 0
}

// Bytes returns the canonical fixed-width big-endian encoding of the element
func (fe *FieldElement) Bytes() []byte {
	return fe.value.FillBytes(make([]byte, fe.field.ElementByteLen()))
}

// String returns a string representation of the field element
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// ExtendedGCD runs the extended Euclidean algorithm on (a, b) and returns
// (g, s, t) with a*s + b*t == g, where g = gcd(a, b). The Bezout
// coefficients may be negative.
func ExtendedGCD(a, b *big.Int) (g, s, t *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		quotient := new(big.Int).Quo(oldR, r)

		oldR, r = r, oldR.Sub(oldR, new(big.Int).Mul(quotient, r))
		oldS, s = s, oldS.Sub(oldS, new(big.Int).Mul(quotient, s))
		oldT, t = t, oldT.Sub(oldT, new(big.Int).Mul(quotient, t))
	}

	return oldR, oldS, oldT
}
