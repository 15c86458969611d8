package core

import (
	"fmt"
	"strings"
)

// Polynomial represents a polynomial with coefficients in a prime field,
// ordered by ascending power of the indeterminate.
//
// Trailing zero coefficients are preserved: the FRI round structure folds a
// polynomial by its coefficient count, not by its degree, so trimming would
// change the protocol schedule.
type Polynomial struct {
	coefficients []*FieldElement
	field        *Field
}

// NewPolynomial creates a new polynomial from field elements
func NewPolynomial(coefficients []*FieldElement) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("%w: polynomial must have at least one coefficient", ErrMalformedInput)
	}

	field := coefficients[0].Field()
	for i, coeff := range coefficients {
		if !coeff.Field().Equals(field) {
			return nil, fmt.Errorf("coefficient %d: %w", i, ErrFieldMismatch)
		}
	}

	coeffs := make([]*FieldElement, len(coefficients))
	copy(coeffs, coefficients)

	return &Polynomial{coefficients: coeffs, field: field}, nil
}

// NewPolynomialFromInt64 creates a polynomial from int64 coefficients
func NewPolynomialFromInt64(field *Field, coefficients []int64) (*Polynomial, error) {
	fieldCoeffs := make([]*FieldElement, len(coefficients))
	for i, coeff := range coefficients {
		fieldCoeffs[i] = field.NewElementFromInt64(coeff)
	}
	return NewPolynomial(fieldCoeffs)
}

// Degree returns the highest index of a non-zero coefficient, or -1 when
// every coefficient is zero
func (p *Polynomial) Degree() int {
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if !p.coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// Field returns the field the polynomial is defined over
func (p *Polynomial) Field() *Field {
	return p.field
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial) Coefficient(degree int) *FieldElement {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// Coefficients returns a copy of the polynomial coefficients
func (p *Polynomial) Coefficients() []*FieldElement {
	coeffs := make([]*FieldElement, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// NumCoefficients returns the stored coefficient count, including trailing zeros
func (p *Polynomial) NumCoefficients() int {
	return len(p.coefficients)
}

// Eval evaluates the polynomial at the given point using Horner-style
// accumulation over ascending coefficients
func (p *Polynomial) Eval(point *FieldElement) (*FieldElement, error) {
	if !point.Field().Equals(p.field) {
		return nil, fmt.Errorf("eval: %w", ErrFieldMismatch)
	}

	result := p.field.Zero()
	power := p.field.One()

	var err error
	for i, coeff := range p.coefficients {
		if i > 0 {
			if power, err = power.Mul(point); err != nil {
				return nil, err
			}
		}
		term, err := coeff.Mul(power)
		if err != nil {
			return nil, err
		}
		if result, err = result.Add(term); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// EvalDomain evaluates the polynomial at every point of a domain, in order
func (p *Polynomial) EvalDomain(domain []*FieldElement) ([]*FieldElement, error) {
	evaluations := make([]*FieldElement, len(domain))
	for i, point := range domain {
		eval, err := p.Eval(point)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		evaluations[i] = eval
	}
	return evaluations, nil
}

// Fold splits the coefficients into even-index and odd-index subsequences,
// multiplies each odd coefficient by beta, and returns the polynomial whose
// i-th coefficient is even[i] + beta*odd[i]. For 2k input coefficients the
// result has exactly k, which is what drives the FRI round structure:
//
//	f(x) = f_even(x^2) + x*f_odd(x^2)
//	fold(f, beta) = f_even + beta*f_odd
func (p *Polynomial) Fold(beta *FieldElement) (*Polynomial, error) {
	if !beta.Field().Equals(p.field) {
		return nil, fmt.Errorf("fold: %w", ErrFieldMismatch)
	}

	half := (len(p.coefficients) + 1) / 2
	folded := make([]*FieldElement, half)

	for i := 0; i < half; i++ {
		even := p.coefficients[2*i]
		if 2*i+1 >= len(p.coefficients) {
			folded[i] = even
			continue
		}

		odd, err := p.coefficients[2*i+1].Mul(beta)
		if err != nil {
			return nil, err
		}
		if folded[i], err = even.Add(odd); err != nil {
			return nil, err
		}
	}

	return NewPolynomial(folded)
}

// String returns a human-readable representation, highest power first
func (p *Polynomial) String() string {
	var terms []string
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		coeff := p.coefficients[i]
		if coeff.IsZero() {
			continue
		}

		switch {
		case i == 0:
			terms = append(terms, coeff.String())
		case i == 1 && coeff.IsOne():
			terms = append(terms, "x")
		case i == 1:
			terms = append(terms, coeff.String()+"x")
		case coeff.IsOne():
			terms = append(terms, fmt.Sprintf("x^%d", i))
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", coeff.String(), i))
		}
	}

	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}
