package utils

import (
	"fmt"
	"math/big"
)

// Config carries the protocol parameters for a FRI proof run. The field and
// generator are explicit configuration validated up front, never hardwired
// literals inside the protocol.
type Config struct {
	// FieldModulus is the prime defining the ambient field
	FieldModulus *big.Int

	// Generator is a multiplicative generator of order exactly DomainSize;
	// the evaluation domain is its ordered sequence of powers
	Generator *big.Int

	// DomainSize is the size of the initial evaluation domain (power of 2)
	DomainSize int

	// NumLayers is the number of committed FRI layers
	NumLayers int

	// NumQueries is the number of spot-check queries; the caller picks it to
	// reach a target soundness error by repetition
	NumQueries int

	// HashFunction selects the transcript hash: "sha256" or "sha3"
	HashFunction string
}

// DefaultConfig returns a configuration over the 3*2^30+1 prime with an
// order-16 evaluation domain.
func DefaultConfig() *Config {
	return &Config{
		FieldModulus: big.NewInt(3221225473), // 3 * 2^30 + 1
		Generator:    big.NewInt(2526611335), // order 16: 5^((p-1)/16) mod p
		DomainSize:   16,
		NumLayers:    3,
		NumQueries:   10,
		HashFunction: "sha3",
	}
}

// Validate checks if the configuration is consistent
func (c *Config) Validate() error {
	if c.FieldModulus == nil || c.FieldModulus.Cmp(big.NewInt(2)) <= 0 {
		return fmt.Errorf("field modulus must be greater than 2")
	}
	if !c.FieldModulus.ProbablyPrime(20) {
		return fmt.Errorf("field modulus %s is not prime", c.FieldModulus)
	}

	if !IsPowerOfTwo(c.DomainSize) {
		return fmt.Errorf("domain size %d must be a power of 2", c.DomainSize)
	}

	if c.NumLayers < 1 {
		return fmt.Errorf("layer count must be at least 1")
	}
	if Log2(c.DomainSize) < c.NumLayers {
		return fmt.Errorf("domain size %d cannot support %d layers: every layer needs an even-size domain",
			c.DomainSize, c.NumLayers)
	}

	if c.NumQueries < 1 {
		return fmt.Errorf("query count must be positive")
	}

	if c.HashFunction != "sha256" && c.HashFunction != "sha3" {
		return fmt.Errorf("hash function must be 'sha256' or 'sha3', got '%s'", c.HashFunction)
	}

	if err := c.validateGenerator(); err != nil {
		return err
	}

	return nil
}

// validateGenerator checks that the generator has multiplicative order
// exactly DomainSize: g^N == 1 and g^(N/2) != 1.
func (c *Config) validateGenerator() error {
	if c.Generator == nil || c.Generator.Sign() <= 0 {
		return fmt.Errorf("generator must be a positive integer")
	}

	g := new(big.Int).Mod(c.Generator, c.FieldModulus)
	if g.Sign() == 0 {
		return fmt.Errorf("generator reduces to zero modulo the field prime")
	}

	n := big.NewInt(int64(c.DomainSize))
	one := big.NewInt(1)

	if new(big.Int).Exp(g, n, c.FieldModulus).Cmp(one) != 0 {
		return fmt.Errorf("generator %s does not have order dividing %d", c.Generator, c.DomainSize)
	}
	half := new(big.Int).Rsh(n, 1)
	if half.Sign() > 0 && new(big.Int).Exp(g, half, c.FieldModulus).Cmp(one) == 0 {
		return fmt.Errorf("generator %s has order smaller than %d", c.Generator, c.DomainSize)
	}

	return nil
}

// WithFieldModulus sets the field modulus
func (c *Config) WithFieldModulus(modulus *big.Int) *Config {
	c.FieldModulus = new(big.Int).Set(modulus)
	return c
}

// WithGenerator sets the domain generator
func (c *Config) WithGenerator(generator *big.Int) *Config {
	c.Generator = new(big.Int).Set(generator)
	return c
}

// WithDomainSize sets the initial evaluation domain size
func (c *Config) WithDomainSize(size int) *Config {
	c.DomainSize = size
	return c
}

// WithNumLayers sets the number of FRI layers
func (c *Config) WithNumLayers(layers int) *Config {
	c.NumLayers = layers
	return c
}

// WithNumQueries sets the number of queries
func (c *Config) WithNumQueries(queries int) *Config {
	c.NumQueries = queries
	return c
}

// WithHashFunction sets the transcript hash function
func (c *Config) WithHashFunction(hashFunc string) *Config {
	c.HashFunction = hashFunc
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := &Config{
		DomainSize:   c.DomainSize,
		NumLayers:    c.NumLayers,
		NumQueries:   c.NumQueries,
		HashFunction: c.HashFunction,
	}
	if c.FieldModulus != nil {
		clone.FieldModulus = new(big.Int).Set(c.FieldModulus)
	}
	if c.Generator != nil {
		clone.Generator = new(big.Int).Set(c.Generator)
	}
	return clone
}
