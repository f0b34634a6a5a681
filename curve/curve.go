// Package curve narrows two pairing-friendly curves from gnark-crypto down to
// the operations the PlonK verifier needs: Fr arithmetic, G1 group operations
// with multi-scalar multiplication, G2 decoding, and a product-of-pairings
// equality check.
package curve

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// G1 is an opaque handle to a point of an engine's G1 group. Handles must not
// be mixed between engines.
type G1 interface {
	g1()
}

// G2 is an opaque handle to a point of an engine's G2 group.
type G2 interface {
	g2()
}

// Engine exposes one pairing-friendly curve. Implementations are stateless
// apart from read-only precomputed tables and are safe for concurrent use.
type Engine interface {
	// Name returns the canonical snarkjs name of the curve.
	Name() string

	// Fr returns the scalar field of the curve.
	Fr() *Field

	// CoordBytes returns the serialized width n8 of one base-field
	// coordinate.
	CoordBytes() int

	// G1FromObject decodes an affine [x, y] or projective [x, y, z]
	// coordinate array of big-integer strings.
	G1FromObject(coords []string) (G1, error)

	// G1Generator returns the group generator g1.
	G1Generator() G1

	G1Add(a, b G1) G1
	G1Sub(a, b G1) G1
	G1Neg(a G1) G1
	G1ScalarMul(a G1, k *big.Int) G1

	// G1MSM computes Σ scalars[i]·points[i] through the library's
	// multi-exponentiation routine.
	G1MSM(points []G1, scalars []*big.Int) (G1, error)

	// G1Valid reports whether the point satisfies the curve equation and
	// lies in the prime-order subgroup.
	G1Valid(a G1) bool

	// G1ToRprUncompressed writes the affine coordinates big-endian, X then
	// Y, each CoordBytes wide, at buf[off:]. The identity is written as
	// zeroes with the 0x40 flag bit set, as ffjavascript does.
	G1ToRprUncompressed(buf []byte, off int, a G1)

	// G1String renders the point for diagnostics.
	G1String(a G1) string

	// G2FromObject decodes a [[x0,x1],[y0,y1]] or [[x0,x1],[y0,y1],[z0,z1]]
	// coordinate array.
	G2FromObject(coords [][]string) (G2, error)

	// G2Generator returns the group generator g2.
	G2Generator() G2

	// PairingEq reports whether e(a1, a2)·e(b1, b2) = 1.
	PairingEq(a1 G1, a2 G2, b1 G1, b2 G2) (bool, error)
}

// GetCurveFromName returns the engine for a curve name as it appears in
// snarkjs artifacts. Engines are lazily constructed global singletons; their
// precomputed tables are shared by all verifications.
func GetCurveFromName(name string) (Engine, error) {
	normName := normalizeName(name)
	switch normName {
	case "bn128", "bn254", "altbn128":
		return newBN254(), nil
	case "bls12381":
		return newBLS12381(), nil
	default:
		return nil, errors.Errorf("curve not supported: %s", name)
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
}
