package plonk

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/iden3/go-plonk-verifier/curve"
)

// challenges holds the Fiat–Shamir transcript output. Xin and Zh are filled
// in by the Lagrange stage.
type challenges struct {
	Beta  *big.Int
	Gamma *big.Int
	Alpha *big.Int
	Xi    *big.Int
	Xin   *big.Int
	Zh    *big.Int
	V     [7]*big.Int
	U     *big.Int
}

// hashToFr reduces a Keccak-256 digest, read big-endian, into Fr. The hash is
// the original Keccak (0x01 padding), matching on-chain verifiers.
func hashToFr(f *curve.Field, data []byte) *big.Int {
	h := crypto.Keccak256(data)
	v := new(big.Int).SetBytes(h)
	return v.Mod(v, f.Modulus())
}

// computeChallenges replays the prover's transcript. Each block is a densely
// packed buffer of fixed-width big-endian encodings; the write order must not
// change.
func computeChallenges(e curve.Engine, p *proofElements, signals []*big.Int) *challenges {
	f := e.Fr()
	n8r := f.Bytes()
	g1Size := 2 * e.CoordBytes()
	ch := &challenges{}

	// beta binds the public inputs and the wire commitments
	buf := make([]byte, len(signals)*n8r+3*g1Size)
	for i, w := range signals {
		f.ToRprBE(buf, i*n8r, w)
	}
	base := len(signals) * n8r
	e.G1ToRprUncompressed(buf, base, p.A)
	e.G1ToRprUncompressed(buf, base+g1Size, p.B)
	e.G1ToRprUncompressed(buf, base+2*g1Size, p.C)
	ch.Beta = hashToFr(f, buf)

	// gamma binds beta
	buf = make([]byte, n8r)
	f.ToRprBE(buf, 0, ch.Beta)
	ch.Gamma = hashToFr(f, buf)

	// alpha binds the grand-product commitment
	buf = make([]byte, g1Size)
	e.G1ToRprUncompressed(buf, 0, p.Z)
	ch.Alpha = hashToFr(f, buf)

	// xi binds the split quotient commitments
	buf = make([]byte, 3*g1Size)
	e.G1ToRprUncompressed(buf, 0, p.T1)
	e.G1ToRprUncompressed(buf, g1Size, p.T2)
	e.G1ToRprUncompressed(buf, 2*g1Size, p.T3)
	ch.Xi = hashToFr(f, buf)

	// v1 binds the openings; v2..v6 are its powers
	buf = make([]byte, 7*n8r)
	f.ToRprBE(buf, 0, p.EvalA)
	f.ToRprBE(buf, n8r, p.EvalB)
	f.ToRprBE(buf, 2*n8r, p.EvalC)
	f.ToRprBE(buf, 3*n8r, p.EvalS1)
	f.ToRprBE(buf, 4*n8r, p.EvalS2)
	f.ToRprBE(buf, 5*n8r, p.EvalZW)
	f.ToRprBE(buf, 6*n8r, p.EvalR)
	ch.V[1] = hashToFr(f, buf)
	for i := 2; i <= 6; i++ {
		ch.V[i] = f.Mul(ch.V[i-1], ch.V[1])
	}

	// u binds the opening proofs
	buf = make([]byte, 2*g1Size)
	e.G1ToRprUncompressed(buf, 0, p.Wxi)
	e.G1ToRprUncompressed(buf, g1Size, p.Wxiw)
	ch.U = hashToFr(f, buf)

	return ch
}
