package plonk

import (
	"encoding/json"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/iden3/go-plonk-verifier/curve"
	"github.com/iden3/go-plonk-verifier/gates"
	"github.com/iden3/go-plonk-verifier/types"
)

// The fixtures below are structurally sound: every commitment is a known
// multiple of the generator, so points decode, validate and serialize like
// real proof material. They do not satisfy the PlonK relations, so the
// pairing equation rejects them.

func bn254G1Coords(k int64) []string {
	_, _, g1, _ := bn254.Generators()
	var p bn254.G1Affine
	p.ScalarMultiplication(&g1, big.NewInt(k))
	return []string{p.X.String(), p.Y.String(), "1"}
}

func bn254G2Coords(k int64) [][]string {
	_, _, _, g2 := bn254.Generators()
	var p bn254.G2Affine
	p.ScalarMultiplication(&g2, big.NewInt(k))
	return [][]string{
		{p.X.A0.String(), p.X.A1.String()},
		{p.Y.A0.String(), p.Y.A1.String()},
		{"1", "0"},
	}
}

func bls12381G1Coords(k int64) []string {
	_, _, g1, _ := bls12381.Generators()
	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1, big.NewInt(k))
	return []string{p.X.String(), p.Y.String(), "1"}
}

func bls12381G2Coords(k int64) [][]string {
	_, _, _, g2 := bls12381.Generators()
	var p bls12381.G2Affine
	p.ScalarMultiplication(&g2, big.NewInt(k))
	return [][]string{
		{p.X.A0.String(), p.X.A1.String()},
		{p.Y.A0.String(), p.Y.A1.String()},
		{"1", "0"},
	}
}

func testVK(curveName string) *types.VerificationKey {
	g1 := bn254G1Coords
	x2 := bn254G2Coords
	if curveName == "bls12381" {
		g1 = bls12381G1Coords
		x2 = bls12381G2Coords
	}
	return &types.VerificationKey{
		Protocol: types.PlonkProtocol,
		Curve:    curveName,
		NPublic:  1,
		Power:    3,
		K1:       "2",
		K2:       "3",
		Qm:       g1(101),
		Ql:       g1(102),
		Qr:       g1(103),
		Qo:       g1(104),
		Qc:       g1(105),
		S1:       g1(106),
		S2:       g1(107),
		S3:       g1(108),
		X2:       x2(5),
	}
}

func testProof(curveName string) *types.Proof {
	g1 := bn254G1Coords
	if curveName == "bls12381" {
		g1 = bls12381G1Coords
	}
	return &types.Proof{
		A:        g1(11),
		B:        g1(12),
		C:        g1(13),
		Z:        g1(14),
		T1:       g1(15),
		T2:       g1(16),
		T3:       g1(17),
		EvalA:    "21",
		EvalB:    "22",
		EvalC:    "23",
		EvalS1:   "24",
		EvalS2:   "25",
		EvalZW:   "26",
		EvalR:    "27",
		Wxi:      g1(18),
		Wxiw:     g1(19),
		Protocol: types.PlonkProtocol,
		Curve:    curveName,
	}
}

func testSignals() types.PublicSignals {
	return types.PublicSignals{"9"}
}

// zeroGate contributes nothing to the linearisation commitment and always
// accepts its sub-proof.
type zeroGate struct{}

func (zeroGate) ID() string { return "test.zero" }

func (zeroGate) DecodeProof(raw json.RawMessage, e curve.Engine) (gates.Proof, error) {
	return nil, nil
}

func (zeroGate) PlonkFactor(av, bv, cv *big.Int, f *curve.Field) *big.Int {
	return f.Zero()
}

func (zeroGate) VerifyProof(p gates.Proof, f *curve.Field) bool {
	return true
}

func init() {
	gates.Register("test.zero", func() gates.Gate { return zeroGate{} })
}
