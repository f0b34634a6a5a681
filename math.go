package plonk

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/iden3/go-plonk-verifier/curve"
)

// computeLagrange evaluates L_1..L_m at xi, with m = max(1, nPublic); L_1 is
// always needed for the linearisation terms. It also fixes xi^n and Zh(xi) in
// the challenge set. The slice is 1-indexed to match the usual notation.
func computeLagrange(e curve.Engine, vk *vkElements, ch *challenges) ([]*big.Int, error) {
	f := e.Fr()

	xin := new(big.Int).Set(ch.Xi)
	for i := 0; i < vk.Power; i++ {
		xin = f.Square(xin)
	}
	ch.Xin = xin
	ch.Zh = f.Sub(xin, f.One())

	n := f.E(int64(1) << uint(vk.Power))
	w, err := f.W(vk.Power)
	if err != nil {
		return nil, err
	}

	m := max(1, vk.NPublic)
	L := make([]*big.Int, m+1)
	wi := f.One()
	for i := 1; i <= m; i++ {
		li, err := f.Div(f.Mul(wi, ch.Zh), f.Mul(n, f.Sub(ch.Xi, wi)))
		if err != nil {
			return nil, errors.Wrapf(err, "L_%d(xi)", i)
		}
		L[i] = li
		wi = f.Mul(wi, w)
	}
	return L, nil
}

// computePI evaluates the public-input polynomial at xi. The negation
// matches the sign convention of the linearisation.
func computePI(f *curve.Field, signals []*big.Int, L []*big.Int) *big.Int {
	pi := f.Zero()
	for i, w := range signals {
		pi = f.Sub(pi, f.Mul(w, L[i+1]))
	}
	return pi
}

// computeT reconstructs the quotient polynomial value t(xi) from the claimed
// openings.
func computeT(f *curve.Field, p *proofElements, ch *challenges, pi, l1 *big.Int) (*big.Int, error) {
	num := f.Add(p.EvalR, pi)

	e1 := f.Add(f.Add(p.EvalA, f.Mul(ch.Beta, p.EvalS1)), ch.Gamma)
	e2 := f.Add(f.Add(p.EvalB, f.Mul(ch.Beta, p.EvalS2)), ch.Gamma)
	e3 := f.Add(p.EvalC, ch.Gamma)

	prod := f.Mul(f.Mul(e1, e2), e3)
	prod = f.Mul(prod, p.EvalZW)
	prod = f.Mul(prod, ch.Alpha)
	num = f.Sub(num, prod)

	num = f.Sub(num, f.Mul(l1, f.Square(ch.Alpha)))

	t, err := f.Div(num, ch.Zh)
	if err != nil {
		return nil, errors.Wrap(err, "t(xi)")
	}
	return t, nil
}

// computeD assembles the linearisation commitment as one multi-scalar
// multiplication over the selector, permutation and grand-product
// commitments. Custom-gate factors multiply their Qk commitments right after
// the Qm term.
func computeD(e curve.Engine, p *proofElements, vk *vkElements, ch *challenges, l1 *big.Int) (curve.G1, error) {
	f := e.Fr()
	v := ch.V[1]

	points := make([]curve.G1, 0, 8+len(p.Gates))
	scalars := make([]*big.Int, 0, 8+len(p.Gates))

	points = append(points, vk.Qm)
	scalars = append(scalars, f.Mul(f.Mul(p.EvalA, p.EvalB), v))

	for i, g := range p.Gates {
		points = append(points, vk.Qk[i])
		scalars = append(scalars,
			g.gate.PlonkFactor(f.Mul(p.EvalA, v), f.Mul(p.EvalB, v), f.Mul(p.EvalC, v), f))
	}

	points = append(points, vk.Ql, vk.Qr, vk.Qo, vk.Qc)
	scalars = append(scalars,
		f.Mul(p.EvalA, v),
		f.Mul(p.EvalB, v),
		f.Mul(p.EvalC, v),
		v)

	betaXi := f.Mul(ch.Beta, ch.Xi)
	s6a := f.Add(f.Add(p.EvalA, betaXi), ch.Gamma)
	s6b := f.Add(f.Add(p.EvalB, f.Mul(betaXi, vk.K1)), ch.Gamma)
	s6c := f.Add(f.Add(p.EvalC, f.Mul(betaXi, vk.K2)), ch.Gamma)
	s6 := f.Mul(f.Mul(s6a, s6b), s6c)
	s6 = f.Mul(s6, f.Mul(ch.Alpha, v))
	s6 = f.Add(s6, f.Mul(f.Mul(l1, f.Square(ch.Alpha)), v))
	s6 = f.Add(s6, ch.U)
	points = append(points, p.Z)
	scalars = append(scalars, s6)

	s7a := f.Add(f.Add(p.EvalA, f.Mul(ch.Beta, p.EvalS1)), ch.Gamma)
	s7b := f.Add(f.Add(p.EvalB, f.Mul(ch.Beta, p.EvalS2)), ch.Gamma)
	s7 := f.Mul(s7a, s7b)
	s7 = f.Mul(s7, ch.Alpha)
	s7 = f.Mul(s7, v)
	s7 = f.Mul(s7, ch.Beta)
	s7 = f.Mul(s7, p.EvalZW)
	points = append(points, vk.S3)
	scalars = append(scalars, f.Neg(s7))

	return e.G1MSM(points, scalars)
}

// computeF assembles the batched commitment, again as a single MSM; T1 and D
// enter with scalar one.
func computeF(e curve.Engine, p *proofElements, vk *vkElements, ch *challenges, d curve.G1) (curve.G1, error) {
	f := e.Fr()
	points := []curve.G1{p.T1, p.T2, p.T3, d, p.A, p.B, p.C, vk.S1, vk.S2}
	scalars := []*big.Int{
		f.One(),
		ch.Xin,
		f.Square(ch.Xin),
		f.One(),
		ch.V[2],
		ch.V[3],
		ch.V[4],
		ch.V[5],
		ch.V[6],
	}
	return e.G1MSM(points, scalars)
}

// computeE folds the claimed openings into a single scalar and commits it on
// the G1 generator.
func computeE(e curve.Engine, p *proofElements, ch *challenges, t *big.Int) curve.G1 {
	f := e.Fr()
	s := new(big.Int).Set(t)
	s = f.Add(s, f.Mul(ch.V[1], p.EvalR))
	s = f.Add(s, f.Mul(ch.V[2], p.EvalA))
	s = f.Add(s, f.Mul(ch.V[3], p.EvalB))
	s = f.Add(s, f.Mul(ch.V[4], p.EvalC))
	s = f.Add(s, f.Mul(ch.V[5], p.EvalS1))
	s = f.Add(s, f.Mul(ch.V[6], p.EvalS2))
	s = f.Add(s, f.Mul(ch.U, p.EvalZW))
	return e.G1ScalarMul(e.G1Generator(), s)
}

// checkPairing folds the two opening proofs and evaluates the final product
// of pairings e(-A1, X2)·e(B1, g2) = 1.
func checkPairing(e curve.Engine, p *proofElements, vk *vkElements, ch *challenges, fC, eC curve.G1) (bool, error) {
	f := e.Fr()
	w, err := f.W(vk.Power)
	if err != nil {
		return false, err
	}

	a1 := e.G1Add(p.Wxi, e.G1ScalarMul(p.Wxiw, ch.U))

	s := f.Mul(f.Mul(ch.U, ch.Xi), w)
	b1 := e.G1Add(e.G1ScalarMul(p.Wxi, ch.Xi), e.G1ScalarMul(p.Wxiw, s))
	b1 = e.G1Add(b1, fC)
	b1 = e.G1Sub(b1, eC)

	return e.PairingEq(e.G1Neg(a1), vk.X2, b1, e.G2Generator())
}
