package curve

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	bn254fp "github.com/consensys/gnark-crypto/ecc/bn254/fp"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// bn254G1 wraps an affine point. notOnCurve marks the (0, 0) affine form,
// which snarkjs treats as a broken finite point rather than the identity;
// the identity is only produced by an explicit zero z coordinate.
type bn254G1 struct {
	p          bn254.G1Affine
	notOnCurve bool
}

func (*bn254G1) g1() {}

type bn254G2 struct {
	p bn254.G2Affine
}

func (*bn254G2) g2() {}

type bn254Engine struct {
	fr    *Field
	g1Gen bn254.G1Affine
	g2Gen bn254.G2Affine
}

var (
	bn254Once sync.Once
	bn254Inst *bn254Engine
)

func newBN254() *bn254Engine {
	bn254Once.Do(func() {
		_, _, g1, g2 := bn254.Generators()
		bn254Inst = &bn254Engine{
			fr:    newField(bn254fr.Modulus(), bn254fr.Bytes),
			g1Gen: g1,
			g2Gen: g2,
		}
	})
	return bn254Inst
}

func (e *bn254Engine) Name() string {
	return "bn128"
}

func (e *bn254Engine) Fr() *Field {
	return e.fr
}

func (e *bn254Engine) CoordBytes() int {
	return bn254fp.Bytes
}

func (e *bn254Engine) G1FromObject(coords []string) (G1, error) {
	x, y, z, err := parseG1Coords(coords)
	if err != nil {
		return nil, err
	}
	var r bn254G1
	if z != nil && z.Sign() == 0 {
		return &r, nil
	}
	r.p.X.SetBigInt(x)
	r.p.Y.SetBigInt(y)
	if z != nil && z.Cmp(big.NewInt(1)) != 0 {
		var zInv bn254fp.Element
		zInv.SetBigInt(z)
		zInv.Inverse(&zInv)
		r.p.X.Mul(&r.p.X, &zInv)
		r.p.Y.Mul(&r.p.Y, &zInv)
	}
	if r.p.X.IsZero() && r.p.Y.IsZero() {
		r.notOnCurve = true
	}
	return &r, nil
}

func (e *bn254Engine) G1Generator() G1 {
	return &bn254G1{p: e.g1Gen}
}

func (e *bn254Engine) G1Add(a, b G1) G1 {
	var r bn254G1
	r.p.Add(&a.(*bn254G1).p, &b.(*bn254G1).p)
	return &r
}

func (e *bn254Engine) G1Sub(a, b G1) G1 {
	var neg bn254.G1Affine
	neg.Neg(&b.(*bn254G1).p)
	var r bn254G1
	r.p.Add(&a.(*bn254G1).p, &neg)
	return &r
}

func (e *bn254Engine) G1Neg(a G1) G1 {
	var r bn254G1
	r.p.Neg(&a.(*bn254G1).p)
	return &r
}

func (e *bn254Engine) G1ScalarMul(a G1, k *big.Int) G1 {
	var r bn254G1
	r.p.ScalarMultiplication(&a.(*bn254G1).p, k)
	return &r
}

func (e *bn254Engine) G1MSM(points []G1, scalars []*big.Int) (G1, error) {
	if len(points) != len(scalars) {
		return nil, errors.Errorf("msm size mismatch: %d points, %d scalars", len(points), len(scalars))
	}
	ps := make([]bn254.G1Affine, len(points))
	ss := make([]bn254fr.Element, len(scalars))
	for i := range points {
		ps[i] = points[i].(*bn254G1).p
		ss[i].SetBigInt(scalars[i])
	}
	var r bn254G1
	if _, err := r.p.MultiExp(ps, ss, ecc.MultiExpConfig{}); err != nil {
		return nil, errors.Wrap(err, "bn254 msm")
	}
	return &r, nil
}

func (e *bn254Engine) G1Valid(a G1) bool {
	p := a.(*bn254G1)
	if p.notOnCurve {
		return false
	}
	if p.p.IsInfinity() {
		return true
	}
	return p.p.IsOnCurve() && p.p.IsInSubGroup()
}

func (e *bn254Engine) G1ToRprUncompressed(buf []byte, off int, a G1) {
	p := a.(*bn254G1)
	n8 := bn254fp.Bytes
	if p.p.IsInfinity() && !p.notOnCurve {
		for i := 0; i < 2*n8; i++ {
			buf[off+i] = 0
		}
		buf[off] |= 0x40
		return
	}
	x := p.p.X.Bytes()
	y := p.p.Y.Bytes()
	copy(buf[off:off+n8], x[:])
	copy(buf[off+n8:off+2*n8], y[:])
}

func (e *bn254Engine) G1String(a G1) string {
	p := a.(*bn254G1)
	return fmt.Sprintf("(0x%s, 0x%s)", p.p.X.Text(16), p.p.Y.Text(16))
}

func (e *bn254Engine) G2FromObject(coords [][]string) (G2, error) {
	c, err := parseG2Coords(coords)
	if err != nil {
		return nil, err
	}
	var r bn254G2
	if c.infinity {
		return &r, nil
	}
	r.p.X.A0.SetBigInt(c.x0)
	r.p.X.A1.SetBigInt(c.x1)
	r.p.Y.A0.SetBigInt(c.y0)
	r.p.Y.A1.SetBigInt(c.y1)
	return &r, nil
}

func (e *bn254Engine) G2Generator() G2 {
	return &bn254G2{p: e.g2Gen}
}

func (e *bn254Engine) PairingEq(a1 G1, a2 G2, b1 G1, b2 G2) (bool, error) {
	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{a1.(*bn254G1).p, b1.(*bn254G1).p},
		[]bn254.G2Affine{a2.(*bn254G2).p, b2.(*bn254G2).p},
	)
	if err != nil {
		return false, errors.Wrap(err, "bn254 pairing")
	}
	return ok, nil
}
