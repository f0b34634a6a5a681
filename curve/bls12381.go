package curve

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	bls12381fp "github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

type bls12381G1 struct {
	p          bls12381.G1Affine
	notOnCurve bool
}

func (*bls12381G1) g1() {}

type bls12381G2 struct {
	p bls12381.G2Affine
}

func (*bls12381G2) g2() {}

type bls12381Engine struct {
	fr    *Field
	g1Gen bls12381.G1Affine
	g2Gen bls12381.G2Affine
}

var (
	bls12381Once sync.Once
	bls12381Inst *bls12381Engine
)

func newBLS12381() *bls12381Engine {
	bls12381Once.Do(func() {
		_, _, g1, g2 := bls12381.Generators()
		bls12381Inst = &bls12381Engine{
			fr:    newField(bls12381fr.Modulus(), bls12381fr.Bytes),
			g1Gen: g1,
			g2Gen: g2,
		}
	})
	return bls12381Inst
}

func (e *bls12381Engine) Name() string {
	return "bls12381"
}

func (e *bls12381Engine) Fr() *Field {
	return e.fr
}

func (e *bls12381Engine) CoordBytes() int {
	return bls12381fp.Bytes
}

func (e *bls12381Engine) G1FromObject(coords []string) (G1, error) {
	x, y, z, err := parseG1Coords(coords)
	if err != nil {
		return nil, err
	}
	var r bls12381G1
	if z != nil && z.Sign() == 0 {
		return &r, nil
	}
	r.p.X.SetBigInt(x)
	r.p.Y.SetBigInt(y)
	if z != nil && z.Cmp(big.NewInt(1)) != 0 {
		var zInv bls12381fp.Element
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

func (e *bls12381Engine) G1Generator() G1 {
	return &bls12381G1{p: e.g1Gen}
}

func (e *bls12381Engine) G1Add(a, b G1) G1 {
	var r bls12381G1
	r.p.Add(&a.(*bls12381G1).p, &b.(*bls12381G1).p)
	return &r
}

func (e *bls12381Engine) G1Sub(a, b G1) G1 {
	var neg bls12381.G1Affine
	neg.Neg(&b.(*bls12381G1).p)
	var r bls12381G1
	r.p.Add(&a.(*bls12381G1).p, &neg)
	return &r
}

func (e *bls12381Engine) G1Neg(a G1) G1 {
	var r bls12381G1
	r.p.Neg(&a.(*bls12381G1).p)
	return &r
}

func (e *bls12381Engine) G1ScalarMul(a G1, k *big.Int) G1 {
	var r bls12381G1
	r.p.ScalarMultiplication(&a.(*bls12381G1).p, k)
	return &r
}

func (e *bls12381Engine) G1MSM(points []G1, scalars []*big.Int) (G1, error) {
	if len(points) != len(scalars) {
		return nil, errors.Errorf("msm size mismatch: %d points, %d scalars", len(points), len(scalars))
	}
	ps := make([]bls12381.G1Affine, len(points))
	ss := make([]bls12381fr.Element, len(scalars))
	for i := range points {
		ps[i] = points[i].(*bls12381G1).p
		ss[i].SetBigInt(scalars[i])
	}
	var r bls12381G1
	if _, err := r.p.MultiExp(ps, ss, ecc.MultiExpConfig{}); err != nil {
		return nil, errors.Wrap(err, "bls12-381 msm")
	}
	return &r, nil
}

func (e *bls12381Engine) G1Valid(a G1) bool {
	p := a.(*bls12381G1)
	if p.notOnCurve {
		return false
	}
	if p.p.IsInfinity() {
		return true
	}
	return p.p.IsOnCurve() && p.p.IsInSubGroup()
}

func (e *bls12381Engine) G1ToRprUncompressed(buf []byte, off int, a G1) {
	p := a.(*bls12381G1)
	n8 := bls12381fp.Bytes
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

func (e *bls12381Engine) G1String(a G1) string {
	p := a.(*bls12381G1)
	return fmt.Sprintf("(0x%s, 0x%s)", p.p.X.Text(16), p.p.Y.Text(16))
}

func (e *bls12381Engine) G2FromObject(coords [][]string) (G2, error) {
	c, err := parseG2Coords(coords)
	if err != nil {
		return nil, err
	}
	var r bls12381G2
	if c.infinity {
		return &r, nil
	}
	r.p.X.A0.SetBigInt(c.x0)
	r.p.X.A1.SetBigInt(c.x1)
	r.p.Y.A0.SetBigInt(c.y0)
	r.p.Y.A1.SetBigInt(c.y1)
	return &r, nil
}

func (e *bls12381Engine) G2Generator() G2 {
	return &bls12381G2{p: e.g2Gen}
}

func (e *bls12381Engine) PairingEq(a1 G1, a2 G2, b1 G1, b2 G2) (bool, error) {
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{a1.(*bls12381G1).p, b1.(*bls12381G1).p},
		[]bls12381.G2Affine{a2.(*bls12381G2).p, b2.(*bls12381G2).p},
	)
	if err != nil {
		return false, errors.Wrap(err, "bls12-381 pairing")
	}
	return ok, nil
}
