package curve

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Field implements arithmetic in the scalar field Fr of an engine's curve.
// Elements are canonical big integers in [0, q). The zero value is unusable;
// fields are obtained through an Engine.
type Field struct {
	q     *big.Int
	n8    int
	roots []*big.Int
}

func newField(q *big.Int, n8 int) *Field {
	return &Field{q: q, n8: n8, roots: rootsOfUnity(q)}
}

// rootsOfUnity builds the table w where w[p] is a primitive 2^p-th root of
// unity. The construction is the one ffjavascript uses (q-1 = 2^s*t with t
// odd, the smallest quadratic non-residue found by Euler's criterion raised
// to t gives w[s], lower entries by squaring), so the values match the roots
// the snarkjs prover committed to.
func rootsOfUnity(q *big.Int) []*big.Int {
	one := big.NewInt(1)
	t := new(big.Int).Sub(q, one)
	s := 0
	for t.Bit(0) == 0 {
		t.Rsh(t, 1)
		s++
	}

	half := new(big.Int).Rsh(new(big.Int).Sub(q, one), 1)
	negOne := new(big.Int).Sub(q, one)
	nqr := big.NewInt(2)
	for new(big.Int).Exp(nqr, half, q).Cmp(negOne) != 0 {
		nqr.Add(nqr, one)
	}

	w := make([]*big.Int, s+1)
	w[s] = new(big.Int).Exp(nqr, t, q)
	for i := s - 1; i >= 0; i-- {
		w[i] = new(big.Int).Mul(w[i+1], w[i+1])
		w[i].Mod(w[i], q)
	}
	return w
}

// Modulus returns a copy of the field order r.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.q)
}

// Bytes returns the serialized width of a field element (n8r).
func (f *Field) Bytes() int {
	return f.n8
}

// MaxPower returns the largest p for which a primitive 2^p-th root of unity
// exists, i.e. the 2-adicity of r−1.
func (f *Field) MaxPower() int {
	return len(f.roots) - 1
}

// W returns the primitive 2^power-th root of unity.
func (f *Field) W(power int) (*big.Int, error) {
	if power < 0 || power >= len(f.roots) {
		return nil, errors.Errorf("no 2^%d-th root of unity in field", power)
	}
	return new(big.Int).Set(f.roots[power]), nil
}

// Zero returns the additive identity.
func (f *Field) Zero() *big.Int {
	return new(big.Int)
}

// One returns the multiplicative identity.
func (f *Field) One() *big.Int {
	return big.NewInt(1)
}

// E lifts a machine integer into the field.
func (f *Field) E(v int64) *big.Int {
	return new(big.Int).Mod(big.NewInt(v), f.q)
}

// Add returns a+b mod r.
func (f *Field) Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, f.q)
}

// Sub returns a−b mod r.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, f.q)
}

// Mul returns a·b mod r.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, f.q)
}

// Square returns a² mod r.
func (f *Field) Square(a *big.Int) *big.Int {
	return f.Mul(a, a)
}

// Neg returns −a mod r.
func (f *Field) Neg(a *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, f.q)
}

// Exp returns a^e mod r.
func (f *Field) Exp(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, f.q)
}

// Div returns a/b mod r. Division by zero is the only arithmetic failure the
// verifier can hit and is reported as an error rather than a panic.
func (f *Field) Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errors.New("division by zero in Fr")
	}
	inv := new(big.Int).ModInverse(b, f.q)
	if inv == nil {
		return nil, errors.New("non-invertible element in Fr")
	}
	return f.Mul(a, inv), nil
}

// FromObject canonicalises an external value (a decimal or 0x-prefixed hex
// string, a JSON number, or a big integer) into the field.
func (f *Field) FromObject(v interface{}) (*big.Int, error) {
	switch t := v.(type) {
	case string:
		n, err := stringToBigInt(t)
		if err != nil {
			return nil, err
		}
		return n.Mod(n, f.q), nil
	case json.Number:
		return f.FromObject(t.String())
	case *big.Int:
		return new(big.Int).Mod(t, f.q), nil
	case big.Int:
		return new(big.Int).Mod(&t, f.q), nil
	case int:
		return f.E(int64(t)), nil
	case int64:
		return f.E(t), nil
	case uint64:
		return new(big.Int).Mod(new(big.Int).SetUint64(t), f.q), nil
	case float64:
		n := big.NewInt(int64(t))
		if float64(n.Int64()) != t {
			return nil, errors.Errorf("non-integer value %v is not a field element", t)
		}
		return n.Mod(n, f.q), nil
	default:
		return nil, errors.Errorf("can not canonicalise %T into Fr", v)
	}
}

// ToRprBE writes x big-endian with fixed width n8r at buf[off:].
func (f *Field) ToRprBE(buf []byte, off int, x *big.Int) {
	x.FillBytes(buf[off : off+f.n8])
}

func stringToBigInt(s string) (*big.Int, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Errorf("can not parse string to *big.Int: %s", s)
	}
	return n, nil
}
