package plonk

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/iden3/go-plonk-verifier/curve"
	"github.com/iden3/go-plonk-verifier/gates"
	"github.com/iden3/go-plonk-verifier/types"
)

// vkElements is the verification key with all leaves canonicalised into
// curve-native elements. It is never mutated after decoding.
type vkElements struct {
	Power   int
	NPublic int

	K1 *big.Int
	K2 *big.Int

	Qm, Ql, Qr, Qo, Qc curve.G1
	S1, S2, S3         curve.G1
	Qk                 []curve.G1

	X2 curve.G2
}

// proofElements is the proof in curve-native form, plus the instantiated
// custom gates when the proof carries any.
type proofElements struct {
	A, B, C    curve.G1
	Z          curve.G1
	T1, T2, T3 curve.G1
	Wxi, Wxiw  curve.G1

	EvalA, EvalB, EvalC *big.Int
	EvalS1, EvalS2      *big.Int
	EvalZW, EvalR       *big.Int

	Gates []decodedGate
}

// decodedGate pairs a registry gate instance with its decoded sub-proof.
type decodedGate struct {
	gate  gates.Gate
	proof gates.Proof
}

func decodeVK(e curve.Engine, v *types.VerificationKey) (*vkElements, error) {
	f := e.Fr()
	if v.Power < 1 || v.Power > f.MaxPower() {
		return nil, errors.Errorf("verification key power %d is out of range [1, %d]", v.Power, f.MaxPower())
	}
	if v.NPublic < 0 {
		return nil, errors.Errorf("verification key has negative nPublic %d", v.NPublic)
	}

	vk := &vkElements{Power: v.Power, NPublic: v.NPublic}

	var err error
	if vk.K1, err = f.FromObject(v.K1); err != nil {
		return nil, errors.Wrap(err, "verification key k1")
	}
	if vk.K2, err = f.FromObject(v.K2); err != nil {
		return nil, errors.Wrap(err, "verification key k2")
	}

	g1Fields := []struct {
		name   string
		coords []string
		dst    *curve.G1
	}{
		{"Qm", v.Qm, &vk.Qm},
		{"Ql", v.Ql, &vk.Ql},
		{"Qr", v.Qr, &vk.Qr},
		{"Qo", v.Qo, &vk.Qo},
		{"Qc", v.Qc, &vk.Qc},
		{"S1", v.S1, &vk.S1},
		{"S2", v.S2, &vk.S2},
		{"S3", v.S3, &vk.S3},
	}
	for _, g := range g1Fields {
		p, err := e.G1FromObject(g.coords)
		if err != nil {
			return nil, errors.Wrapf(err, "verification key %s", g.name)
		}
		*g.dst = p
	}

	for i, coords := range v.Qk {
		p, err := e.G1FromObject(coords)
		if err != nil {
			return nil, errors.Wrapf(err, "verification key Qk[%d]", i)
		}
		vk.Qk = append(vk.Qk, p)
	}

	if vk.X2, err = e.G2FromObject(v.X2); err != nil {
		return nil, errors.Wrap(err, "verification key X_2")
	}
	return vk, nil
}

func decodeProof(e curve.Engine, vk *vkElements, p *types.Proof) (*proofElements, error) {
	pr := &proofElements{}

	g1Fields := []struct {
		name   string
		coords []string
		dst    *curve.G1
	}{
		{"A", p.A, &pr.A},
		{"B", p.B, &pr.B},
		{"C", p.C, &pr.C},
		{"Z", p.Z, &pr.Z},
		{"T1", p.T1, &pr.T1},
		{"T2", p.T2, &pr.T2},
		{"T3", p.T3, &pr.T3},
		{"Wxi", p.Wxi, &pr.Wxi},
		{"Wxiw", p.Wxiw, &pr.Wxiw},
	}
	for _, g := range g1Fields {
		point, err := e.G1FromObject(g.coords)
		if err != nil {
			return nil, errors.Wrapf(err, "proof %s", g.name)
		}
		*g.dst = point
	}

	f := e.Fr()
	frFields := []struct {
		name  string
		value string
		dst   **big.Int
	}{
		{"eval_a", p.EvalA, &pr.EvalA},
		{"eval_b", p.EvalB, &pr.EvalB},
		{"eval_c", p.EvalC, &pr.EvalC},
		{"eval_s1", p.EvalS1, &pr.EvalS1},
		{"eval_s2", p.EvalS2, &pr.EvalS2},
		{"eval_zw", p.EvalZW, &pr.EvalZW},
		{"eval_r", p.EvalR, &pr.EvalR},
	}
	for _, v := range frFields {
		x, err := f.FromObject(v.value)
		if err != nil {
			return nil, errors.Wrapf(err, "proof %s", v.name)
		}
		*v.dst = x
	}

	// Custom-gate contract: a proof with gate entries must match the
	// verification key's Qk commitments one to one, in order; a proof
	// without entries must face a key without Qk. Anything else is
	// malformed input.
	if len(p.CustomGates) > 0 {
		if len(p.CustomGates) != len(vk.Qk) {
			return nil, errors.Errorf("proof has %d custom gates, verification key has %d Qk commitments",
				len(p.CustomGates), len(vk.Qk))
		}
		for i, entry := range p.CustomGates {
			gate, err := gates.New(entry.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "custom gate %d", i)
			}
			gateProof, err := gate.DecodeProof(entry.Proof, e)
			if err != nil {
				return nil, errors.Wrapf(err, "custom gate %d (%s) proof", i, entry.ID)
			}
			pr.Gates = append(pr.Gates, decodedGate{gate: gate, proof: gateProof})
		}
	} else if len(vk.Qk) != 0 {
		return nil, errors.Errorf("verification key has %d Qk commitments but proof carries no custom gates", len(vk.Qk))
	}

	return pr, nil
}

func decodeSignals(f *curve.Field, signals types.PublicSignals) ([]*big.Int, error) {
	out := make([]*big.Int, len(signals))
	for i, s := range signals {
		v, err := f.FromObject(s)
		if err != nil {
			return nil, errors.Wrapf(err, "public signal %d", i)
		}
		out[i] = v
	}
	return out, nil
}
