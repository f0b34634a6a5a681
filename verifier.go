// Package plonk verifies PlonK proofs produced by snarkjs. The verifier
// replays the Fiat–Shamir transcript with Keccak-256, reconstructs the
// linearisation and batched commitments, and settles the proof with a single
// product-of-pairings check on BN254 or BLS12-381.
package plonk

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/iden3/go-plonk-verifier/curve"
	"github.com/iden3/go-plonk-verifier/logger"
	"github.com/iden3/go-plonk-verifier/types"
)

// Option configures a verification call.
type Option func(*config)

type config struct {
	log zerolog.Logger
}

// WithLogger overrides the diagnostic sink for one call. Logging never
// affects the verdict.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// Verify checks a PlonK proof against a verification key and public signals.
//
// Structural parse failures (a coordinate that does not parse, an unknown
// custom gate, mismatched gate entries) are returned as errors: such input
// is not a proof. Every other failure (a point off the curve, a wrong signal
// count, a pairing that does not hold, a custom gate that reports false)
// returns (false, nil) with a diagnostic log line, so verification is total
// on well-typed input.
func Verify(vk *types.VerificationKey, publicSignals types.PublicSignals, proof *types.Proof, opts ...Option) (bool, error) {
	cfg := config{log: logger.Logger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.log.With().Str("vid", uuid.NewString()).Logger()

	// 1. resolve protocol and curve; proof and key must agree.
	if vk.Protocol != types.PlonkProtocol {
		return false, errors.Errorf("verification key protocol %q is not supported", vk.Protocol)
	}
	if proof.Protocol != "" && proof.Protocol != types.PlonkProtocol {
		return false, errors.Errorf("proof protocol %q is not supported", proof.Protocol)
	}
	curveName := vk.Curve
	if curveName == "" {
		curveName = "bn128"
	}
	if proof.Curve != "" && proof.Curve != curveName {
		return false, errors.Errorf("proof curve %q does not match verification key curve %q", proof.Curve, curveName)
	}
	e, err := curve.GetCurveFromName(curveName)
	if err != nil {
		return false, err
	}

	// 2. cast external data to the curve-native model.
	vkEl, err := decodeVK(e, vk)
	if err != nil {
		return false, err
	}
	prEl, err := decodeProof(e, vkEl, proof)
	if err != nil {
		return false, err
	}
	signals, err := decodeSignals(e.Fr(), publicSignals)
	if err != nil {
		return false, err
	}

	// 3. structural validation.
	if len(signals) != vkEl.NPublic {
		log.Info().Int("expected", vkEl.NPublic).Int("got", len(signals)).
			Msg("invalid number of public signals")
		return false, nil
	}
	if name, ok := invalidProofPoint(e, prEl); !ok {
		log.Info().Str("point", name).Msg("proof point is not on curve")
		return false, nil
	}

	// 4. transcript.
	ch := computeChallenges(e, prEl, signals)
	logChallenges(log, ch)

	// 5. Lagrange evaluations and public-input polynomial.
	lagrange, err := computeLagrange(e, vkEl, ch)
	if err != nil {
		log.Info().Err(err).Msg("arithmetic failure in Lagrange evaluation")
		return false, nil
	}
	pi := computePI(e.Fr(), signals, lagrange)

	// 6. quotient value.
	t, err := computeT(e.Fr(), prEl, ch, pi, lagrange[1])
	if err != nil {
		log.Info().Err(err).Msg("arithmetic failure in quotient reconstruction")
		return false, nil
	}

	// 7. linearisation and batched commitments.
	d, err := computeD(e, prEl, vkEl, ch, lagrange[1])
	if err != nil {
		return false, errors.Wrap(err, "linearisation commitment")
	}
	fC, err := computeF(e, prEl, vkEl, ch, d)
	if err != nil {
		return false, errors.Wrap(err, "batched commitment")
	}
	eC := computeE(e, prEl, ch, t)
	log.Debug().
		Str("D", e.G1String(d)).
		Str("F", e.G1String(fC)).
		Str("E", e.G1String(eC)).
		Msg("verifier commitments")

	// 8. pairing equation.
	ok, err := checkPairing(e, prEl, vkEl, ch, fC, eC)
	if err != nil {
		return false, errors.Wrap(err, "pairing check")
	}
	if !ok {
		log.Info().Msg("invalid proof: pairing equation does not hold")
		return false, nil
	}

	// 9. custom-gate sub-verifications.
	for i, g := range prEl.Gates {
		if !g.gate.VerifyProof(g.proof, e.Fr()) {
			log.Info().Int("gate", i).Str("id", g.gate.ID()).
				Msg("invalid proof: custom gate verification failed")
			return false, nil
		}
	}

	return true, nil
}

// VerifyJSON checks a proof given the raw snarkjs JSON artifacts.
func VerifyJSON(vkJSON, publicJSON, proofJSON []byte, opts ...Option) (bool, error) {
	vk, err := types.ParseVerificationKey(vkJSON)
	if err != nil {
		return false, err
	}
	signals, err := types.ParsePublicSignals(publicJSON)
	if err != nil {
		return false, err
	}
	proof, err := types.ParseProof(proofJSON)
	if err != nil {
		return false, err
	}
	return Verify(vk, signals, proof, opts...)
}

// invalidProofPoint returns the name of the first proof commitment that fails
// the on-curve and subgroup checks, if any.
func invalidProofPoint(e curve.Engine, p *proofElements) (string, bool) {
	points := []struct {
		name  string
		point curve.G1
	}{
		{"A", p.A}, {"B", p.B}, {"C", p.C},
		{"Z", p.Z},
		{"T1", p.T1}, {"T2", p.T2}, {"T3", p.T3},
		{"Wxi", p.Wxi}, {"Wxiw", p.Wxiw},
	}
	for _, pt := range points {
		if !e.G1Valid(pt.point) {
			return pt.name, false
		}
	}
	return "", true
}

func logChallenges(log zerolog.Logger, ch *challenges) {
	log.Debug().
		Str("beta", hex(ch.Beta)).
		Str("gamma", hex(ch.Gamma)).
		Str("alpha", hex(ch.Alpha)).
		Str("xi", hex(ch.Xi)).
		Str("v1", hex(ch.V[1])).
		Str("u", hex(ch.U)).
		Msg("transcript challenges")
}

func hex(x *big.Int) string {
	return "0x" + x.Text(16)
}
