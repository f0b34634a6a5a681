package plonk

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iden3/go-plonk-verifier/curve"
	"github.com/iden3/go-plonk-verifier/types"
)

func TestVerifyRejectsForgedProof(t *testing.T) {
	// a proof assembled from arbitrary commitments decodes and validates
	// but cannot satisfy the pairing equation
	for _, curveName := range []string{"bn128", "bls12381"} {
		t.Run(curveName, func(t *testing.T) {
			ok, err := Verify(testVK(curveName), testSignals(), testProof(curveName))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestVerifyIsDeterministic(t *testing.T) {
	ok1, err1 := Verify(testVK("bn128"), testSignals(), testProof("bn128"))
	ok2, err2 := Verify(testVK("bn128"), testSignals(), testProof("bn128"))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ok1, ok2)
}

func TestVerifyPublicSignalCount(t *testing.T) {
	t.Run("too few", func(t *testing.T) {
		ok, err := Verify(testVK("bn128"), types.PublicSignals{}, testProof("bn128"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("too many", func(t *testing.T) {
		ok, err := Verify(testVK("bn128"), types.PublicSignals{"9", "10"}, testProof("bn128"))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVerifyIllFormedPoints(t *testing.T) {
	t.Run("zero wire commitment", func(t *testing.T) {
		proof := testProof("bn128")
		proof.A = []string{"0", "0"}
		ok, err := Verify(testVK("bn128"), testSignals(), proof)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("point off the curve", func(t *testing.T) {
		proof := testProof("bn128")
		proof.Z = []string{"1", "3"}
		ok, err := Verify(testVK("bn128"), testSignals(), proof)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tampered opening proof coordinates", func(t *testing.T) {
		proof := testProof("bn128")
		proof.Wxiw = []string{"5", "5"}
		ok, err := Verify(testVK("bn128"), testSignals(), proof)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVerifyMalformedInput(t *testing.T) {
	t.Run("unparseable coordinate", func(t *testing.T) {
		proof := testProof("bn128")
		proof.B = []string{"abc", "2"}
		_, err := Verify(testVK("bn128"), testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("unparseable evaluation", func(t *testing.T) {
		proof := testProof("bn128")
		proof.EvalZW = "!"
		_, err := Verify(testVK("bn128"), testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("unparseable public signal", func(t *testing.T) {
		_, err := Verify(testVK("bn128"), types.PublicSignals{"nine"}, testProof("bn128"))
		assert.Error(t, err)
	})

	t.Run("wrong vk protocol", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Protocol = "groth16"
		_, err := Verify(vk, testSignals(), testProof("bn128"))
		assert.Error(t, err)
	})

	t.Run("wrong proof protocol", func(t *testing.T) {
		proof := testProof("bn128")
		proof.Protocol = "fflonk"
		_, err := Verify(testVK("bn128"), testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("curve mismatch", func(t *testing.T) {
		proof := testProof("bn128")
		proof.Curve = "bls12381"
		_, err := Verify(testVK("bn128"), testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("unknown curve", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Curve = "pallas"
		_, err := Verify(vk, testSignals(), testProof("bn128"))
		assert.Error(t, err)
	})

	t.Run("power out of range", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Power = 60
		_, err := Verify(vk, testSignals(), testProof("bn128"))
		assert.Error(t, err)
	})
}

func TestVerifyCustomGateContract(t *testing.T) {
	t.Run("proof gates without vk commitments", func(t *testing.T) {
		proof := testProof("bn128")
		proof.CustomGates = []types.CustomGateProof{{ID: "test.zero", Proof: []byte(`{}`)}}
		_, err := Verify(testVK("bn128"), testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("vk commitments without proof gates", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Qk = [][]string{bn254G1Coords(400)}
		_, err := Verify(vk, testSignals(), testProof("bn128"))
		assert.Error(t, err)
	})

	t.Run("count mismatch", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Qk = [][]string{bn254G1Coords(400), bn254G1Coords(401)}
		proof := testProof("bn128")
		proof.CustomGates = []types.CustomGateProof{{ID: "test.zero", Proof: []byte(`{}`)}}
		_, err := Verify(vk, testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("unknown gate id", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Qk = [][]string{bn254G1Coords(400)}
		proof := testProof("bn128")
		proof.CustomGates = []types.CustomGateProof{{ID: "no.such.gate", Proof: []byte(`{}`)}}
		_, err := Verify(vk, testSignals(), proof)
		assert.Error(t, err)
	})

	t.Run("zero gate changes nothing", func(t *testing.T) {
		vk := testVK("bn128")
		vk.Qk = [][]string{bn254G1Coords(400)}
		proof := testProof("bn128")
		proof.CustomGates = []types.CustomGateProof{{ID: "test.zero", Proof: []byte(`{}`)}}
		ok, err := Verify(vk, testSignals(), proof)
		require.NoError(t, err)

		plainOK, plainErr := Verify(testVK("bn128"), testSignals(), testProof("bn128"))
		require.NoError(t, plainErr)
		assert.Equal(t, plainOK, ok)
	})
}

func TestVerifyJSON(t *testing.T) {
	vkJSON, err := json.Marshal(testVK("bn128"))
	require.NoError(t, err)
	proofJSON, err := json.Marshal(testProof("bn128"))
	require.NoError(t, err)

	ok, err := VerifyJSON(vkJSON, []byte(`["9"]`), proofJSON)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyJSON([]byte(`{`), []byte(`["9"]`), proofJSON)
	assert.Error(t, err)
	_, err = VerifyJSON(vkJSON, []byte(`{`), proofJSON)
	assert.Error(t, err)
	_, err = VerifyJSON(vkJSON, []byte(`["9"]`), []byte(`{`))
	assert.Error(t, err)
}

func TestVerifyLogsRejectionReason(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ok, err := Verify(testVK("bn128"), testSignals(), testProof("bn128"), WithLogger(log))
	require.NoError(t, err)
	require.False(t, ok)
	assert.Contains(t, buf.String(), "pairing")

	buf.Reset()
	ok, err = Verify(testVK("bn128"), types.PublicSignals{}, testProof("bn128"), WithLogger(log))
	require.NoError(t, err)
	require.False(t, ok)
	assert.Contains(t, buf.String(), "public signals")
}

// TestVerifySnarkjsFixtures runs any snarkjs-generated artifacts placed under
// testdata/<name>/{verification_key,public,proof}.json and expects them to
// verify. Generate them with:
//
//	snarkjs plonk setup circuit.r1cs pot.ptau circuit.zkey
//	snarkjs plonk prove circuit.zkey witness.wtns proof.json public.json
//	snarkjs zkey export verificationkey circuit.zkey verification_key.json
func TestVerifySnarkjsFixtures(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if os.IsNotExist(err) {
		t.Skip("no snarkjs fixtures present")
	}
	require.NoError(t, err)

	ran := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join("testdata", entry.Name())
		vkJSON, err := os.ReadFile(filepath.Join(dir, "verification_key.json"))
		if os.IsNotExist(err) {
			continue
		}
		require.NoError(t, err)
		publicJSON, err := os.ReadFile(filepath.Join(dir, "public.json"))
		require.NoError(t, err)
		proofJSON, err := os.ReadFile(filepath.Join(dir, "proof.json"))
		require.NoError(t, err)

		ran = true
		t.Run(entry.Name(), func(t *testing.T) {
			ok, err := VerifyJSON(vkJSON, publicJSON, proofJSON)
			require.NoError(t, err)
			assert.True(t, ok)

			// incrementing a public signal must break verification
			signals, err := types.ParsePublicSignals(publicJSON)
			require.NoError(t, err)
			if len(signals) > 0 {
				vk, err := types.ParseVerificationKey(vkJSON)
				require.NoError(t, err)
				proof, err := types.ParseProof(proofJSON)
				require.NoError(t, err)

				e, eErr := curve.GetCurveFromName(vk.Curve)
				require.NoError(t, eErr)
				bumped, bErr := e.Fr().FromObject(signals[0])
				require.NoError(t, bErr)
				signals[0] = e.Fr().Add(bumped, e.Fr().One()).String()

				ok, err = Verify(vk, signals, proof)
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
	if !ran {
		t.Skip("testdata present but no fixture directories")
	}
}
