package types

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// PlonkProtocol is the protocol identifier snarkjs writes into PlonK
// artifacts.
const PlonkProtocol = "plonk"

// VerificationKey mirrors the verification_key.json file exported by snarkjs
// for the PlonK protocol. Group elements are coordinate arrays of decimal
// big-integer strings, either affine or with a trailing z coordinate as
// snarkjs writes them; field elements are single strings.
type VerificationKey struct {
	Protocol string `json:"protocol"`
	Curve    string `json:"curve"`
	NPublic  int    `json:"nPublic"`
	Power    int    `json:"power"`

	K1 string `json:"k1"`
	K2 string `json:"k2"`

	Qm []string `json:"Qm"`
	Ql []string `json:"Ql"`
	Qr []string `json:"Qr"`
	Qo []string `json:"Qo"`
	Qc []string `json:"Qc"`

	S1 []string `json:"S1"`
	S2 []string `json:"S2"`
	S3 []string `json:"S3"`

	// Qk holds one selector commitment per custom gate, in gate order.
	Qk [][]string `json:"Qk,omitempty"`

	X2 [][]string `json:"X_2"`

	// W is the domain root of unity snarkjs includes for reference. The
	// verifier derives ω from the field instead of trusting this value.
	W string `json:"w,omitempty"`
}

// Proof mirrors the proof.json file exported by snarkjs for the PlonK
// protocol.
type Proof struct {
	A  []string `json:"A"`
	B  []string `json:"B"`
	C  []string `json:"C"`
	Z  []string `json:"Z"`
	T1 []string `json:"T1"`
	T2 []string `json:"T2"`
	T3 []string `json:"T3"`

	EvalA  string `json:"eval_a"`
	EvalB  string `json:"eval_b"`
	EvalC  string `json:"eval_c"`
	EvalS1 string `json:"eval_s1"`
	EvalS2 string `json:"eval_s2"`
	EvalZW string `json:"eval_zw"`
	EvalR  string `json:"eval_r"`

	Wxi  []string `json:"Wxi"`
	Wxiw []string `json:"Wxiw"`

	// CustomGates carries one sub-proof per custom gate, matching the
	// order of the verification key's Qk commitments.
	CustomGates []CustomGateProof `json:"customGates,omitempty"`

	Protocol string `json:"protocol"`
	Curve    string `json:"curve"`
}

// CustomGateProof is a single custom-gate entry of a proof. The sub-proof
// payload is opaque here; the registered gate decodes it.
type CustomGateProof struct {
	ID    string          `json:"id"`
	Proof json.RawMessage `json:"proof"`
}

// PublicSignals is the ordered list of public inputs of a proof. snarkjs
// writes them as decimal strings, but bare JSON numbers are accepted too.
type PublicSignals []string

// UnmarshalJSON accepts an array whose entries are strings or numbers.
func (s *PublicSignals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return errors.Wrap(err, "public signals are not a JSON array")
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		switch t := v.(type) {
		case string:
			out[i] = t
		case json.Number:
			out[i] = t.String()
		default:
			return errors.Errorf("public signal %d is not a string or number", i)
		}
	}
	*s = out
	return nil
}

// ParseVerificationKey parses the JSON-encoded verification key data.
func ParseVerificationKey(data []byte) (*VerificationKey, error) {
	var vk VerificationKey
	if err := json.Unmarshal(data, &vk); err != nil {
		return nil, errors.Wrap(err, "failed to parse verification key JSON")
	}
	return &vk, nil
}

// ParseProof parses the JSON-encoded proof data.
func ParseProof(data []byte) (*Proof, error) {
	var p Proof
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "failed to parse proof JSON")
	}
	return &p, nil
}

// ParsePublicSignals parses the JSON-encoded public signals data.
func ParsePublicSignals(data []byte) (PublicSignals, error) {
	var signals PublicSignals
	if err := json.Unmarshal(data, &signals); err != nil {
		return nil, errors.Wrap(err, "failed to parse public signals JSON")
	}
	return signals, nil
}
