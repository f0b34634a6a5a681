// Package gates defines the contract for custom PlonK gates and the registry
// the verifier resolves them from. A custom gate contributes one selector
// commitment Qk to the verification key, one scalar factor to the
// linearisation commitment D, and a pairing-free sub-verification of its own.
package gates

import (
	"encoding/json"
	"math/big"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/iden3/go-plonk-verifier/curve"
)

// Proof is an opaque decoded gate sub-proof. Each gate implementation
// produces and consumes its own concrete type.
type Proof interface{}

// Gate is a single custom-gate implementation. All operations are pure.
type Gate interface {
	// ID returns the gate identifier stored in proof entries.
	ID() string

	// DecodeProof parses the gate's sub-proof payload from a proof's
	// customGates entry.
	DecodeProof(raw json.RawMessage, e curve.Engine) (Proof, error)

	// PlonkFactor returns the scalar that multiplies this gate's Qk
	// commitment inside D. The arguments are the wire evaluations already
	// scaled by the opening challenge v.
	PlonkFactor(av, bv, cv *big.Int, f *curve.Field) *big.Int

	// VerifyProof runs the gate's local check. It never affects the main
	// pairing equation.
	VerifyProof(p Proof, f *curve.Field) bool
}

// Factory constructs a gate instance.
type Factory func() Gate

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a gate constructor under its id. Gates are registered from
// package init functions; registering the same id twice panics.
func Register(id string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[id]; dup {
		panic("gates: duplicate registration of gate " + id)
	}
	registry[id] = f
}

// New instantiates the gate registered under id.
func New(id string) (Gate, error) {
	registryMu.RLock()
	f, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("custom gate %q is not supported by library", id)
	}
	return f(), nil
}

// Supported lists the registered gate ids.
func Supported() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
