package loaders

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned when a verification key is not found
var ErrKeyNotFound = errors.New("verification key not found")

// VerificationKeyLoader loads raw snarkjs verification-key JSON for a named
// circuit
type VerificationKeyLoader interface {
	Load(circuit string) ([]byte, error)
}

// FSKeyLoader reads keys from filesystem
type FSKeyLoader struct {
	Dir string
}

// Load reads <Dir>/<circuit>.json
func (m FSKeyLoader) Load(circuit string) ([]byte, error) {
	data, err := os.ReadFile(fmt.Sprintf("%s/%v.json", m.Dir, circuit))
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	return data, err
}
