package curve

import (
	"math/big"

	"github.com/pkg/errors"
)

// parseG1Coords parses an [x, y] or [x, y, z] string array. z is nil when the
// affine form was given.
func parseG1Coords(coords []string) (x, y, z *big.Int, err error) {
	if len(coords) != 2 && len(coords) != 3 {
		return nil, nil, nil, errors.Errorf("G1 point has %d coordinates, want 2 or 3", len(coords))
	}
	if x, err = stringToBigInt(coords[0]); err != nil {
		return nil, nil, nil, errors.Wrap(err, "G1 x coordinate")
	}
	if y, err = stringToBigInt(coords[1]); err != nil {
		return nil, nil, nil, errors.Wrap(err, "G1 y coordinate")
	}
	if len(coords) == 3 {
		if z, err = stringToBigInt(coords[2]); err != nil {
			return nil, nil, nil, errors.Wrap(err, "G1 z coordinate")
		}
	}
	return x, y, z, nil
}

type g2Coords struct {
	x0, x1, y0, y1 *big.Int
	infinity       bool
}

// parseG2Coords parses a [[x0,x1],[y0,y1]] or [[x0,x1],[y0,y1],[z0,z1]]
// string array. Only unit and zero z are accepted; snarkjs always writes G2
// points normalized.
func parseG2Coords(coords [][]string) (*g2Coords, error) {
	if len(coords) != 2 && len(coords) != 3 {
		return nil, errors.Errorf("G2 point has %d coordinate pairs, want 2 or 3", len(coords))
	}
	pairs := make([][2]*big.Int, len(coords))
	for i, pair := range coords {
		if len(pair) != 2 {
			return nil, errors.Errorf("G2 coordinate %d has %d components, want 2", i, len(pair))
		}
		for j, s := range pair {
			v, err := stringToBigInt(s)
			if err != nil {
				return nil, errors.Wrapf(err, "G2 coordinate %d.%d", i, j)
			}
			pairs[i][j] = v
		}
	}
	c := &g2Coords{
		x0: pairs[0][0], x1: pairs[0][1],
		y0: pairs[1][0], y1: pairs[1][1],
	}
	if len(coords) == 3 {
		z0, z1 := pairs[2][0], pairs[2][1]
		switch {
		case z0.Sign() == 0 && z1.Sign() == 0:
			c.infinity = true
		case z0.Cmp(big.NewInt(1)) == 0 && z1.Sign() == 0:
		default:
			return nil, errors.New("G2 point is not normalized")
		}
	}
	return c, nil
}
