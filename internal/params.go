package internal

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parameters steer quality refinement.
type Parameters struct {
	// Minimum triangle quality (shortest edge over circumradius). 0 disables
	// the quality bound. 1.0 corresponds to a smallest angle of 30°.
	MinB float64 `yaml:"min_b"`
	// Maximum triangle area. 0 disables the area bound.
	MaxArea float64 `yaml:"max_area"`
	// Triangles with an edge shorter than this are left alone, and segments are
	// not split into pieces shorter than this.
	MinLength float64 `yaml:"min_length"`
	// Cap on the number of refinement steps.
	MaxIterations int `yaml:"max_iterations"`
}

func DefaultParameters() Parameters {
	return Parameters{
		MinB:          1.0,
		MaxArea:       0,
		MinLength:     0,
		MaxIterations: 100000,
	}
}

// Decode YAML parameters. Fields missing from the document keep their default
// values.
func LoadParameters(r io.Reader) (Parameters, error) {
	params := DefaultParameters()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil && err != io.EOF {
		return Parameters{}, errors.Wrap(err, "decoding parameters")
	}
	if err := params.Validate(); err != nil {
		return Parameters{}, err
	}
	return params, nil
}

func (p Parameters) Validate() error {
	switch {
	case p.MinB < 0:
		return errors.Errorf("min_b must not be negative, got %g", p.MinB)
	case p.MaxArea < 0:
		return errors.Errorf("max_area must not be negative, got %g", p.MaxArea)
	case p.MinLength < 0:
		return errors.Errorf("min_length must not be negative, got %g", p.MinLength)
	case p.MaxIterations <= 0:
		return errors.Errorf("max_iterations must be positive, got %d", p.MaxIterations)
	}
	return nil
}

// Return the parameters with lengths and areas multiplied for a coordinate
// scale factor.
func (p Parameters) Scaled(scale float64) Parameters {
	p.MaxArea *= scale * scale
	p.MinLength *= scale
	return p
}
