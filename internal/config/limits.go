package config

import (
	"fmt"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// Limits bounds the per-job cutting options.
type Limits struct {
	Speed             IntRange   `yaml:"speed" json:"speed"`
	Depth             FloatRange `yaml:"depth" json:"depth"`
	AngleTolerance    FloatRange `yaml:"angle_tolerance" json:"angleTolerance"`
	DistanceTolerance FloatRange `yaml:"distance_tolerance" json:"distanceTolerance"`
}

// IntRange is an inclusive integer range with a default value.
type IntRange struct {
	Min     int `yaml:"min" json:"min" validate:"gte=1"`
	Max     int `yaml:"max" json:"max" validate:"gtefield=Min"`
	Default int `yaml:"default" json:"default" validate:"gtefield=Min,ltefield=Max"`
}

// Contains reports whether v lies in [Min, Max].
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FloatRange is an inclusive range with a default value.
type FloatRange struct {
	Min     float64 `yaml:"min" json:"min" validate:"gt=0"`
	Max     float64 `yaml:"max" json:"max" validate:"gtefield=Min"`
	Default float64 `yaml:"default" json:"default" validate:"gtefield=Min,ltefield=Max"`
}

// Contains reports whether v lies in [Min, Max].
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Options are the raw per-job choices. Nil fields take the configured
// default.
type Options struct {
	Tool              string
	Speed             *int
	Depth             *float64
	AngleTolerance    *float64
	DistanceTolerance *float64
}

// Resolve applies defaults and range checks to opts. This is the
// option-input boundary: the returned parameters are guaranteed to lie
// within the configured limits.
func (l Limits) Resolve(opts Options) (model.CuttingParameters, error) {
	params := model.CuttingParameters{
		Tool:              model.Tool1,
		Speed:             l.Speed.Default,
		Depth:             l.Depth.Default,
		AngleTolerance:    l.AngleTolerance.Default,
		DistanceTolerance: l.DistanceTolerance.Default,
	}

	if opts.Tool != "" {
		tool, err := model.ParseTool(opts.Tool)
		if err != nil {
			return model.CuttingParameters{}, err
		}
		params.Tool = tool
	}

	if opts.Speed != nil {
		if !l.Speed.Contains(*opts.Speed) {
			return model.CuttingParameters{}, fmt.Errorf("speed %d out of range (%d-%d)",
				*opts.Speed, l.Speed.Min, l.Speed.Max)
		}
		params.Speed = *opts.Speed
	}

	floats := []struct {
		name string
		in   *float64
		r    FloatRange
		out  *float64
	}{
		{"depth", opts.Depth, l.Depth, &params.Depth},
		{"angle tolerance", opts.AngleTolerance, l.AngleTolerance, &params.AngleTolerance},
		{"distance tolerance", opts.DistanceTolerance, l.DistanceTolerance, &params.DistanceTolerance},
	}
	for _, f := range floats {
		if f.in == nil {
			continue
		}
		if !f.r.Contains(*f.in) {
			return model.CuttingParameters{}, fmt.Errorf("%s %g out of range (%g-%g)", f.name, *f.in, f.r.Min, f.r.Max)
		}
		*f.out = *f.in
	}

	return params, nil
}
