package clustering

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// Params holds every knob understood by the five methods. Each method reads
// only the fields it needs.
type Params struct {
	NClusters  int     `yaml:"n_clusters" json:"n_clusters"`
	Eps        float64 `yaml:"eps" json:"eps"`
	MinSamples int     `yaml:"min_samples" json:"min_samples"`
	Threshold  float64 `yaml:"threshold" json:"threshold"`
	Linkage    string  `yaml:"linkage" json:"linkage"`
	Criterion  string  `yaml:"criterion" json:"criterion"`
	Bandwidth  float64 `yaml:"bandwidth" json:"bandwidth"` // 0 means estimate from data
	MaxIter    int     `yaml:"max_iter" json:"max_iter"`
	NInit      int     `yaml:"n_init" json:"n_init"`
	Workers    int     `yaml:"workers" json:"workers"`
}

const (
	CriterionDistance = "distance"
	CriterionMaxClust = "maxclust"
)

func DefaultParams() Params {
	return Params{
		NClusters:  3,
		Eps:        0.5,
		MinSamples: 5,
		Threshold:  1.5,
		Linkage:    string(Ward),
		Criterion:  CriterionDistance,
		MaxIter:    300,
		NInit:      10,
		Workers:    runtime.GOMAXPROCS(0),
	}
}

// withDefaults fills zero values from DefaultParams. Explicit values are
// left alone so validation can reject them.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Linkage == "" {
		p.Linkage = d.Linkage
	}
	if p.Criterion == "" {
		p.Criterion = d.Criterion
	}
	if p.MaxIter <= 0 {
		p.MaxIter = d.MaxIter
	}
	if p.NInit <= 0 {
		p.NInit = d.NInit
	}
	if p.Workers <= 0 {
		p.Workers = d.Workers
	}
	return p
}

func invalidParams(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidParams)
}

func checkClusterCount(k, n int) error {
	if k < 1 {
		return invalidParams("n_clusters must be at least 1, got %d", k)
	}
	if k > n {
		return invalidParams("n_clusters (%d) exceeds the number of rows (%d)", k, n)
	}
	return nil
}
