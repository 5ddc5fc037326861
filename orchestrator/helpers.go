package orchestrator

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// standardize returns a copy of X with every column shifted to zero mean
// and scaled to unit (population) standard deviation. Constant columns are
// only centered.
func standardize(X *mat.Dense) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)
		for i, v := range col {
			v -= mean
			if std > 0 {
				v /= std
			}
			out.Set(i, j, v)
		}
	}
	return out
}
