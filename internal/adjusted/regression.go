package adjusted

import (
	"fmt"
	"math"
)

// Fitter is the narrow model-fitting capability the pipeline depends on:
// anything that can turn a design matrix and target vector into a Model.
type Fitter interface {
	Fit(x [][]float64, y []float64) (Model, error)
}

// Model is a fitted predictor.
type Model interface {
	Predict(x [][]float64) []float64
}

// RidgeRegression fits L2-regularized least squares by solving the normal
// equations (XᵀX + αI)β = Xᵀy with a Cholesky decomposition. Alpha 0
// degrades to ordinary least squares, though the fit then requires a
// full-rank design matrix.
type RidgeRegression struct {
	Alpha float64
}

// LinearModel is a fitted linear predictor.
type LinearModel struct {
	Coefficients []float64
}

// Fit implements Fitter.
func (r RidgeRegression) Fit(x [][]float64, y []float64) (Model, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("ridge fit: empty design matrix")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("ridge fit: %d rows but %d targets", len(x), len(y))
	}
	if r.Alpha < 0 {
		return nil, fmt.Errorf("ridge fit: negative regularization strength %v", r.Alpha)
	}

	cols := len(x[0])

	// Gram matrix XᵀX with the ridge penalty on the diagonal.
	gram := make([][]float64, cols)
	for i := range gram {
		gram[i] = make([]float64, cols)
	}
	for _, row := range x {
		for i := 0; i < cols; i++ {
			if row[i] == 0 {
				continue
			}
			for j := i; j < cols; j++ {
				gram[i][j] += row[i] * row[j]
			}
		}
	}
	for i := 0; i < cols; i++ {
		gram[i][i] += r.Alpha
		for j := 0; j < i; j++ {
			gram[i][j] = gram[j][i]
		}
	}

	// Right-hand side Xᵀy.
	rhs := make([]float64, cols)
	for k, row := range x {
		for i := 0; i < cols; i++ {
			rhs[i] += row[i] * y[k]
		}
	}

	coef, err := solveCholesky(gram, rhs)
	if err != nil {
		return nil, fmt.Errorf("ridge fit: %w", err)
	}

	return &LinearModel{Coefficients: coef}, nil
}

// Predict implements Model.
func (m *LinearModel) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		var sum float64
		for j, v := range row {
			sum += v * m.Coefficients[j]
		}
		out[i] = sum
	}
	return out
}

// solveCholesky solves Ab = rhs for symmetric positive-definite A.
func solveCholesky(a [][]float64, rhs []float64) ([]float64, error) {
	n := len(a)

	// Decompose A = LLᵀ in place into the lower triangle.
	lower := make([][]float64, n)
	for i := range lower {
		lower[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= lower[i][k] * lower[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, fmt.Errorf("matrix not positive definite at column %d", i)
				}
				lower[i][i] = math.Sqrt(sum)
			} else {
				lower[i][j] = sum / lower[j][j]
			}
		}
	}

	// Forward substitution Lz = rhs.
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := rhs[i]
		for k := 0; k < i; k++ {
			sum -= lower[i][k] * z[k]
		}
		z[i] = sum / lower[i][i]
	}

	// Back substitution Lᵀb = z.
	b := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for k := i + 1; k < n; k++ {
			sum -= lower[k][i] * b[k]
		}
		b[i] = sum / lower[i][i]
	}

	return b, nil
}

// Logistic regression training parameters. Batch gradient descent with a
// fixed iteration count converges well enough on the small feature sets
// this pipeline produces.
const (
	logisticIters = 400
	logisticLR    = 0.15
)

// LogisticRegression fits a binary classifier over {-1, +1} labels by
// batch gradient descent, with an intercept term prepended internally.
type LogisticRegression struct{}

// LogisticModel is a fitted logistic classifier. Predict returns -1 or +1.
type LogisticModel struct {
	Weights []float64 // index 0 is the intercept
}

// Fit implements Fitter. Labels must be -1 or +1.
func (LogisticRegression) Fit(x [][]float64, y []float64) (Model, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("logistic fit: empty design matrix")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("logistic fit: %d rows but %d targets", len(x), len(y))
	}

	cols := len(x[0])
	w := make([]float64, cols+1)
	targets := make([]float64, len(y))
	for i, label := range y {
		switch label {
		case 1:
			targets[i] = 1
		case -1:
			targets[i] = 0
		default:
			return nil, fmt.Errorf("logistic fit: label %v not in {-1, +1}", label)
		}
	}

	grad := make([]float64, cols+1)
	for iter := 0; iter < logisticIters; iter++ {
		for i := range grad {
			grad[i] = 0
		}
		for k, row := range x {
			p := sigmoid(dotWithIntercept(w, row))
			diff := p - targets[k]
			grad[0] += diff
			for j, v := range row {
				grad[j+1] += diff * v
			}
		}
		scale := logisticLR / float64(len(x))
		for i := range w {
			w[i] -= scale * grad[i]
		}
	}

	return &LogisticModel{Weights: w}, nil
}

// Predict implements Model.
func (m *LogisticModel) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		if sigmoid(dotWithIntercept(m.Weights, row)) >= 0.5 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

func dotWithIntercept(w []float64, row []float64) float64 {
	sum := w[0]
	for j, v := range row {
		sum += w[j+1] * v
	}
	return sum
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// NewFitter resolves a model-fitting capability by name. An unknown name is
// a setup-time failure that aborts the run.
func NewFitter(name string, ridgeAlpha float64) (Fitter, error) {
	switch name {
	case "ridge":
		return RidgeRegression{Alpha: ridgeAlpha}, nil
	case "linear":
		return RidgeRegression{Alpha: 0}, nil
	case "logistic":
		return LogisticRegression{}, nil
	default:
		return nil, fmt.Errorf("unknown model %q (want ridge, linear or logistic)", name)
	}
}
