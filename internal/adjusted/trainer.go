package adjusted

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// DefaultSplit is the fraction of rows held out for validation.
const DefaultSplit = 0.25

// Dataset is a feature matrix with aligned labels.
type Dataset struct {
	X [][]float64
	Y []float64
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Y)
}

// TrainResult is the trained outcome model together with the partitions it
// was fitted and held out on.
type TrainResult struct {
	Model      Model
	Train      Dataset
	Validation Dataset
}

// Trainer fits the secondary outcome model on rating-augmented segments.
// Feature rows are the ten per-slot ratings plus the lineup aggregate;
// labels are the segment outcomes.
type Trainer struct {
	fitter Fitter
	split  float64
	even   bool
	rng    *rand.Rand
	logger *slog.Logger
}

// NewTrainer creates a Trainer. Seed 0 derives the split randomness from
// the wall clock, matching the original pipeline's unpinned behavior; pass
// a nonzero seed for reproducible partitions.
func NewTrainer(fitter Fitter, split float64, even bool, seed int64, logger *slog.Logger) (*Trainer, error) {
	if fitter == nil {
		return nil, fmt.Errorf("trainer: nil fitter")
	}
	if split <= 0 || split >= 1 {
		return nil, fmt.Errorf("trainer: split fraction %v outside (0, 1)", split)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{
		fitter: fitter,
		split:  split,
		even:   even,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}, nil
}

// Train cleans the rated table, partitions it, optionally balances the
// classes, and fits the configured model on the train partition.
func (t *Trainer) Train(ctx context.Context, rated []RatedMatchup) (*TrainResult, error) {
	full := t.features(rated)
	if full.Len() == 0 {
		return nil, fmt.Errorf("train: no fully rated rows")
	}

	train, val := t.partition(full)

	if t.even {
		train = t.evenSplit(train)
		val = t.evenSplit(val)
		// Balancing groups rows by class; reshuffle so ordering bias
		// does not leak into the fit.
		t.shuffle(train)
		t.shuffle(val)
	}

	t.logger.InfoContext(ctx, "training outcome model",
		"rows", full.Len(),
		"train_rows", train.Len(),
		"validation_rows", val.Len(),
		"even_classes", t.even,
	)

	model, err := t.fitter.Fit(train.X, train.Y)
	if err != nil {
		return nil, fmt.Errorf("outcome model fit: %w", err)
	}

	return &TrainResult{Model: model, Train: train, Validation: val}, nil
}

// features drops rows with any unrated slot and lays out the feature
// matrix: five home ratings, five visitor ratings, lineup aggregate.
func (t *Trainer) features(rated []RatedMatchup) Dataset {
	var d Dataset
	for _, r := range rated {
		if !r.FullyRated() {
			continue
		}
		row := make([]float64, 0, 2*LineupSize+1)
		for i := 0; i < LineupSize; i++ {
			row = append(row, r.Home[i].APM)
		}
		for i := 0; i < LineupSize; i++ {
			row = append(row, r.Visitor[i].APM)
		}
		row = append(row, r.LineupAPM)

		d.X = append(d.X, row)
		d.Y = append(d.Y, float64(r.Outcome))
	}
	return d
}

// partition randomly assigns the split fraction of rows to validation and
// the rest to train.
func (t *Trainer) partition(d Dataset) (train, val Dataset) {
	perm := t.rng.Perm(d.Len())
	valSize := int(float64(d.Len()) * t.split)

	for i, idx := range perm {
		if i < valSize {
			val.X = append(val.X, d.X[idx])
			val.Y = append(val.Y, d.Y[idx])
		} else {
			train.X = append(train.X, d.X[idx])
			train.Y = append(train.Y, d.Y[idx])
		}
	}
	return train, val
}

// evenSplit subsamples the majority class so both labels appear exactly as
// often as the minority class.
func (t *Trainer) evenSplit(d Dataset) Dataset {
	var pos, neg []int
	for i, y := range d.Y {
		if y > 0 {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}

	keep := len(pos)
	if len(neg) < keep {
		keep = len(neg)
	}
	t.rng.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })
	t.rng.Shuffle(len(neg), func(i, j int) { neg[i], neg[j] = neg[j], neg[i] })

	var out Dataset
	for _, idx := range append(pos[:keep], neg[:keep]...) {
		out.X = append(out.X, d.X[idx])
		out.Y = append(out.Y, d.Y[idx])
	}
	return out
}

// shuffle permutes features and labels jointly.
func (t *Trainer) shuffle(d Dataset) {
	t.rng.Shuffle(d.Len(), func(i, j int) {
		d.X[i], d.X[j] = d.X[j], d.X[i]
		d.Y[i], d.Y[j] = d.Y[j], d.Y[i]
	})
}

// Accuracy scores a fitted model against a partition. Exposed so the CLI
// can report held-out performance.
func Accuracy(m Model, d Dataset) float64 {
	if d.Len() == 0 {
		return 0
	}
	pred := m.Predict(d.X)
	correct := 0
	for i, p := range pred {
		if (p > 0) == (d.Y[i] > 0) {
			correct++
		}
	}
	return float64(correct) / float64(d.Len())
}
