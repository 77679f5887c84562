package serving

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/core/parallel"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/pkg/log"
)

const defaultParallelThreshold = 64

// Engine predicts batches of rows with a model. It is safe for concurrent use
// as long as the model is not mutated.
type Engine struct {
	model             model.Predictor
	numWorkers        int
	deterministic     bool
	parallelThreshold int
	logger            log.Logger
	registerer        prometheus.Registerer
	metrics           *engineMetrics
}

// NewEngine creates an engine over m.
func NewEngine(m model.Predictor, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, errors.NewValidationError("model", "model is required", nil)
	}
	e := &Engine{
		model:             m,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("serving.engine")
	}
	e.logger = e.logger.With(log.TaskKey, m.Task().String())

	e.metrics = newEngineMetrics()
	if e.registerer != nil {
		if err := e.metrics.register(e.registerer); err != nil {
			return nil, errors.Wrap(err, "registering serving metrics")
		}
	}
	return e, nil
}

var _ model.Predictor = (*Engine)(nil)

// Task implements model.Predictor.
func (e *Engine) Task() model.Task { return e.model.Task() }

// Predict predicts a single row.
func (e *Engine) Predict(src dataset.RowSource, row int) (model.Prediction, error) {
	p, err := e.model.Predict(src, row)
	if err != nil {
		e.metrics.errors.Inc()
		return nil, err
	}
	e.metrics.predictions.WithLabelValues(e.model.Task().String()).Inc()
	return p, nil
}

// PredictBatch predicts every row of src. Rows are split into contiguous
// chunks predicted concurrently unless the engine is deterministic or the
// batch is small. The first error aborts the batch.
func (e *Engine) PredictBatch(ctx context.Context, src dataset.RowSource) ([]model.Prediction, error) {
	start := time.Now()
	rows := src.NumRows()
	out := make([]model.Prediction, rows)

	workers := e.numWorkers
	if e.deterministic {
		workers = 1
	}

	err := parallel.ParallelizeWithThreshold(ctx, rows, e.parallelThreshold, workers,
		func(ctx context.Context, begin, end int) error {
			for row := begin; row < end; row++ {
				p, err := e.model.Predict(src, row)
				if err != nil {
					return errors.Wrapf(err, "row %d", row)
				}
				out[row] = p
			}
			return nil
		})

	elapsed := time.Since(start)
	e.metrics.batchDuration.Observe(elapsed.Seconds())
	if err != nil {
		e.metrics.errors.Inc()
		e.logger.Error("Batch prediction failed", err,
			log.OperationKey, log.OperationPredict,
			log.RowsKey, rows,
		)
		return nil, err
	}

	e.metrics.predictions.WithLabelValues(e.model.Task().String()).Add(float64(rows))
	e.logger.Debug("Batch predicted",
		log.OperationKey, log.OperationPredict,
		log.RowsKey, rows,
		log.WorkersKey, workers,
		log.DurationMsKey, elapsed.Milliseconds(),
	)
	return out, nil
}
