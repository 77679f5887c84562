package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/dataset/protoexample"
	"github.com/YuminosukeSato/forest/metrics"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/pkg/log"
	"github.com/YuminosukeSato/forest/randomforest"
	"github.com/YuminosukeSato/forest/serving"
)

const maxRecordSize = 16 << 20

func (a *app) newPredictCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict JSON records, one object per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			recs, err := readRecords(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			features, err := serving.NewFeaturesDefinition(m.DataSpec(), m.InputFeatures())
			if err != nil {
				return err
			}
			set := serving.NewExampleSet(features, len(recs))
			failed, err := a.failedRecords(protoexample.CopyAllToExampleSet(recs, set))
			if err != nil {
				return err
			}

			engine, err := a.newEngine(m)
			if err != nil {
				return err
			}
			preds, err := engine.PredictBatch(cmd.Context(), set)
			if err != nil {
				return err
			}
			return writePredictions(cmd.OutOrStdout(), m, preds, failed)
		},
	}
	cmd.Flags().StringVar(&input, "input", "-", "JSON lines file to predict, - reads stdin")
	return cmd
}

func (a *app) newEvaluateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a model on labelled JSON records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			recs, err := readRecords(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			examples, err := protoexample.ToExamples(recs, m.DataSpec())
			if _, err := a.failedRecords(err); err != nil {
				return err
			}
			ds := dataset.NewVerticalDataset(m.DataSpec())
			for _, ex := range examples {
				if ex == nil {
					continue
				}
				if err := ds.AppendExample(ex); err != nil {
					return err
				}
			}

			engine, err := a.newEngine(m)
			if err != nil {
				return err
			}
			results, err := metrics.Evaluate(engine, ds, m.LabelColumn(), m.NumClasses())
			if err != nil {
				return err
			}
			a.logger.Info("Model evaluated",
				log.OperationKey, log.OperationEvaluate,
				log.RowsKey, ds.NumRows(),
			)
			report, err := evaluationReport(results)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report)
			return err
		},
	}
	cmd.Flags().StringVar(&input, "input", "-", "labelled JSON lines file, - reads stdin")
	return cmd
}

// failedRecords indexes the per record conversion errors of err by record.
// They are logged and the other records go on. Any other error is returned.
func (a *app) failedRecords(err error) (map[int]error, error) {
	if err == nil {
		return nil, nil
	}
	failed := make(map[int]error)
	for _, e := range multierr.Errors(err) {
		var convErr *errors.ConversionError
		if !errors.As(e, &convErr) || convErr.Record < 0 {
			return nil, err
		}
		failed[convErr.Record] = e
	}
	a.logger.Warn("Skipping records that cannot be converted",
		log.OperationKey, log.OperationConvert,
		log.ErrorCodeKey, log.ErrorConversion,
		log.RowsKey, len(failed),
		"error", err.Error(),
	)
	return failed, nil
}

// evaluationReport is the evaluation snippet, followed for regression by the
// mean absolute error and the coefficient of determination when defined.
func evaluationReport(results *metrics.EvaluationResults) (string, error) {
	snippet, err := randomforest.EvaluationSnippet(results)
	if err != nil {
		return "", err
	}
	report := snippet + "\n"
	if results.Task != model.TaskRegression {
		return report, nil
	}
	var extra []string
	if mae, err := results.MAE(); err == nil {
		extra = append(extra, "mae:"+strconv.FormatFloat(mae, 'g', -1, 64))
	}
	if r2, err := results.R2(); err == nil {
		extra = append(extra, "r2:"+strconv.FormatFloat(r2, 'g', -1, 64))
	}
	if len(extra) > 0 {
		report += strings.Join(extra, " ") + "\n"
	}
	return report, nil
}

func (a *app) newEngine(m *randomforest.Model) (*serving.Engine, error) {
	return serving.NewEngine(m,
		serving.WithNumWorkers(a.v.GetInt("workers")),
		serving.WithLogger(a.logger),
	)
}

// readRecords decodes one JSON object per non blank line.
func readRecords(path string, stdin io.Reader) ([]*structpb.Struct, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, errors.Wrap(err, "opening input records")
		}
		defer f.Close()
		r = f
	}

	var recs []*structpb.Struct
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxRecordSize)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		rec := &structpb.Struct{}
		if err := protojson.Unmarshal([]byte(text), rec); err != nil {
			return nil, errors.Wrapf(err, "input line %d", line)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input records")
	}
	return recs, nil
}

// writePredictions prints one JSON object per prediction. Classification
// predictions carry the class and the probability of every class. Records
// listed in failed get an object holding their conversion error instead.
func writePredictions(w io.Writer, m *randomforest.Model, preds []model.Prediction, failed map[int]error) error {
	var label *dataset.CategoricalSpec
	if m.Task() == model.TaskClassification {
		label = m.DataSpec().Columns[m.LabelColumn()].Categorical
	}

	bw := bufio.NewWriter(w)
	for i, p := range preds {
		out := map[string]interface{}{}
		if err, ok := failed[i]; ok {
			p = nil
			out["error"] = err.Error()
		}
		switch p := p.(type) {
		case *model.ClassificationPrediction:
			probabilities := map[string]interface{}{}
			for class := 0; class < p.Distribution.NumClasses(); class++ {
				probabilities[label.ItemString(class)] = p.Probability(class)
			}
			out["value"] = label.ItemString(p.Value)
			out["probabilities"] = probabilities
		case *model.RegressionPrediction:
			out["value"] = p.Value
		}

		rec, err := structpb.NewStruct(out)
		if err != nil {
			return errors.Wrap(err, "encoding prediction")
		}
		line, err := protojson.Marshal(rec)
		if err != nil {
			return errors.Wrap(err, "encoding prediction")
		}
		if _, err := bw.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return bw.Flush()
}
