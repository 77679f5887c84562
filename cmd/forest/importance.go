package main

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/pkg/log"
	"github.com/YuminosukeSato/forest/randomforest"
)

func (a *app) newImportanceCmd() *cobra.Command {
	var (
		metrics  []string
		plotPath string
	)
	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Print the structural variable importances of a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			if len(metrics) == 0 {
				metrics = m.AvailableVariableImportances()
			}
			if plotPath != "" && len(metrics) != 1 {
				return errors.NewValidationError("plot", "exactly one --metric is required with --plot", metrics)
			}

			for _, metric := range metrics {
				importances, err := m.GetVariableImportance(metric)
				if err != nil {
					a.logger.Error("Failed to compute variable importance", err,
						log.MetricKey, metric, log.ErrorCodeKey, log.ErrorUnknownMetric)
					return err
				}
				if err := writeImportanceTable(cmd.OutOrStdout(), m, metric, importances); err != nil {
					return err
				}
				if plotPath != "" {
					if err := plotImportances(plotPath, m, metric, importances); err != nil {
						return err
					}
					a.logger.Info("Variable importance plotted", log.MetricKey, metric, log.PathKey, plotPath)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&metrics, "metric", nil, "importance metric, repeatable (default: every available metric)")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write a bar chart of the importances to this file (.png, .svg or .pdf)")
	return cmd
}

func writeImportanceTable(w io.Writer, m *randomforest.Model, metric string, importances []model.VariableImportance) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(metric)
	tw.AppendHeader(table.Row{"#", "Feature", "Importance"})
	for i, vi := range importances {
		tw.AppendRow(table.Row{i + 1, columnName(m, vi.Attribute), strconv.FormatFloat(vi.Importance, 'g', 6, 64)})
	}
	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

func plotImportances(path string, m *randomforest.Model, metric string, importances []model.VariableImportance) error {
	if len(importances) == 0 {
		return errors.NewValueError("plotImportances", "no variable importance to plot for "+metric)
	}
	names := make([]string, len(importances))
	values := make(plotter.Values, len(importances))
	for i, vi := range importances {
		names[i] = columnName(m, vi.Attribute)
		values[i] = vi.Importance
	}

	p := plot.New()
	p.Title.Text = metric
	p.Y.Label.Text = "importance"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "building importance chart")
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(vg.Length(len(names)+2)*vg.Centimeter*2, 8*vg.Centimeter, path); err != nil {
		return errors.Wrap(err, "saving importance chart")
	}
	return nil
}

func columnName(m *randomforest.Model, col int) string {
	if c := m.DataSpec().Column(col); c != nil {
		return c.Name
	}
	return "#" + strconv.Itoa(col)
}
