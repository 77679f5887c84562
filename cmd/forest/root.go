package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/forest/modelio"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/pkg/log"
	"github.com/YuminosukeSato/forest/randomforest"
)

// app holds the configuration shared by the subcommands.
type app struct {
	v      *viper.Viper
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "forest",
		Short: "Inspect and run random forest models",

		// SilenceUsage keeps the usage text out of runtime errors.
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := log.SetupLogger(a.v.GetString("log-level"), cmd.ErrOrStderr()); err != nil {
				return err
			}
			a.logger = log.GetLoggerWithName("cli").With(log.OperationKey, cmd.Name())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("model", "", "model definition file (YAML or JSON)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Int("workers", 0, "number of prediction workers, 0 uses every CPU")

	a.v.SetEnvPrefix("FOREST")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	cobra.CheckErr(a.v.BindPFlags(flags))

	root.AddCommand(
		a.newDescribeCmd(),
		a.newStructureCmd(),
		a.newImportanceCmd(),
		a.newPredictCmd(),
		a.newEvaluateCmd(),
		newVersionCmd(),
	)
	return root
}

// loadModel reads the model named by --model or FOREST_MODEL.
func (a *app) loadModel() (*randomforest.Model, error) {
	path := a.v.GetString("model")
	if path == "" {
		return nil, errors.NewValidationError("model", "a model definition is required (--model or FOREST_MODEL)", path)
	}

	start := time.Now()
	m, err := modelio.LoadFile(path)
	if err != nil {
		a.logger.Error("Failed to load model", err, log.PathKey, path, log.ErrorCodeKey, log.ErrorInvalidModel)
		return nil, err
	}
	a.logger.Debug("Model loaded",
		log.PathKey, path,
		log.ModelNameKey, randomforest.ModelName,
		log.TreesKey, m.NumTrees(),
		log.NodesKey, m.NumNodes(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return m, nil
}
