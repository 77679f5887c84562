// Command forest inspects random forest model definitions and runs them on
// JSON records.
//
//	forest describe --model model.yaml --full
//	forest importance --model model.yaml --metric NUM_NODES --plot importance.png
//	forest predict --model model.yaml --input rows.jsonl
//
// Flags can also be set with FOREST_* environment variables, e.g.
// FOREST_MODEL=model.yaml or FOREST_LOG_LEVEL=debug.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
