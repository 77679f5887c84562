// Package forest provides an in-memory random forest engine for Go: the tree
// and ensemble data structures, prediction, visitation, structural statistics,
// variable importances and text reports.
//
// Models are built node by node or decoded from a YAML/JSON definition, then
// served to backend code through a parallel batch engine. Training is out of
// scope; models come from an external trainer.
//
// # Features
//
//   - Classification (winner-take-all or averaged distributions) and regression
//   - Numerical, categorical (set and bitmap) and boolean conditions with
//     explicit missing value routing
//   - Structural variable importances: NUM_NODES, NUM_AS_ROOT, SUM_SCORE,
//     MEAN_MIN_DEPTH, INV_MEAN_MIN_DEPTH
//   - Text reports: model description with histograms, full tree structure
//   - Parallel batch prediction with Prometheus metrics and zerolog logging
//
// # Installation
//
//	go get github.com/YuminosukeSato/forest
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/forest/dataset"
//	    "github.com/YuminosukeSato/forest/modelio"
//	)
//
//	func main() {
//	    m, err := modelio.LoadFile("model.yaml")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ex := &dataset.Example{Values: []dataset.Value{
//	        dataset.NumericalValue(2), dataset.MissingValue(),
//	    }}
//	    p, err := m.PredictExample(ex)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", p)
//	}
//
// # Packages
//
//   - randomforest: the forest model, predictions, statistics, importances, reports
//   - tree: conditions, nodes and per-tree traversals
//   - dataset: schema, values, row sources and the columnar dataset
//   - dataset/protoexample: conversion of protobuf Struct records
//   - serving: batch prediction engine and row-major example buffers
//   - modelio: YAML/JSON model definitions
//   - metrics: evaluation results (accuracy, log loss, RMSE)
//   - core/model: tasks, predictions, distributions and interfaces
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log, pkg/histogram: shared infrastructure
//
// The forest command (cmd/forest) exposes describe, structure, importance,
// predict and evaluate on model definition files.
package forest
