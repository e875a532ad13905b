// Package tsgraph implements the reactive runtime core for a time-series
// dataflow graph: a type-erased value model, observable time-series cells,
// the input/output binding and observer propagation rules that connect
// them, and the value-type meta system that describes their shapes.
//
// The package does not implement a graph builder, node lifecycle, wiring
// DSL or evaluation engine loop. It consumes the evaluation engine only
// through the small NotifiableContext boundary; a minimal reference
// implementation of that boundary lives in the harness subpackage for
// tests and examples.
package tsgraph
