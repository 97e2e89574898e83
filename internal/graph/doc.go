// Package graph synthesizes declarative expression state machines for an
// external animation runtime.
//
// A graph is nodes (per-slot target states, optional duration range) plus
// edges carrying one of five condition kinds: onEnter, random, while, event,
// timer. The builder never executes anything; it only emits a description
// whose slot requests are constrained to vocabularies the source art actually
// provides.
package graph
