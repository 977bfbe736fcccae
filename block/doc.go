// Package block defines the processing contract shared by every blocksim block.
//
// # Reading Guide
//
//   - work.go: WorkStatus returned to the scheduler after each invocation
//   - lifecycle.go: one-way Running → Stopped flag (Base) embedded by every block
//   - span.go: Input/Output batch views handed to a block for one call
//   - contract.go: single-item and bulk interfaces, and the adapters between them
//   - param.go: Annotated parameters and their descriptors
//   - registry.go: factories keyed by block kind and element type
//
// # Invocation Model
//
// A scheduler owns block instances and calls them one at a time. Blocks are
// either single-item (ProcessOne, called per element) or bulk (ProcessBulk,
// called per batch). A bulk call publishes exactly the number of elements it
// produced; zero is valid and means "no progress this call". Blocks never
// keep a span after the call returns.
//
// A block signals completion by calling RequestStop on its embedded Base.
// The flag is read by the scheduler between calls; WorkDone is informational.
//
// Implementations live in sub-packages:
//   - block/synth: synthetic sources, sinks, passthroughs and SimCompute
//   - block/delay: the compute-delay model and wait strategies
//   - block/flow: a minimal synchronous scheduler used for load tests and the CLI
package block
