// Package synth provides synthetic blocks for exercising and benchmarking
// flow graphs: generators with no input, absorbers with no output,
// passthroughs, and SimCompute, a passthrough that emulates compute cost.
//
// Every block is generic over its element type T. CountingSource is the only
// block that needs arithmetic and is restricted to block.Number.
//
// Blocks are registered with block.Register from init() for the element
// types listed in register.go.
package synth
