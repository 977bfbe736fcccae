// Package flow is a minimal synchronous scheduler for linear block chains:
// one source, zero or more processing stages, one sink.
//
// A Chain invokes its blocks one at a time on the calling goroutine, moving
// published elements through fixed-size FIFO buffers. It ends when a stage or
// the sink stops, when the source has stopped and every buffer is drained, or
// when the context is cancelled. RunParallel runs independent copies of a
// chain described by a Spec concurrently, one goroutine per chain.
//
// flow owns no block semantics; blocks are created through the block
// registry, so callers must link an implementation package such as
// block/synth.
package flow
