// Package async provides fan-out/fan-in helpers for running remote calls
// concurrently.
//
// [RunParallel] runs a batch of tasks on an errgroup and returns the first
// error, cancelling tasks that have not started yet. [Settle] runs a batch to
// completion and returns every outcome; it counts outstanding calls with a
// [Barrier], a countdown that closes its done channel exactly once when the
// last operation arrives.
package async
