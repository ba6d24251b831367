// Package audit finds App Engine versions that have no running instances and
// deletes them on request.
//
// The work happens in three steps:
//
//   - [Aggregator.Aggregate] walks the project → service → version → instance
//     hierarchy through a [Directory]. Each level is fetched in a stage that
//     issues one request per parent concurrently and completes only when every
//     request in the stage has returned. A not-found parent is treated as
//     childless; any other error aborts the walk and is returned as-is.
//   - [Scan] selects every version without instances from the resulting
//     [Tree] and computes its age.
//   - [Deleter.DeleteAll] deletes a batch of versions concurrently and
//     reports each failure without stopping the rest.
//
// Logging goes through the [logr.Logger] stored in the context, if any.
//
// [logr.Logger]: https://pkg.go.dev/github.com/go-logr/logr#Logger
package audit
