// Package retry provides exponential backoff with jitter for transient
// failures.
//
// [Do] retries an operation until it succeeds or the policy gives up. The
// policy caps the number of retries and the delay between them, and
// [WithRetryIf] decides which errors are transient. Errors wrapped with
// [Fatal] stop the loop immediately.
package retry
