// Package appengine implements audit.Directory on top of the Google Cloud
// Resource Manager v1 and App Engine Admin v1 APIs.
//
// Every call goes through a shared token-bucket limiter, is retried with
// exponential backoff on rate limiting and server errors, and is recorded in
// the saintcloud Prometheus metrics. HTTP 404 responses are reported as
// audit.ErrNotFound so the aggregator can treat vanished parents as childless.
//
// # Authentication
//
// [NewDirectory] uses the service-account key file when one is given and
// Application Default Credentials otherwise. The key file is checked before any
// client is built so that a wrong path fails the run up front.
package appengine
