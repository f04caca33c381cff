// Package policy defines the request policy shared by the storage and queue drivers.
//
// A Policy carries the retry count, the retry interval, the location mode used for reads and
// the maximum execution time of a logical operation. Retries themselves are executed by the
// underlying SDK; this package only translates the values.
package policy
