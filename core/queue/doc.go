// Package queue sends messages to a storage queue.
//
// Two drivers implement Client: "azure" talks to Azure Queue Storage through the
// azqueue SDK, and "memory" keeps messages in process for tests and local runs.
//
// Message lifetime follows the service rules. A nil TTL means DefaultTTL (seven days),
// NeverExpire keeps the message until it is deleted, and the initial visibility delay
// must fall between zero and MaxVisibilityDelay while staying shorter than the TTL.
// Violations surface as ErrInvalidArgument.
package queue
