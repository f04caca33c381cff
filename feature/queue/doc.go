// Package queue is the queue facade. Enqueue lower-cases the queue name, creates the
// queue when missing and forwards TTL and delay to the driver, which enforces the bounds.
package queue
