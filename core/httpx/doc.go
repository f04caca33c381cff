// Package httpx holds the outbound HTTP transport shared by the storage and queue drivers.
package httpx
