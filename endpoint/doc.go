// Package endpoint defines the interface between the registry and the peer
// execution contexts that reference registered objects.
package endpoint
