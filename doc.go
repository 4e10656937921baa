// Package tether is a reference-counted handle table that exposes objects in
// a coordinating process to external endpoints, releasing each object exactly
// once every referencing endpoint has gone away.
//
// Endpoints are backed by processes that can terminate or be transparently
// swapped at any time; the registry reconciles registrations that arrive out
// of order with respect to those lifecycle events.
package tether
