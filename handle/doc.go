// Package handle provides a reference-counted table of the objects that a
// coordinating process has exposed to external endpoints.
package handle
