// Package fixtures contains test fixtures for the interfaces defined
// throughout the module.
package fixtures
