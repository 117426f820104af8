// Package filter applies zero-phase Butterworth low-pass and high-pass
// filters to channel collections.
package filter
