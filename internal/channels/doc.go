// Package channels provides the uniform in-memory representation of
// multi-channel time-series recordings used by every processing engine.
//
// # Collection Forms
//
// A Collection is one of three forms:
//
//  1. Named: an ordered mapping from channel name to samples. The
//     case-sensitive name "Time" is reserved for the time axis in seconds
//     and is never filtered or baseline-corrected.
//  2. Vector: a single series with an implicit time axis derived from the
//     sampling rate.
//  3. Matrix: two-dimensional data where rows are samples and columns are
//     channels, stored column-major.
//
// Engines are written once against this sum type instead of branching on
// runtime representation at every call site.
//
// # Time Axis Resolution
//
// ResolveTimeAxis applies the precedence rules shared by every engine:
// an externally supplied reference axis wins over an embedded "Time"
// channel, which wins over an axis synthesized from the sampling rate.
// Note that the reference axis drives index calculations only; the "Time"
// channel's own values are what get sliced and returned.
//
// # Cleanup Utilities
//
// ReplaceNonFinite is the explicit NaN-to-zero post-processing step the
// dispatcher applies to every result. EnsureConsistency is a repair
// utility that truncates diverged channel lengths; it is never invoked
// automatically.
package channels
