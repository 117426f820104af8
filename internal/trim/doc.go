// Package trim implements time-window extraction over channel
// collections.
//
// Positive trim keeps only the selected window; negative trim removes it,
// either by deleting the window and closing the gap (delete_shift, which
// keeps the time axis continuous by shifting the tail backward) or by
// overwriting it with synthetic samples that match the local mean and
// variance of the surrounding signal (smart_fill, which keeps the channel
// length unchanged).
//
// Boundary sample indices are resolved once per collection from, in
// order of precedence, an externally supplied reference time axis, an
// embedded "Time" channel, or the sampling rate; the resulting window is
// shared by every selected channel so all processed channels come out
// the same length. Indices are clamped so the output is never empty; a
// window entirely outside the data is an error for positive trim and a
// no-op for negative trim.
package trim
