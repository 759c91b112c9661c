// Package sim implements the electrotherapy stimulation and tissue-risk
// model behind the TENS virtual lab.
//
// All functions are pure: they read snapshots of their inputs, allocate
// fresh result values and hold no internal state. Out-of-domain numeric
// inputs (negative, NaN, above the reference maxima) are clamped, never
// propagated as errors. The model is a deterministic, bounded scoring
// function for pedagogical feedback, not a bioelectric field solver.
package sim
