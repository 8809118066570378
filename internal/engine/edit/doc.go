// Package edit defines the invertible, multi-cursor edit value applied to
// a buffer: a single range/old-text/new-text record with a Negate method,
// generalized to a per-cursor vector so one Edit value can describe — and
// exactly reverse — everything a single multi-cursor keystroke did.
package edit
