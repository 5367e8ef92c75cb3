// Package period turns phase samples, measured by an external quantum period-finding
// routine, into factors of N.
//
// A sample v measured on an m-bit register approximates k/r * 2^m for the unknown
// order r of a base a modulo N. Extract recovers a candidate r from the continued
// fraction expansion of v/2^m; Validate and SplitPeriod check it against a and N and,
// for an even period, split N with gcd(a^(r/2) -+ 1, N). Finder drives this over a
// list of bases and the ranked samples a PhaseSource produces for each.
//
// Most failures on this path are expected: an odd period, a failed verification or
// the trivial root a^(r/2) = -1 (mod N) mean "try another sample or base". IsRetryable
// tells them apart from invalid input.
package period
