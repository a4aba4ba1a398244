// Package pattern compiles and searches byte patterns with wildcards.
//
// A pattern is an ordered sequence of tokens, each either a literal byte or
// a wildcard matching exactly one byte of any value. Patterns are entered in
// one of two encodings: hex digit pairs ("de ad ?? ef") or literal bytes
// ("PK\x03"), with "?" acting as the wildcard in literal input.
//
// Searching streams the haystack in overlapping windows, so scanning a
// multi-gigabyte rope never materializes the whole buffer. Matches are
// non-overlapping: a successful match advances the scan past its own end.
package pattern
