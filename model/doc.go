// Package model holds the records produced by parsing Endless Sky data files.
//
// Values in this package are built once by the parser and never mutated
// afterwards. String fields are substrings of the parsed input.
package model
