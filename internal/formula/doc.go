// Package formula holds the pieces shared by every calculator: the numeric
// parser, unit tables, the known/unknown variable dispatch used by closed-form
// relations, the step explainer and the result formatter.
//
// Every function in this package is pure. A Request goes in, a Result or an
// *Error comes out, and nothing is retained between calls.
package formula
