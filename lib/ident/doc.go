// Package ident converts identifiers between their human readable and canonical form.
// The canonical form (CanonicalAddr) implements typed.Identifier and is used as
// the dynamic key of identifier scoped records.
//
// Conversion failures are *typed.Error values with the codes InvalidUtf8, ParseErr
// and InvalidBase64, so callers can check them with the typed predicates.
package ident
