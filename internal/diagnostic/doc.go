// Package diagnostic collects structured errors, warnings and notes
// produced while validating DTO schema files.
//
// Each diagnostic carries a stable code, the type and field it concerns
// and optional "did you mean" suggestions.
package diagnostic
