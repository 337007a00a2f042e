// Package match provides key normalization, edit distance and ranked
// "did you mean" suggestions for attribute and type names.
//
// Key functions:
//   - NormalizeKey: folds a key so "first_name", "firstName" and
//     "FirstName" compare equal
//   - Distance: rune-wise Levenshtein distance
//   - Similarity: normalized similarity of two keys in [0, 1]
//   - Suggest: ranks candidates for a misspelled name
package match
