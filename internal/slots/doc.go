// Package slots groups classified layers into addressable animation slots and
// computes each slot's discovered vocabulary.
//
// A slot key is the tag part concatenated with the side ("Eye"+"L" = "EyeL");
// tags without a part collect under the "Unknown" sentinel. Vocabularies are
// sorted for deterministic output. Canonical default vocabularies fill axes
// the art left empty on well-known slots (eyes, brows, mouth). The package
// also produces the coverage report consumed by strict-mode callers.
package slots
