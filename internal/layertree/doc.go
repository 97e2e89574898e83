// Package layertree defines the contract the pipeline expects from a layered
// image document: an ordered tree of named layers with visibility, blend mode,
// bounds, and on-demand pixel rendering for leaves.
//
// Decoding proprietary layered-image binaries is out of scope. The package
// ships two concrete documents instead: an in-memory tree for programmatic
// construction and tests, and a directory-manifest form (manifest.json plus
// per-layer PNG files) that authoring tools can export to.
package layertree
