// Package atlas packs per-layer images into one texture sheet.
//
// The packer is deliberately simple: entries sort by descending area (stable,
// so identical inputs pack identically), land on greedy shelves across an
// estimated square canvas, and the canvas height doubles whenever a row runs
// out of room. The final sheet is trimmed to the tight bounding box of all
// placements.
package atlas
