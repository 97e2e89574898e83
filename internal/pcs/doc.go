// Package pcs defines the layer classification convention shared by the whole
// pipeline: the bracket-delimited tag grammar embedded in layer names, the
// parsed Tag value, and the scanned LayerRecord.
//
// A tag looks like "[group=Face part=Eye side=L state=open]". Keys that match
// a known classification axis populate the corresponding Tag field; anything
// else lands in the Extra map. Parsing never fails: malformed tokens are
// dropped and the caller receives whatever could be recovered.
package pcs
