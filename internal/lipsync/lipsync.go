// Package lipsync turns phoneme or text input into timed viseme tracks for
// the mouth slot.
//
// Two inputs are supported: plain text with estimated timing, and Rhubarb
// lip-sync JSON with measured timing. Both produce the same Track shape,
// which downstream keyframe emission consumes.
package lipsync

import (
	"strings"
)

// Viseme is a mouth shape identifier matching the canonical mouth vocabulary.
type Viseme string

const (
	VisemeSIL  Viseme = "SIL"
	VisemeAI   Viseme = "AI"
	VisemeE    Viseme = "E"
	VisemeU    Viseme = "U"
	VisemeO    Viseme = "O"
	VisemeFV   Viseme = "FV"
	VisemeL    Viseme = "L"
	VisemeWQ   Viseme = "WQ"
	VisemeMBP  Viseme = "MBP"
	VisemeREST Viseme = "REST"
)

var knownVisemes = map[Viseme]struct{}{
	VisemeSIL: {}, VisemeAI: {}, VisemeE: {}, VisemeU: {}, VisemeO: {},
	VisemeFV: {}, VisemeL: {}, VisemeWQ: {}, VisemeMBP: {}, VisemeREST: {},
}

// ParseViseme canonicalizes a viseme name. Unknown names report false.
func ParseViseme(value string) (Viseme, bool) {
	v := Viseme(strings.ToUpper(strings.TrimSpace(value)))
	_, ok := knownVisemes[v]
	return v, ok
}

// Frame is a single viseme with timing, in seconds.
type Frame struct {
	Viseme     Viseme  `json:"viseme"`
	Start      float64 `json:"start"`
	Duration   float64 `json:"duration"`
	Confidence float64 `json:"confidence"`
}

// Track is a complete viseme sequence for one utterance.
type Track struct {
	Frames     []Frame `json:"frames"`
	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sample_rate"`
}

// defaultSampleRate is the animation frame rate recorded on generated tracks.
const defaultSampleRate = 60

// phonemeTable maps ARPAbet phonemes to visemes. Consonants without a
// distinct mouth shape fall through to REST.
var phonemeTable = map[string]Viseme{
	"SIL": VisemeSIL,

	"AA": VisemeAI, "AE": VisemeAI, "AH": VisemeAI,
	"AY": VisemeAI, "IY": VisemeAI, "IH": VisemeAI,

	"EH": VisemeE, "EY": VisemeE,

	"UW": VisemeU, "UH": VisemeU,

	"AO": VisemeO, "OW": VisemeO, "OY": VisemeO,

	"F": VisemeFV, "V": VisemeFV,

	"L": VisemeL, "EL": VisemeL,

	"W": VisemeWQ, "R": VisemeWQ, "ER": VisemeWQ,

	"M": VisemeMBP, "B": VisemeMBP, "P": VisemeMBP, "EM": VisemeMBP,

	"T": VisemeREST, "D": VisemeREST, "K": VisemeREST, "G": VisemeREST,
	"S": VisemeREST, "Z": VisemeREST, "SH": VisemeREST, "ZH": VisemeREST,
	"TH": VisemeREST, "DH": VisemeREST, "N": VisemeREST, "NG": VisemeREST,
	"CH": VisemeREST, "JH": VisemeREST, "HH": VisemeREST, "Y": VisemeREST,
}

// Mapper maps phonemes to visemes using the built-in table plus optional
// per-character overrides.
type Mapper struct {
	table map[string]Viseme
}

// NewMapper builds a mapper, applying custom phoneme overrides on top of the
// default table. Overrides naming an unknown viseme are ignored.
func NewMapper(custom map[string]string) *Mapper {
	table := make(map[string]Viseme, len(phonemeTable)+len(custom))
	for phoneme, viseme := range phonemeTable {
		table[phoneme] = viseme
	}
	for phoneme, name := range custom {
		if viseme, ok := ParseViseme(name); ok {
			table[strings.ToUpper(phoneme)] = viseme
		}
	}
	return &Mapper{table: table}
}

// Map returns the viseme for a phoneme, defaulting to REST.
func (m *Mapper) Map(phoneme string) Viseme {
	if viseme, ok := m.table[strings.ToUpper(phoneme)]; ok {
		return viseme
	}
	return VisemeREST
}

// TimedPhoneme is one phoneme with its start and duration in seconds.
type TimedPhoneme struct {
	Phoneme  string
	Start    float64
	Duration float64
}

// MapSequence converts timed phonemes into viseme frames.
func (m *Mapper) MapSequence(phonemes []TimedPhoneme) []Frame {
	frames := make([]Frame, 0, len(phonemes))
	for _, p := range phonemes {
		frames = append(frames, Frame{
			Viseme:     m.Map(p.Phoneme),
			Start:      p.Start,
			Duration:   p.Duration,
			Confidence: 1,
		})
	}
	return frames
}
