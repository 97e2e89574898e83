package lipsync

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// minFrameDuration is the threshold below which frames are merged away
// during optimization, in seconds.
const minFrameDuration = 0.05

// wordPause is the rest inserted after each word in text estimation.
const wordPause = 0.1

// Pipeline converts text or Rhubarb output into viseme tracks.
type Pipeline struct {
	mapper *Mapper
}

// NewPipeline builds a pipeline around the given mapper, or the default
// mapper when nil.
func NewPipeline(mapper *Mapper) *Pipeline {
	if mapper == nil {
		mapper = NewMapper(nil)
	}
	return &Pipeline{mapper: mapper}
}

// ProcessText estimates a viseme track from plain text at the given speech
// rate in words per minute. Timing is approximate: five characters count as
// one word, and each word is followed by a short rest.
func (p *Pipeline) ProcessText(text string, speechRateWPM float64) (*Track, error) {
	if speechRateWPM <= 0 {
		return nil, fmt.Errorf("speech rate must be positive, got %v", speechRateWPM)
	}

	words := strings.Fields(strings.ToLower(text))
	charsPerSecond := (speechRateWPM * 5) / 60.0

	var frames []Frame
	current := 0.0
	for _, word := range words {
		wordDuration := float64(len(word)) / charsPerSecond
		visemes := textToVisemes(word)
		if len(visemes) > 0 {
			visemeDuration := wordDuration / float64(len(visemes))
			for _, viseme := range visemes {
				frames = append(frames, Frame{
					Viseme:     viseme,
					Start:      current,
					Duration:   visemeDuration,
					Confidence: 1,
				})
				current += visemeDuration
			}
		}
		frames = append(frames, Frame{
			Viseme:     VisemeREST,
			Start:      current,
			Duration:   wordPause,
			Confidence: 1,
		})
		current += wordPause
	}

	return &Track{Frames: frames, Duration: current, SampleRate: defaultSampleRate}, nil
}

// rhubarbDoc matches the JSON emitted by the Rhubarb lip-sync tool.
type rhubarbDoc struct {
	MouthCues []rhubarbCue `json:"mouthCues"`
}

type rhubarbCue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Value string  `json:"value"`
}

// ProcessRhubarb reads Rhubarb JSON and converts its A..H/X mouth shapes
// into a viseme track. Frame durations come from consecutive cue starts.
func (p *Pipeline) ProcessRhubarb(r io.Reader) (*Track, error) {
	var doc rhubarbDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse rhubarb json: %w", err)
	}

	frames := make([]Frame, 0, len(doc.MouthCues))
	for _, cue := range doc.MouthCues {
		frames = append(frames, Frame{
			Viseme:     rhubarbToViseme(cue.Value),
			Start:      cue.Start,
			Duration:   wordPause,
			Confidence: 1,
		})
	}
	for i := range frames {
		if i < len(frames)-1 {
			frames[i].Duration = frames[i+1].Start - frames[i].Start
		}
	}

	duration := 0.0
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		duration = last.Start + last.Duration
	}
	return &Track{Frames: frames, Duration: duration, SampleRate: defaultSampleRate}, nil
}

// Optimize merges consecutive same-viseme frames that are shorter than the
// minimum duration and drops leftovers below it.
func (p *Pipeline) Optimize(frames []Frame) []Frame {
	if len(frames) == 0 {
		return frames
	}

	var optimized []Frame
	current := frames[0]
	for _, next := range frames[1:] {
		if current.Viseme == next.Viseme && current.Duration < minFrameDuration {
			current.Duration += next.Duration
			continue
		}
		if current.Duration >= minFrameDuration {
			optimized = append(optimized, current)
		}
		current = next
	}
	if current.Duration >= minFrameDuration {
		optimized = append(optimized, current)
	}
	return optimized
}

// Keyframe is one animation keyframe driving the mouth slot.
type Keyframe struct {
	Time       float64                      `json:"time"`
	Duration   float64                      `json:"duration"`
	Viseme     string                       `json:"viseme"`
	Confidence float64                      `json:"confidence"`
	SlotStates map[string]map[string]string `json:"slot_states"`
}

// Keyframes expands a track into per-frame slot state keyframes.
func (p *Pipeline) Keyframes(track *Track) []Keyframe {
	keyframes := make([]Keyframe, 0, len(track.Frames))
	for _, frame := range track.Frames {
		keyframes = append(keyframes, Keyframe{
			Time:       frame.Start,
			Duration:   frame.Duration,
			Viseme:     string(frame.Viseme),
			Confidence: frame.Confidence,
			SlotStates: map[string]map[string]string{
				"Mouth": {"viseme": string(frame.Viseme)},
			},
		})
	}
	return keyframes
}

// Modulate adjusts frame timing for emotional delivery. Positive valence
// stretches vowels, negative valence compresses everything, and high
// arousal shortens rests.
func Modulate(track *Track, valence, arousal float64) *Track {
	frames := make([]Frame, len(track.Frames))
	copy(frames, track.Frames)

	for i := range frames {
		switch {
		case valence > 0.5:
			switch frames[i].Viseme {
			case VisemeAI, VisemeE, VisemeO:
				frames[i].Duration *= 1.1
			}
		case valence < -0.5:
			frames[i].Duration *= 0.9
		}
		if arousal > 0.7 && frames[i].Viseme == VisemeREST {
			frames[i].Duration *= 0.7
		}
	}

	return &Track{Frames: frames, Duration: track.Duration, SampleRate: track.SampleRate}
}

func textToVisemes(word string) []Viseme {
	visemes := make([]Viseme, 0, len(word))
	for _, ch := range strings.ToLower(word) {
		switch {
		case ch == 'a' || ch == 'i':
			visemes = append(visemes, VisemeAI)
		case ch == 'e':
			visemes = append(visemes, VisemeE)
		case ch == 'u':
			visemes = append(visemes, VisemeU)
		case ch == 'o':
			visemes = append(visemes, VisemeO)
		case ch == 'f' || ch == 'v':
			visemes = append(visemes, VisemeFV)
		case ch == 'l':
			visemes = append(visemes, VisemeL)
		case ch == 'w' || ch == 'r':
			visemes = append(visemes, VisemeWQ)
		case ch == 'm' || ch == 'b' || ch == 'p':
			visemes = append(visemes, VisemeMBP)
		default:
			visemes = append(visemes, VisemeREST)
		}
	}
	return visemes
}

// rhubarbShapes maps Rhubarb's lettered mouth shapes onto visemes.
var rhubarbShapes = map[string]Viseme{
	"A": VisemeREST,
	"B": VisemeMBP,
	"C": VisemeAI,
	"D": VisemeAI,
	"E": VisemeE,
	"F": VisemeFV,
	"G": VisemeU,
	"H": VisemeL,
	"X": VisemeREST,
}

func rhubarbToViseme(shape string) Viseme {
	if viseme, ok := rhubarbShapes[strings.ToUpper(shape)]; ok {
		return viseme
	}
	return VisemeREST
}
