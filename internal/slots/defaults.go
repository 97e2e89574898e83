package slots

// Canonical default vocabularies injected into well-known slots whose art
// discovered nothing on the corresponding axis. Read-only reference data;
// callers receive copies.
var (
	defaultVisemes    = []string{"SIL", "AI", "E", "U", "O", "FV", "L", "WQ", "MBP", "REST"}
	defaultEmotions   = []string{"neutral", "smile", "frown", "joy", "sad", "angry"}
	defaultEyeStates  = []string{"open", "half", "closed", "happy", "sad", "angry", "wink"}
	defaultBrowShapes = []string{"neutral", "up", "down", "angry", "sad"}
)

// DefaultVisemes returns the canonical mouth viseme vocabulary.
func DefaultVisemes() []string { return append([]string(nil), defaultVisemes...) }

// DefaultEmotions returns the canonical coarse emotion vocabulary.
func DefaultEmotions() []string { return append([]string(nil), defaultEmotions...) }

// DefaultEyeStates returns the canonical eye state vocabulary.
func DefaultEyeStates() []string { return append([]string(nil), defaultEyeStates...) }

// DefaultBrowShapes returns the canonical brow shape vocabulary.
func DefaultBrowShapes() []string { return append([]string(nil), defaultBrowShapes...) }
