package rules

// DefaultSet returns the built-in rule set covering the common naming habits
// of hand-authored character art: eye open/closed/half variants per side,
// mouth viseme buckets, and brow shapes, with folder fallbacks for artists
// who organize by group instead of by name.
func DefaultSet() *Set {
	set := &Set{
		Aliases: []AliasRule{
			{Match: `eye[_ -]?l.*open`, Map: map[string]string{"group": "Face", "part": "Eye", "side": "L", "state": "open"}},
			{Match: `eye[_ -]?l.*closed`, Map: map[string]string{"group": "Face", "part": "Eye", "side": "L", "state": "closed"}},
			{Match: `eye[_ -]?l.*half`, Map: map[string]string{"group": "Face", "part": "Eye", "side": "L", "state": "half"}},
			{Match: `eye[_ -]?r.*open`, Map: map[string]string{"group": "Face", "part": "Eye", "side": "R", "state": "open"}},
			{Match: `eye[_ -]?r.*closed`, Map: map[string]string{"group": "Face", "part": "Eye", "side": "R", "state": "closed"}},
			{Match: `eye[_ -]?r.*half`, Map: map[string]string{"group": "Face", "part": "Eye", "side": "R", "state": "half"}},
			{Match: `mouth[_ -]?(mbp|m|b|p)`, Map: map[string]string{"group": "Face", "part": "Mouth", "viseme": "MBP"}},
			{Match: `mouth[_ -]?a(i)?`, Map: map[string]string{"group": "Face", "part": "Mouth", "viseme": "AI"}},
			{Match: `mouth[_ -]?e`, Map: map[string]string{"group": "Face", "part": "Mouth", "viseme": "E"}},
			{Match: `mouth[_ -]?u`, Map: map[string]string{"group": "Face", "part": "Mouth", "viseme": "U"}},
			{Match: `mouth[_ -]?o`, Map: map[string]string{"group": "Face", "part": "Mouth", "viseme": "O"}},
			{Match: `mouth[_ -]?(rest|closed|normal)`, Map: map[string]string{"group": "Face", "part": "Mouth", "viseme": "REST"}},
			{Match: `brow[_ -]?l`, Map: map[string]string{"group": "Face", "part": "Brow", "side": "L", "shape": "neutral"}},
			{Match: `brow[_ -]?r`, Map: map[string]string{"group": "Face", "part": "Brow", "side": "R", "shape": "neutral"}},
		},
		Folders: []FolderRule{
			{Path: "Face/Eyes/L", Map: map[string]string{"group": "Face", "part": "Eye", "side": "L"}},
			{Path: "Face/Eyes/R", Map: map[string]string{"group": "Face", "part": "Eye", "side": "R"}},
			{Path: "Face/Mouth", Map: map[string]string{"group": "Face", "part": "Mouth"}},
			{Path: "Face/Brows", Map: map[string]string{"group": "Face", "part": "Brow"}},
		},
	}
	set.sortAliases()
	return set
}
