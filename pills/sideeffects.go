package pills

// Static side-effect reference shown by the frontend. Illustrative dataset,
// not comprehensive, not medical advice.
var sideEffects = map[string]map[string][]string{
	Combined: {
		"common": {
			"nausea", "breast tenderness", "spotting",
			"mood changes", "headache", "acne improvements",
		},
		"placebo_week": {"withdrawal bleeding", "cramps", "fatigue"},
	},
	ProgestinOnly: {
		"common": {"irregular bleeding", "acne", "breast tenderness", "mood changes"},
	},
}

// SideEffectsFor returns the side-effect groups for a pill kind, defaulting
// to the combined pill.
func SideEffectsFor(kind string) map[string][]string {
	if e, ok := sideEffects[kind]; ok {
		return e
	}
	return sideEffects[Combined]
}
