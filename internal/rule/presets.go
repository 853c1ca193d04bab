package rule

var presets = map[string]string{}

// Register adds a named rule preset. Empty names and unparseable rule
// strings are ignored.
func Register(name, rs string) {
	if name == "" {
		return
	}
	if _, err := Parse(rs); err != nil {
		return
	}
	presets[name] = rs
}

// Presets exposes the registry of named rule presets.
func Presets() map[string]string {
	return presets
}

// Preset looks up a preset by name and parses it.
func Preset(name string) (Rule, bool) {
	rs, ok := presets[name]
	if !ok {
		return Rule{}, false
	}
	r, err := Parse(rs)
	if err != nil {
		return Rule{}, false
	}
	return r, true
}

func init() {
	Register("Conway", "B3/S23")
	Register("HighLife", "B36/S23")
	Register("Seeds", "B2/S")
	Register("Life-without-Death", "B3/S012345678")
	Register("Maze", "B3/S12345")
	Register("Morley", "B368/S245")
	Register("Replicator", "B1357/S1357")
	Register("Diamoeba", "B35678/S5678")
	Register("Anneal", "B4678/S35678")
	Register("34-Life", "B34/S34")
}
