package intent

import "strings"

// rule maps keyword containment to an intent. A rule matches when every
// keyword appears as a substring of the lowercased text.
type rule struct {
	keywords []string
	intent   Intent
}

// rules is evaluated in order; the first match wins. Ordering matters:
// device rules name their device ("fan", "light") and must run before the
// broader mode and query rules, and preference phrasing must run before
// everything so "a bit warmer in here" never falls through to a device
// rule.
var rules = []rule{
	// Preference nudges. "warm"/"hot" is the user reporting heat; the
	// setpoint drops so cooling starts sooner. "cold"/"chilly" raises it.
	{keywords: []string{"warm"}, intent: Intent{Kind: AdjustPreference, Direction: TooWarm}},
	{keywords: []string{"hot"}, intent: Intent{Kind: AdjustPreference, Direction: TooWarm}},
	{keywords: []string{"cold"}, intent: Intent{Kind: AdjustPreference, Direction: TooCool}},
	{keywords: []string{"chilly"}, intent: Intent{Kind: AdjustPreference, Direction: TooCool}},
	{keywords: []string{"cooler"}, intent: Intent{Kind: AdjustPreference, Direction: TooWarm}},
	{keywords: []string{"cool", "down"}, intent: Intent{Kind: AdjustPreference, Direction: TooWarm}},

	// Scenes.
	{keywords: []string{"study"}, intent: Intent{Kind: SceneActivate, Scene: "study"}},
	{keywords: []string{"sleep"}, intent: Intent{Kind: SceneActivate, Scene: "sleep"}},

	// Direct device commands. "fan off" is checked before "fan on": "off"
	// never contains "on" but a later generic rule must not shadow these.
	{keywords: []string{"fan", "off"}, intent: Intent{Kind: DeviceSet, Device: DeviceFan, On: false}},
	{keywords: []string{"fan", "on"}, intent: Intent{Kind: DeviceSet, Device: DeviceFan, On: true}},
	{keywords: []string{"light", "off"}, intent: Intent{Kind: DeviceSet, Device: DeviceLight, On: false}},
	{keywords: []string{"light", "on"}, intent: Intent{Kind: DeviceSet, Device: DeviceLight, On: true}},

	// Mode switches. "auto" also matches "automatic".
	{keywords: []string{"auto"}, intent: Intent{Kind: ModeSet, Mode: ModeAuto}},
	{keywords: []string{"manual"}, intent: Intent{Kind: ModeSet, Mode: ModeManual}},

	// Informational queries.
	{keywords: []string{"status"}, intent: Intent{Kind: Query, Query: QueryStatus}},
	{keywords: []string{"temperature"}, intent: Intent{Kind: Query, Query: QueryStatus}},

	// Safety.
	{keywords: []string{"shutdown"}, intent: Intent{Kind: Shutdown}},
	{keywords: []string{"shut", "down"}, intent: Intent{Kind: Shutdown}},
}

// Classify maps recognized text to an Intent. Matching is
// case-insensitive substring containment over the ordered rule list;
// text matching no rule is Unrecognized.
func Classify(text string) Intent {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		if matchesAll(lowered, r.keywords) {
			return r.intent
		}
	}
	return Intent{Kind: Unrecognized}
}

func matchesAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
