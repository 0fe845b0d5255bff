package intent

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Intent
	}{
		{"warmer complaint", "it's a bit warm in here", Intent{Kind: AdjustPreference, Direction: TooWarm}},
		{"hot complaint", "too hot", Intent{Kind: AdjustPreference, Direction: TooWarm}},
		{"cold complaint", "I'm cold", Intent{Kind: AdjustPreference, Direction: TooCool}},
		{"chilly complaint", "feeling chilly", Intent{Kind: AdjustPreference, Direction: TooCool}},
		{"cooler request", "make it cooler", Intent{Kind: AdjustPreference, Direction: TooWarm}},
		{"cool it down", "cool it down please", Intent{Kind: AdjustPreference, Direction: TooWarm}},

		{"study scene", "study mode please", Intent{Kind: SceneActivate, Scene: "study"}},
		{"sleep scene", "time to sleep", Intent{Kind: SceneActivate, Scene: "sleep"}},

		{"fan on", "turn the fan on", Intent{Kind: DeviceSet, Device: DeviceFan, On: true}},
		{"fan off", "turn the fan off", Intent{Kind: DeviceSet, Device: DeviceFan, On: false}},
		{"light on", "light on", Intent{Kind: DeviceSet, Device: DeviceLight, On: true}},
		{"light off", "switch the light off", Intent{Kind: DeviceSet, Device: DeviceLight, On: false}},

		{"auto", "back to auto", Intent{Kind: ModeSet, Mode: ModeAuto}},
		{"automatic", "automatic mode", Intent{Kind: ModeSet, Mode: ModeAuto}},
		{"manual", "manual control", Intent{Kind: ModeSet, Mode: ModeManual}},

		{"status", "what's the status", Intent{Kind: Query, Query: QueryStatus}},
		{"temperature query", "what is the temperature", Intent{Kind: Query, Query: QueryStatus}},

		{"shutdown", "shutdown now", Intent{Kind: Shutdown}},
		{"shut down", "shut everything down", Intent{Kind: Shutdown}},

		{"gibberish", "purple monkey dishwasher", Intent{Kind: Unrecognized}},
		{"empty", "", Intent{Kind: Unrecognized}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.text)
			if got != tc.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got := Classify("TURN THE FAN ON")
	want := Intent{Kind: DeviceSet, Device: DeviceFan, On: true}
	if got != want {
		t.Errorf("Classify uppercase = %+v, want %+v", got, want)
	}
}

// TestClassifyOrdering pins the first-match-wins priority: a phrase that
// could satisfy several rules resolves to the earliest.
func TestClassifyOrdering(t *testing.T) {
	// "warm" outranks the fan rule: a comfort complaint mentioning the
	// fan is still a preference nudge.
	got := Classify("warm in here, maybe the fan should be on")
	if got.Kind != AdjustPreference {
		t.Errorf("expected AdjustPreference to outrank DeviceSet, got %+v", got)
	}

	// A fan phrase outranks the generic mode rules even when it contains
	// "auto"-adjacent words.
	got = Classify("fan on automatically")
	if got.Kind != DeviceSet || got.Device != DeviceFan || !got.On {
		t.Errorf("expected fan rule to outrank mode rule, got %+v", got)
	}

	// "sleep" scene outranks shutdown's "shut down" pair.
	got = Classify("sleep scene, then shut the lab down")
	if got.Kind != SceneActivate || got.Scene != "sleep" {
		t.Errorf("expected scene to outrank shutdown, got %+v", got)
	}
}
