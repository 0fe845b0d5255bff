package control

// Scene is a named bundle of setpoint and device state applied by a
// single intent dispatch.
type Scene struct {
	Name      string
	Threshold float64
	// Light is the command for the light channel, applied when the scene
	// activates.
	Light Command
}

// Scenes available to the intent resolver, keyed by spoken name.
var scenes = map[string]Scene{
	"study": {Name: "study", Threshold: 24.0, Light: LightOn},
	"sleep": {Name: "sleep", Threshold: 28.0, Light: LightOff},
}

// SceneByName looks up a scene by its spoken name.
func SceneByName(name string) (Scene, bool) {
	sc, ok := scenes[name]
	return sc, ok
}
