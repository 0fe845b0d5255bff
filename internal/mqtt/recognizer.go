package mqtt

import (
	"encoding/json"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/envirocontrol/internal/intent"
)

// VoicePayload is the JSON shape the speech-to-text service publishes on
// TopicVoiceText.
type VoicePayload struct {
	Event string `json:"event"` // HEARD, TIMED_OUT, UNINTELLIGIBLE, DEVICE_ERROR
	Text  string `json:"text,omitempty"`
}

// Recognizer adapts recognition results arriving over MQTT into the
// intent package's event source contract. The recognizer service owns
// the microphone and the speech model; this side sees only text.
type Recognizer struct {
	ch chan intent.RecognitionEvent
}

// NewRecognizer subscribes to the voice text topic on the publisher's
// connection.
func NewRecognizer(p *RealPublisher) (*Recognizer, error) {
	r := &Recognizer{ch: make(chan intent.RecognitionEvent, 16)}

	token := p.client.Subscribe(TopicVoiceText, 1, func(_ paho.Client, msg paho.Message) {
		r.handle(msg.Payload())
	})
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return r, nil
}

// Events returns the recognition event channel.
func (r *Recognizer) Events() <-chan intent.RecognitionEvent {
	return r.ch
}

func (r *Recognizer) handle(payload []byte) {
	var vp VoicePayload
	if err := json.Unmarshal(payload, &vp); err != nil {
		log.Printf("mqtt: bad voice payload: %v", err)
		return
	}

	ev, ok := eventFor(vp)
	if !ok {
		log.Printf("mqtt: unknown voice event %q", vp.Event)
		return
	}

	// Drop rather than block: a wedged consumer must not back-pressure
	// the MQTT client.
	select {
	case r.ch <- ev:
	default:
		log.Printf("mqtt: voice event dropped, consumer busy")
	}
}

func eventFor(vp VoicePayload) (intent.RecognitionEvent, bool) {
	switch vp.Event {
	case "HEARD":
		return intent.RecognitionEvent{Kind: intent.Heard, Text: vp.Text}, true
	case "TIMED_OUT":
		return intent.RecognitionEvent{Kind: intent.TimedOut}, true
	case "UNINTELLIGIBLE":
		return intent.RecognitionEvent{Kind: intent.Unintelligible}, true
	case "DEVICE_ERROR":
		return intent.RecognitionEvent{Kind: intent.DeviceError}, true
	}
	return intent.RecognitionEvent{}, false
}
