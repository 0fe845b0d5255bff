package intent

// FakeRecognizer is a test double that emits scripted recognition events.
type FakeRecognizer struct {
	ch chan RecognitionEvent
}

// NewFakeRecognizer creates a FakeRecognizer with room for buffered
// scripted events.
func NewFakeRecognizer() *FakeRecognizer {
	return &FakeRecognizer{ch: make(chan RecognitionEvent, 64)}
}

// Events returns the event channel.
func (f *FakeRecognizer) Events() <-chan RecognitionEvent {
	return f.ch
}

// Emit queues one event.
func (f *FakeRecognizer) Emit(ev RecognitionEvent) {
	f.ch <- ev
}

// Say queues a Heard event with the given text.
func (f *FakeRecognizer) Say(text string) {
	f.Emit(RecognitionEvent{Kind: Heard, Text: text})
}

// Close closes the event channel, simulating recognizer shutdown.
func (f *FakeRecognizer) Close() {
	close(f.ch)
}
