package reactloop

// TranscriptEntry is one iteration's action and the observation it produced.
type TranscriptEntry struct {
	Step        *ActionStep
	Observation string
}

// LoopState is the per-run state of the agent loop: the question and the ordered,
// append-only transcript. A LoopState belongs to exactly one run and is not safe for
// concurrent use.
type LoopState struct {
	question   string
	transcript []TranscriptEntry
}

// NewLoopState creates a LoopState with an empty transcript.
func NewLoopState(question string) *LoopState {
	return &LoopState{
		question:   question,
		transcript: make([]TranscriptEntry, 0),
	}
}

// Question returns the question that started the loop.
func (s *LoopState) Question() string {
	return s.question
}

// Append adds an entry to the end of the transcript.
func (s *LoopState) Append(entry TranscriptEntry) {
	s.transcript = append(s.transcript, entry)
}

// Transcript returns a copy of the transcript in invocation order.
func (s *LoopState) Transcript() []TranscriptEntry {
	out := make([]TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Len returns the number of transcript entries.
func (s *LoopState) Len() int {
	return len(s.transcript)
}
