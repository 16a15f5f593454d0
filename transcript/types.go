package transcript

// Word is a single transcribed word with absolute timestamps in seconds.
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Segment is one ASR segment carrying its word-level timestamps.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is the ASR output document.
type Transcript struct {
	AudioFile  string    `json:"audio_file,omitempty"`
	SampleRate int       `json:"sample_rate,omitempty"`
	Language   string    `json:"language,omitempty"`
	Segments   []Segment `json:"segments"`
}

// DiarSegment is a speaker-labeled time interval. Diarization produces no
// text, only who was speaking when.
type DiarSegment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Diarization is the diarization output document.
type Diarization struct {
	AudioFile   string        `json:"audio_file,omitempty"`
	NumSpeakers int           `json:"num_speakers,omitempty"`
	Segments    []DiarSegment `json:"segments"`
}

// MergedSegment is a diarization interval populated with the words assigned
// to its speaker. Text is the space-joined word sequence.
type MergedSegment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Words   []Word  `json:"words"`
}

// Merged is the speaker-labeled transcript, the input to every analysis
// stage.
type Merged struct {
	AudioFile  string          `json:"audio_file,omitempty"`
	SampleRate int             `json:"sample_rate,omitempty"`
	Speakers   []string        `json:"speakers"`
	Segments   []MergedSegment `json:"segments"`
}

func (s Segment) Duration() float64       { return s.End - s.Start }
func (s DiarSegment) Duration() float64   { return s.End - s.Start }
func (s MergedSegment) Duration() float64 { return s.End - s.Start }
