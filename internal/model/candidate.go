// Package model holds the small value types shared by the extfix pipeline.
package model

// Path represents a file system path.
type Path string

// FileType identifies a detected binary file format.
type FileType string

// Known file types. TypeUnknown is the catch-all when no signature matches.
const (
	TypeUnknown FileType = "unknown"
	TypeGIF     FileType = "gif"
	TypeMP3     FileType = "mp3"
	TypePNG     FileType = "png"
	TypePDF     FileType = "pdf"
	TypeOGG     FileType = "ogg"
	TypeMKV     FileType = "mkv"
	TypeFLAC    FileType = "flac"
	TypeJPEG    FileType = "jpeg"
	TypeWEBP    FileType = "webp"
	TypeWAV     FileType = "wav"
	TypeMOV     FileType = "mov"
	TypeMP4     FileType = "mp4"
	TypeZIP     FileType = "zip"
	TypeGZIP    FileType = "gzip"
)

// OutcomeKind classifies the result of evaluating a single file.
type OutcomeKind int

const (
	// OutcomeMatch means the current extension agrees with the detected signature.
	OutcomeMatch OutcomeKind = iota
	// OutcomeMismatch means the extension disagrees and a corrective rename exists.
	OutcomeMismatch
	// OutcomeUnknownSignature means no registered signature matched; never renamed.
	OutcomeUnknownSignature
	// OutcomeUnreadable means the signature bytes could not be read.
	OutcomeUnreadable
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeUnknownSignature:
		return "unknown signature"
	case OutcomeUnreadable:
		return "unreadable"
	}

	return "invalid"
}

// Outcome is the decision computed for one candidate.
type Outcome struct {
	Kind OutcomeKind
	// NewPath is the corrective target, set only for OutcomeMismatch.
	NewPath Path
	// Reason is set only for OutcomeUnreadable.
	Reason string
}

// Candidate is one file visited by the walker, evaluated by the engine and
// then acted on. It lives for a single pass through the pipeline.
type Candidate struct {
	Path       Path
	CurrentExt string // without the dot, possibly empty
	Detected   FileType
	Outcome    Outcome
}

// ApplyStatus describes what the apply stage did with a candidate.
type ApplyStatus int

const (
	// StatusKept means no mutation was required or allowed.
	StatusKept ApplyStatus = iota
	// StatusPlanned means a rename was computed but withheld (dry-run).
	StatusPlanned
	// StatusRenamed means the file now carries its canonical extension.
	StatusRenamed
	// StatusConflict means the rename target already exists or was claimed
	// by another candidate in the same run.
	StatusConflict
	// StatusFailed means the filesystem rejected the rename.
	StatusFailed
)

func (s ApplyStatus) String() string {
	switch s {
	case StatusKept:
		return "kept"
	case StatusPlanned:
		return "planned"
	case StatusRenamed:
		return "renamed"
	case StatusConflict:
		return "conflict"
	case StatusFailed:
		return "failed"
	}

	return "invalid"
}

// ApplyResult is the apply stage's report for one candidate.
type ApplyResult struct {
	Status ApplyStatus
	// Err carries the failure detail for StatusConflict and StatusFailed.
	Err error
}

// Summary aggregates one scan run for reporting.
type Summary struct {
	Scanned    int
	Matched    int
	Mismatched int
	Renamed    int
	Conflicts  int
	Unknown    int
	Unreadable int
	Failed     int
}
