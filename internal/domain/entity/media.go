package entity

// MediaInfo describes a probed video container.
type MediaInfo struct {
	FrameCount int     `json:"frame_count"`
	FPS        float64 `json:"fps"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Duration   float64 `json:"duration_seconds"`
	HasAudio   bool    `json:"has_audio"`
	AudioCodec string  `json:"audio_codec,omitempty"`
}

// DocumentInfo describes an extracted document.
type DocumentInfo struct {
	Filename       string `json:"filename"`
	FileType       string `json:"file_type"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	SentenceCount  int    `json:"sentence_count"`
}

// DownloadInfo describes a file fetched from a URL.
type DownloadInfo struct {
	Path     string  `json:"-"`
	Filename string  `json:"filename"`
	SizeMB   float64 `json:"size_mb"`
	Title    string  `json:"title,omitempty"`
	Platform string  `json:"platform,omitempty"`
	Kind     URLKind `json:"kind"`
}

// URLKind classifies what a URL points at.
type URLKind string

const (
	URLKindVideoPlatform URLKind = "video_platform"
	URLKindDirectVideo   URLKind = "direct_video"
	URLKindDocument      URLKind = "document"
	URLKindUnknown       URLKind = "unknown"
)

// VerdictEvent is the optional fire-and-forget summary published after an
// analysis completes. The request itself stays synchronous.
type VerdictEvent struct {
	RequestID       string  `json:"request_id"`
	MediaType       string  `json:"media_type"`
	IsAIGenerated   bool    `json:"is_ai_generated"`
	ConfidenceScore float64 `json:"confidence_score"`
	FramesAnalyzed  int     `json:"frames_analyzed,omitempty"`
}
