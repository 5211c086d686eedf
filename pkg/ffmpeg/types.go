package ffmpeg

// Engine input format. Whisper models consume 16 kHz mono 16-bit PCM;
// anything else gets transcoded before transcription.
const (
	TargetSampleRate = 16000
	TargetChannels   = 1
	TargetCodec      = "pcm_s16le"
)

// AudioMetadata represents metadata extracted from an audio file
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	SampleRate int     `json:"sample_rate"` // Sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
	Bitrate    int     `json:"bitrate"`     // Bitrate in bits per second
	Format     string  `json:"format"`      // Container format (mp3, wav, etc.)
	Codec      string  `json:"codec"`       // Audio codec
	Size       int64   `json:"size"`        // File size in bytes
}

// IsEngineFormat reports whether audio is already in the engine input
// format, in which case conversion can be skipped
func IsEngineFormat(metadata *AudioMetadata) bool {
	return metadata != nil &&
		metadata.Codec == TargetCodec &&
		metadata.SampleRate == TargetSampleRate &&
		metadata.Channels == TargetChannels
}
