package probe

import (
	"encoding/json"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultDuration stands in when ffprobe is unavailable or cannot read
// the file.
const DefaultDuration = 100

// Duration returns the video length in whole seconds, falling back to
// DefaultDuration on any probe failure.
func Duration(path string) int {
	probeJSON, err := ffmpeg.Probe(path)
	if err != nil {
		return DefaultDuration
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &probe); err != nil {
		return DefaultDuration
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil || seconds <= 0 {
		return DefaultDuration
	}
	return int(seconds)
}
