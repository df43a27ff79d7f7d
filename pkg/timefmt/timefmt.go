// Package timefmt converts frame positions into HH:MM:SS labels.
package timefmt

import (
	"fmt"
	"math"
)

// Zero is the label used for every invalid or empty position.
const Zero = "00:00:00"

// Format returns the time at frameIndex for a stream running at fps.
// Invalid input (fps <= 0, negative index) yields Zero. Hours are not
// wrapped at 24.
func Format(frameIndex int, fps float64) string {
	if fps <= 0 || frameIndex < 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return Zero
	}

	total := int64(math.Floor(float64(frameIndex) / fps))
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Duration returns the label for the full length of the stream.
func Duration(totalFrames int, fps float64) string {
	return Format(totalFrames, fps)
}

// Elapsed returns the time played at frameIndex, clamped at the full duration.
func Elapsed(frameIndex, totalFrames int, fps float64) string {
	if frameIndex > totalFrames {
		return Duration(totalFrames, fps)
	}
	return Format(frameIndex, fps)
}

// Remaining returns the time left after frameIndex. Positions outside
// [0, totalFrames] yield Zero.
func Remaining(frameIndex, totalFrames int, fps float64) string {
	if frameIndex < 0 || frameIndex > totalFrames {
		return Zero
	}
	return Format(totalFrames-frameIndex, fps)
}
