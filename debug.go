package aspen

import (
	"fmt"
	"os"
)

// globalDebug gates warning logs and per-frame stat dumps.
// No sync — aspen is single-threaded on the render side.
var globalDebug bool

// SetDebugMode enables or disables debug output: dropped-command warnings
// and a per-Execute stats line on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugLog prints the frame's counters to stderr. Called at the end of
// Execute when debug mode is on.
func debugLog(stats FrameStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[aspen] commands: %d | skipped: %d | draw calls: %d | uploads: %d (%d bytes)\n",
		stats.Commands, stats.Skipped, stats.DrawCalls, stats.Uploads, stats.UploadBytes)
}
