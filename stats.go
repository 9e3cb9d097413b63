package aspen

import "log/slog"

// FrameStats counts what one Execute call did. Reset at the start of each
// Execute; read afterwards via [Renderer.Stats].
type FrameStats struct {
	Commands     int // commands in the list, including skipped ones
	Skipped      int // unknown, malformed, or not-ready commands ignored
	DrawCalls    int // quads submitted to the backend
	Uploads      int // texture chunk writes
	UploadBytes  int // total pixel bytes written
	Clears       int // color buffer clears
	BlendChanges int // blend state changes
}

// LogValue lets hosts on log/slog record the stats structurally:
//
//	slog.Info("frame", "stats", renderer.Stats())
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("commands", s.Commands),
		slog.Int("skipped", s.Skipped),
		slog.Int("draw_calls", s.DrawCalls),
		slog.Int("uploads", s.Uploads),
		slog.Int("upload_bytes", s.UploadBytes),
		slog.Int("clears", s.Clears),
		slog.Int("blend_changes", s.BlendChanges),
	)
}
