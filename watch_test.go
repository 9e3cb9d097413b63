package aspen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePackFile(t *testing.T, path string, p *Pack) {
	t.Helper()
	var buf bytes.Buffer
	if err := WritePack(&buf, p); err != nil {
		t.Fatalf("WritePack: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// waitForBatch polls the queue until it holds at least want commands.
func waitForBatch(t *testing.T, q *Queue, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for q.Len() < want {
		if time.Now().After(deadline) {
			t.Fatalf("queue has %d commands, want %d", q.Len(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatchPackInitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.aspenpack")
	writePackFile(t, path, testPack())

	var q Queue
	w, err := WatchPack(path, &q, 0)
	if err != nil {
		t.Fatalf("WatchPack: %v", err)
	}
	defer w.Close()

	// Initial load pushes the full batch synchronously.
	cmds := q.Drain()
	if len(cmds) != 3 {
		t.Fatalf("initial batch has %d commands, want 3", len(cmds))
	}
	if _, ok := cmds[0].(CreateAtlas); !ok {
		t.Errorf("cmds[0] = %T, want CreateAtlas", cmds[0])
	}
	if _, ok := cmds[2].(FinalizeAtlas); !ok {
		t.Errorf("cmds[2] = %T, want FinalizeAtlas", cmds[2])
	}
}

func TestWatchPackReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.aspenpack")
	writePackFile(t, path, testPack())

	var q Queue
	w, err := WatchPack(path, &q, 0)
	if err != nil {
		t.Fatalf("WatchPack: %v", err)
	}
	defer w.Close()
	q.Drain() // discard the initial batch

	writePackFile(t, path, testPack())
	waitForBatch(t, &q, 3)
}

func TestWatchPackMissingFile(t *testing.T) {
	var q Queue
	if _, err := WatchPack(filepath.Join(t.TempDir(), "absent.aspenpack"), &q, 0); err == nil {
		t.Error("WatchPack accepted a missing file")
	}
}

func TestWatchPackCloseStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.aspenpack")
	writePackFile(t, path, testPack())

	var q Queue
	w, err := WatchPack(path, &q, 0)
	if err != nil {
		t.Fatalf("WatchPack: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	q.Drain()

	// Changes after Close must not reach the queue.
	writePackFile(t, path, testPack())
	time.Sleep(200 * time.Millisecond)
	if q.Len() != 0 {
		t.Errorf("queue has %d commands after Close, want 0", q.Len())
	}
}
