package eventlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelstead/internal/sim"
)

// writeSampleSession runs one of every record kind through a feed into a
// writer, the same wiring the game uses, and returns the decompressed
// lines.
func writeSampleSession(t *testing.T) [][]byte {
	t.Helper()
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if !strings.HasSuffix(w.Path(), ".jsonl.zst") {
		t.Errorf("Expected a .jsonl.zst file, got %s", w.Path())
	}

	feed := &sim.Feed{}
	feed.Subscribe(func(ev sim.Event) {
		if err := w.Write(ev); err != nil {
			t.Fatalf("Write event: %v", err)
		}
	})

	if err := w.Write(NewSessionStart(1337)); err != nil {
		t.Fatalf("Write header: %v", err)
	}
	feed.Publish(sim.Event{Kind: sim.EventBlockPlaced, Tick: 12, Material: "stone", UID: 4, Pos: rl.Vector3{X: 1, Y: 10}})
	feed.Publish(sim.Event{Kind: sim.EventBlockDestroyed, Tick: 30, Material: "wood", UID: 9, Pos: rl.Vector3{Z: -2}})
	feed.Publish(sim.Event{Kind: sim.EventBlockToppled, Tick: 30, Material: "wood", UID: 11, Pos: rl.Vector3{Y: 1, Z: -2}})
	feed.Publish(sim.Event{Kind: sim.EventBlockThud, Tick: 90, Pos: rl.Vector3{Z: -2}, Speed: 14.2})
	feed.Publish(sim.Event{Kind: sim.EventDayPhase, Tick: 1440, Phase: "day"})
	feed.Publish(sim.Event{Kind: sim.EventCropMatured, Tick: 3600, Material: "crop_grown", UID: 40, Pos: rl.Vector3{X: 3}})
	feed.Publish(sim.Event{Kind: sim.EventQuestAdvanced, Tick: 4000, Quest: "Clear the meadow", Coins: 10})
	if err := w.Write(SessionEnd{Event: "session_end", Tick: 5000, Coins: 10}); err != nil {
		t.Fatalf("Write footer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return readSession(t, w.Path())
}

func readSession(t *testing.T, path string) [][]byte {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer zr.Close()

	var lines [][]byte
	sc := bufio.NewScanner(zr)
	for sc.Scan() {
		lines = append(lines, append([]byte(nil), sc.Bytes()...))
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan session: %v", err)
	}
	return lines
}

func TestSessionRoundTrip(t *testing.T) {
	lines := writeSampleSession(t)
	if len(lines) != 9 {
		t.Fatalf("Expected 9 lines, got %d", len(lines))
	}

	var header SessionStart
	if err := json.Unmarshal(lines[0], &header); err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if header.Event != "session_start" || header.Version != 1 || header.Seed != 1337 {
		t.Errorf("Unexpected header %+v", header)
	}

	var placed sim.Event
	if err := json.Unmarshal(lines[1], &placed); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if placed.Name != "block_placed" || placed.Material != "stone" || placed.Pos.Y != 10 {
		t.Errorf("Unexpected event %+v", placed)
	}

	var footer SessionEnd
	if err := json.Unmarshal(lines[8], &footer); err != nil {
		t.Fatalf("decode footer: %v", err)
	}
	if footer.Event != "session_end" || footer.Tick != 5000 || footer.Coins != 10 {
		t.Errorf("Unexpected footer %+v", footer)
	}
}

func TestSessionLinesMatchSchema(t *testing.T) {
	sch, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "log_record.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	for i, line := range writeSampleSession(t) {
		var v any
		if err := json.Unmarshal(line, &v); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if err := sch.Validate(v); err != nil {
			t.Errorf("line %d: %v", i, err)
		}
	}
}

func TestWriteAfterCloseFails(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Write(SessionEnd{Event: "session_end"}); err == nil {
		t.Errorf("Expected a write on a closed writer to fail")
	}
	if err := w.Close(); err != nil {
		t.Errorf("Expected a second close to be a no-op, got %v", err)
	}
}
