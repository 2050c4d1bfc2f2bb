package save_test

import (
	"path/filepath"
	"testing"

	"github.com/tholloway/roguecore/pkg/engine"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/save"
)

func newWorld(t *testing.T, seed uint64) *engine.World {
	t.Helper()
	w, err := engine.New(seed)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return w
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	w := newWorld(t, 4242)
	w.ResolveTurn(engine.Move(entity.E))
	w.ResolveTurn(engine.Wait())

	data, err := save.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	f, err := save.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f.SaveID == "" {
		t.Fatalf("blob missing save_id")
	}
	if f.Seed != 4242 || f.Seed != f.World.Seed() {
		t.Fatalf("seed mismatch: envelope %d, world %d", f.Seed, f.World.Seed())
	}
	if f.Turn != w.Turn() || f.World.Turn() != w.Turn() {
		t.Fatalf("turn mismatch after round trip")
	}

	// The restored world must keep playing.
	result := f.World.ResolveTurn(engine.Wait())
	if result == nil || f.World.Turn() != w.Turn()+1 {
		t.Fatalf("restored world does not resume")
	}
}

func TestUniqueSaveIDs(t *testing.T) {
	w := newWorld(t, 1)
	a, err := save.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := save.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	fa, _ := save.Unmarshal(a)
	fb, _ := save.Unmarshal(b)
	if fa.SaveID == fb.SaveID {
		t.Fatalf("two saves share save_id %s", fa.SaveID)
	}
}

func TestVersionRejected(t *testing.T) {
	if _, err := save.Unmarshal([]byte(`{"save_id":"x","version":99}`)); err == nil {
		t.Fatalf("unknown format version must be rejected")
	}
}

func TestWriteReadFile(t *testing.T) {
	w := newWorld(t, 7)
	path := filepath.Join(t.TempDir(), "run.json")
	if err := save.WriteFile(w, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := save.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.World.Seed() != 7 {
		t.Fatalf("seed lost on disk round trip")
	}
}
