package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	p, err := store.LoadProgress("classic", 4)
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if p.MaxLevel != 0 || len(p.BestTimes) != 4 {
		t.Fatalf("fresh progress = %+v", p)
	}

	p.Complete(0, 4200)
	p.Complete(1, 9000)
	if err := store.SaveProgress("classic", p); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, err := store.LoadProgress("classic", 4)
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if got.MaxLevel != 2 {
		t.Errorf("MaxLevel = %d, want 2", got.MaxLevel)
	}
	if got.BestTimes[0] != 4200 || got.BestTimes[1] != 9000 {
		t.Errorf("BestTimes = %v", got.BestTimes)
	}

	other, _ := store.LoadProgress("other", 4)
	if other.MaxLevel != 0 || other.Cleared() != 0 {
		t.Error("packs must not share progress")
	}
}

func TestSaveProgressKeepsFasterTime(t *testing.T) {
	store := openTestStore(t)

	fast := &progress.Progress{BestTimes: []int{1000, 0}, MaxLevel: 1}
	if err := store.SaveProgress("classic", fast); err != nil {
		t.Fatal(err)
	}

	slow := &progress.Progress{BestTimes: []int{5000, 0}, MaxLevel: 1}
	if err := store.SaveProgress("classic", slow); err != nil {
		t.Fatal(err)
	}

	times, err := store.BestTimes("classic")
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 1 || times[0].Millis != 1000 {
		t.Errorf("BestTimes = %+v, want level 0 at 1000ms", times)
	}
}

func TestLoadProgressNormalizes(t *testing.T) {
	store := openTestStore(t)

	// Stored max level already has a time: the next level unlocks on load.
	p := &progress.Progress{BestTimes: []int{800, 0, 0}, MaxLevel: 0}
	if err := store.SaveProgress("classic", p); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadProgress("classic", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.MaxLevel != 1 {
		t.Errorf("MaxLevel = %d, want 1", got.MaxLevel)
	}
}

func TestClearProgress(t *testing.T) {
	store := openTestStore(t)

	p := progress.New(2)
	p.Complete(0, 100)
	store.SaveProgress("classic", p)
	store.RecordClear("classic", 0, 100, 3)
	store.SaveSession(testSession("classic", 1))

	if err := store.ClearProgress("classic"); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}

	got, _ := store.LoadProgress("classic", 2)
	if got.MaxLevel != 0 || got.Cleared() != 0 {
		t.Errorf("progress not cleared: %+v", got)
	}
	if _, err := store.LatestSession("classic"); !errors.Is(err, ErrNoSession) {
		t.Errorf("sessions not cleared: %v", err)
	}
	stats, _ := store.PackStats("classic")
	if len(stats) != 0 {
		t.Errorf("clear history not cleared: %v", stats)
	}
}

func testSession(pack string, level int) SavedSession {
	b := puzzle.NewBoard(3, 2)
	b.Apply(puzzle.MustPattern("pair", []string{"##"}, 0, 0), 1, 1)
	return SavedSession{
		Pack:      pack,
		Level:     level,
		Board:     b.Snapshot(),
		Selected:  1,
		Moves:     7,
		ElapsedMS: 12500,
		CursorX:   2,
		CursorY:   1,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(testSession("classic", 2))
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id %q is not a UUID: %v", id, err)
	}

	got, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}

	want := testSession("classic", 2)
	if got.Pack != "classic" || got.Level != 2 || got.Selected != 1 || got.Moves != 7 || got.ElapsedMS != 12500 ||
		got.CursorX != 2 || got.CursorY != 1 {
		t.Errorf("session = %+v", got)
	}

	b, err := puzzle.RestoreBoard(got.Board)
	if err != nil {
		t.Fatal(err)
	}
	wantBoard, _ := puzzle.RestoreBoard(want.Board)
	if !b.Equal(wantBoard) {
		t.Errorf("board:\n%s\nwant\n%s", b, wantBoard)
	}

	st := got.State()
	if st.Level != 2 || st.Selected != 1 || st.Moves != 7 {
		t.Errorf("State() = %+v", st)
	}
}

func TestLatestSessionAndReplace(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LatestSession("classic"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	store.SaveSession(testSession("classic", 0))
	second, _ := store.SaveSession(testSession("classic", 3))

	latest, err := store.LatestSession("classic")
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != second || latest.Level != 3 {
		t.Errorf("LatestSession = %s level %d, want %s level 3", latest.ID, latest.Level, second)
	}

	// Saving level 0 again replaces the older save and becomes the latest.
	third, _ := store.SaveSession(testSession("classic", 0))
	list, err := store.ListSessions("classic", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != third || list[1].ID != second {
		t.Errorf("ListSessions returned %d sessions: %+v", len(list), list)
	}

	if err := store.DeleteSessions("classic", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SessionByID(second); !errors.Is(err, ErrNoSession) {
		t.Errorf("deleted session still found: %v", err)
	}
}

func TestSessionByIDRejectsGarbage(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SessionByID("not-a-uuid"); err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("expected parse error, got %v", err)
	}
	if _, err := store.SessionByID(uuid.NewString()); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSaveSessionRejectsBadBoard(t *testing.T) {
	store := openTestStore(t)

	ss := testSession("classic", 0)
	ss.Board.States = ss.Board.States[:2]
	if _, err := store.SaveSession(ss); !errors.Is(err, puzzle.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestPackStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordClear("classic", 0, 3000, 5)
	store.RecordClear("classic", 0, 1000, 7)
	store.RecordClear("classic", 2, 9000, 20)
	store.RecordClear("other", 0, 10, 1)

	stats, err := store.PackStats("classic")
	if err != nil {
		t.Fatalf("PackStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 levels, got %d", len(stats))
	}

	s := stats[0]
	if s.Clears != 2 || s.BestMillis != 1000 || s.AvgMillis != 2000 || s.FewestMoves != 5 {
		t.Errorf("level 0 stats = %+v", s)
	}
}

func TestScanRejectsCorruptSession(t *testing.T) {
	store := openTestStore(t)

	id := uuid.NewString()
	_, err := store.db.Exec(
		`INSERT INTO saved_sessions (id, pack, level, width, height, states)
		 VALUES (?, 'classic', 0, ?, ?, '')`,
		id, int64(1)<<32, int64(1)<<32,
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.SessionByID(id); !errors.Is(err, puzzle.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}
