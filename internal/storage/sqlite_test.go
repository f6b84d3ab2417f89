package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "skyhop", Player: "ada", Seed: 1, Score: 100, Height: 9.5, Ticks: 600},
		{GameID: "skyhop", Player: "bob", Seed: 2, Score: 50, Height: 4.2, Ticks: 300, Enemies: 1},
		{GameID: "skyhop", Player: "ada", Seed: 3, Score: 200, Height: 18, Ticks: 900, Pickups: 2, Won: true},
		{GameID: "skyhop_endless", Seed: 4, Score: 500, Height: 48},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("skyhop", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	if top[0].Score != 200 || top[1].Score != 100 || top[2].Score != 50 {
		t.Errorf("Runs not sorted by score: %d %d %d", top[0].Score, top[1].Score, top[2].Score)
	}

	best := top[0]
	if !best.Won || best.Seed != 3 || best.Pickups != 2 || best.Player != "ada" || best.Height != 18 {
		t.Errorf("Run fields not round-tripped: %+v", best)
	}
	if best.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	endless, err := store.TopRuns("skyhop_endless", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(endless) != 1 || endless[0].Score != 500 {
		t.Errorf("Expected one endless run with 500, got %+v", endless)
	}
}

func TestStoreSaveRunRequiresGame(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{Score: 10}); err == nil {
		t.Error("SaveRun() without game id should fail")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveRun(RunRecord{GameID: "skyhop", Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("skyhop", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", runs[0].Score)
	}

	all, err := store.AllRuns("skyhop")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("skyhop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	for _, score := range []int{100, 300, 200} {
		if _, err := store.SaveRun(RunRecord{GameID: "skyhop", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	high, err = store.HighScore("skyhop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "skyhop", Score: 100})
	store.SaveRun(RunRecord{GameID: "skyhop_endless", Score: 200})

	if err := store.ClearRuns("skyhop"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("skyhop", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopRuns("skyhop_endless", 10)
	if len(runs) != 1 {
		t.Errorf("Clearing one game removed another's runs")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("skyhop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(RunRecord{GameID: "skyhop", Score: 100, Height: 10})
	store.SaveRun(RunRecord{GameID: "skyhop", Score: 300, Height: 30, Won: true})
	store.SaveRun(RunRecord{GameID: "skyhop_endless", Score: 50, Height: 5})

	stats, err := store.GetGameStats("skyhop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.BestHeight != 30 || stats.Summits != 1 {
		t.Errorf("BestHeight=%v Summits=%d", stats.BestHeight, stats.Summits)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["skyhop_endless"].HighScore != 50 {
		t.Errorf("Unexpected all-games stats: %d entries", len(all))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
