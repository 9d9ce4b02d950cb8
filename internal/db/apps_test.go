package db

import (
	"sync"
	"testing"

	"github.com/quiet-orbit/tally/internal/models"
)

func TestFindOrCreateApp(t *testing.T) {
	db := testDB(t)

	app, err := db.FindOrCreateApp("com.apple.dt.Xcode", "Xcode")
	if err != nil {
		t.Fatalf("FindOrCreateApp() error = %v", err)
	}
	if app.ID == 0 {
		t.Fatal("app was not assigned an internal key")
	}
	if app.Category != models.CategoryDevelopment {
		t.Errorf("Category = %s, want development", app.Category)
	}
	if app.IsDistraction {
		t.Error("development app flagged as distraction")
	}

	again, err := db.FindOrCreateApp("com.apple.dt.Xcode", "Xcode")
	if err != nil {
		t.Fatalf("FindOrCreateApp() second call error = %v", err)
	}
	if again.ID != app.ID {
		t.Errorf("second call returned id %d, want %d", again.ID, app.ID)
	}

	apps, err := db.ListApps()
	if err != nil {
		t.Fatalf("ListApps() error = %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("apps = %d, want 1", len(apps))
	}
}

func TestFindOrCreateApp_UnknownBundleDefaultsToOther(t *testing.T) {
	db := testDB(t)

	app, err := db.FindOrCreateApp("com.example.mystery", "Mystery")
	if err != nil {
		t.Fatalf("FindOrCreateApp() error = %v", err)
	}
	if app.Category != models.CategoryOther {
		t.Errorf("Category = %s, want other", app.Category)
	}
}

func TestFindOrCreateApp_DistractionDefault(t *testing.T) {
	db := testDB(t)

	app, err := db.FindOrCreateApp("com.spotify.client", "Spotify")
	if err != nil {
		t.Fatalf("FindOrCreateApp() error = %v", err)
	}
	if app.Category != models.CategoryMedia {
		t.Errorf("Category = %s, want media", app.Category)
	}
	if !app.IsDistraction {
		t.Error("media app not flagged as distraction by default")
	}
}

func TestFindOrCreateApp_ConcurrentSameBundle(t *testing.T) {
	db := testDB(t)

	const callers = 8
	var wg sync.WaitGroup
	ids := make([]uint, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			app, err := db.FindOrCreateApp("com.google.Chrome", "Chrome")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = app.ID
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d error = %v", i, err)
		}
	}
	for i := 1; i < callers; i++ {
		if ids[i] != ids[0] {
			t.Errorf("caller %d got id %d, want %d", i, ids[i], ids[0])
		}
	}

	apps, err := db.ListApps()
	if err != nil {
		t.Fatalf("ListApps() error = %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("apps = %d, want 1 (no duplicate rows)", len(apps))
	}
}

func TestSetAppCategory(t *testing.T) {
	db := testDB(t)

	app, err := db.FindOrCreateApp("com.example.tool", "Tool")
	if err != nil {
		t.Fatalf("FindOrCreateApp() error = %v", err)
	}

	if err := db.SetAppCategory(app.ID, models.CategorySocial, true); err != nil {
		t.Fatalf("SetAppCategory() error = %v", err)
	}

	updated, err := db.GetApp(app.ID)
	if err != nil {
		t.Fatalf("GetApp() error = %v", err)
	}
	if updated.Category != models.CategorySocial || !updated.IsDistraction {
		t.Errorf("app = %+v, want social distraction", updated)
	}

	if err := db.SetAppCategory(app.ID, "bogus", false); err == nil {
		t.Error("SetAppCategory() accepted unknown category")
	}
	if err := db.SetAppCategory(9999, models.CategoryOther, false); err == nil {
		t.Error("SetAppCategory() accepted missing app")
	}
}

func TestGetApp_NotFound(t *testing.T) {
	db := testDB(t)

	app, err := db.GetApp(42)
	if err != nil {
		t.Fatalf("GetApp() error = %v", err)
	}
	if app != nil {
		t.Errorf("GetApp() = %+v, want nil", app)
	}

	app, err = db.GetAppByBundleID("does.not.exist")
	if err != nil {
		t.Fatalf("GetAppByBundleID() error = %v", err)
	}
	if app != nil {
		t.Errorf("GetAppByBundleID() = %+v, want nil", app)
	}
}

func TestDistractionAppIDs(t *testing.T) {
	db := testDB(t)

	work, err := db.FindOrCreateApp("com.apple.dt.Xcode", "Xcode")
	if err != nil {
		t.Fatalf("FindOrCreateApp() error = %v", err)
	}
	fun, err := db.FindOrCreateApp("com.spotify.client", "Spotify")
	if err != nil {
		t.Fatalf("FindOrCreateApp() error = %v", err)
	}

	set, err := db.DistractionAppIDs()
	if err != nil {
		t.Fatalf("DistractionAppIDs() error = %v", err)
	}
	if set[work.ID] {
		t.Error("work app flagged as distraction")
	}
	if !set[fun.ID] {
		t.Error("media app missing from distraction set")
	}
}
