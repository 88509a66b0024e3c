package watch

import (
	"testing"
)

func TestNewWatcherDefaults(t *testing.T) {
	w, err := New(Config{Directories: []string{t.TempDir()}})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	if w.Config.Debounce != 500 {
		t.Errorf("default debounce = %d, want 500", w.Config.Debounce)
	}
	if len(w.Config.Extensions) != 3 {
		t.Errorf("default extensions = %v, want .xlsx/.csv/.json", w.Config.Extensions)
	}
}

func TestMatchesExtensions(t *testing.T) {
	w, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	if !w.Matches("/data/sales.xlsx") {
		t.Error("should match .xlsx")
	}
	if !w.Matches("/data/sales.CSV") {
		t.Error("extension match should be case-insensitive")
	}
	if !w.Matches("/data/sales.json") {
		t.Error("should match .json")
	}
	if w.Matches("/data/notes.txt") {
		t.Error("should not match .txt")
	}
}

func TestMatchesSkipsTempAndReportFiles(t *testing.T) {
	w, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	// Office lock files
	if w.Matches("/data/~$sales.xlsx") {
		t.Error("should skip Excel lock files")
	}
	if w.Matches("/data/.~lock.sales.xlsx") {
		t.Error("should skip LibreOffice lock files")
	}
	// Our own outputs must not retrigger the watcher
	if w.Matches("/out/sales" + ReportSuffix) {
		t.Error("should skip generated reports")
	}
}

func TestMatchesCustomExtensions(t *testing.T) {
	w, err := New(Config{Extensions: []string{"csv", ".tsv"}})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	// Extensions normalize with or without the leading dot
	if !w.Matches("/data/a.csv") {
		t.Error("should match csv")
	}
	if !w.Matches("/data/a.tsv") {
		t.Error("should match .tsv")
	}
	if w.Matches("/data/a.xlsx") {
		t.Error("should not match .xlsx with custom extension list")
	}
}

func TestProcessFileRecordsEvents(t *testing.T) {
	w, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	w.Handler = func(path string) (string, error) {
		return path + ReportSuffix, nil
	}

	w.processFile("/data/a.xlsx", "WRITE")
	events := w.GetEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Status != "processed" {
		t.Errorf("status = %q, want processed", events[0].Status)
	}
	if events[0].Output != "/data/a.xlsx"+ReportSuffix {
		t.Errorf("unexpected output: %q", events[0].Output)
	}

	status := w.GetStatus()
	if status.EventCount != 1 {
		t.Errorf("EventCount = %d, want 1", status.EventCount)
	}
}

func TestProcessFileWithoutHandler(t *testing.T) {
	w, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	w.processFile("/data/a.xlsx", "CREATE")
	events := w.GetEvents()
	if len(events) != 1 || events[0].Status != "skipped" {
		t.Errorf("expected a skipped event, got %+v", events)
	}
}
