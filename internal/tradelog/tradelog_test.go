package tradelog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	entries := []Entry{
		{Tool: "place_order", RequestID: "r1", Symbol: "SBIN-EQ", TransactionType: "BUY", Qty: 5, Price: "550.25", OrderID: "o-1", Outcome: "ok"},
		{Tool: "cancel_order", RequestID: "r2", OrderID: "o-1", Variety: "NORMAL", Outcome: "ok"},
	}
	for _, e := range entries {
		if err := Append(e); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	b, err := os.ReadFile(filepath.Join(dir, "orders.log"))
	if err != nil {
		t.Fatalf("Read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	var got Entry
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("Line is not JSON: %v", err)
	}
	if got.Tool != "place_order" || got.OrderID != "o-1" {
		t.Errorf("Unexpected first entry: %+v", got)
	}
	if got.Time == "" {
		t.Error("Expected time stamp to be filled in")
	}
}
