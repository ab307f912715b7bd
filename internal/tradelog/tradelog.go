// Package tradelog appends one JSON line per order event (placement or
// cancellation) to a size-rotated audit file, independent of the
// structured process log.
package tradelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var mu sync.Mutex

var ist = time.FixedZone("IST", 19800)

type Entry struct {
	Time            string         `json:"time"`
	Tool            string         `json:"tool"`
	RequestID       string         `json:"request_id"`
	Symbol          string         `json:"symbol,omitempty"`
	TransactionType string         `json:"transactiontype,omitempty"`
	Qty             int            `json:"qty,omitempty"`
	Price           string         `json:"price,omitempty"`
	OrderID         string         `json:"order_id,omitempty"`
	Variety         string         `json:"variety,omitempty"`
	Outcome         string         `json:"outcome"`
	Extra           map[string]any `json:"extra,omitempty"`
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

// Append stamps the entry with IST time and writes it as one JSON line.
// Rotation keeps 5 gzipped backups of 10MB each.
func Append(e Entry) error {
	mu.Lock()
	defer mu.Unlock()

	e.Time = time.Now().In(ist).Format("2006-01-02 15:04:05")

	dir := logDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "orders.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	defer w.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
