// Package ingest reads the CSV exports a game client produces: the
// per-session action log and the ledger of buy-ins and cash-outs.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/railbird/railbird/internal/handlog"
)

// Log exports list entries newest first with millisecond timestamps.
var timeFormats = []string{
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseTime(s string) (time.Time, error) {
	for _, format := range timeFormats {
		if ts, err := time.Parse(format, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// LoadLog reads one exported action log and returns its entries sorted
// by the client-assigned order column.
func LoadLog(path string) ([]handlog.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries, err := readLog(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func readLog(r io.Reader) ([]handlog.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col, err := columnIndex(header, "entry", "at", "order")
	if err != nil {
		return nil, err
	}

	var entries []handlog.Entry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		at, err := parseTime(record[col["at"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		order, err := strconv.ParseInt(record[col["order"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad order: %w", line, err)
		}
		entries = append(entries, handlog.Entry{
			At:    at,
			Order: order,
			Text:  record[col["entry"]],
		})
	}

	handlog.SortEntries(entries)
	return entries, nil
}

// LedgerRow is one buy-in/cash-out line from the ledger export.
type LedgerRow struct {
	Nickname     string
	ID           string
	SessionStart time.Time
	SessionEnd   time.Time
	BuyIn        int
	BuyOut       int
	Stack        int
	Net          int
}

// Raw returns the "Nickname @ ID" form used throughout the logs.
func (r LedgerRow) Raw() string {
	return r.Nickname + " @ " + r.ID
}

// LoadLedger reads one exported ledger file.
func LoadLedger(path string) ([]LedgerRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := readLedger(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func readLedger(r io.Reader) ([]LedgerRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col, err := columnIndex(header,
		"player_nickname", "player_id", "session_start_at", "session_end_at",
		"buy_in", "buy_out", "stack", "net")
	if err != nil {
		return nil, err
	}

	var rows []LedgerRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := LedgerRow{
			Nickname: record[col["player_nickname"]],
			ID:       record[col["player_id"]],
		}
		// Seated players who never left have no session end yet.
		if s := record[col["session_start_at"]]; s != "" {
			if row.SessionStart, err = parseTime(s); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if s := record[col["session_end_at"]]; s != "" {
			if row.SessionEnd, err = parseTime(s); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		for _, field := range []struct {
			name string
			dst  *int
		}{
			{"buy_in", &row.BuyIn},
			{"buy_out", &row.BuyOut},
			{"stack", &row.Stack},
			{"net", &row.Net},
		} {
			if *field.dst, err = parseAmount(record[col[field.name]]); err != nil {
				return nil, fmt.Errorf("line %d: bad %s: %w", line, field.name, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseAmount accepts plain integers and the decimal chip amounts some
// exports use, rounding to the nearest chip.
func parseAmount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return int(f - 0.5), nil
	}
	return int(f + 0.5), nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	col := make(map[string]int, len(names))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, name := range names {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return col, nil
}

// Discover walks a data directory and separates action logs from
// ledgers by filename. Both kinds are plain CSV; exports name them
// "poker_now_log_*.csv" and "ledger_*.csv".
func Discover(dir string) (logs, ledgers []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch {
		case strings.HasPrefix(entry.Name(), "ledger"):
			ledgers = append(ledgers, path)
		case strings.Contains(entry.Name(), "log"):
			logs = append(logs, path)
		}
	}
	return logs, ledgers, nil
}
