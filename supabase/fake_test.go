package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// fakeTables is an in-memory TableStore with upsert-by-conflict semantics.
type fakeTables struct {
	mu      sync.Mutex
	rows    map[string][]map[string]any
	calls   map[string]int
	deletes map[string]int
	failing map[string]error
}

func newFakeTables() *fakeTables {
	return &fakeTables{
		rows:    make(map[string][]map[string]any),
		calls:   make(map[string]int),
		deletes: make(map[string]int),
		failing: make(map[string]error),
	}
}

func (f *fakeTables) Upsert(_ context.Context, table string, rows any, onConflict string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[table]++
	if err := f.failing[table]; err != nil {
		return err
	}

	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	var incoming []map[string]any
	if err := json.Unmarshal(b, &incoming); err != nil {
		return err
	}

	columns := strings.Split(onConflict, ",")
	for _, row := range incoming {
		replaced := false
		for i, existing := range f.rows[table] {
			if sameKey(existing, row, columns) {
				f.rows[table][i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			f.rows[table] = append(f.rows[table], row)
		}
	}
	return nil
}

func (f *fakeTables) SelectByUser(_ context.Context, table, userID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing[table]; err != nil {
		return nil, err
	}
	out := []map[string]any{}
	for _, row := range f.rows[table] {
		if row["user_id"] == userID {
			out = append(out, row)
		}
	}
	return json.Marshal(out)
}

func (f *fakeTables) Delete(_ context.Context, table, userID string, match map[string]string, column string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes[table]++
	if err := f.failing[table]; err != nil {
		return err
	}

	in := make(map[string]bool, len(values))
	for _, v := range values {
		in[v] = true
	}
	kept := f.rows[table][:0]
	for _, row := range f.rows[table] {
		if row["user_id"] == userID && matches(row, match) && in[fmt.Sprint(row[column])] {
			continue
		}
		kept = append(kept, row)
	}
	f.rows[table] = kept
	return nil
}

func matches(row map[string]any, match map[string]string) bool {
	for col, v := range match {
		if fmt.Sprint(row[col]) != v {
			return false
		}
	}
	return true
}

func (f *fakeTables) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows[table])
}

func (f *fakeTables) seed(table string, rows ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[table] = append(f.rows[table], rows...)
}

func (f *fakeTables) fail(table string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[table] = fmt.Errorf("%s unavailable", table)
}

func sameKey(a, b map[string]any, columns []string) bool {
	for _, c := range columns {
		if a[c] != b[c] {
			return false
		}
	}
	return true
}
