package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskSet is a task mapping keyed by task key that remembers insertion order.
// Analytics and exports walk tasks in this declared order, so it survives
// JSON round trips. The zero value is an empty set.
type TaskSet struct {
	keys  []string
	items map[string]Task
}

func (s TaskSet) Len() int { return len(s.keys) }

// Keys returns the task keys in declared order.
func (s TaskSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s TaskSet) Get(key string) (Task, bool) {
	t, ok := s.items[key]
	return t, ok
}

func (s TaskSet) Has(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Put inserts or replaces a task. A replaced task keeps its position.
func (s *TaskSet) Put(t Task) {
	if s.items == nil {
		s.items = make(map[string]Task)
	}
	if _, ok := s.items[t.Key]; !ok {
		s.keys = append(s.keys, t.Key)
	}
	s.items[t.Key] = t
}

func (s *TaskSet) Delete(key string) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Tasks returns the tasks in declared order.
func (s TaskSet) Tasks() []Task {
	out := make([]Task, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}

func (s TaskSet) Clone() TaskSet {
	var c TaskSet
	for _, k := range s.keys {
		c.Put(s.items[k])
	}
	return c
}

// MergeTaskSets returns base followed by overlay. Keys present in both keep the
// position they have in base and take the value from overlay.
func MergeTaskSets(base, overlay TaskSet) TaskSet {
	out := base.Clone()
	for _, t := range overlay.Tasks() {
		out.Put(t)
	}
	return out
}

func (s TaskSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s.items[k])
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *TaskSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = TaskSet{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("task set: expected object, got %v", tok)
	}

	var next TaskSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("task set: expected key, got %v", tok)
		}
		var t Task
		if err := dec.Decode(&t); err != nil {
			return fmt.Errorf("task %q: %w", key, err)
		}
		t.Key = key
		next.Put(t)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = next
	return nil
}
