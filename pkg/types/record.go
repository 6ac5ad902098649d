package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a flat row whose fields keep their insertion order. Delivery
// payloads are serialized both as CSV (header taken from the first
// record) and as JSON objects, and both forms must present fields in the
// same order, which a plain map cannot guarantee.
type Record struct {
	keys   []string
	values map[string]any
}

func NewRecord() *Record {
	return &Record{values: map[string]any{}}
}

// Set stores a value, appending the key to the field order on first use.
func (r *Record) Set(key string, value any) *Record {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, seen := r.values[key]; !seen {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return r.keys
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Field renders a single value the way it appears in a CSV cell.
func (r *Record) Field(key string) string {
	v, ok := r.values[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// MarshalJSON emits the record as an object with fields in insertion
// order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
