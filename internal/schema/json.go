package schema

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON writes columns in physical order followed by the constraint groups
// that are present, or just the definition for routine-like objects.
func (r SchemaRecord) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if r.Definition != nil {
		if err := w.field("definition", *r.Definition); err != nil {
			return nil, err
		}
		return w.close(), nil
	}

	for _, name := range r.columnNames {
		if err := w.field(name, r.columns[name]); err != nil {
			return nil, err
		}
	}
	if len(r.PrimaryKey) > 0 {
		if err := w.field("primary_key", r.PrimaryKey); err != nil {
			return nil, err
		}
	}
	if len(r.ForeignKeys) > 0 {
		if err := w.field("foreign_keys", r.ForeignKeys); err != nil {
			return nil, err
		}
	}
	if len(r.UniqueConstraints) > 0 {
		if err := w.field("unique_constraints", r.UniqueConstraints); err != nil {
			return nil, err
		}
	}
	if len(r.CheckConstraints) > 0 {
		if err := w.field("check_constraints", r.CheckConstraints); err != nil {
			return nil, err
		}
	}
	return w.close(), nil
}

func (s *SchemaSet) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	for _, name := range s.names {
		if err := w.field(name, s.records[name]); err != nil {
			return nil, err
		}
	}
	return w.close(), nil
}

// objectWriter builds a JSON object whose keys keep insertion order.
type objectWriter struct {
	buf   bytes.Buffer
	count int
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) field(key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
	w.count++
	return nil
}

func (w *objectWriter) close() []byte {
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}

// OrderedJSON exposes the insertion-ordered object writer to other packages
// that need to emit maps in a fixed key order.
type OrderedJSON struct {
	w *objectWriter
}

func NewOrderedJSON() *OrderedJSON {
	return &OrderedJSON{w: newObjectWriter()}
}

func (o *OrderedJSON) Field(key string, value any) error {
	return o.w.field(key, value)
}

func (o *OrderedJSON) Bytes() []byte {
	return o.w.close()
}
