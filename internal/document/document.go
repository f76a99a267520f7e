// Package document provides dotted-path access to the JSON documents exchanged
// with the host document store and spell catalog.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Well-known field paths.
const (
	IDPath   = "_id"
	TypePath = "type"
	NamePath = "name"
)

// Document is a JSON object.
type Document []byte

// Ref identifies a created document.
type Ref struct {
	ID   string
	Type string
}

// Marshal encodes v into a Document.
//
// Postcondition: Returns a JSON object document or an error.
func Marshal(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("encoding document: %T is not a JSON object", v)
	}
	return Document(data), nil
}

// Unmarshal decodes d into v.
func (d Document) Unmarshal(v any) error {
	if err := json.Unmarshal(d, v); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	return nil
}

// Get returns the value at a dotted path such as "system.location.value".
func (d Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d, path)
}

// Has reports whether a value exists at path.
func (d Document) Has(path string) bool {
	return d.Get(path).Exists()
}

// ID returns the document's "_id", or "" when absent.
func (d Document) ID() string {
	return d.Get(IDPath).String()
}

// Type returns the document's "type", or "" when absent.
func (d Document) Type() string {
	return d.Get(TypePath).String()
}

// Set returns a copy of d with value written at path. Intermediate objects are
// created as needed.
//
// Postcondition: d is not modified.
func (d Document) Set(path string, value any) (Document, error) {
	out, err := sjson.SetBytes(d.Clone(), path, value)
	if err != nil {
		return nil, fmt.Errorf("setting %q: %w", path, err)
	}
	return Document(out), nil
}

// Delete returns a copy of d without the value at path. Deleting a missing
// path is not an error.
func (d Document) Delete(path string) (Document, error) {
	out, err := sjson.DeleteBytes(d.Clone(), path)
	if err != nil {
		return nil, fmt.Errorf("deleting %q: %w", path, err)
	}
	return Document(out), nil
}

// Clone returns an independent copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}

// String returns the raw JSON.
func (d Document) String() string {
	return string(d)
}

// MarshalJSON embeds the document verbatim.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of the raw JSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}

// Patch is a set of path/value writes applied to the document whose "_id" is ID.
type Patch struct {
	ID     string
	Fields map[string]any
}

// Apply writes every field of p onto d.
//
// Postcondition: d is not modified; paths are applied in unspecified order, so
// patches must not contain overlapping paths.
func (p Patch) Apply(d Document) (Document, error) {
	out := d.Clone()
	for path, v := range p.Fields {
		var err error
		if out, err = out.Set(path, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
