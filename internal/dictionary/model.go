// Package dictionary defines the lemma-to-entry table shared by the converter, the stores and the server.
package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultColumns is the field set used when no spreadsheet header is available.
var DefaultColumns = []string{"Type", "Meaning", "From", "Explanation", "To"}

// LemmaColumn is the header of the first spreadsheet column.
const LemmaColumn = "Lemma"

// Entry maps a field name to its ordered values. An unset field holds an empty slice.
type Entry map[string][]string

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	if e == nil {
		return nil
	}
	c := make(Entry, len(e))
	for k, v := range e {
		c[k] = append([]string{}, v...)
	}
	return c
}

// Dictionary is an insertion-ordered mapping from lemma to Entry.
// The zero value is not usable; call New.
type Dictionary struct {
	columns []string
	entries *orderedmap.OrderedMap[string, Entry]
}

// Document is the ordered form of a dictionary written to JSON and YAML files.
type Document = orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, []string]]

// New creates an empty dictionary with the given field columns.
// A nil or empty columns slice selects DefaultColumns.
func New(columns []string) *Dictionary {
	return &Dictionary{
		columns: mergeColumns(columns),
		entries: orderedmap.New[string, Entry](),
	}
}

// mergeColumns returns DefaultColumns followed by any extra names in first-seen order.
func mergeColumns(columns []string) []string {
	merged := slices.Clone(DefaultColumns)
	for _, c := range columns {
		if c == "" || slices.Contains(merged, c) {
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

// Columns returns the field columns in output order.
func (d *Dictionary) Columns() []string {
	return slices.Clone(d.columns)
}

// HasColumn reports whether name is one of the dictionary's fields.
func (d *Dictionary) HasColumn(name string) bool {
	return slices.Contains(d.columns, name)
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return d.entries.Len()
}

// Lemmas returns the lemmas in insertion order.
func (d *Dictionary) Lemmas() []string {
	var lemmas []string
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		lemmas = append(lemmas, pair.Key)
	}
	return lemmas
}

// First returns the earliest inserted lemma, or false when empty.
func (d *Dictionary) First() (string, bool) {
	pair := d.entries.Oldest()
	if pair == nil {
		return "", false
	}
	return pair.Key, true
}

// Get returns a copy of the entry for lemma.
func (d *Dictionary) Get(lemma string) (Entry, bool) {
	e, ok := d.entries.Get(lemma)
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Has reports whether lemma is present.
func (d *Dictionary) Has(lemma string) bool {
	_, ok := d.entries.Get(lemma)
	return ok
}

// Set inserts or replaces the entry for lemma. A replaced lemma keeps its position.
// The stored entry is normalized to the dictionary's column set; unknown
// fields are kept so callers can validate with UnknownFields beforehand.
func (d *Dictionary) Set(lemma string, entry Entry) {
	d.entries.Set(lemma, d.normalize(entry))
}

// Delete removes lemma and reports whether it was present.
func (d *Dictionary) Delete(lemma string) bool {
	_, ok := d.entries.Delete(lemma)
	return ok
}

// UnknownFields returns the field names of entry that are not dictionary columns, sorted.
func (d *Dictionary) UnknownFields(entry Entry) []string {
	var unknown []string
	for k := range entry {
		if !d.HasColumn(k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func (d *Dictionary) normalize(entry Entry) Entry {
	n := make(Entry, len(d.columns))
	for _, c := range d.columns {
		values := entry[c]
		if values == nil {
			values = []string{}
		}
		n[c] = append([]string{}, values...)
	}
	for k, v := range entry {
		if _, ok := n[k]; ok {
			continue
		}
		n[k] = append([]string{}, v...)
	}
	return n
}

// All iterates over lemma and entry copies in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value.Clone()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the dictionary.
func (d *Dictionary) Clone() *Dictionary {
	c := New(d.columns)
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		c.entries.Set(pair.Key, pair.Value.Clone())
	}
	return c
}

// FieldOrder returns the keys of e: dictionary columns first, then the rest sorted.
func (d *Dictionary) FieldOrder(e Entry) []string {
	keys := slices.Clone(d.columns)
	var extra []string
	for k := range e {
		if !slices.Contains(d.columns, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

// Document returns the dictionary with lemmas in insertion order and fields in column order.
func (d *Dictionary) Document() *Document {
	doc := orderedmap.New[string, *orderedmap.OrderedMap[string, []string]]()
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		fields := orderedmap.New[string, []string]()
		for _, name := range d.FieldOrder(pair.Value) {
			values := pair.Value[name]
			if values == nil {
				values = []string{}
			}
			fields.Set(name, values)
		}
		doc.Set(pair.Key, fields)
	}
	return doc
}

// MarshalJSON encodes the dictionary as an object keyed by lemma.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return d.Document().MarshalJSON()
}

// UnmarshalJSON decodes an object keyed by lemma. Field names not in DefaultColumns
// become extra columns in first-seen order. Field values are read leniently, see decodeValues.
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, *orderedmap.OrderedMap[string, json.RawMessage]]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}

	type pending struct {
		lemma string
		entry Entry
	}
	var rows []pending
	var seen []string
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		entry := Entry{}
		if pair.Value != nil {
			for field := pair.Value.Oldest(); field != nil; field = field.Next() {
				values, err := decodeValues(field.Value)
				if err != nil {
					return fmt.Errorf("decode entry %q: field %q: %w", pair.Key, field.Key, err)
				}
				entry[field.Key] = values
				seen = append(seen, field.Key)
			}
		}
		rows = append(rows, pending{lemma: pair.Key, entry: entry})
	}

	*d = *New(seen)
	for _, r := range rows {
		d.Set(r.lemma, r.entry)
	}
	return nil
}

// decodeValues accepts a field written by hand as well as a list of strings:
// null is empty, a scalar is a one-element list, and list elements become their text.
// Null elements are dropped.
func decodeValues(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch v := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		values := make([]string, 0, len(v))
		for _, e := range v {
			if e == nil {
				continue
			}
			s, err := valueText(e)
			if err != nil {
				return nil, err
			}
			values = append(values, s)
		}
		return values, nil
	default:
		s, err := valueText(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func valueText(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
