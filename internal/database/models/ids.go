package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ID is the key of an entity inside its collection. Identifiers are positive;
// zero means "not assigned yet".
type ID int64

// Valid reports whether id can reference an entity.
func (id ID) Valid() bool {
	return id > 0
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IDList is an ordered sequence of identifiers of one related collection.
// Order is insertion order and is preserved through JSON and the database.
// An empty list is always represented as nil: Clone, JSON decoding and Scan
// all return nil for it, so a hand-built IDList{} comes back as nil from any
// round trip. On the wire an empty list is always [].
type IDList []ID

// Contains reports whether id is in the list.
func (l IDList) Contains(id ID) bool {
	return l.IndexOf(id) >= 0
}

// IndexOf returns the position of id or -1.
func (l IDList) IndexOf(id ID) int {
	for i, v := range l {
		if v == id {
			return i
		}
	}
	return -1
}

// Duplicates returns every value that occurs more than once, in order of
// its second occurrence.
func (l IDList) Duplicates() []ID {
	seen := make(map[ID]int, len(l))
	var dups []ID
	for _, v := range l {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}
	return dups
}

// Invalid returns the values that are not identifiers.
func (l IDList) Invalid() []ID {
	var bad []ID
	for _, v := range l {
		if !v.Valid() {
			bad = append(bad, v)
		}
	}
	return bad
}

// With returns a copy of l with id appended. The list is returned unchanged
// (but copied) if id is already present.
func (l IDList) With(id ID) IDList {
	out := l.Clone()
	if out.Contains(id) {
		return out
	}
	return append(out, id)
}

// Without returns a copy of l with id removed.
func (l IDList) Without(id ID) IDList {
	var out IDList
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns an independent copy.
func (l IDList) Clone() IDList {
	if len(l) == 0 {
		return nil
	}
	out := make(IDList, len(l))
	copy(out, l)
	return out
}

// Equal compares element by element, order included.
func (l IDList) Equal(other IDList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// SameSet compares ignoring order.
func (l IDList) SameSet(other IDList) bool {
	if len(l) != len(other) {
		return false
	}
	counts := make(map[ID]int, len(l))
	for _, v := range l {
		counts[v]++
	}
	for _, v := range other {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// MarshalJSON writes an empty list as [] rather than null.
func (l IDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ID(l))
}

// UnmarshalJSON accepts null and [] as the empty list.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []ID
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = IDList(raw).Clone()
	return nil
}

// Value stores the list as a JSON array.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return datatypes.NewJSONSlice([]ID{}).Value()
	}
	return datatypes.NewJSONSlice([]ID(l)).Value()
}

// Scan reads a JSON array column.
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw datatypes.JSONSlice[ID]
	if err := raw.Scan(value); err != nil {
		return err
	}
	*l = IDList(raw).Clone()
	return nil
}

// GormDataType implements schema.GormDataTypeInterface.
func (IDList) GormDataType() string {
	return datatypes.JSONSlice[ID]{}.GormDataType()
}

// GormDBDataType picks jsonb on postgres.
func (IDList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.JSONSlice[ID]{}.GormDBDataType(db, field)
}
