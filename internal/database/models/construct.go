package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"

	apperrors "organization-backend/internal/errors"

	"github.com/go-viper/mapstructure/v2"
)

// NewOrganization builds an organization from a raw field map as read from a
// store row or a decoded request. Keys are wire names. It returns a
// ValidationError if name is missing, a field is unknown or has the wrong
// type, or an id list holds a duplicate or a non-identifier. Integers may be
// given as any Go integer type, as an integral float64 or as json.Number.
//
// Theme containment is not checked here; see CheckInvariants.
func NewOrganization(fields map[string]any) (*Organization, error) {
	if err := checkFields(fields); err != nil {
		return nil, err
	}

	org := &Organization{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Squash:      true,
		ErrorUnused: true,
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(jsonNumberHook),
		Result:      org,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	org.normalize()

	if err := org.Validate(); err != nil {
		return nil, err
	}
	return org, nil
}

// NewOrganizationSettings builds a settings bundle from a raw field map, with
// the same typing rules as NewOrganization. No field is required.
func NewOrganizationSettings(fields map[string]any) (*OrganizationSettings, error) {
	for _, name := range sortedKeys(fields) {
		f, ok := lookup(settingsFields, name)
		if !ok {
			return nil, apperrors.NewValidationError(name, "unknown field")
		}
		if err := checkValue(f, fields[name]); err != nil {
			return nil, err
		}
	}

	settings := &OrganizationSettings{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(jsonNumberHook),
		Result:      settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// checkFields verifies presence of required fields and the type of every
// supplied value against the flat field registry, reporting the first problem
// in registry order.
func checkFields(fields map[string]any) error {
	for _, name := range sortedKeys(fields) {
		if _, ok := lookup(flatFields, name); !ok {
			return apperrors.NewValidationError(name, "unknown field")
		}
	}
	for _, f := range flatFields {
		v, present := fields[f.Name]
		if !present {
			if f.Required {
				return apperrors.NewValidationError(f.Name, "is required")
			}
			continue
		}
		if err := checkValue(f, v); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(f FieldDescriptor, v any) error {
	switch f.Kind {
	case KindText:
		if _, ok := v.(string); !ok {
			return wrongType(f, v)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return wrongType(f, v)
		}
	case KindInteger:
		if _, ok := asInt64(v); !ok {
			return wrongType(f, v)
		}
	case KindID:
		if v == nil && !f.Required {
			return nil
		}
		n, ok := asInt64(v)
		if !ok {
			return wrongType(f, v)
		}
		// id may be left at zero for the store to assign.
		if n < 0 || (n == 0 && f.Name != "id") {
			return apperrors.NewValidationError(f.Name, fmt.Sprintf("%d is not an identifier", n))
		}
	case KindIDs:
		if v == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return wrongType(f, v)
		}
		seen := make(map[int64]bool, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			n, ok := asInt64(elem)
			if !ok {
				return apperrors.NewValidationError(f.Name, fmt.Sprintf("element %d: %v is not an identifier", i, elem))
			}
			if n <= 0 {
				return apperrors.NewValidationError(f.Name, fmt.Sprintf("%d is not an identifier", n))
			}
			if seen[n] {
				return apperrors.NewValidationError(f.Name, fmt.Sprintf("duplicate identifier %d", n))
			}
			seen[n] = true
		}
	}
	return nil
}

func wrongType(f FieldDescriptor, v any) error {
	return apperrors.NewValidationError(f.Name, fmt.Sprintf("expected %s, got %T", f.Kind, v))
}

// asInt64 accepts Go integers, integral floats and json.Number.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case ID:
		return int64(n), true
	case *ID:
		if n == nil {
			return 0, false
		}
		return int64(*n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// jsonNumberHook turns json.Number into int64 before mapstructure assigns it.
func jsonNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	return n.Int64()
}

// normalize collapses empty id lists to nil and mirrors the root identity
// into the settings bundle.
func (o *Organization) normalize() {
	for _, rel := range Relations() {
		ids, _ := o.RelationIDs(rel.Name)
		o.SetRelationIDs(rel.Name, ids)
	}
	o.syncIdentity()
}

func lookup(fields []FieldDescriptor, name string) (FieldDescriptor, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
