package road

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineString is an ordered sequence of [lng, lat] pairs, stored as a JSON
// column. A nil/empty LineString means no way geometry is attached.
type LineString [][2]float64

func (l LineString) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineString) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	return scanJSON(src, l, "LineString")
}

// StringList is a JSON array column preserving insertion order.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src any) error {
	if src == nil {
		*s = StringList{}
		return nil
	}
	return scanJSON(src, s, "StringList")
}

const (
	maxExtraFieldKeys  = 50
	maxExtraFieldDepth = 4
)

// ExtraFields is the schemaless extension bag on a road record. Values are
// only bounded in size and nesting depth, never shaped.
type ExtraFields map[string]any

func (e ExtraFields) Value() (driver.Value, error) {
	if e == nil {
		e = ExtraFields{}
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *ExtraFields) Scan(src any) error {
	if src == nil {
		*e = ExtraFields{}
		return nil
	}
	return scanJSON(src, e, "ExtraFields")
}

// Validate bounds the bag: at most maxExtraFieldKeys top-level keys and
// maxExtraFieldDepth levels of nesting.
func (e ExtraFields) Validate() error {
	if len(e) > maxExtraFieldKeys {
		return fmt.Errorf("%w: extra_fields exceeds %d keys", ErrValidation, maxExtraFieldKeys)
	}
	for k, v := range e {
		if depth(v) >= maxExtraFieldDepth {
			return fmt.Errorf("%w: extra_fields.%s nested too deeply", ErrValidation, k)
		}
	}
	return nil
}

func depth(v any) int {
	switch t := v.(type) {
	case map[string]any:
		max := 0
		for _, child := range t {
			if d := depth(child); d > max {
				max = d
			}
		}
		return max + 1
	case []any:
		max := 0
		for _, child := range t {
			if d := depth(child); d > max {
				max = d
			}
		}
		return max + 1
	default:
		return 0
	}
}

func scanJSON(src, dst any, what string) error {
	switch t := src.(type) {
	case []byte:
		return json.Unmarshal(t, dst)
	case string:
		return json.Unmarshal([]byte(t), dst)
	default:
		return fmt.Errorf("cannot scan %T into %s", src, what)
	}
}
