// Package wire converts plan snapshots to and from the JSON shapes the
// persistence layer speaks: the load document with durable ids, and the
// save payload where dependencies are positions instead of ids.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an identifier that may arrive as a JSON string or number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s, ok, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	if !ok {
		*id = ""
		return nil
	}
	*id = ID(s)
	return nil
}

// IDList is a dependency list that may arrive as an array, a single value,
// null, or not at all. Elements may be strings or numbers.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding dependency list: %w", err)
		}
		out := make(IDList, 0, len(raw))
		for _, elem := range raw {
			s, ok, err := scalarString(elem)
			if err != nil {
				return fmt.Errorf("decoding dependency list: %w", err)
			}
			if ok {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}

	s, ok, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decoding dependency list: %w", err)
	}
	if !ok {
		*l = IDList{}
		return nil
	}
	*l = IDList{s}
	return nil
}

// Strings returns the list as a non-nil slice.
func (l IDList) Strings() []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}

// PositionList is the save-side dependency list: positional integers. Like
// IDList it accepts a scalar or null, and numeric strings.
type PositionList []int

func (l *PositionList) UnmarshalJSON(data []byte) error {
	var ids IDList
	if err := ids.UnmarshalJSON(data); err != nil {
		return err
	}
	out := make(PositionList, 0, len(ids))
	for _, s := range ids {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("decoding dependency position %q: %w", s, err)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

// MarshalJSON keeps an empty list as [] rather than null.
func (l PositionList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(l))
}

// scalarString decodes a JSON string or number. ok is false for null.
func scalarString(data []byte) (s string, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case '{', '[', 't', 'f':
		return "", false, fmt.Errorf("expected a string or number, got %s", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", false, err
		}
		return n.String(), true, nil
	}
}
