package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StringList is a list of facet values that accepts JSON strings and numbers.
// The data service reports years as integers in some responses. Anything
// other than an array, null included, decodes as an absent facet.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("facet values: %w", err)
	}
	result := make(StringList, 0, len(raw))
	for _, r := range raw {
		v, err := scalarString(r)
		if err != nil {
			return err
		}
		result = append(result, v)
	}
	*l = result
	return nil
}

func scalarString(r json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(r, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		return n.String(), nil
	}
	return "", fmt.Errorf("facet value %s is neither string nor number", string(r))
}
