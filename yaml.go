// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FromYAML creates a Params from a YAML document whose root is a
// mapping. The decoded mapping is normalized into the persistent object
// model the same way From normalizes a native map. YAML constructs with
// no counterpart in the data model are brought into it: non-string
// mapping keys are stringified and timestamp scalars become RFC 3339
// strings.
func FromYAML(msg []byte) (*Params, error) {
	var doc interface{}
	if err := yaml.Unmarshal(msg, &doc); err != nil {
		return nil, err
	}
	m, ok := normalizeYAML(doc).(map[string]interface{})
	if !ok {
		return nil, errors.New("params: document root is not a mapping")
	}
	return From(m), nil
}

// normalizeYAML rewrites a decoded YAML structure into one ValueNew
// accepts. The decoder produces map[interface{}]interface{} for
// mappings with non-string keys and time.Time for timestamp scalars;
// neither is representable directly.
func normalizeYAML(in interface{}) interface{} {
	switch v := in.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = normalizeYAML(val)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return v
	}
}
