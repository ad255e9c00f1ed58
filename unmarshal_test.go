// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"testing"
)

const jsonDocument = `{
	"user": {
		"name": "Mikko",
		"age": 30,
		"score": 1.5,
		"active": true,
		"nickname": null,
		"emails": ["a@example.com", "b@example.com"]
	}
}`

func TestFromJSON(t *testing.T) {
	p, err := FromJSON([]byte(jsonDocument))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := From(map[string]interface{}{
		"user": map[string]interface{}{
			"name":     "Mikko",
			"age":      30,
			"score":    1.5,
			"active":   true,
			"nickname": nil,
			"emails": []interface{}{
				"a@example.com",
				"b@example.com",
			},
		},
	})
	if !p.Equal(expected) {
		t.Fatalf("expected %s, got %s", expected, p)
	}
}

func TestFromJSONNumbers(t *testing.T) {
	cases := []struct {
		name     string
		document string
		expected interface{}
	}{
		{
			name:     "integer",
			document: `{"n": 42}`,
			expected: int64(42),
		},
		{
			name:     "negative integer",
			document: `{"n": -42}`,
			expected: int64(-42),
		},
		{
			name:     "large unsigned",
			document: `{"n": 9223372036854775808}`,
			expected: uint64(1) << 63,
		},
		{
			name:     "float",
			document: `{"n": 1.5}`,
			expected: 1.5,
		},
		{
			name:     "exponent",
			document: `{"n": 1e3}`,
			expected: float64(1000),
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			p, err := FromJSON([]byte(test.document))
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			got := p.At(":n").ToInterface()
			if !equal(got, test.expected) {
				t.Fatalf("expected %v (%T), got %v (%T)",
					test.expected, test.expected, got, got)
			}
		})
	}
}

func TestFromJSONErrors(t *testing.T) {
	cases := []struct {
		name     string
		document string
	}{
		{name: "array root", document: `[1, 2]`},
		{name: "scalar root", document: `42`},
		{name: "null root", document: `null`},
		{name: "malformed number", document: `{"n": 1.5.5}`},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromJSON([]byte(test.document))
			if err == nil {
				t.Fatal("didn't get expected error")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p, err := FromJSON([]byte(jsonDocument))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var decoded Params
	err = decoded.UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !decoded.Equal(p) {
		t.Fatalf("round trip mismatch, expected %s, got %s",
			p, &decoded)
	}
}

func TestJSONStringEscaping(t *testing.T) {
	p := From(map[string]interface{}{
		"quote": "say \"hi\"",
	})
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !decoded.Equal(p) {
		t.Fatalf("round trip mismatch: %s", decoded)
	}
}
