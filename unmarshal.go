// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// FromJSON creates a Params from a JSON document whose root is an
// object.
func FromJSON(msg []byte) (*Params, error) {
	val := valueNew(nil)
	if err := val.UnmarshalJSON(msg); err != nil {
		return nil, err
	}
	if !val.IsObject() {
		return nil, errors.New("params: document root is not an object")
	}
	return FromObject(val.AsObject()), nil
}

func (val *Value) unmarshalJSON(msg []byte, strs *stringInterner) error {
	msg = trimSpace(msg)
	if len(msg) == 0 {
		return nil
	}
	switch c := msg[0]; c {
	case '{':
		obj := objectNew()
		err := obj.unmarshalJSON(msg, strs)
		if err != nil {
			return err
		}
		val.data = obj
	case '[':
		arr := arrayNew()
		err := arr.unmarshalJSON(msg, strs)
		if err != nil {
			return err
		}
		val.data = arr
	case 'n':
		val.data = nil
	case 't', 'f':
		val.data = c == 't'
	case '"':
		var s string
		err := json.Unmarshal(msg, &s)
		if err != nil {
			return err
		}
		val.data = strs.Intern(s)
	default:
		// Decode integral numbers as int64 (uint64 when they
		// don't fit) so values round trip equal to ones built
		// with ValueNew; everything else becomes float64.
		item := string(msg)
		if !strings.ContainsAny(item, ".eE") {
			i, err := strconv.ParseInt(item, 10, 64)
			if err == nil {
				val.data = i
				return nil
			}
			u, err := strconv.ParseUint(item, 10, 64)
			if err == nil {
				val.data = u
				return nil
			}
		}
		f, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return err
		}
		val.data = f
	}
	return nil
}

func trimSpace(msg []byte) []byte {
	for len(msg) > 0 {
		switch msg[0] {
		case ' ', '\t', '\n', '\r':
			msg = msg[1:]
		default:
			return msg
		}
	}
	return msg
}

type stringInterner struct {
	vals map[string]string
}

func (i *stringInterner) Intern(str string) string {
	out, ok := i.vals[str]
	if ok {
		return out
	}
	i.vals[str] = str
	return str
}

func stringInternerNew() *stringInterner {
	return &stringInterner{
		vals: make(map[string]string),
	}
}
