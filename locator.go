// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"strconv"
	"strings"

	"jsouthworth.net/go/try"
)

const delimiter = ":"

// MalformedLocatorError is the error produced when a locator expression
// yields no keys or the expression is not one of the accepted forms.
type MalformedLocatorError struct {
	Input interface{}
}

// Error implements the error interface.
func (e *MalformedLocatorError) Error() string {
	return "malformed locator: " + stringify(e.Input)
}

func stringify(in interface{}) string {
	switch v := in.(type) {
	case string:
		return strconv.Quote(v)
	case []string:
		return strconv.Quote(delimiter + strings.Join(v, delimiter))
	default:
		return "unsupported input type"
	}
}

// LocatorNew canonicalizes a locator expression into a Locator. The
// accepted forms are a *Locator which is returned unchanged, a
// colon-delimited string such as ":user:location:address" (the leading
// delimiter is optional and a bare key is a one segment locator), and a
// []string holding an explicit key sequence. LocatorNew panics with a
// *MalformedLocatorError if no keys result; the same input always
// yields the same locator.
func LocatorNew(input interface{}) *Locator {
	switch in := input.(type) {
	case *Locator:
		return in
	case string:
		return (&Locator{}).parse(in)
	case []string:
		if len(in) == 0 {
			panic(&MalformedLocatorError{Input: in})
		}
		keys := make([]string, len(in))
		copy(keys, in)
		return &Locator{keys: keys}
	default:
		panic(&MalformedLocatorError{Input: input})
	}
}

// ParseLocator is the error returning variant of LocatorNew.
func ParseLocator(input interface{}) (*Locator, error) {
	out, err := try.Apply(LocatorNew, input)
	if err != nil {
		return nil, err
	}
	return out.(*Locator), nil
}

// Locator is a canonical ordered key sequence identifying a path from
// the root of a nested structure. Locators produced by LocatorNew are
// never empty.
//
// Locator expressions match the following grammar:
//
//	locator := [":"] segment (":" segment)*
//	segment := any non-empty substring not containing ":"
type Locator struct {
	keys []string
}

// parse splits a locator expression on the delimiter, dropping empty
// segments. Inputs that produce no segments are rejected.
func (l *Locator) parse(input string) *Locator {
	segments := strings.Split(strings.TrimPrefix(input, delimiter),
		delimiter)
	keys := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		keys = append(keys, segment)
	}
	if len(keys) == 0 {
		panic(&MalformedLocatorError{Input: input})
	}
	l.keys = keys
	return l
}

// Keys returns the locator's canonical key sequence.
func (l *Locator) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// String will format a locator as a canonical locator expression.
func (l *Locator) String() string {
	return delimiter + strings.Join(l.keys, delimiter)
}

// Equal determines if two locators address the same path. It implements
// a common equality interface so other must be interface{}.
func (l *Locator) Equal(other interface{}) bool {
	ol, isLocator := other.(*Locator)
	if !isLocator || len(ol.keys) != len(l.keys) {
		return false
	}
	for i, k := range l.keys {
		if ol.keys[i] != k {
			return false
		}
	}
	return true
}

// push returns a new locator extended with the key.
func (l *Locator) push(key string) *Locator {
	keys := make([]string, 0, len(l.keys)+1)
	keys = append(keys, l.keys...)
	keys = append(keys, key)
	return &Locator{keys: keys}
}

// pushIndex returns a new locator extended with an array index.
func (l *Locator) pushIndex(index int) *Locator {
	return l.push(strconv.Itoa(index))
}

// path returns the locator addressing the parent of the terminal key,
// or nil when there is nothing left to strip. The zero-key locator it
// can produce addresses the root and is never exposed to callers.
func (l *Locator) path() *Locator {
	if len(l.keys) == 0 {
		return nil
	}
	return &Locator{keys: l.keys[:len(l.keys)-1]}
}

// terminal returns the last key of the locator.
func (l *Locator) terminal() string {
	if len(l.keys) == 0 {
		return ""
	}
	return l.keys[len(l.keys)-1]
}

// indexKey reports whether a key can serve as an array index.
func indexKey(key string) (int, bool) {
	u, err := strconv.ParseUint(key, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(u), true
}

// Find will traverse the structure to find the Value to which the
// locator refers. Each key descends an Object by lookup; an Array is
// descended when the key is a non-negative integer index. Any other
// value encountered mid path yields absence, scalars are never coerced
// into containers.
func (l *Locator) Find(value *Value) (*Value, bool) {
	var found bool
	for _, key := range l.keys {
		value, found = findKey(value, key)
		if !found {
			return nil, false
		}
	}
	return value, true
}

func findKey(value *Value, key string) (*Value, bool) {
	if value == nil {
		return nil, false
	}
	var found bool
	out := ValueNew(value.Perform(func(o *Object) *Value {
		v, ok := o.Find(key)
		found = ok
		return v
	}, func(a *Array) *Value {
		i, ok := indexKey(key)
		if !ok {
			return nil
		}
		v, ok := a.Find(i)
		found = ok
		return v
	}))
	return out, found
}

// MatchAgainst returns the value at the location represented by the
// locator. If none, it returns nil.
func (l *Locator) MatchAgainst(value *Value) *Value {
	v, found := l.Find(value)
	if !found {
		return nil
	}
	return v
}

// canPlace reports whether a value can hold an association for the key
// without being replaced: Objects always can, Arrays only when the key
// is an index.
func canPlace(value *Value, key string) bool {
	if value == nil {
		return false
	}
	if value.IsObject() {
		return true
	}
	if value.IsArray() {
		_, ok := indexKey(key)
		return ok
	}
	return false
}

// MarshalJSON serializes the locator as its canonical expression.
func (l *Locator) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(l.String())), nil
}

// UnmarshalJSON parses a locator expression from a JSON string.
func (l *Locator) UnmarshalJSON(msg []byte) (err error) {
	s, err := strconv.Unquote(string(msg))
	if err != nil {
		return err
	}
	_, err = try.Apply(func(in string) *Locator { return l.parse(in) }, s)
	return err
}
