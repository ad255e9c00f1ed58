// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"jsouthworth.net/go/dyn"
)

// ValueNew turns a native go value into a params Value as long as the
// type can be represented in the params data model. ValueNew will panic
// if the value is not a compatible type.
func ValueNew(data interface{}) *Value {
	return valueNew(data)
}

func valueNew(data interface{}) *Value {
	if data == nil {
		return &Value{data: nil}
	}
	switch d := data.(type) {
	case *Value:
		return d
	case *Object, *Array:
	case bool, string, float64:
	case float32:
		data = float64(d)
	case int:
		data = int64(d)
	case int8:
		data = int64(d)
	case int16:
		data = int64(d)
	case int32:
		data = int64(d)
	case int64:
	case uint:
		data = inferUintType(uint64(d))
	case uint8:
		data = int64(d)
	case uint16:
		data = int64(d)
	case uint32:
		data = int64(d)
	case uint64:
		// Store unsigned values as int64 whenever they fit so
		// that values built from native data compare equal to
		// values produced by the unmarshaller.
		data = inferUintType(d)
	case map[string]interface{}:
		data = ObjectFrom(d)
	case []interface{}:
		data = ArrayFrom(d)
	default:
		panic(errors.New("cannot create value, invalid type"))
	}
	return &Value{
		data: data,
	}
}

func inferUintType(v uint64) interface{} {
	if v <= math.MaxInt64 {
		return int64(v)
	}
	return v
}

// Value is a params value. Values may be *Object, *Array, int64,
// uint64, float64, string, bool, or nil. All integer types are
// up-converted to a 64bit type when creating a value; unsigned values
// that fit are stored signed so equality is independent of the source
// type.
type Value struct {
	data interface{}
}

var valType = reflect.TypeOf((*Value)(nil))
var interfaceType = reflect.TypeOf((*interface{})(nil)).Elem()

// Perform allows one to match the type of the Value with a behavior to
// perform on that type without resorting to the assertion operations.
// Think of this as the switch v.(type) { ... } analogue for params
// types. It takes a list of func(v vT) oT functions and applies the
// first match to the value.
//
// If vT above is *Value or interface{} it matches all value types. If
// the value is a numeric type and the numeric type is convertable to vT
// then that is considered a match and the conversion is applied first;
// only int64 <-> uint64 is supported and only if the value fits.
func (val *Value) Perform(fns ...interface{}) interface{} {
	if val == nil {
		return nil
	}
	vty := reflect.TypeOf(val.data)
	var action interface{}
	arg := val.data
	for _, fn := range fns {
		if action != nil {
			break
		}
		fnty := reflect.TypeOf(fn)
		if fnty.NumIn() != 1 {
			continue
		}
		inputType := fnty.In(0)
		switch {
		case vty == nil:
			if inputType == interfaceType {
				action = fn
			}
		case inputType == valType:
			arg = val
			action = fn
		case vty.AssignableTo(inputType):
			action = fn
		case canConvertNumeric(vty, inputType, arg):
			arg = convertNumeric(arg, inputType)
			action = fn
		}
	}
	if action == nil {
		return nil
	}
	return dyn.Apply(action, arg)
}

var int64Type = reflect.TypeOf(int64(0))
var uint64Type = reflect.TypeOf(uint64(0))
var float64Type = reflect.TypeOf(float64(0))

func canConvertNumeric(from, to reflect.Type, v interface{}) bool {
	// This is a specific subset of what (reflect.Value).Convert
	// allows; signed and unsigned 64bit numbers are interchangeable
	// only when the value fits in the target.
	if from == to {
		return true
	}
	switch from {
	case int64Type:
		return to == uint64Type && v.(int64) >= 0
	case uint64Type:
		return to == int64Type && v.(uint64) <= (1<<63)-1
	}
	return false
}

func convertNumeric(from interface{}, to reflect.Type) interface{} {
	return reflect.ValueOf(from).
		Convert(to).
		Interface()
}

// AsObject returns an *Object if the value is an Object and panics
// otherwise.
func (val *Value) AsObject() *Object {
	return val.data.(*Object)
}

// IsObject returns if the data stored in the value is an Object.
func (val *Value) IsObject() bool {
	_, isObject := val.data.(*Object)
	return isObject
}

// ToObject returns an *Object and allows the user to define a
// default. The value (*Object)(nil) is returned if no default is
// defined and the value is not an *Object.
func (val *Value) ToObject(defaultVal ...*Object) *Object {
	o, isObject := val.data.(*Object)
	if isObject {
		return o
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return nil
}

// AsArray returns an *Array if the value is an Array and panics
// otherwise.
func (val *Value) AsArray() *Array {
	return val.data.(*Array)
}

// IsArray returns if the data stored in the value is an Array.
func (val *Value) IsArray() bool {
	_, isArray := val.data.(*Array)
	return isArray
}

// ToArray returns an *Array and allows the user to define a
// default. The value (*Array)(nil) is returned if no default is defined
// and the value is not an *Array.
func (val *Value) ToArray(defaultVal ...*Array) *Array {
	arr, isArray := val.data.(*Array)
	if isArray {
		return arr
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return nil
}

// AsString returns a string if the value is a string and panics
// otherwise.
func (val *Value) AsString() string {
	return val.data.(string)
}

// IsString returns if the data stored in the value is a string.
func (val *Value) IsString() bool {
	_, isString := val.data.(string)
	return isString
}

// ToString returns a string and allows the user to define a
// default. The value "" is returned if no default is defined and the
// value is not a string.
func (val *Value) ToString(defaultVal ...string) string {
	s, isString := val.data.(string)
	if isString {
		return s
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return ""
}

// AsInt64 returns an int64 if the type is convertable to int64 and
// panics otherwise.
func (val *Value) AsInt64() int64 {
	return reflect.ValueOf(val.data).
		Convert(int64Type).
		Interface().(int64)
}

// IsInt64 returns if the value is convertable to an int64.
func (val *Value) IsInt64() bool {
	return canConvertNumeric(reflect.TypeOf(val.data),
		int64Type, val.data)
}

// ToInt64 returns an int64 if the type is convertable to int64 and
// returns the user supplied default or 0 otherwise.
func (val *Value) ToInt64(defaultVal ...int64) int64 {
	switch val.data.(type) {
	case int64, uint64, float64:
		return val.AsInt64()
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

// AsUint64 returns a uint64 if the type is convertable to uint64 and
// panics otherwise.
func (val *Value) AsUint64() uint64 {
	return reflect.ValueOf(val.data).
		Convert(uint64Type).
		Interface().(uint64)
}

// IsUint64 returns if the value is convertable to a uint64.
func (val *Value) IsUint64() bool {
	return canConvertNumeric(reflect.TypeOf(val.data),
		uint64Type, val.data)
}

// ToUint64 returns a uint64 if the type is convertable to uint64 and
// returns the user supplied default or 0 otherwise.
func (val *Value) ToUint64(defaultVal ...uint64) uint64 {
	if val.IsUint64() {
		return val.AsUint64()
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

// AsFloat returns a float64 if the type is convertable to float64 and
// panics otherwise.
func (val *Value) AsFloat() float64 {
	return reflect.ValueOf(val.data).
		Convert(float64Type).
		Interface().(float64)
}

// IsFloat returns if the value is a float.
func (val *Value) IsFloat() bool {
	_, isFloat := val.data.(float64)
	return isFloat
}

// ToFloat returns a float64 if the type is convertable to float64 and
// returns the user supplied default or 0 otherwise.
func (val *Value) ToFloat(defaultVal ...float64) float64 {
	switch val.data.(type) {
	case int64, uint64, float64:
		return val.AsFloat()
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

// AsBoolean returns a bool if the value is a bool and panics otherwise.
func (val *Value) AsBoolean() bool {
	return val.data.(bool)
}

// IsBoolean returns if the value is a bool.
func (val *Value) IsBoolean() bool {
	_, isBoolean := val.data.(bool)
	return isBoolean
}

// ToBoolean returns a bool if the value is a bool and returns the user
// supplied default or false otherwise.
func (val *Value) ToBoolean(defaultVal ...bool) bool {
	b, isBool := val.data.(bool)
	if isBool {
		return b
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return false
}

// IsNull returns whether the value's data is nil.
func (val *Value) IsNull() bool {
	return val.data == nil
}

// ToInterface returns the held data directly as a native interface.
// Caution should be used as the integer types may not be the same as
// the type that was passed into the value due to the way they are
// stored internally.
func (val *Value) ToInterface() interface{} {
	return val.data
}

// ToData returns the held data as a value that can easily be used with
// standard library packages such as text/template.
func (val *Value) ToData() interface{} {
	switch v := val.data.(type) {
	case interface{ toData() interface{} }:
		return v.toData()
	default:
		return val.data
	}
}

// ToNative converts a value to a go native type. Objects become
// map[string]interface{} and Arrays become []interface{}, all the way
// down. The returned structure shares nothing with the value's internal
// storage.
func (val *Value) ToNative() interface{} {
	switch v := val.data.(type) {
	case interface {
		toNative() interface{}
	}:
		return v.toNative()
	default:
		return v
	}
}

// Merge will combine the old value with the new value and return the
// result. Objects and Arrays merge recursively; for any other pairing
// the new value wins.
func (val *Value) Merge(new *Value) *Value {
	switch val := val.data.(type) {
	case interface {
		merge(*Value) *Value
	}:
		return val.merge(new)
	default:
		return new
	}
}

func (val *Value) diff(new *Value, path *Locator) []EditEntry {
	switch v := val.data.(type) {
	case interface {
		diff(*Value, *Locator) []EditEntry
	}:
		return v.diff(new, path)
	default:
		// Leaf values
		if equal(val, new) {
			return nil
		}
		return []EditEntry{
			{Action: EditAssoc, Path: path, Value: new},
		}
	}
}

// Equal provides an implementation of Equality for Value types.
func (val *Value) Equal(other interface{}) bool {
	if other == nil {
		return val == nil
	}
	ov, isValue := other.(*Value)
	if !isValue {
		return false
	}
	return (val == nil && ov == nil) ||
		equal(val.data, ov.data)
}

// String returns a go string representation of the Value.
func (val *Value) String() string {
	return fmt.Sprintf("%v", val.data)
}

func (val *Value) marshalJSON(buf *bytes.Buffer) error {
	switch v := val.data.(type) {
	case interface {
		marshalJSON(*bytes.Buffer) error
	}:
		return v.marshalJSON(buf)
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(v, 10))
	case float64:
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		buf.WriteString(strconv.Quote(v))
	default:
		return errors.New("cannot marshal value, invalid type")
	}
	return nil
}

// MarshalJSON returns the value encoded as JSON.
func (val *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	err := val.marshalJSON(&buf)
	return buf.Bytes(), err
}

// UnmarshalJSON extracts a value from a JSON encoded message.
func (val *Value) UnmarshalJSON(msg []byte) error {
	strs := stringInternerNew()
	return val.unmarshalJSON(msg, strs)
}

func equal(v1, v2 interface{}) bool {
	return dyn.Equal(v1, v2)
}
