// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"bytes"
	"encoding/json"
	"reflect"

	"jsouthworth.net/go/immutable/vector"
)

// ArrayNew creates a new array and returns its abstract representation.
func ArrayNew() *Array {
	return arrayNew()
}

func arrayNew() *Array {
	return &Array{
		store: vector.Empty(),
	}
}

// ArrayWith creates an array and initializes it with the provided
// elements.
func ArrayWith(elements ...interface{}) *Array {
	return ArrayNew().with(elements...)
}

// ArrayFrom creates an array and initializes it with the elements from
// the provided slice.
func ArrayFrom(in interface{}) *Array {
	return ArrayNew().from(in)
}

// Array is an ordered sequence of Values. The arrays are immutable, the
// mutation methods return new structurally shared copies of the
// original array with the changes. This provides cheap copies of the
// array and preserves the original allowing it to be easily shared.
type Array struct {
	store *vector.Vector
}

// from converts a go slice to an Array.
func (arr *Array) from(ins interface{}) *Array {
	val := reflect.ValueOf(ins)
	vals := make([]*Value, val.Len())
	for i := 0; i < val.Len(); i++ {
		in := val.Index(i).Interface()
		vals[i] = ValueNew(in)
	}
	return &Array{
		store: vector.From(vals),
	}
}

// with returns an Array containing the elements.
func (arr *Array) with(elements ...interface{}) *Array {
	return arr.from(elements)
}

// At returns the value at the index of the array, if the index is out
// of bounds, nil is returned.
func (arr *Array) At(index int) *Value {
	if index >= arr.store.Length() || index < 0 {
		return nil
	}
	return arr.store.At(index).(*Value)
}

// Contains returns whether the index is in the bounds of the array.
func (arr *Array) Contains(index int) bool {
	return index < arr.store.Length() && index >= 0
}

// Find returns the value at the index or nil if it doesn't exist and
// whether the index was in the array.
func (arr *Array) Find(index int) (*Value, bool) {
	v, ok := arr.store.Find(index)
	if !ok {
		return nil, ok
	}
	return v.(*Value), ok
}

// Assoc associates the value with the index in the array. If the index
// is out of bounds the array is padded to that index and the value is
// associated.
func (arr *Array) Assoc(index int, value interface{}) *Array {
	newStore := arr.store
	if arr.Length() <= index {
		// Pad with null values so the gap is observable through At
		// and survives iteration.
		for i := arr.Length(); i < index+1; i++ {
			newStore = newStore.Append(valueNew(nil))
		}
	}
	newStore = newStore.Assoc(index, ValueNew(value))
	return &Array{
		store: newStore,
	}
}

// Length returns the number of elements in the array.
func (arr *Array) Length() int {
	return arr.store.Length()
}

// Append adds a new value to the end of the array.
func (arr *Array) Append(value interface{}) *Array {
	return &Array{
		store: arr.store.Append(ValueNew(value)),
	}
}

// Delete removes an element at the supplied index from the array.
func (arr *Array) Delete(index int) *Array {
	return &Array{
		store: arr.store.Delete(index),
	}
}

// Range iterates over the array's members. Range can take a set of
// functions matched by type. If the function returns a bool this is
// treated as a loop termination variable, if false the loop will
// terminate.
//
//	func(int, *Value) iterates over indices and values.
//	func(int, *Value) bool
//	func(int) iterates over only the indices
//	func(int) bool
//	func(*Value) iterates over only the values
//	func(*Value) bool
func (arr *Array) Range(fn interface{}) *Array {
	switch f := fn.(type) {
	case func(int, *Value):
	case func(int, *Value) bool:
	case func(*Value):
		fn = func(idx int, val interface{}) bool {
			f(val.(*Value))
			return true
		}
	case func(*Value) bool:
		fn = func(idx int, val interface{}) bool {
			return f(val.(*Value))
		}
	case func(int):
		fn = func(idx int, val interface{}) bool {
			f(idx)
			return true
		}
	case func(int) bool:
		fn = func(idx int, val interface{}) bool {
			return f(idx)
		}
	default:
		panic("invalid range function")
	}
	arr.store.Range(fn)
	return arr
}

// toNative returns a go native []interface{} from the array.
func (arr *Array) toNative() interface{} {
	out := make([]interface{}, arr.Length())
	arr.Range(func(idx int, value *Value) {
		out[idx] = value.ToNative()
	})
	return out
}

// toData returns the contents of the array as a []*Value that can be
// used with things like text/template more easily.
func (arr *Array) toData() interface{} {
	out := make([]*Value, arr.Length())
	arr.Range(func(idx int, value *Value) {
		out[idx] = value
	})
	return out
}

func (arr *Array) copy() *Array {
	return &Array{
		store: arr.store,
	}
}

// merge merges one array with another. The returned array is the old
// array with any existing indices replaced with counterparts from the
// new array and any new indices added. Merge is accretive only and will
// not remove non-existant indices.
func (arr *Array) merge(new *Value) *Value {
	return new.Perform(func(n *Array) *Value {
		out := arr.Transform(func(out *TArray) {
			arr.Range(func(i int, v *Value) {
				if n.Contains(i) {
					out = out.Assoc(i,
						v.Merge(n.At(i)))
				}
			})
			n.Range(func(i int, v *Value) {
				if !arr.Contains(i) {
					out = out.Append(v)
				}
			})
		})
		return ValueNew(out)
	}, func(_ interface{}) *Value {
		// By default just return the original array; can't merge
		// unlike types.
		return ValueNew(arr)
	}).(*Value)
}

// Equal implements equality for arrays. An array is equal to another
// array if their values at each index are equal. Equality checks are
// linear with respect to the number of elements.
func (arr *Array) Equal(other interface{}) bool {
	oa, isArray := other.(*Array)
	return isArray &&
		oa.store.Length() == arr.store.Length() &&
		equal(oa.store, arr.store)
}

// String returns a string representation of the Array.
func (arr *Array) String() string {
	var buf bytes.Buffer
	arr.marshalJSON(&buf)
	return buf.String()
}

func (arr *Array) marshalJSON(buf *bytes.Buffer) error {
	buf.WriteByte('[')
	var err error
	arr.Range(func(i int, v *Value) {
		e := v.marshalJSON(buf)
		if e != nil && err == nil {
			err = e
		}
		if i < arr.Length()-1 {
			buf.WriteByte(',')
		}
	})
	buf.WriteByte(']')
	return err
}

func (arr *Array) unmarshalJSON(msg []byte, strs *stringInterner) error {
	var a []json.RawMessage
	err := json.Unmarshal(msg, &a)
	if err != nil {
		return err
	}
	arr.store = arr.store.Transform(
		func(store *vector.TVector) *vector.TVector {
			for _, v := range a {
				val := valueNew(nil)
				err = val.unmarshalJSON(v, strs)
				if err != nil {
					return store
				}
				store = store.Append(val)
			}
			return store
		})
	return err
}

func (arr *Array) diff(new *Value, path *Locator) []EditEntry {
	out := []EditEntry{}
	new.Perform(func(other *Array) {
		arr.Range(func(i int, v *Value) {
			if other.Contains(i) {
				out = append(out,
					v.diff(other.At(i),
						path.pushIndex(i))...)
			} else {
				out = append(out,
					EditEntry{
						Action: EditDelete,
						Path:   path.pushIndex(i),
					})
			}
		})
		other.Range(func(i int, v *Value) {
			if arr.Contains(i) {
				return
			}
			out = append(out,
				EditEntry{
					Action: EditAssoc,
					Path:   path.pushIndex(i),
					Value:  v,
				})
		})
	}, func(other interface{}) {
		out = []EditEntry{
			{Action: EditAssoc, Path: path, Value: ValueNew(new)},
		}
	})
	return out
}

// Transform executes the provided function against a mutable transient
// array to provide a faster, less memory intensive, array editing
// mechanism.
func (arr *Array) Transform(fn func(*TArray)) *Array {
	tarr := &TArray{
		store: arr.store.AsTransient(),
	}
	fn(tarr)
	out := arr.copy()
	out.store = tarr.store.AsPersistent()
	return out
}

// TArray is a transient array that may be used to perform
// transformations on an array in a fast mutable fashion. This can only
// be accessed via the (*Array).Transform method. Care should be taken
// not to share this among threads as its values are mutable.
type TArray struct {
	store *vector.TVector
}

// Assoc associates the value with the index in the array. If the index
// is out of bounds the array is padded to that index and the value is
// associated.
func (arr *TArray) Assoc(i int, v interface{}) *TArray {
	arr.store = arr.store.Assoc(i, ValueNew(v))
	return arr
}

// Append adds a new value to the end of the array.
func (arr *TArray) Append(value interface{}) *TArray {
	arr.store = arr.store.Append(ValueNew(value))
	return arr
}

// At returns the value at the index of the array, if the index is out
// of bounds, nil is returned.
func (arr *TArray) At(index int) *Value {
	if index >= arr.store.Length() || index < 0 {
		return nil
	}
	return arr.store.At(index).(*Value)
}

// Contains returns whether the index is in the bounds of the array.
func (arr *TArray) Contains(index int) bool {
	return index < arr.store.Length() && index >= 0
}

// Length returns the number of elements in the array.
func (arr *TArray) Length() int {
	return arr.store.Length()
}
