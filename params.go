// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"bytes"

	"jsouthworth.net/go/immutable/vector"
)

// New creates a new empty Params.
func New() *Params {
	return FromObject(ObjectNew())
}

// From creates a Params wrapping the supplied nested structure. The
// input is converted into the persistent object model, so later
// mutation of the input map by the caller is not observable through the
// Params.
func From(in map[string]interface{}) *Params {
	return FromObject(ObjectFrom(in))
}

// FromValue creates a Params rooted at the supplied value. The value
// must hold an Object or FromValue panics.
func FromValue(v *Value) *Params {
	return FromObject(v.AsObject())
}

// FromObject creates a Params rooted at the supplied object.
func FromObject(obj *Object) *Params {
	return &Params{
		root: ValueNew(obj),
	}
}

// Params is an immutable set of parameters rooted at an object. Params
// are indexed using locators instead of single keys, so one lookup can
// reach arbitrarily deep into the structure. Params are immutable and
// any mutation operation will return a new structurally shared copy of
// the params with the changes made. This allows for cheap copies and
// for params to be shared among threads without coordination.
//
// Operations that take a locator accept any LocatorNew input form and
// panic with a *MalformedLocatorError on malformed expressions. Get is
// the only operation for which an unresolvable locator is an error;
// everywhere else absence is a silent no-op, a false, or a default.
type Params struct {
	root *Value
}

// NotFoundError is the error produced by Get when the locator does not
// resolve.
type NotFoundError struct {
	Locator *Locator
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return "params: not found: " + e.Locator.String()
}

// Root returns the params' root Object as a Value.
func (p *Params) Root() *Value {
	return p.root
}

// At returns the Value at the locator provided, or nil if none.
func (p *Params) At(locator interface{}) *Value {
	return LocatorNew(locator).MatchAgainst(p.root)
}

// Find returns the Value at the locator or nil if none, and whether the
// value is in the params.
func (p *Params) Find(locator interface{}) (*Value, bool) {
	return LocatorNew(locator).Find(p.root)
}

// Get returns the Value at the locator. It is the strict accessor: when
// the locator does not resolve Get returns a *NotFoundError instead of
// a default. Callers that want tolerant access use GetOrElse, Contains,
// Map, or With, none of which produce errors.
func (p *Params) Get(locator interface{}) (*Value, error) {
	l := LocatorNew(locator)
	v, found := l.Find(p.root)
	if !found {
		return nil, &NotFoundError{Locator: l}
	}
	return v, nil
}

// GetOption is a constructor for the optional parts of a GetOrElse
// call.
type GetOption func(*getOpts)

type getOpts struct {
	fallbacks []interface{}
	def       *Value
}

// Fallbacks produces a GetOption holding locators to try, in order,
// when the primary locator does not resolve.
func Fallbacks(locators ...interface{}) GetOption {
	return func(o *getOpts) {
		o.fallbacks = append(o.fallbacks, locators...)
	}
}

// Default produces a GetOption holding the value returned when neither
// the locator nor any fallback resolves. Without it GetOrElse returns
// nil for absent paths.
func Default(value interface{}) GetOption {
	return func(o *getOpts) {
		o.def = ValueNew(value)
	}
}

// GetOrElse returns the Value at the locator, trying each fallback
// locator in order when the previous one does not resolve; the first
// successful resolution wins. When nothing resolves the configured
// Default is returned, or nil if none was given. GetOrElse never
// produces an error for absent paths.
func (p *Params) GetOrElse(locator interface{}, options ...GetOption) *Value {
	var opts getOpts
	for _, option := range options {
		option(&opts)
	}
	if v, found := p.Find(locator); found {
		return v
	}
	for _, fallback := range opts.fallbacks {
		if v, found := p.Find(fallback); found {
			return v
		}
	}
	return opts.def
}

// Contains returns whether the locator points to a value in the params.
func (p *Params) Contains(locator interface{}) bool {
	_, found := LocatorNew(locator).Find(p.root)
	return found
}

// Any returns whether at least one of the locators resolves.
func (p *Params) Any(locators ...interface{}) bool {
	for _, locator := range locators {
		if p.Contains(locator) {
			return true
		}
	}
	return false
}

// All returns whether every one of the locators resolves.
func (p *Params) All(locators ...interface{}) bool {
	for _, locator := range locators {
		if !p.Contains(locator) {
			return false
		}
	}
	return true
}

// Assoc associates the value provided at the location pointed to by the
// locator. Missing intermediate objects are created and non-container
// values standing in the path are replaced, so Assoc always succeeds.
// Everything off the path is shared with the original.
func (p *Params) Assoc(locator interface{}, value interface{}) *Params {
	return p.assoc(LocatorNew(locator), ValueNew(value))
}

func (p *Params) assoc(l *Locator, v *Value) *Params {
	type valueKey struct {
		value *Value
		key   string
	}

	// Generate the operations that need to occur. This traverses the
	// locator back to front and ensures that the required nodes
	// exist for the process phase.
	queue := vector.Empty().AsTransient() // Cheap appends
	path, key := l.path(), l.terminal()
	for path != nil {
		value := path.MatchAgainst(p.root)
		if !canPlace(value, key) {
			value = ValueNew(ObjectNew())
		}
		queue.Append(valueKey{
			value: value,
			key:   key,
		})
		path, key = path.path(), path.terminal()
	}

	// Perform the operations, this builds the new root bottom up.
	// Untouched siblings are carried into the rebuilt nodes by
	// reference.
	queue.Range(func(_ int, vk valueKey) {
		v = vk.value.Perform(
			func(o *Object) *Value {
				return ValueNew(o.Assoc(vk.key, v))
			},
			func(a *Array) *Value {
				i, _ := indexKey(vk.key)
				return ValueNew(a.Assoc(i, v))
			},
		).(*Value)
	})

	return FromObject(v.AsObject())
}

// Delete removes the locator from the params. Deleting a locator that
// does not resolve is a no-op and returns the receiver; deleting a leaf
// never prunes ancestors that become empty as a result.
func (p *Params) Delete(locator interface{}) *Params {
	return p.delete(LocatorNew(locator))
}

func (p *Params) delete(l *Locator) *Params {
	_, found := l.Find(p.root)
	if !found {
		return p
	}
	path, key := l.path(), l.terminal()
	v := path.MatchAgainst(p.root).Perform(
		func(o *Object) *Value {
			return ValueNew(o.Delete(key))
		},
		func(a *Array) *Value {
			i, _ := indexKey(key)
			return ValueNew(a.Delete(i))
		},
	).(*Value)
	// We deleted the requested item, now we need to assoc the new
	// parent at the right location. Note no pruning of emptied
	// objects or arrays is done, removing a leaf never cascades.
	return p.assoc(path, v)
}

// Copy copies the value at the source locator to the destination
// locator. When the source does not resolve Copy is a no-op and returns
// the receiver. The copied subtree is shared, not duplicated.
func (p *Params) Copy(source, destination interface{}) *Params {
	src, dst := LocatorNew(source), LocatorNew(destination)
	v, found := src.Find(p.root)
	if !found {
		return p
	}
	return p.assoc(dst, v)
}

// Move moves the value at the source locator to the destination
// locator. It is literally Copy followed by Delete of the source from
// the copy's result; when source and destination overlap the outcome is
// exactly what that two step sequence produces. Moving a parent over
// its own child first places the parent's value at the child and then
// deletes the parent subtree, taking the new value with it.
func (p *Params) Move(source, destination interface{}) *Params {
	return p.Copy(source, destination).Delete(source)
}

// Map replaces the value at the locator with fn applied to it. When the
// locator does not resolve Map is a no-op and returns the receiver; fn
// is not invoked.
func (p *Params) Map(locator interface{}, fn func(*Value) *Value) *Params {
	l := LocatorNew(locator)
	v, found := l.Find(p.root)
	if !found {
		return p
	}
	return p.assoc(l, fn(v))
}

// With invokes fn with the receiver and the value at the locator and
// returns fn's result. When the locator does not resolve fn is not
// invoked and the receiver is returned; likewise when fn returns nil.
func (p *Params) With(locator interface{},
	fn func(*Params, *Value) *Params) *Params {
	v, found := LocatorNew(locator).Find(p.root)
	if !found {
		return p
	}
	if out := fn(p, v); out != nil {
		return out
	}
	return p
}

// Merge merges two params together by recursively calling Merge on the
// roots. Merge is accretive: keys present in either side survive, and
// the other side wins where both hold a leaf.
func (p *Params) Merge(new *Params) *Params {
	return FromObject(p.Root().
		Merge(new.Root()).
		AsObject())
}

// ToNative returns the params unwrapped as an ordinary nested
// map[string]interface{}. The result is deep-equal to the wrapped
// structure but never aliases the internal storage, so callers may
// mutate it freely.
func (p *Params) ToNative() map[string]interface{} {
	return p.root.ToNative().(map[string]interface{})
}

// Length returns the number of values in the params.
func (p *Params) Length() int {
	var count int
	p.Range(func(*Value) {
		count++
	})
	return count
}

// Range iterates over the params' paths depth first. Range can take a
// set of functions matched by type. If the function returns a bool this
// is treated as a loop termination variable, if false the loop will
// terminate.
//
//	func(*Locator, *Value) iterates over paths as a locator and values.
//	func(*Locator, *Value) bool
//	func(string, *Value) iterates over locator expressions and values.
//	func(string, *Value) bool
//	func(*Locator) iterates over only the paths as a locator
//	func(*Locator) bool
//	func(string) iterates over only the locator expressions
//	func(string) bool
//	func(*Value) iterates over only the values
//	func(*Value) bool
func (p *Params) Range(fn interface{}) *Params {
	l := &Locator{}
	rangeFn := genRangeFunc(fn)
	var recur func(*Locator, *Value) bool
	recur = func(l *Locator, elem *Value) bool {
		return elem.Perform(func(o *Object) bool {
			var cont bool
			cont = rangeFn(l, ValueNew(o))
			if !cont {
				return false
			}
			o.Range(func(key string, v *Value) bool {
				cont = recur(l.push(key), v)
				return cont
			})
			return cont
		}, func(a *Array) bool {
			var cont bool
			cont = rangeFn(l, ValueNew(a))
			if !cont {
				return false
			}
			a.Range(func(i int, v *Value) bool {
				cont = recur(l.pushIndex(i), v)
				return cont
			})
			return cont
		}, func(other interface{}) bool {
			// Catches scalar and null leaves, which Perform
			// will not hand to the container cases.
			return rangeFn(l, elem)
		}).(bool)
	}
	p.root.AsObject().
		Range(func(key string, v *Value) bool {
			return recur(l.push(key), v)
		})
	return p
}

func genRangeFunc(fn interface{}) func(l *Locator, v *Value) bool {
	switch f := fn.(type) {
	case func(*Locator, *Value) bool:
		return f
	case func(*Locator, *Value):
		return func(l *Locator, value *Value) bool {
			f(l, value)
			return true
		}
	case func(string, *Value) bool:
		return func(l *Locator, value *Value) bool {
			return f(l.String(), value)
		}
	case func(string, *Value):
		return func(l *Locator, value *Value) bool {
			f(l.String(), value)
			return true
		}
	case func(*Value) bool:
		return func(_ *Locator, value *Value) bool {
			return f(value)
		}
	case func(*Value):
		return func(_ *Locator, value *Value) bool {
			f(value)
			return true
		}
	case func(*Locator) bool:
		return func(l *Locator, _ *Value) bool {
			return f(l)
		}
	case func(*Locator):
		return func(l *Locator, _ *Value) bool {
			f(l)
			return true
		}
	case func(string) bool:
		return func(l *Locator, _ *Value) bool {
			return f(l.String())
		}
	case func(string):
		return func(l *Locator, _ *Value) bool {
			f(l.String())
			return true
		}
	default:
		panic("invalid range function")
	}
}

// Diff compares two params and returns the operations required to edit
// the original to produce the other one.
func (p *Params) Diff(other *Params) *EditOperation {
	return &EditOperation{
		Actions: p.Root().diff(other.Root(), &Locator{}),
	}
}

// Edit applies an EditOperation to the params. This allows for
// capturing large change sets as a piece of data that can be evaluated
// as params operations and applied later.
func (p *Params) Edit(edit *EditOperation) *Params {
	op := edit.eval()
	return op(p)
}

// Equal implements equality for params. It compares the roots for
// equality; two params are equal when their structures are deeply
// equal, independent of identity.
func (p *Params) Equal(other interface{}) bool {
	op, isParams := other.(*Params)
	if !isParams {
		return false
	}
	return equal(p.Root(), op.Root())
}

// String returns a string representation of the params.
func (p *Params) String() string {
	return p.Root().String()
}

// MarshalJSON returns the params encoded as a JSON document.
func (p *Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	err := p.root.marshalJSON(&buf)
	return buf.Bytes(), err
}

// UnmarshalJSON fills out the Params from the JSON encoded document.
// This can't be fully immutable, the caller has to ensure the params
// aren't used until unmarshal is finished.
func (p *Params) UnmarshalJSON(msg []byte) error {
	out, err := FromJSON(msg)
	if err != nil {
		return err
	}
	p.root = out.root
	return nil
}
