// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"testing"
)

func TestObjectAssoc(t *testing.T) {
	obj := ObjectWith(PairNew("foo", "bar"))
	new := obj.Assoc("baz", "quux")
	if !new.Contains("foo") || !new.Contains("baz") {
		t.Fatalf("expected both keys in %s", new)
	}
	if obj.Contains("baz") {
		t.Fatalf("original object was modified: %s", obj)
	}
	if !equal(new.At("baz"), ValueNew("quux")) {
		t.Fatalf("expected \"quux\", got %s", new.At("baz"))
	}
}

func TestObjectDelete(t *testing.T) {
	obj := ObjectWith(
		PairNew("foo", "bar"),
		PairNew("baz", "quux"))
	new := obj.Delete("foo")
	if new.Contains("foo") {
		t.Fatalf("foo still exists in %s", new)
	}
	if !obj.Contains("foo") {
		t.Fatalf("original object was modified: %s", obj)
	}
	if same := new.Delete("idontexist"); same != new {
		t.Fatal("deleting a missing key should return the receiver")
	}
}

func TestObjectFind(t *testing.T) {
	obj := ObjectFrom(map[string]interface{}{
		"foo": "bar",
	})
	v, ok := obj.Find("foo")
	if !ok || !equal(v, ValueNew("bar")) {
		t.Fatalf("expected \"bar\", got %s", v)
	}
	_, ok = obj.Find("baz")
	if ok {
		t.Fatal("found a key that doesn't exist")
	}
	if obj.At("baz") != nil {
		t.Fatal("At should return nil for missing keys")
	}
}

func TestObjectLength(t *testing.T) {
	obj := ObjectWith(
		PairNew("foo", "bar"),
		PairNew("baz", "quux"))
	if obj.Length() != 2 {
		t.Fatalf("expected 2, got %d", obj.Length())
	}
}

func TestObjectRange(t *testing.T) {
	obj := ObjectWith(
		PairNew("a", 1),
		PairNew("b", 2),
		PairNew("c", 3))
	t.Run("pairs", func(t *testing.T) {
		var count int
		obj.Range(func(p Pair) {
			count++
		})
		if count != 3 {
			t.Fatalf("expected 3 pairs, got %d", count)
		}
	})
	t.Run("keys and values", func(t *testing.T) {
		seen := map[string]int64{}
		obj.Range(func(k string, v *Value) {
			seen[k] = v.AsInt64()
		})
		if len(seen) != 3 || seen["a"] != 1 || seen["c"] != 3 {
			t.Fatalf("unexpected contents %v", seen)
		}
	})
	t.Run("early termination", func(t *testing.T) {
		var count int
		obj.Range(func(*Value) bool {
			count++
			return false
		})
		if count != 1 {
			t.Fatalf("expected 1 visit, got %d", count)
		}
	})
	t.Run("invalid function", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("didn't get expected panic")
			}
		}()
		obj.Range(func(int) {})
	})
}

func TestObjectEqual(t *testing.T) {
	one := ObjectFrom(map[string]interface{}{
		"a": map[string]interface{}{"b": 1},
	})
	two := ObjectFrom(map[string]interface{}{
		"a": map[string]interface{}{"b": 1},
	})
	three := two.Assoc("c", 3)
	if !one.Equal(two) {
		t.Fatal("expected equal objects")
	}
	if one.Equal(three) {
		t.Fatal("expected unequal objects")
	}
	if one.Equal("not an object") {
		t.Fatal("an object should not equal a string")
	}
}

func TestObjectMerge(t *testing.T) {
	old := ObjectFrom(map[string]interface{}{
		"kept":     "old",
		"replaced": "old",
		"nested": map[string]interface{}{
			"kept":     1,
			"replaced": 1,
		},
	})
	new := ObjectFrom(map[string]interface{}{
		"replaced": "new",
		"added":    "new",
		"nested": map[string]interface{}{
			"replaced": 2,
			"added":    2,
		},
	})
	expected := ObjectFrom(map[string]interface{}{
		"kept":     "old",
		"replaced": "new",
		"added":    "new",
		"nested": map[string]interface{}{
			"kept":     1,
			"replaced": 2,
			"added":    2,
		},
	})
	got := ValueNew(old).Merge(ValueNew(new))
	if !equal(got, ValueNew(expected)) {
		t.Fatalf("expected %s, got %s", expected, got)
	}
}
