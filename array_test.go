// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"testing"
)

func TestArrayAt(t *testing.T) {
	arr := ArrayWith("a", "b", "c")
	if !equal(arr.At(1), ValueNew("b")) {
		t.Fatalf("expected \"b\", got %s", arr.At(1))
	}
	if arr.At(3) != nil || arr.At(-1) != nil {
		t.Fatal("out of bounds access should return nil")
	}
}

func TestArrayFind(t *testing.T) {
	arr := ArrayWith("a")
	v, ok := arr.Find(0)
	if !ok || !equal(v, ValueNew("a")) {
		t.Fatalf("expected \"a\", got %s", v)
	}
	if _, ok := arr.Find(1); ok {
		t.Fatal("found an index that doesn't exist")
	}
}

func TestArrayAssoc(t *testing.T) {
	arr := ArrayWith("a", "b")
	new := arr.Assoc(1, "B")
	if !equal(new.At(1), ValueNew("B")) {
		t.Fatalf("expected \"B\", got %s", new.At(1))
	}
	if !equal(arr.At(1), ValueNew("b")) {
		t.Fatalf("original array was modified: %s", arr)
	}
	t.Run("padding", func(t *testing.T) {
		padded := arr.Assoc(4, "e")
		if padded.Length() != 5 {
			t.Fatalf("expected length 5, got %d", padded.Length())
		}
		if !padded.At(3).IsNull() {
			t.Fatal("expected padding to be null")
		}
		if !equal(padded.At(4), ValueNew("e")) {
			t.Fatalf("expected \"e\", got %s", padded.At(4))
		}
	})
}

func TestArrayAppendDelete(t *testing.T) {
	arr := ArrayWith("a").Append("b")
	if arr.Length() != 2 || !equal(arr.At(1), ValueNew("b")) {
		t.Fatalf("append failed: %s", arr)
	}
	del := arr.Delete(0)
	if del.Length() != 1 || !equal(del.At(0), ValueNew("b")) {
		t.Fatalf("delete failed: %s", del)
	}
	if arr.Length() != 2 {
		t.Fatalf("original array was modified: %s", arr)
	}
}

func TestArrayRange(t *testing.T) {
	arr := ArrayWith(1, 2, 3)
	t.Run("indices and values", func(t *testing.T) {
		var sum int64
		arr.Range(func(i int, v *Value) {
			sum += v.AsInt64()
		})
		if sum != 6 {
			t.Fatalf("expected 6, got %d", sum)
		}
	})
	t.Run("early termination", func(t *testing.T) {
		var count int
		arr.Range(func(*Value) bool {
			count++
			return count < 2
		})
		if count != 2 {
			t.Fatalf("expected 2 visits, got %d", count)
		}
	})
}

func TestArrayEqual(t *testing.T) {
	if !ArrayWith(1, 2).Equal(ArrayWith(1, 2)) {
		t.Fatal("expected equal arrays")
	}
	if ArrayWith(1, 2).Equal(ArrayWith(2, 1)) {
		t.Fatal("expected unequal arrays")
	}
	if ArrayWith(1).Equal(ArrayWith(1, 2)) {
		t.Fatal("expected unequal lengths to differ")
	}
}

func TestArrayMerge(t *testing.T) {
	old := ArrayWith("a", "b", "c")
	new := ArrayWith("A", "B")
	expected := ArrayWith("A", "B", "c")
	got := ValueNew(old).Merge(ValueNew(new))
	if !equal(got, ValueNew(expected)) {
		t.Fatalf("expected %s, got %s", expected, got)
	}
	t.Run("new longer than old", func(t *testing.T) {
		got := ValueNew(ArrayWith("a")).
			Merge(ValueNew(ArrayWith("A", "B")))
		if !equal(got, ValueNew(ArrayWith("A", "B"))) {
			t.Fatalf("expected [\"A\",\"B\"], got %s", got)
		}
	})
}

func TestArrayTransform(t *testing.T) {
	arr := ArrayWith(1, 2)
	new := arr.Transform(func(t *TArray) {
		t.Append(3)
		t.Assoc(0, 10)
	})
	if !equal(new, ArrayWith(10, 2, 3)) {
		t.Fatalf("unexpected result %s", new)
	}
	if !equal(arr, ArrayWith(1, 2)) {
		t.Fatalf("original array was modified: %s", arr)
	}
}
