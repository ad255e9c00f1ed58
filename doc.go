// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

// Package params implements a convenient object model for interacting
// with arbitrary nested parameter data. The Params, Objects, and Arrays
// in this library are immutable. This means that updating the structure
// will yield a new copy with the changes made, this is made efficient by
// sharing much of the structure of the new object with the old one. The
// library is based on the central Value type that holds arbitrary
// parameter data; this may take on Object, Array, int64, uint64,
// float64, string, bool, and nil. This may be thought of as a restricted
// form of the go interface{} type. The provided Params type is a special
// form of Object that allows for complex operations based on locator
// paths such as ":user:location:address", replacing long chains of
// presence checks with single calls.
package params
