// Copyright (c) 2026, Mikko Koski.
// All rights reserved.
//
// SPDX-License-Identifier: MIT

package params

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// EditAssoc is the edit action associated with the Assoc operation.
	EditAssoc EditAction = "assoc"
	// EditDelete is the edit action associated with the Delete operation.
	EditDelete EditAction = "delete"
	// EditMerge is the edit action associated with the Merge operation.
	EditMerge EditAction = "merge"
)

// EditAction is an action that can be performed by the edit engine.
type EditAction string

// UnmarshalJSON unmarshals the JSON encoded message into the
// EditAction.
func (e *EditAction) UnmarshalJSON(msg []byte) error {
	var s string
	err := json.Unmarshal(msg, &s)
	if err != nil {
		return err
	}
	switch s {
	case "assoc":
		*e = EditAssoc
	case "delete":
		*e = EditDelete
	case "merge":
		*e = EditMerge
	default:
		return errors.New("unknown edit-action " + string(msg))
	}
	return nil
}

// MarshalJSON returns the EditAction as JSON encoded data.
func (e EditAction) MarshalJSON() ([]byte, error) {
	switch e {
	case EditAssoc, EditDelete, EditMerge:
		return []byte("\"" + e.String() + "\""), nil
	default:
		return nil, fmt.Errorf("unknown edit-action %v", e)
	}
}

// String returns the EditAction as a string.
func (e EditAction) String() string {
	return string(e)
}

// EditEntry contains the action to perform as well as the locator to
// perform it at and the value if any to be used.
type EditEntry struct {
	Action EditAction `json:"action"`
	Path   *Locator   `json:"path"`
	Value  *Value     `json:"value,omitempty"`
}

func (e *EditEntry) evalAssoc() func(*Params) *Params {
	path, value := e.Path, e.Value
	return func(p *Params) *Params {
		return p.assoc(path, value)
	}
}

func (e *EditEntry) evalDelete() func(*Params) *Params {
	path := e.Path
	return func(p *Params) *Params {
		return p.delete(path)
	}
}

func (e *EditEntry) evalMerge() func(*Params) *Params {
	path, value := e.Path, e.Value
	return func(p *Params) *Params {
		val := path.MatchAgainst(p.Root())
		if val == nil {
			// Nothing to merge with, place the value outright.
			return p.assoc(path, value)
		}
		return p.assoc(path, val.Merge(value))
	}
}

func (e *EditEntry) eval() func(*Params) *Params {
	switch e.Action {
	case EditAssoc:
		return e.evalAssoc()
	case EditDelete:
		return e.evalDelete()
	case EditMerge:
		return e.evalMerge()
	default:
		panic(fmt.Errorf("unknown edit-action %v", e.Action))
	}
}

// EditOperation holds edit actions and allows them to be encoded as
// JSON data.
type EditOperation struct {
	Actions []EditEntry `json:"actions,omitempty"`
}

// String returns a string representation of the EditOperation.
func (e *EditOperation) String() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func (e *EditOperation) eval() func(*Params) *Params {
	actions := make([]func(*Params) *Params, len(e.Actions))
	for i, action := range e.Actions {
		actions[i] = action.eval()
	}
	return func(p *Params) *Params {
		for _, action := range actions {
			p = action(p)
		}
		return p
	}
}

// EditOperationNew produces a new EditOperation from the provided
// entries. This allows one to declaratively build an EditOperation.
func EditOperationNew(entries ...EditEntry) *EditOperation {
	return &EditOperation{
		Actions: entries,
	}
}

type editEntryOptions struct {
	value *Value
}

// EditEntryOption is a constructor for the optional parts of an
// EditEntry.
type EditEntryOption func(*editEntryOptions)

// EditEntryValue produces an EditEntryOption that populates the value
// field of an EditEntry.
func EditEntryValue(val interface{}) EditEntryOption {
	return func(o *editEntryOptions) {
		o.value = ValueNew(val)
	}
}

// EditEntryNew constructs a new EditEntry from the provided parameters.
// The last option wins if two write the same option.
func EditEntryNew(action EditAction, path interface{},
	options ...EditEntryOption) EditEntry {
	var opts editEntryOptions
	for _, option := range options {
		option(&opts)
	}
	return EditEntry{
		Action: action,
		Path:   LocatorNew(path),
		Value:  opts.value,
	}
}
