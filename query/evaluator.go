// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

// Package query evaluates device list filters in memory: clause matching,
// free-text search, sorting and paging. It also translates clause sets to
// the query language of the twin service.
package query

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"

	"github.com/mendersoftware/deviceregistry/model"
)

// record is the view of a device (or a bare twin) clauses are evaluated
// against.
type record struct {
	props *model.DeviceProperties
	twin  *model.Twin
	doc   []byte
}

func newRecord(dev *model.Device) *record {
	return &record{
		props: dev.DeviceProperties,
		twin:  dev.Twin,
	}
}

// lookup resolves column to a value. Device property names are resolved
// case-insensitively through the accessor table, everything else is a
// dotted path into the twin document.
func (r *record) lookup(column string) (interface{}, bool) {
	column = strings.TrimSpace(column)
	if column == "" {
		return nil, false
	}
	if accessor, ok := propertyAccessors[strings.ToLower(column)]; ok && r.props != nil {
		v := accessor(r.props)
		return v, v != nil
	}
	if r.doc == nil {
		r.doc = r.twin.Document()
	}
	res := gjson.GetBytes(r.doc, column)
	if !res.Exists() || res.Type == gjson.Null {
		return nil, false
	}
	return res.Value(), true
}

func (r *record) matches(c model.Clause) bool {
	v, ok := r.lookup(c.ColumnName)
	if !ok {
		return false
	}
	return compare(v, c.Normalize())
}

func (r *record) matchesAll(clauses []model.Clause) bool {
	for _, c := range clauses {
		if !r.matches(c) {
			return false
		}
	}
	return true
}

// Matches reports whether dev satisfies the clause. Unresolvable columns
// and values which cannot be coerced to the clause data type never match.
func Matches(dev *model.Device, c model.Clause) bool {
	if dev == nil {
		return false
	}
	return newRecord(dev).matches(c)
}

// Filter returns the devices matching all clauses, preserving order
func Filter(devs []model.Device, clauses []model.Clause) []model.Device {
	out := make([]model.Device, 0, len(devs))
	for i := range devs {
		if newRecord(&devs[i]).matchesAll(clauses) {
			out = append(out, devs[i])
		}
	}
	return out
}

// MatchesTwin reports whether a bare twin satisfies the clause
func MatchesTwin(twin *model.Twin, c model.Clause) bool {
	if twin == nil {
		return false
	}
	return (&record{twin: twin}).matches(c)
}

// FilterTwins returns the twins matching all clauses, preserving order
func FilterTwins(twins []model.Twin, clauses []model.Clause) []model.Twin {
	out := make([]model.Twin, 0, len(twins))
	for i := range twins {
		if (&record{twin: &twins[i]}).matchesAll(clauses) {
			out = append(out, twins[i])
		}
	}
	return out
}

func compare(value interface{}, c model.Clause) bool {
	switch c.ClauseType {
	case model.ClauseIN:
		for _, candidate := range strings.Split(c.ClauseValue, ",") {
			eq := c
			eq.ClauseType = model.ClauseEQ
			eq.ClauseValue = strings.TrimSpace(candidate)
			if compare(value, eq) {
				return true
			}
		}
		return false
	case model.ClauseCONTAINS, model.ClauseSTARTSWITH, model.ClauseENDSWITH:
		text, ok := textOf(value)
		if !ok {
			return false
		}
		return compareText(fold(text), c.ClauseType, fold(c.ClauseValue))
	}

	switch c.ClauseDataType {
	case model.DataTypeNumber:
		a, err := cast.ToFloat64E(numeric(value))
		if err != nil {
			return false
		}
		b, err := cast.ToFloat64E(strings.TrimSpace(c.ClauseValue))
		if err != nil {
			return false
		}
		return ordered(compareFloat(a, b), c.ClauseType)

	case model.DataTypeBoolean:
		a, err := cast.ToBoolE(value)
		if err != nil {
			return false
		}
		b, err := cast.ToBoolE(strings.TrimSpace(c.ClauseValue))
		if err != nil {
			return false
		}
		switch c.ClauseType {
		case model.ClauseEQ:
			return a == b
		case model.ClauseNE:
			return a != b
		}
		return false

	case model.DataTypeDateTime:
		a, err := cast.ToTimeE(value)
		if err != nil {
			return false
		}
		b, err := cast.ToTimeE(strings.TrimSpace(c.ClauseValue))
		if err != nil {
			return false
		}
		return ordered(compareTime(a, b), c.ClauseType)

	default:
		text, ok := textOf(value)
		if !ok {
			return false
		}
		return ordered(strings.Compare(fold(text), fold(c.ClauseValue)), c.ClauseType)
	}
}

func compareText(value string, op model.ClauseType, operand string) bool {
	switch op {
	case model.ClauseCONTAINS:
		return strings.Contains(value, operand)
	case model.ClauseSTARTSWITH:
		return strings.HasPrefix(value, operand)
	case model.ClauseENDSWITH:
		return strings.HasSuffix(value, operand)
	}
	return false
}

func ordered(cmp int, op model.ClauseType) bool {
	switch op {
	case model.ClauseEQ:
		return cmp == 0
	case model.ClauseNE:
		return cmp != 0
	case model.ClauseLT:
		return cmp < 0
	case model.ClauseLE:
		return cmp <= 0
	case model.ClauseGT:
		return cmp > 0
	case model.ClauseGE:
		return cmp >= 0
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// numeric trims textual numbers so that " 75 " parses
func numeric(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// textOf returns the textual form of a resolved value
func textOf(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case time.Time:
		return val.Format(time.RFC3339), true
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// fold returns the culture invariant case folded form of s. A Caser keeps
// state, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
