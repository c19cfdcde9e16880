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

package model

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SortOrder is the direction of a device list sort
type SortOrder string

// Sort orders
const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder accepts "asc", "ascending", "desc" and "descending" in
// any case; ok is false for anything else.
func ParseSortOrder(s string) (order SortOrder, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending, true
	case "desc", "descending":
		return SortDescending, true
	}
	return SortDescending, false
}

// UnmarshalJSON decodes a sort order, defaulting to descending
func (o *SortOrder) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*o = SortDescending
		return nil
	}
	*o, _ = ParseSortOrder(s)
	return nil
}

const (
	// UnnamedFilterName is the reserved name of filters which were
	// never named by the user. They are exempt from the name uniqueness
	// check and never listed.
	UnnamedFilterName = "<unnamed>"

	// DefaultFilterID is the id of the built-in "All Devices" filter
	DefaultFilterID = "00000000-0000-0000-0000-000000000000"
	// UnhealthyFilterID is the id of the built-in "Unhealthy devices" filter
	UnhealthyFilterID = "00000000-0000-0000-0000-000000000001"
	// OldFirmwareFilterID is the id of the built-in "Old firmware devices" filter
	OldFirmwareFilterID = "00000000-0000-0000-0000-000000000002"

	// AnyUserName marks records which are not owned by a user
	AnyUserName = "*"
)

// DeviceListFilter is a named, reusable set of clauses together with the
// sorting, search and paging parameters of a device list request.
type DeviceListFilter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Clauses     []Clause  `json:"clauses"`
	SortColumn  string    `json:"sortColumn,omitempty"`
	SortOrder   SortOrder `json:"sortOrder"`
	SearchQuery string    `json:"searchQuery,omitempty"`
	Skip        int       `json:"skip"`
	Take        int       `json:"take"`
	UserName    string    `json:"userName,omitempty"`
	IsTemporary bool      `json:"isTemporary"`
	Timestamp   time.Time `json:"timestamp"`
}

// Validate checks the paging parameters and clauses of the filter
func (f DeviceListFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Skip, validation.Min(0)),
		validation.Field(&f.Clauses),
		validation.Field(&f.SortOrder, validation.In(
			SortAscending, SortDescending,
		)),
	)
}

// IsUnnamed returns true for filters carrying the reserved unnamed name
func (f DeviceListFilter) IsUnnamed() bool {
	return IsUnnamedFilterName(f.Name)
}

// IsUnnamedFilterName compares name with the reserved unnamed name
func IsUnnamedFilterName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), UnnamedFilterName)
}

// Copy returns a deep copy of the filter
func (f DeviceListFilter) Copy() DeviceListFilter {
	if f.Clauses != nil {
		clauses := make([]Clause, len(f.Clauses))
		copy(clauses, f.Clauses)
		f.Clauses = clauses
	}
	return f
}

// DeviceListResult is a page of devices matching a filter
type DeviceListResult struct {
	Results            []Device `json:"results"`
	TotalDeviceCount   int      `json:"totalDeviceCount"`
	TotalFilteredCount int      `json:"totalFilteredCount"`
}

var builtInFilters = []DeviceListFilter{
	{
		ID:      DefaultFilterID,
		Name:    "All Devices",
		Clauses: []Clause{},
	},
	{
		ID:   UnhealthyFilterID,
		Name: "Unhealthy devices",
		Clauses: []Clause{{
			ColumnName:     "reported.Config.TemperatureMeanValue",
			ClauseType:     ClauseGT,
			ClauseValue:    "60",
			ClauseDataType: DataTypeNumber,
		}},
	},
	{
		ID:   OldFirmwareFilterID,
		Name: "Old firmware devices",
		Clauses: []Clause{{
			ColumnName:     "reported.System.FirmwareVersion",
			ClauseType:     ClauseLT,
			ClauseValue:    "2.0",
			ClauseDataType: DataTypeString,
		}},
	},
}

// BuiltInFilters returns copies of the filters every installation has
func BuiltInFilters() []DeviceListFilter {
	filters := make([]DeviceListFilter, len(builtInFilters))
	for i, f := range builtInFilters {
		f = f.Copy()
		f.UserName = AnyUserName
		f.SortOrder = SortDescending
		filters[i] = f
	}
	return filters
}

// IsBuiltInFilterID returns true for the ids of the built-in filters
func IsBuiltInFilterID(id string) bool {
	for _, f := range builtInFilters {
		if f.ID == id {
			return true
		}
	}
	return false
}
