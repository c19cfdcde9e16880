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

package query

import (
	"sort"
	"strings"
	"time"

	"github.com/mendersoftware/deviceregistry/model"
)

type propertyAccessor func(p *model.DeviceProperties) interface{}

func stringProperty(get func(p *model.DeviceProperties) string) propertyAccessor {
	return func(p *model.DeviceProperties) interface{} {
		if v := get(p); v != "" {
			return v
		}
		return nil
	}
}

func timeProperty(get func(p *model.DeviceProperties) *time.Time) propertyAccessor {
	return func(p *model.DeviceProperties) interface{} {
		if v := get(p); v != nil {
			return *v
		}
		return nil
	}
}

func floatProperty(get func(p *model.DeviceProperties) *float64) propertyAccessor {
	return func(p *model.DeviceProperties) interface{} {
		if v := get(p); v != nil {
			return *v
		}
		return nil
	}
}

// propertyAccessors resolves the typed device properties by their
// lowercase column name.
var propertyAccessors = map[string]propertyAccessor{
	"deviceid": stringProperty(func(p *model.DeviceProperties) string {
		return p.DeviceID
	}),
	"hubenabledstate": func(p *model.DeviceProperties) interface{} {
		if p.HubEnabledState == nil {
			return nil
		}
		return *p.HubEnabledState
	},
	"createdtime": timeProperty(func(p *model.DeviceProperties) *time.Time {
		return p.CreatedTime
	}),
	"updatedtime": timeProperty(func(p *model.DeviceProperties) *time.Time {
		return p.UpdatedTime
	}),
	"devicestate": stringProperty(func(p *model.DeviceProperties) string {
		return p.DeviceState
	}),
	"manufacturer": stringProperty(func(p *model.DeviceProperties) string {
		return p.Manufacturer
	}),
	"modelnumber": stringProperty(func(p *model.DeviceProperties) string {
		return p.ModelNumber
	}),
	"serialnumber": stringProperty(func(p *model.DeviceProperties) string {
		return p.SerialNumber
	}),
	"firmwareversion": stringProperty(func(p *model.DeviceProperties) string {
		return p.FirmwareVersion
	}),
	"platform": stringProperty(func(p *model.DeviceProperties) string {
		return p.Platform
	}),
	"processor": stringProperty(func(p *model.DeviceProperties) string {
		return p.Processor
	}),
	"installedram": stringProperty(func(p *model.DeviceProperties) string {
		return p.InstalledRAM
	}),
	"latitude": floatProperty(func(p *model.DeviceProperties) *float64 {
		return p.Latitude
	}),
	"longitude": floatProperty(func(p *model.DeviceProperties) *float64 {
		return p.Longitude
	}),
}

// sortKeys is the static table of sortable device columns. The enabled
// state sorts by its display name.
var sortKeys = func() map[string]propertyAccessor {
	keys := make(map[string]propertyAccessor, len(propertyAccessors))
	for name, accessor := range propertyAccessors {
		keys[name] = accessor
	}
	keys["hubenabledstate"] = stringProperty(func(p *model.DeviceProperties) string {
		return p.HubEnabledStateName()
	})
	return keys
}()

// Sort orders devs in place by column. An empty or unsupported column
// leaves the order untouched. Devices without a value sort first in
// ascending and last in descending order.
func Sort(devs []model.Device, column string, order model.SortOrder) {
	accessor, ok := sortKeys[strings.ToLower(strings.TrimSpace(column))]
	if !ok {
		return
	}
	keys := make([]interface{}, len(devs))
	for i := range devs {
		if devs[i].DeviceProperties != nil {
			keys[i] = accessor(devs[i].DeviceProperties)
		}
	}
	sortByKeys(devs, keys, order)
}

// SortTwins orders twins in place by a column resolved in the twin
// document. The device id and enabled state columns map to their twin
// counterparts.
func SortTwins(twins []model.Twin, column string, order model.SortOrder) {
	column = strings.TrimSpace(column)
	if column == "" {
		return
	}
	switch strings.ToLower(column) {
	case "deviceid":
		column = "deviceId"
	case "hubenabledstate":
		column = "tags." + model.HubEnabledStateTagName
	}
	keys := make([]interface{}, len(twins))
	for i := range twins {
		if res := twins[i].Get(column); res.Exists() {
			keys[i] = res.Value()
		}
	}
	sortByKeys(twins, keys, order)
}

type keyed[T any] struct {
	item T
	key  interface{}
}

func sortByKeys[T any](items []T, keys []interface{}, order model.SortOrder) {
	pairs := make([]keyed[T], len(items))
	for i := range items {
		pairs[i] = keyed[T]{item: items[i], key: keys[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		cmp := compareKeys(pairs[i].key, pairs[j].key)
		if order == model.SortAscending {
			return cmp < 0
		}
		return cmp > 0
	})
	for i := range pairs {
		items[i] = pairs[i].item
	}
}

func compareKeys(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return compareFloat(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return compareTime(av, bv)
		}
	}
	as, _ := textOf(a)
	bs, _ := textOf(b)
	return strings.Compare(fold(as), fold(bs))
}

// Page returns the window of items starting at skip holding at most take
// items. A non-positive take is unbounded.
func Page[T any](items []T, skip, take int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}
	return items
}
