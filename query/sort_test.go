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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mendersoftware/deviceregistry/model"
)

func deviceIDs(devs []model.Device) []string {
	ids := make([]string, len(devs))
	for i := range devs {
		ids[i] = devs[i].DeviceID()
	}
	return ids
}

func TestSort(t *testing.T) {
	t.Parallel()

	lat := func(f float64) *float64 { return &f }
	newDevs := func() []model.Device {
		return []model.Device{{
			DeviceProperties: &model.DeviceProperties{
				DeviceID:        "b",
				Manufacturer:    "fabrikam",
				HubEnabledState: boolPtr(true),
				Latitude:        lat(10.5),
			},
		}, {
			DeviceProperties: &model.DeviceProperties{
				DeviceID:        "c",
				HubEnabledState: boolPtr(false),
				Latitude:        lat(-3),
			},
		}, {
			DeviceProperties: &model.DeviceProperties{
				DeviceID:     "a",
				Manufacturer: "Contoso",
				Latitude:     lat(60),
			},
		}}
	}

	testCases := []struct {
		Name   string
		Column string
		Order  model.SortOrder
		Result []string
	}{{
		Name:   "device id ascending",
		Column: "deviceId",
		Order:  model.SortAscending,
		Result: []string{"a", "b", "c"},
	}, {
		Name:   "device id descending",
		Column: "DEVICEID",
		Order:  model.SortDescending,
		Result: []string{"c", "b", "a"},
	}, {
		Name:   "string values fold case, unset first",
		Column: "Manufacturer",
		Order:  model.SortAscending,
		Result: []string{"c", "a", "b"},
	}, {
		Name:   "unset last when descending",
		Column: "Manufacturer",
		Order:  model.SortDescending,
		Result: []string{"b", "a", "c"},
	}, {
		Name:   "numbers",
		Column: "Latitude",
		Order:  model.SortAscending,
		Result: []string{"c", "b", "a"},
	}, {
		Name:   "enabled state sorts by name",
		Column: "hubEnabledState",
		Order:  model.SortAscending,
		Result: []string{"a", "c", "b"},
	}, {
		Name:   "unsupported column keeps order",
		Column: "reported.Config.TemperatureMeanValue",
		Order:  model.SortAscending,
		Result: []string{"b", "c", "a"},
	}, {
		Name:   "no column keeps order",
		Order:  model.SortDescending,
		Result: []string{"b", "c", "a"},
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			devs := newDevs()
			Sort(devs, tc.Column, tc.Order)
			assert.Equal(t, tc.Result, deviceIDs(devs))
		})
	}
}

func TestSortTwins(t *testing.T) {
	t.Parallel()

	twins := []model.Twin{
		*deviceWithTemperature("b", 70).Twin,
		*deviceWithTemperature("a", 90).Twin,
		*deviceWithTemperature("c", 50).Twin,
	}
	SortTwins(twins, "reported.Config.TemperatureMeanValue", model.SortDescending)
	assert.Equal(t, "a", twins[0].DeviceID)
	assert.Equal(t, "b", twins[1].DeviceID)
	assert.Equal(t, "c", twins[2].DeviceID)

	SortTwins(twins, "DeviceId", model.SortAscending)
	assert.Equal(t, "a", twins[0].DeviceID)
	assert.Equal(t, "b", twins[1].DeviceID)
	assert.Equal(t, "c", twins[2].DeviceID)
}

func TestPage(t *testing.T) {
	t.Parallel()

	items := make([]string, 25)
	for i := range items {
		items[i] = fmt.Sprintf("dev-%02d", i)
	}

	page := Page(items, 20, 10)
	assert.Len(t, page, 5)
	assert.Equal(t, "dev-20", page[0])

	assert.Len(t, Page(items, 0, 10), 10)
	assert.Len(t, Page(items, 5, 0), 20)
	assert.Len(t, Page(items, 5, -1), 20)
	assert.Len(t, Page(items, -3, 0), 25)

	empty := Page(items, 25, 10)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Empty(t, Page([]string(nil), 0, 0))
}
