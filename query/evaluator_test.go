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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mendersoftware/deviceregistry/model"
)

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func deviceWithTemperature(id string, temperature interface{}) model.Device {
	twin := model.NewTwin(id)
	if temperature != nil {
		twin.Properties.Reported = map[string]interface{}{
			"Config": map[string]interface{}{
				"TemperatureMeanValue": temperature,
			},
		}
	}
	return model.Device{
		ID:               id,
		DeviceProperties: &model.DeviceProperties{DeviceID: id},
		Twin:             twin,
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	created := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	dev := model.Device{
		ID: "1",
		DeviceProperties: &model.DeviceProperties{
			DeviceID:        "Sensor-01",
			HubEnabledState: boolPtr(true),
			CreatedTime:     timePtr(created),
			Manufacturer:    "Contoso",
			FirmwareVersion: "1.4.2",
		},
		Twin: &model.Twin{
			DeviceID: "Sensor-01",
			Tags: map[string]interface{}{
				"location":         "Oslo",
				model.OwnerTagName: "alice@example.com",
			},
			Properties: model.TwinProperties{
				Reported: map[string]interface{}{
					"Config": map[string]interface{}{
						"TemperatureMeanValue": 75.0,
						"Threshold":            "42",
					},
					"System": map[string]interface{}{
						"Online": true,
					},
				},
				Desired: map[string]interface{}{
					"Interval": 30.0,
				},
			},
		},
	}

	testCases := []struct {
		Name   string
		Clause model.Clause
		Result bool
	}{{
		Name: "number greater than",
		Clause: model.Clause{
			ColumnName:     "reported.Config.TemperatureMeanValue",
			ClauseType:     model.ClauseGT,
			ClauseValue:    "60",
			ClauseDataType: model.DataTypeNumber,
		},
		Result: true,
	}, {
		Name: "number from string property",
		Clause: model.Clause{
			ColumnName:     "reported.Config.Threshold",
			ClauseType:     model.ClauseLE,
			ClauseValue:    "42.0",
			ClauseDataType: model.DataTypeNumber,
		},
		Result: true,
	}, {
		Name: "full twin path",
		Clause: model.Clause{
			ColumnName:     "properties.desired.Interval",
			ClauseType:     model.ClauseEQ,
			ClauseValue:    "30",
			ClauseDataType: model.DataTypeNumber,
		},
		Result: true,
	}, {
		Name: "unparseable number operand",
		Clause: model.Clause{
			ColumnName:     "reported.Config.TemperatureMeanValue",
			ClauseType:     model.ClauseGT,
			ClauseValue:    "hot",
			ClauseDataType: model.DataTypeNumber,
		},
	}, {
		Name: "string equality is case insensitive",
		Clause: model.Clause{
			ColumnName:  "tags.location",
			ClauseType:  model.ClauseEQ,
			ClauseValue: "OSLO",
		},
		Result: true,
	}, {
		Name: "string not equal",
		Clause: model.Clause{
			ColumnName:  "tags.location",
			ClauseType:  model.ClauseNE,
			ClauseValue: "Bergen",
		},
		Result: true,
	}, {
		Name: "device property resolved case insensitively",
		Clause: model.Clause{
			ColumnName:  "manufacturer",
			ClauseType:  model.ClauseEQ,
			ClauseValue: "contoso",
		},
		Result: true,
	}, {
		Name: "device id",
		Clause: model.Clause{
			ColumnName:  "DeviceID",
			ClauseType:  model.ClauseSTARTSWITH,
			ClauseValue: "sensor",
		},
		Result: true,
	}, {
		Name: "boolean property",
		Clause: model.Clause{
			ColumnName:     "HubEnabledState",
			ClauseType:     model.ClauseEQ,
			ClauseValue:    "true",
			ClauseDataType: model.DataTypeBoolean,
		},
		Result: true,
	}, {
		Name: "boolean ordering is never satisfied",
		Clause: model.Clause{
			ColumnName:     "reported.System.Online",
			ClauseType:     model.ClauseGT,
			ClauseValue:    "false",
			ClauseDataType: model.DataTypeBoolean,
		},
	}, {
		Name: "date time",
		Clause: model.Clause{
			ColumnName:     "CreatedTime",
			ClauseType:     model.ClauseLT,
			ClauseValue:    "2021-01-01T00:00:00Z",
			ClauseDataType: model.DataTypeDateTime,
		},
		Result: true,
	}, {
		Name: "in list",
		Clause: model.Clause{
			ColumnName:  "tags.location",
			ClauseType:  model.ClauseIN,
			ClauseValue: "Bergen, oslo ,Trondheim",
		},
		Result: true,
	}, {
		Name: "in list without match",
		Clause: model.Clause{
			ColumnName:  "tags.location",
			ClauseType:  model.ClauseIN,
			ClauseValue: "Bergen,Trondheim",
		},
	}, {
		Name: "contains",
		Clause: model.Clause{
			ColumnName:  "FirmwareVersion",
			ClauseType:  model.ClauseCONTAINS,
			ClauseValue: ".4.",
		},
		Result: true,
	}, {
		Name: "ends with",
		Clause: model.Clause{
			ColumnName:  "tags.__UserName__",
			ClauseType:  model.ClauseENDSWITH,
			ClauseValue: "@EXAMPLE.com",
		},
		Result: true,
	}, {
		Name: "missing path",
		Clause: model.Clause{
			ColumnName:  "reported.Config.Missing",
			ClauseType:  model.ClauseNE,
			ClauseValue: "x",
		},
	}, {
		Name: "unset device property",
		Clause: model.Clause{
			ColumnName:  "SerialNumber",
			ClauseType:  model.ClauseNE,
			ClauseValue: "x",
		},
	}, {
		Name: "empty column",
		Clause: model.Clause{
			ClauseType:  model.ClauseEQ,
			ClauseValue: "x",
		},
	}, {
		Name: "corrupt enum values degrade to string equality",
		Clause: model.Clause{
			ColumnName:     "tags.location",
			ClauseType:     model.ClauseType("BETWEEN"),
			ClauseValue:    "oslo",
			ClauseDataType: model.ClauseDataType("Geo"),
		},
		Result: true,
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Result, Matches(&dev, tc.Clause))
		})
	}
}

func TestMatchesTemperature(t *testing.T) {
	t.Parallel()

	clause := model.Clause{
		ColumnName:     "reported.Config.TemperatureMeanValue",
		ClauseType:     model.ClauseGT,
		ClauseValue:    "60",
		ClauseDataType: model.DataTypeNumber,
	}
	hot := deviceWithTemperature("hot", 75)
	cold := deviceWithTemperature("cold", 40)
	unknown := deviceWithTemperature("unknown", nil)

	assert.True(t, Matches(&hot, clause))
	assert.False(t, Matches(&cold, clause))
	assert.False(t, Matches(&unknown, clause))
	assert.False(t, Matches(nil, clause))

	res := Filter([]model.Device{cold, hot, unknown}, []model.Clause{clause})
	if assert.Len(t, res, 1) {
		assert.Equal(t, "hot", res[0].DeviceID())
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	devs := []model.Device{
		deviceWithTemperature("a", 70),
		deviceWithTemperature("b", 80),
		deviceWithTemperature("c", 90),
	}
	devs[1].Twin.SetOwner("alice")
	devs[2].Twin.SetOwner("alice")

	clauses := []model.Clause{{
		ColumnName:     "reported.Config.TemperatureMeanValue",
		ClauseType:     model.ClauseGE,
		ClauseValue:    "80",
		ClauseDataType: model.DataTypeNumber,
	}, {
		ColumnName:  model.OwnerTagColumn,
		ClauseType:  model.ClauseEQ,
		ClauseValue: "alice",
	}}

	res := Filter(devs, clauses)
	if assert.Len(t, res, 2) {
		assert.Equal(t, "b", res[0].DeviceID())
		assert.Equal(t, "c", res[1].DeviceID())
	}
	assert.Len(t, Filter(devs, nil), 3)
	assert.Empty(t, Filter(nil, clauses))
}

func TestFilterTwins(t *testing.T) {
	t.Parallel()

	twins := []model.Twin{
		*deviceWithTemperature("a", 50).Twin,
		*deviceWithTemperature("b", 65).Twin,
	}
	clause := model.Clause{
		ColumnName:     "reported.Config.TemperatureMeanValue",
		ClauseType:     model.ClauseGT,
		ClauseValue:    "60",
		ClauseDataType: model.DataTypeNumber,
	}
	assert.False(t, MatchesTwin(&twins[0], clause))
	assert.True(t, MatchesTwin(&twins[1], clause))
	assert.False(t, MatchesTwin(nil, clause))

	res := FilterTwins(twins, []model.Clause{clause})
	if assert.Len(t, res, 1) {
		assert.Equal(t, "b", res[0].DeviceID)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	devs := []model.Device{{
		DeviceProperties: &model.DeviceProperties{
			DeviceID:     "dev-1",
			Manufacturer: "Contoso",
		},
	}, {
		DeviceProperties: &model.DeviceProperties{
			DeviceID:     "dev-2",
			Manufacturer: "Fabrikam",
		},
	}, {
		ID: "no-properties",
	}}

	res := Search(devs, "  conTOSO ")
	if assert.Len(t, res, 1) {
		assert.Equal(t, "dev-1", res[0].DeviceID())
	}
	assert.Len(t, Search(devs, "DEV-"), 2)
	assert.Len(t, Search(devs, ""), 3)
	assert.Empty(t, Search(devs, "tailspin"))
}

func TestSearchTwins(t *testing.T) {
	t.Parallel()

	twins := []model.Twin{{
		DeviceID: "dev-1",
		Tags:     map[string]interface{}{"site": "North"},
	}, {
		DeviceID: "dev-2",
		Properties: model.TwinProperties{
			Reported: map[string]interface{}{
				"System": map[string]interface{}{"Model": "RPI4"},
			},
		},
	}, {
		DeviceID: "dev-3",
		Properties: model.TwinProperties{
			Desired: map[string]interface{}{"Model": "rpi4"},
		},
	}}

	res := SearchTwins(twins, "north")
	if assert.Len(t, res, 1) {
		assert.Equal(t, "dev-1", res[0].DeviceID)
	}
	res = SearchTwins(twins, "rpi")
	if assert.Len(t, res, 1) {
		assert.Equal(t, "dev-2", res[0].DeviceID)
	}
	assert.Len(t, SearchTwins(twins, "dev"), 3)
	assert.Len(t, SearchTwins(twins, " "), 3)
}
