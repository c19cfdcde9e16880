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
	"strings"

	"github.com/mendersoftware/deviceregistry/model"
)

// Search returns the devices with at least one property value containing
// q, compared case-insensitively. An empty query returns devs unchanged.
func Search(devs []model.Device, q string) []model.Device {
	q = strings.TrimSpace(q)
	if q == "" {
		return devs
	}
	q = fold(q)
	out := make([]model.Device, 0, len(devs))
	for _, dev := range devs {
		for _, v := range dev.DeviceProperties.KeyValuePairs() {
			if strings.Contains(fold(v), q) {
				out = append(out, dev)
				break
			}
		}
	}
	return out
}

// SearchTwins returns the twins whose device id, tags or reported
// properties contain q, compared case-insensitively.
func SearchTwins(twins []model.Twin, q string) []model.Twin {
	q = strings.TrimSpace(q)
	if q == "" {
		return twins
	}
	q = fold(q)
	out := make([]model.Twin, 0, len(twins))
	for _, twin := range twins {
		if strings.Contains(fold(twin.DeviceID), q) ||
			containsValue(twin.Tags, q) ||
			containsValue(twin.Properties.Reported, q) {
			out = append(out, twin)
		}
	}
	return out
}

// containsValue walks the leaves of a twin document
func containsValue(v interface{}, q string) bool {
	switch val := v.(type) {
	case nil:
		return false
	case map[string]interface{}:
		for _, child := range val {
			if containsValue(child, q) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, child := range val {
			if containsValue(child, q) {
				return true
			}
		}
		return false
	}
	text, ok := textOf(v)
	return ok && strings.Contains(fold(text), q)
}
