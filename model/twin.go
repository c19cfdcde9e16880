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
	"bytes"
	"encoding/json"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Reserved twin tags
const (
	// OwnerTagName holds the user name of the tenant owning the device
	OwnerTagName = "__UserName__"
	// OwnerTagColumn is the clause column addressing the owner tag
	OwnerTagColumn = "tags." + OwnerTagName

	// HubEnabledStateTagName mirrors the enabled state of the device
	HubEnabledStateTagName = "HubEnabledState"
	// HubEnabledStateRunning is the tag value of enabled devices
	HubEnabledStateRunning = "Running"
	// HubEnabledStateDisabled is the tag value of disabled devices
	HubEnabledStateDisabled = "Disabled"

	// WildcardETag disables optimistic concurrency on twin updates
	WildcardETag = "*"
)

// TwinProperties holds the desired and reported twin property documents
type TwinProperties struct {
	Desired  map[string]interface{} `json:"desired,omitempty" bson:"desired,omitempty"`
	Reported map[string]interface{} `json:"reported,omitempty" bson:"reported,omitempty"`
}

// Twin mirrors the device twin kept by the twin service
type Twin struct {
	DeviceID   string                 `json:"deviceId" bson:"device_id"`
	ETag       string                 `json:"etag,omitempty" bson:"etag,omitempty"`
	Tags       map[string]interface{} `json:"tags,omitempty" bson:"tags,omitempty"`
	Properties TwinProperties         `json:"properties" bson:"properties"`
}

// NewTwin returns an empty twin for deviceID
func NewTwin(deviceID string) *Twin {
	return &Twin{
		DeviceID: deviceID,
		Tags:     map[string]interface{}{},
	}
}

// Owner returns the value of the owner tag, or "" when unset
func (t *Twin) Owner() string {
	if t == nil || t.Tags == nil {
		return ""
	}
	v, ok := t.Tags[OwnerTagName]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// SetOwner stamps the owner tag
func (t *Twin) SetOwner(userName string) {
	if t.Tags == nil {
		t.Tags = map[string]interface{}{}
	}
	t.Tags[OwnerTagName] = userName
}

// Document returns the JSON document clause paths are resolved against.
// Besides the twin layout ("tags.x", "properties.reported.x") it exposes
// the shorthand "desired.x" and "reported.x" paths.
func (t *Twin) Document() []byte {
	if t == nil {
		return []byte("{}")
	}
	doc := map[string]interface{}{
		"deviceId":   t.DeviceID,
		"tags":       t.Tags,
		"desired":    t.Properties.Desired,
		"reported":   t.Properties.Reported,
		"properties": t.Properties,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// Get resolves a dotted path in the twin document
func (t *Twin) Get(path string) gjson.Result {
	return gjson.GetBytes(t.Document(), path)
}

// UpdateRequired returns true when the tags or desired properties of t
// differ from existing.
func (t *Twin) UpdateRequired(existing *Twin) bool {
	if t == nil {
		return false
	}
	if existing == nil {
		return true
	}
	return !jsonEqual(t.Tags, existing.Tags) ||
		!jsonEqual(t.Properties.Desired, existing.Properties.Desired)
}

// jsonEqual compares two documents by their canonical JSON encoding so
// that numbers decoded as float64 compare equal to integers.
func jsonEqual(a, b map[string]interface{}) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	var na, nb interface{}
	if json.Unmarshal(ab, &na) != nil || json.Unmarshal(bb, &nb) != nil {
		return false
	}
	ab, _ = json.Marshal(na)
	bb, _ = json.Marshal(nb)
	return bytes.Equal(ab, bb)
}
