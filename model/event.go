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
	"strings"
	"time"
)

// DeviceEventType describes what happened to a device
type DeviceEventType string

// Device event types
const (
	DeviceEventCreated  DeviceEventType = "created"
	DeviceEventUpdated  DeviceEventType = "updated"
	DeviceEventDeleted  DeviceEventType = "deleted"
	DeviceEventEnabled  DeviceEventType = "enabled"
	DeviceEventDisabled DeviceEventType = "disabled"
)

// DeviceEvent is published on the message bus after every device write
type DeviceEvent struct {
	Type      DeviceEventType `json:"type" msgpack:"type"`
	DeviceID  string          `json:"device_id" msgpack:"device_id"`
	Owner     string          `json:"owner,omitempty" msgpack:"owner,omitempty"`
	TenantID  string          `json:"tenant_id,omitempty" msgpack:"tenant_id,omitempty"`
	Timestamp time.Time       `json:"timestamp" msgpack:"timestamp"`
}

// GetDeviceEventSubject returns the subject device events of a tenant
// are published on
func GetDeviceEventSubject(tenantID string) string {
	if tenantID == "" {
		tenantID = "default"
	}
	return strings.Join([]string{
		"deviceregistry",
		tenantID,
		"devices",
	}, ".")
}
