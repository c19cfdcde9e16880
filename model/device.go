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
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DeviceProperties are the typed properties of a device
type DeviceProperties struct {
	DeviceID        string     `json:"DeviceID" bson:"device_id"`
	HubEnabledState *bool      `json:"HubEnabledState,omitempty" bson:"hub_enabled_state,omitempty"`
	CreatedTime     *time.Time `json:"CreatedTime,omitempty" bson:"created_time,omitempty"`
	UpdatedTime     *time.Time `json:"UpdatedTime,omitempty" bson:"updated_time,omitempty"`
	DeviceState     string     `json:"DeviceState,omitempty" bson:"device_state,omitempty"`
	Manufacturer    string     `json:"Manufacturer,omitempty" bson:"manufacturer,omitempty"`
	ModelNumber     string     `json:"ModelNumber,omitempty" bson:"model_number,omitempty"`
	SerialNumber    string     `json:"SerialNumber,omitempty" bson:"serial_number,omitempty"`
	FirmwareVersion string     `json:"FirmwareVersion,omitempty" bson:"firmware_version,omitempty"`
	Platform        string     `json:"Platform,omitempty" bson:"platform,omitempty"`
	Processor       string     `json:"Processor,omitempty" bson:"processor,omitempty"`
	InstalledRAM    string     `json:"InstalledRAM,omitempty" bson:"installed_ram,omitempty"`
	Latitude        *float64   `json:"Latitude,omitempty" bson:"latitude,omitempty"`
	Longitude       *float64   `json:"Longitude,omitempty" bson:"longitude,omitempty"`
}

// HubEnabledStateName is the derived state used for sorting and display
func (p *DeviceProperties) HubEnabledStateName() string {
	if p == nil || p.HubEnabledState == nil {
		return ""
	}
	if *p.HubEnabledState {
		return HubEnabledStateRunning
	}
	return HubEnabledStateDisabled
}

// KeyValuePairs returns the textual value of every property which is set
func (p *DeviceProperties) KeyValuePairs() map[string]string {
	kv := map[string]string{}
	if p == nil {
		return kv
	}
	put := func(k, v string) {
		if v != "" {
			kv[k] = v
		}
	}
	put("DeviceID", p.DeviceID)
	if p.HubEnabledState != nil {
		kv["HubEnabledState"] = strconv.FormatBool(*p.HubEnabledState)
	}
	if p.CreatedTime != nil {
		kv["CreatedTime"] = p.CreatedTime.Format(time.RFC3339)
	}
	if p.UpdatedTime != nil {
		kv["UpdatedTime"] = p.UpdatedTime.Format(time.RFC3339)
	}
	put("DeviceState", p.DeviceState)
	put("Manufacturer", p.Manufacturer)
	put("ModelNumber", p.ModelNumber)
	put("SerialNumber", p.SerialNumber)
	put("FirmwareVersion", p.FirmwareVersion)
	put("Platform", p.Platform)
	put("Processor", p.Processor)
	put("InstalledRAM", p.InstalledRAM)
	if p.Latitude != nil {
		kv["Latitude"] = strconv.FormatFloat(*p.Latitude, 'f', -1, 64)
	}
	if p.Longitude != nil {
		kv["Longitude"] = strconv.FormatFloat(*p.Longitude, 'f', -1, 64)
	}
	return kv
}

// Device is the primary store record of a device
type Device struct {
	// ID and RID are storage internal identities
	ID  string `json:"id" bson:"_id"`
	RID string `json:"_rid,omitempty" bson:"_rid,omitempty"`

	DeviceProperties *DeviceProperties `json:"DeviceProperties,omitempty" bson:"device_properties,omitempty"`
	Twin             *Twin             `json:"Twin,omitempty" bson:"twin,omitempty"`
}

// DeviceID returns the business key of the device, or "" when missing
func (d *Device) DeviceID() string {
	if d == nil || d.DeviceProperties == nil {
		return ""
	}
	return d.DeviceProperties.DeviceID
}

// Owner returns the owner tag of the device twin
func (d *Device) Owner() string {
	if d == nil {
		return ""
	}
	return d.Twin.Owner()
}

// EnsureTwin makes sure the device carries a twin for its device id
func (d *Device) EnsureTwin() *Twin {
	if d.Twin == nil {
		d.Twin = NewTwin(d.DeviceID())
	}
	if d.Twin.DeviceID == "" {
		d.Twin.DeviceID = d.DeviceID()
	}
	return d.Twin
}

// Validate checks the required properties of a device
func (d Device) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.DeviceProperties, validation.Required),
	)
}

// Validate checks the business key is present
func (p DeviceProperties) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DeviceID, validation.Required),
	)
}
