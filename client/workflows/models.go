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

package workflows

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type AuditWorkflow struct {
	RequestID string   `json:"request_id"`
	TenantID  string   `json:"tenant_id"`
	AuditLog  AuditLog `json:"auditlog"`
}

type Action string

const (
	ActionCreate  Action = "create"
	ActionDelete  Action = "delete"
	ActionUpdate  Action = "update"
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
)

type ActorType string

const (
	ActorDevice ActorType = "device"
	ActorUser   ActorType = "user"
)

type Actor struct {
	ID    string    `json:"id"`
	Type  ActorType `json:"type"`
	Email string    `json:"email,omitempty"`
}

func (a Actor) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.Type,
			validation.In(ActorUser, ActorDevice),
			validation.Required,
		),
		validation.Field(&a.Email, is.EmailFormat),
	)
}

type ObjectType string

const (
	ObjectDevice ObjectType = "device"
	ObjectFilter ObjectType = "filter"
)

type Object struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`
}

func (o Object) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Type,
			validation.Required,
			validation.In(ObjectDevice, ObjectFilter),
		),
	)
}

type AuditLog struct {
	Action  Action    `json:"action"`
	Actor   Actor     `json:"actor"`
	Object  Object    `json:"object"`
	Change  string    `json:"change,omitempty"`
	EventTS time.Time `json:"time,omitempty"`
}

func (l AuditLog) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Actor, validation.Required),
		validation.Field(&l.Action, validation.In(
			ActionCreate, ActionUpdate, ActionDelete,
			ActionEnable, ActionDisable,
		), validation.Required),
		validation.Field(&l.Object, validation.Required),
		validation.Field(&l.EventTS, validation.Required),
	)
}

// NewDeviceAuditLog returns the audit log of a user acting on a device
func NewDeviceAuditLog(
	action Action,
	userName, deviceID, change string,
	ts time.Time,
) AuditLog {
	return AuditLog{
		Action: action,
		Actor: Actor{
			ID:   userName,
			Type: ActorUser,
		},
		Object: Object{
			ID:   deviceID,
			Type: ObjectDevice,
		},
		Change:  change,
		EventTS: ts,
	}
}
