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

package app

import (
	"context"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/deviceregistry/client/nats"
	"github.com/mendersoftware/deviceregistry/client/workflows"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/scope"
)

var auditActions = map[model.DeviceEventType]workflows.Action{
	model.DeviceEventCreated:  workflows.ActionCreate,
	model.DeviceEventUpdated:  workflows.ActionUpdate,
	model.DeviceEventDeleted:  workflows.ActionDelete,
	model.DeviceEventEnabled:  workflows.ActionEnable,
	model.DeviceEventDisabled: workflows.ActionDisable,
}

var auditChanges = map[model.DeviceEventType]string{
	model.DeviceEventCreated:  "User registered the device",
	model.DeviceEventUpdated:  "User updated the device",
	model.DeviceEventDeleted:  "User removed the device",
	model.DeviceEventEnabled:  "User enabled the device",
	model.DeviceEventDisabled: "User disabled the device",
}

// notifier publishes device events and audit logs. Both are best effort:
// failures are logged and never fail the write that caused them.
type notifier struct {
	events        nats.Client
	workflows     workflows.Client
	haveAuditLogs bool
}

func (n notifier) notify(
	ctx context.Context,
	sc scope.Scope,
	event model.DeviceEvent,
) {
	l := log.FromContext(ctx)
	if id := identity.FromContext(ctx); id != nil {
		event.TenantID = id.Tenant
	}
	if n.events != nil {
		status := "ok"
		data, err := msgpack.Marshal(event)
		if err == nil {
			err = n.events.Publish(ctx,
				model.GetDeviceEventSubject(event.TenantID), data)
		}
		if err != nil {
			status = "error"
			l.Warnf("failed to publish %s event of device %s: %s",
				event.Type, event.DeviceID, err)
		}
		EventsPublished.WithLabelValues(string(event.Type), status).Inc()
	}
	if n.haveAuditLogs && n.workflows != nil {
		err := n.workflows.SubmitAuditLog(ctx, workflows.NewDeviceAuditLog(
			auditActions[event.Type],
			sc.UserName,
			event.DeviceID,
			auditChanges[event.Type],
			event.Timestamp,
		))
		if err != nil {
			l.Warnf("failed to submit audit log for device %s: %s",
				event.DeviceID, err)
		}
	}
}
