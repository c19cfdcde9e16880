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

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mendersoftware/deviceregistry/app"
	"github.com/mendersoftware/deviceregistry/model"
)

// DeviceController container for the device end-points
type DeviceController struct {
	app app.App
}

// NewDeviceController returns a new DeviceController
func NewDeviceController(app app.App) *DeviceController {
	return &DeviceController{app: app}
}

// EnabledRequest is the body of PUT /devices/:deviceId/enabled
type EnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// List responds to GET /devices
func (h DeviceController) List(c *gin.Context) {
	skip, take, err := paging(c, 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	filter := model.DeviceListFilter{
		Skip:        skip,
		Take:        take,
		SortColumn:  c.Query(ParamSortColumn),
		SearchQuery: c.Query(ParamSearchQuery),
	}
	if order, ok := c.GetQuery(ParamSortOrder); ok {
		filter.SortOrder, _ = model.ParseSortOrder(order)
	}
	h.list(c, filter)
}

// Search responds to POST /devices/search
func (h DeviceController) Search(c *gin.Context) {
	var filter model.DeviceListFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	}
	if err := filter.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	h.list(c, filter)
}

func (h DeviceController) list(c *gin.Context, filter model.DeviceListFilter) {
	ctx := c.Request.Context()
	res, err := h.app.Devices().List(ctx, scopeFromContext(c), filter)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get responds to GET /devices/:deviceId
func (h DeviceController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	dev, err := h.app.Devices().Get(ctx, scopeFromContext(c), c.Param("deviceId"))
	if err != nil {
		renderError(c, err)
		return
	} else if dev == nil {
		renderError(c, app.ErrDeviceNotRegistered)
		return
	}
	c.JSON(http.StatusOK, dev)
}

// Add responds to POST /devices
func (h DeviceController) Add(c *gin.Context) {
	ctx := c.Request.Context()
	var dev model.Device
	if err := c.ShouldBindJSON(&dev); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	}
	res, err := h.app.Devices().Add(ctx, scopeFromContext(c), &dev)
	if err != nil {
		renderError(c, err)
		return
	}
	c.Header("Location", APIURLManagementDevices+"/"+res.DeviceID())
	c.JSON(http.StatusCreated, res)
}

// Update responds to PUT /devices/:deviceId
func (h DeviceController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	deviceID := c.Param("deviceId")
	var dev model.Device
	if err := c.ShouldBindJSON(&dev); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	}
	if dev.DeviceProperties == nil {
		dev.DeviceProperties = &model.DeviceProperties{}
	}
	if dev.DeviceProperties.DeviceID == "" {
		dev.DeviceProperties.DeviceID = deviceID
	} else if dev.DeviceProperties.DeviceID != deviceID {
		badRequest(c, errors.New("device id does not match the request path"))
		return
	}
	res, err := h.app.Devices().Update(ctx, scopeFromContext(c), &dev)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Remove responds to DELETE /devices/:deviceId
func (h DeviceController) Remove(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.app.Devices().Remove(ctx, scopeFromContext(c), c.Param("deviceId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetEnabled responds to PUT /devices/:deviceId/enabled
func (h DeviceController) SetEnabled(c *gin.Context) {
	ctx := c.Request.Context()
	var req EnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	} else if req.Enabled == nil {
		badRequest(c, errors.New("enabled: cannot be blank"))
		return
	}
	res, err := h.app.Devices().SetEnabled(ctx,
		scopeFromContext(c), c.Param("deviceId"), *req.Enabled)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTwin responds to GET /devices/:deviceId/twin
func (h DeviceController) GetTwin(c *gin.Context) {
	ctx := c.Request.Context()
	twin, err := h.app.Devices().GetTwin(ctx, scopeFromContext(c), c.Param("deviceId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, twin)
}

// UpdateTwin responds to PUT /devices/:deviceId/twin
func (h DeviceController) UpdateTwin(c *gin.Context) {
	ctx := c.Request.Context()
	deviceID := c.Param("deviceId")
	var twin model.Twin
	if err := c.ShouldBindJSON(&twin); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	}
	if twin.DeviceID == "" {
		twin.DeviceID = deviceID
	} else if twin.DeviceID != deviceID {
		badRequest(c, errors.New("device id does not match the request path"))
		return
	}
	dev, err := h.app.Devices().UpdateTwin(ctx, scopeFromContext(c), deviceID, &twin)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dev.Twin)
}

// ListByUser responds to GET /users/:userName/devices
func (h DeviceController) ListByUser(c *gin.Context) {
	ctx := c.Request.Context()
	ids, err := h.app.Devices().DeviceIDsByUser(ctx,
		scopeFromContext(c), c.Param("userName"))
	if err != nil {
		renderError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}
