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
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"

	"github.com/mendersoftware/deviceregistry/app"
)

// StatusClientClosedRequest is returned when the caller went away before
// the operation completed.
const StatusClientClosedRequest = 499

var errInternal = errors.New("internal error")

var errorStatus = []struct {
	err    error
	status int
}{
	{app.ErrCancelled, StatusClientClosedRequest},
	{app.ErrNotFound, http.StatusNotFound},
	{app.ErrDeviceNotRegistered, http.StatusNotFound},
	{app.ErrAccessDenied, http.StatusNotFound},
	{app.ErrDeviceAlreadyRegistered, http.StatusConflict},
	{app.ErrDuplicateName, http.StatusConflict},
	{app.ErrForbidden, http.StatusForbidden},
	{app.ErrOperationNotAllowed, http.StatusForbidden},
	{app.ErrRequiredPropertyMissing, http.StatusBadRequest},
	{app.ErrInvalidArgument, http.StatusBadRequest},
}

func statusOf(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	if _, ok := errors.Cause(err).(validation.Errors); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// renderError maps an App error to its HTTP status. Server side errors
// are logged and replaced with a generic message.
func renderError(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.FromContext(c.Request.Context()).Error(err)
		err = errInternal
	}
	rest.RenderError(c, status, err)
}

func badRequest(c *gin.Context, err error) {
	rest.RenderError(c, http.StatusBadRequest, err)
}
