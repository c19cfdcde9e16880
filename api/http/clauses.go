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

// ClauseController container for the suggested clause end-points
type ClauseController struct {
	app app.App
}

// NewClauseController returns a new ClauseController
func NewClauseController(app app.App) *ClauseController {
	return &ClauseController{app: app}
}

// CountResponse reports how many items a batch operation processed
type CountResponse struct {
	Count int `json:"count"`
}

// List responds to GET /clauses
func (h ClauseController) List(c *gin.Context) {
	ctx := c.Request.Context()
	skip, take, err := paging(c, 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	clauses, err := h.app.Filters().ListSuggestedClauses(ctx,
		scopeFromContext(c), skip, take)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, clauses)
}

// Save responds to POST /clauses
func (h ClauseController) Save(c *gin.Context) {
	clauses, ok := bindClauses(c)
	if !ok {
		return
	}
	n, err := h.app.Filters().SaveSuggestedClauses(c.Request.Context(),
		scopeFromContext(c), clauses)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// Delete responds to DELETE /clauses
func (h ClauseController) Delete(c *gin.Context) {
	clauses, ok := bindClauses(c)
	if !ok {
		return
	}
	n, err := h.app.Filters().DeleteSuggestedClauses(c.Request.Context(),
		scopeFromContext(c), clauses)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

func bindClauses(c *gin.Context) ([]model.Clause, bool) {
	var clauses []model.Clause
	if err := c.ShouldBindJSON(&clauses); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return nil, false
	}
	return clauses, true
}
