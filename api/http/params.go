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
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Query parameters
const (
	ParamSkip             = "skip"
	ParamTake             = "take"
	ParamMax              = "max"
	ParamForce            = "force"
	ParamExcludeTemporary = "excludeTemporary"
	ParamSortColumn       = "sortColumn"
	ParamSortOrder        = "sortOrder"
	ParamSearchQuery      = "searchQuery"
)

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("invalid value of %s: %q", name, raw)
	}
	return v, nil
}

func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return false, errors.Errorf("invalid value of %s: %q", name, raw)
	}
	return v, nil
}

// paging reads the skip and take query parameters
func paging(c *gin.Context, defaultTake int) (skip, take int, err error) {
	if skip, err = queryInt(c, ParamSkip, 0); err != nil {
		return 0, 0, err
	}
	if take, err = queryInt(c, ParamTake, defaultTake); err != nil {
		return 0, 0, err
	}
	if skip < 0 || take < 0 {
		return 0, 0, errors.New("skip and take must not be negative")
	}
	return skip, take, nil
}
