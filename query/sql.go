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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/mendersoftware/deviceregistry/model"
)

var sqlOperators = map[model.ClauseType]string{
	model.ClauseEQ: "=",
	model.ClauseNE: "!=",
	model.ClauseLT: "<",
	model.ClauseLE: "<=",
	model.ClauseGT: ">",
	model.ClauseGE: ">=",
}

// SQLCondition translates a clause set to the condition of a twin service
// query. Clauses are joined with AND; an empty set yields "".
func SQLCondition(clauses []model.Clause) string {
	conditions := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if cond := sqlClause(c.Normalize()); cond != "" {
			conditions = append(conditions, cond)
		}
	}
	return strings.Join(conditions, " AND ")
}

// AndConditions joins the non-empty conditions with AND, grouping each
// one in parentheses when there is more than one.
func AndConditions(conditions ...string) string {
	nonEmpty := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		if cond != "" {
			nonEmpty = append(nonEmpty, cond)
		}
	}
	if len(nonEmpty) == 1 {
		return nonEmpty[0]
	}
	for i := range nonEmpty {
		nonEmpty[i] = "(" + nonEmpty[i] + ")"
	}
	return strings.Join(nonEmpty, " AND ")
}

// CountQuery returns the query counting the devices matching clauses,
// selecting the count as alias.
func CountQuery(clauses []model.Clause, alias string) string {
	q := "SELECT COUNT() AS " + alias + " FROM devices"
	if cond := SQLCondition(clauses); cond != "" {
		q += " WHERE " + cond
	}
	return q
}

func sqlClause(c model.Clause) string {
	column := sqlColumn(c.ColumnName)
	if column == "" {
		return ""
	}
	switch c.ClauseType {
	case model.ClauseIN:
		values := strings.Split(c.ClauseValue, ",")
		literals := make([]string, 0, len(values))
		for _, v := range values {
			literals = append(literals, sqlLiteral(strings.TrimSpace(v), c.ClauseDataType))
		}
		return fmt.Sprintf("%s IN [%s]", column, strings.Join(literals, ", "))
	case model.ClauseCONTAINS:
		return fmt.Sprintf("CONTAINS(%s, %s)", column, quote(c.ClauseValue))
	case model.ClauseSTARTSWITH:
		return fmt.Sprintf("STARTSWITH(%s, %s)", column, quote(c.ClauseValue))
	case model.ClauseENDSWITH:
		return fmt.Sprintf("ENDSWITH(%s, %s)", column, quote(c.ClauseValue))
	}
	op, ok := sqlOperators[c.ClauseType]
	if !ok {
		op = "="
	}
	return fmt.Sprintf("%s %s %s", column, op, sqlLiteral(c.ClauseValue, c.ClauseDataType))
}

// sqlColumn maps the shorthand property paths to the twin layout.
// Anything but a dotted identifier path yields "".
func sqlColumn(column string) string {
	column = strings.TrimSpace(column)
	if !model.IsValidColumnName(column) {
		return ""
	}
	lower := strings.ToLower(column)
	switch {
	case lower == "deviceid":
		return "deviceId"
	case strings.HasPrefix(lower, "reported."):
		return "properties.reported." + column[len("reported."):]
	case strings.HasPrefix(lower, "desired."):
		return "properties.desired." + column[len("desired."):]
	}
	return column
}

func sqlLiteral(value string, dataType model.ClauseDataType) string {
	switch dataType {
	case model.DataTypeNumber:
		if f, err := cast.ToFloat64E(strings.TrimSpace(value)); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case model.DataTypeBoolean:
		if b, err := cast.ToBoolE(strings.TrimSpace(value)); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return quote(value)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
