/*
Copyright © 2024 the nc2gssha authors.
This file is part of nc2gssha.

nc2gssha is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nc2gssha is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nc2gssha.  If not, see <http://www.gnu.org/licenses/>.
*/

package nc2gssha

import (
	"fmt"
	"strings"
)

// ResolutionError is returned when the latitude or longitude
// coordinate variable cannot be identified or is unusable.
type ResolutionError struct {
	// Axis is "latitude" or "longitude".
	Axis string

	// Variable is the offending coordinate variable, if one was found.
	Variable string

	// Reason describes the problem.
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("nc2gssha: cannot resolve %s: %s", e.Axis, e.Reason)
	}
	return fmt.Sprintf("nc2gssha: cannot resolve %s from variable %s: %s", e.Axis, e.Variable, e.Reason)
}

// DimensionMismatchError is returned when a variable does not have
// exactly one time, one latitude and one longitude dimension.
type DimensionMismatchError struct {
	Variable   string
	Dimensions []string
	Reason     string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("nc2gssha: variable %s with dimensions [%s]: %s",
		e.Variable, strings.Join(e.Dimensions, ", "), e.Reason)
}

// VariableError is returned when a requested variable is not in the
// dataset.
type VariableError struct {
	Variable string
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("nc2gssha: variable %s is not in the dataset", e.Variable)
}

// TimestepError is returned when a requested timestep is outside of
// the time dimension.
type TimestepError struct {
	Timestep int

	// Count is the length of the time dimension.
	Count int
}

func (e *TimestepError) Error() string {
	return fmt.Sprintf("nc2gssha: timestep %d is outside of the time dimension (length %d)", e.Timestep, e.Count)
}
