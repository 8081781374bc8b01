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

// Command nc2gssha converts gridded NetCDF datasets into zip archives of
// GRASS or ARC ASCII rasters for use as GSSHA hydrometeorological input.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/nc2gssha/nc2gsshautil"
)

func main() {
	if err := nc2gsshautil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
