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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// WriteRaster writes header followed by the rows of g. Values in a
// row are separated by a space and rows by a newline. There is no
// newline after the last row.
func WriteRaster(w io.Writer, header string, g *Grid) error {
	b := bufio.NewWriter(w)
	if _, err := b.WriteString(header); err != nil {
		return err
	}
	rows, cols := 1, len(g.Elements)
	if len(g.Shape) == 2 {
		rows, cols = g.Shape[0], g.Shape[1]
	}
	buf := make([]byte, 0, 32)
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			buf = appendValue(buf[:0], g.Elements[r*cols+c], g.Type)
			b.Write(buf)
		}
	}
	return b.Flush()
}

// appendValue appends the shortest text form of v that reads back as
// the same value of type t.
func appendValue(buf []byte, v float64, t Type) []byte {
	switch {
	case t == UInt64 && v >= 0:
		return strconv.AppendUint(buf, uint64(v), 10)
	case t.IsInteger():
		return strconv.AppendInt(buf, int64(v), 10)
	case t == Float:
		return strconv.AppendFloat(buf, v, 'f', -1, 32)
	default:
		return strconv.AppendFloat(buf, v, 'f', -1, 64)
	}
}

// writeRasterFile writes a raster to a new file at path.
func writeRasterFile(path, header string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("nc2gssha: creating raster: %w", err)
	}
	if err := WriteRaster(f, header, g); err != nil {
		f.Close()
		return fmt.Errorf("nc2gssha: writing raster %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("nc2gssha: writing raster %s: %w", path, err)
	}
	return nil
}

// RasterFileName returns the name of the raster file for variable at
// time t, such as "tp-20200101060000.ggd".
func RasterFileName(variable string, t time.Time, f Format) string {
	return fmt.Sprintf("%s-%s.%s", variable, t.UTC().Format("20060102150405"), f.Extension())
}
