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

package nc2gsshautil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logFile *os.File

// setLogging configures the standard logger from the LogLevel and
// LogFile settings. Messages go to the command's error stream and,
// if LogFile is set, to that file as well.
func setLogging(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("nc2gsshautil: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})

	if err := closeLogFile(); err != nil {
		return err
	}
	var w io.Writer = cmd.ErrOrStderr()
	if path := os.ExpandEnv(Cfg.GetString("LogFile")); path != "" {
		logFile, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("nc2gsshautil: problem creating log file: %v", err)
		}
		w = io.MultiWriter(w, logFile)
	}
	logrus.SetOutput(w)
	return nil
}

func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logrus.SetOutput(os.Stderr)
	return err
}
