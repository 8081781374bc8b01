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

// Package nc2gsshautil holds the command-line interface and
// configuration handling for nc2gssha.
package nc2gsshautil

import (
	"context"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2gssha"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to nc2gssha.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path to the NetCDF dataset. It can be a local
              path, an http:// or https:// URL, or a blob storage URL
              (gs://, s3://, or file://). It can include environment variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), varsCmd.Flags()},
		},
		{
			name: "Variable",
			usage: `
              Variable is the name of the NetCDF variable to convert. Use the
              'vars' command to list the variables in a dataset.`,
			shorthand:  "v",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Timesteps",
			usage: `
              Timesteps is a list of indices along the time dimension to
              convert. If it is empty, every timestep is converted.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "BoundingBox",
			usage: `
              BoundingBox limits the output to a region, given in degrees as
              "north,south,east,west". Negative east and west values have 360
              added to them. If it is empty, the full extent of the dataset is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "NoData",
			usage: `
              NoData is the value written for cells that are missing in the dataset.`,
			defaultVal: nc2gssha.DefaultNoData,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the zip archive to create. It can be a
              blob storage URL and can include environment variables. If it is
              empty, the archive is named after the input file and variable
              ("{InputFile}-{Variable}.zip").`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Format",
			usage: `
              Format is the raster format: GRASS (.ggd files) or ARC (.asc files).`,
			shorthand:  "f",
			defaultVal: "GRASS",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "TimeVariable",
			usage: `
              TimeVariable is the name of the time dimension and of the
              variable holding its values.`,
			defaultVal: "time",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), varsCmd.Flags()},
		},
		{
			name: "UnitsFile",
			usage: `
              UnitsFile is an optional TOML file that overrides the "units"
              attribute values used to recognize the latitude and longitude
              variables, for example:
                lat = ["degrees_north", "degree_N"]
                lon = ["degrees_east", "degree_E"]`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), varsCmd.Flags()},
		},
		{
			name: "WorkDir",
			usage: `
              WorkDir is the directory where rasters are written before they are
              archived. If it is empty, a temporary directory beside the output
              archive is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Transform",
			usage: `
              Transform is an optional expression applied to every cell that is
              not missing, where 'value' is the cell value. For example,
              'value * 3600' converts a precipitation rate in kg m-2 s-1 to mm/hour.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to a file where log messages are written in
              addition to standard error. It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print:
              debug, info, warn, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NC2GSSHA")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(varsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("nc2gsshautil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "nc2gssha",
	Short: "Convert NetCDF datasets to GSSHA rasters.",
	Long: `nc2gssha converts a variable in a gridded NetCDF dataset into one ASCII
raster per timestep, in GRASS or ARC format, and bundles the rasters into a zip
archive for use as GSSHA hydrometeorological input.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'NC2GSSHA_var' where 'var' is the
name of the variable to be set. Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLogging(cmd)
	},
	PersistentPostRunE: func(*cobra.Command, []string) error { return closeLogFile() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of nc2gssha.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("nc2gssha v%s\n", nc2gssha.Version)
	},
	DisableAutoGenTag: true,
}

// convertCmd is a command that converts a NetCDF variable to a raster archive.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a NetCDF variable to a zip archive of rasters.",
	Long: `convert writes one ASCII raster for each requested timestep of
Variable in InputFile, covering BoundingBox, and archives them in OutputFile.
Raster files are named "{Variable}-{YYYYMMDDHHMMSS}.{ggd|asc}" after the UTC
time of each timestep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := ConvertOptions(Cfg)
		if err != nil {
			return err
		}
		o.Log = logrus.StandardLogger()
		out, err := Convert(context.Background(),
			os.ExpandEnv(Cfg.GetString("InputFile")),
			Cfg.GetString("Variable"),
			os.ExpandEnv(Cfg.GetString("OutputFile")),
			o)
		if err != nil {
			return err
		}
		cmd.Println(out)
		return nil
	},
	DisableAutoGenTag: true,
}

// varsCmd is a command that lists the variables in a dataset.
var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "List the variables in a NetCDF dataset.",
	Long: `vars lists the variables in InputFile with their dimensions, units, and
descriptions, marks the latitude and longitude variables, and prints the extent
of the grid and the number of timesteps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		units, err := unitsAllowlist(Cfg)
		if err != nil {
			return err
		}
		return Vars(context.Background(), cmd.OutOrStdout(),
			os.ExpandEnv(Cfg.GetString("InputFile")),
			units,
			os.ExpandEnv(Cfg.GetString("TimeVariable")),
			logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}
