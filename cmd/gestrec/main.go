// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gestrec trains gesture word models with automatic state
// count selection and recognizes unlabeled gesture sequences.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	osuser "os/user"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/akualab/gestrec"
)

const (
	appName    = "gestrec"
	appVersion = "0.1"
)

var (
	props  *Properties
	config *gestrec.Config
)

// Properties of gestrec.
type Properties struct {
	Workspace string `toml:"workspace_dir"`
	LogDir    string `toml:"log_dir"`
}

// NoConfigValueError is returned when a parameter has no value on the
// command line or in the config file.
var NoConfigValueError = errors.New("no config value")

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	app := cli.NewApp()
	app.Name = appName
	app.Version = appVersion
	app.Usage = "Gesture recognition with hidden Markov model selection."
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config-file, c", Value: "config.yaml", Usage: "run configuration file"},
		cli.BoolTFlag{Name: "log-stderr", Usage: "logs are written to standard error instead of files"},
		cli.StringFlag{Name: "log-level", Value: "0", Usage: "enable V-leveled logging at the specified level"},
		cli.StringFlag{Name: "log-dir", Usage: "log output dir"},
	}
	app.Commands = []cli.Command{
		trainCommand,
		recognizeCommand,
	}
	defer glog.Flush()

	if e := app.Run(os.Args); e != nil {
		glog.Fatal(e)
	}
}

// initApp reads properties and the config file and wires up logging.
// Called at the start of every command action.
func initApp(c *cli.Context) {

	readProperties()
	initGlog(c)
	checkDir(props.Workspace)

	fn := c.GlobalString("config-file")
	var e error
	config, e = gestrec.ReadConfigFile(fn)
	if e != nil {
		config = nil
		glog.V(1).Infof("unable to read config file [%s]: %s", fn, e)
	}
}

// readProperties loads app properties from
// ~/.config/gestrec/properties.toml, the current dir, or the file
// named by GESTREC_PROPERTIES.
func readProperties() {

	currDir, e1 := os.Getwd()
	gestrec.Fatal(e1)
	propPath := currDir
	u, e2 := osuser.Current()
	if e2 == nil {
		propPath = filepath.Join(u.HomeDir, ".config", appName)
	}
	propPath = filepath.Join(propPath, "properties.toml")
	propEnvVar := os.Getenv("GESTREC_PROPERTIES")
	if len(propEnvVar) > 0 {
		propPath = propEnvVar
	}

	props = new(Properties)
	dat, e3 := ioutil.ReadFile(propPath)
	if e3 == nil {
		_, e4 := toml.Decode(string(dat), props)
		gestrec.Fatal(e4)
	} else {
		glog.V(2).Infof("unable to read properties file: %s", e3)
	}
}

func initGlog(c *cli.Context) {

	logDir := c.GlobalString("log-dir")
	if len(logDir) == 0 && len(props.LogDir) > 0 {
		logDir = props.LogDir
	}
	if len(logDir) > 0 {
		checkDir(logDir)
		flag.Set("log_dir", logDir)
	}
	if c.GlobalBoolT("log-stderr") {
		flag.Set("alsologtostderr", "true")
	}
	flag.Set("v", c.GlobalString("log-level"))
}

// Creates dir if it doesn't exist.
func checkDir(path string) {

	if len(path) == 0 {
		return
	}
	e := os.MkdirAll(path, 0755)
	if e != nil {
		glog.Fatal(e)
	}
}

// stringParam resolves a string parameter. Command flags overwrite
// config file params.
func stringParam(c *cli.Context, name string, param *string) error {

	v := c.String(name)
	if len(v) > 0 {
		*param = v
	}
	if len(*param) == 0 {
		return NoConfigValueError
	}
	return nil
}

func requiredStringParam(c *cli.Context, name string, param *string) {

	if e := stringParam(c, name, param); e != nil {
		gestrec.Fatal(fmt.Errorf("missing required parameter [%s]", name))
	}
}

func intParam(c *cli.Context, name string, param *int) {

	if v := c.Int(name); v > 0 {
		*param = v
	}
}
