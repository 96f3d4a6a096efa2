package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// VERSION has the current software version (set in the build process)
var VERSION string
var buildTime string
var gitVersion string

func init() {
	if len(gitVersion) > 0 {
		VERSION = VERSION + "/" + gitVersion
	}
	if len(VERSION) == 0 {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			VERSION = bi.Main.Version
		}
	}
	if len(VERSION) == 0 {
		VERSION = "dev-snapshot"
	}
}

var v string

// Version returns the version with build time and Go version appended.
func Version() string {
	if len(v) > 0 {
		return v
	}
	extra := []string{}
	if len(buildTime) > 0 {
		extra = append(extra, buildTime)
	}
	extra = append(extra, runtime.Version())
	v = fmt.Sprintf("%s (%s)", VERSION, strings.Join(extra, ", "))
	return v
}
