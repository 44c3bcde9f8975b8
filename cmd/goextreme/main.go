// Command goextreme runs extreme-value analyses of coastal station records.
package main

import (
	"github.com/sartorproj/goextreme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.LogFatal("goextreme", err)
	}
}
