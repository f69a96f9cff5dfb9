package main

import "fmt"

var buildVersion = "devel"
var buildCommit = "unknown"

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func versionString() string {
	return fmt.Sprintf("yata %s (commit %s)", buildVersion, buildCommit)
}
