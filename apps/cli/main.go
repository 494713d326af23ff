package main

import "github.com/abdul-hamid-achik/vercel-env-push/apps/cli/cmd"

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
