package main

import (
	"github.com/assetpack/apo/cmd"
	"github.com/assetpack/apo/internal"
	"github.com/assetpack/apo/internal/config"
)

func init() {
	config.InitConfig()
	config.InitViper()
	internal.InitLogging()
}
func main() {
	cmd.Execute()
}
