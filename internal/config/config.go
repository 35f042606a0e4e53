package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	KeyLog       = "log"
	KeyLogLevel  = "logLevel"
	KeySourceDir = "sourceDir"
	KeyOutputDir = "outputDir"
	KeyUpload    = "upload"
	EnvPrefix    = "apo"
)

const (
	DefaultSourceDir = "./raw_assets"
	DefaultOutputDir = "./organized_products"
)

var HomeDir string
var ConfigDir string

func InitConfig() {
	var err error
	HomeDir, err = os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	ConfigDir = filepath.Join(HomeDir, ".apo")
}

func InitViper() {
	viper.SetDefault(KeyLog, false)
	viper.SetDefault(KeyLogLevel, "INFO")
	viper.SetDefault(KeySourceDir, DefaultSourceDir)
	viper.SetDefault(KeyOutputDir, DefaultOutputDir)
	viper.SetDefault(KeyUpload, map[string]any{})

	viper.SetConfigType("json")
	viper.SetConfigName("config")
	viper.AddConfigPath(ConfigDir)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; do nothing and rely on defaults
		} else {
			panic("cannot read config: " + err.Error())
		}
	}
	// set prefix "apo" for environment variables
	// the environment variables then have to match pattern "apo_<viper variable>", lower or uppercase
	viper.SetEnvPrefix(EnvPrefix)

	// bind viper variables to environment variables
	_ = viper.BindEnv(KeyLog)       // env variable name = APO_LOG
	_ = viper.BindEnv(KeyLogLevel)  // env variable name = APO_LOGLEVEL
	_ = viper.BindEnv(KeySourceDir) // env variable name = APO_SOURCEDIR
	_ = viper.BindEnv(KeyOutputDir) // env variable name = APO_OUTPUTDIR
}
