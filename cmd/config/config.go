// Package config bootstraps viper and builds the service from its values.
package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docwell/docwell/pkg/service"
)

var cfgFile string

// RegisterFlags attaches the global --config flag to the root command.
func RegisterFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/docwell/config.yaml)")
}

// InitConfig loads configuration from file and environment.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "docwell")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DOCWELL")

	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "docwell"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("extension", ".md")

	// Missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// InitService constructs the service from the resolved configuration.
func InitService(log *logrus.Logger) (*service.Service, error) {
	cfg := &service.Config{
		DataDir:   viper.GetString("data_dir"),
		Editor:    viper.GetString("editor"),
		Extension: viper.GetString("extension"),
	}
	return service.New(cfg, log)
}
