package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scienceol/osfarm/cmd/api"
	"github.com/scienceol/osfarm/internal/config"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/utils"
)

// @title        osfarm API
// @version      1.0
// @description  Farm contracts, infrastructure and their farms, fields and crops.
// @BasePath     /api
func main() {
	rootCtx := utils.SetupSignalContext()
	root := &cobra.Command{
		SilenceUsage:      true,
		Short:             "osfarm",
		Long:              "osfarm - farm contract and infrastructure service",
		PersistentPreRunE: initGlobalResource,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPostRunE: cleanGlobalResource,
	}
	root.SetContext(rootCtx)
	root.AddCommand(api.NewWeb())
	root.AddCommand(api.NewMigrate())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initGlobalResource(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	conf := config.Global()
	if err := config.Load(conf); err != nil {
		log.Fatal(err)
	}

	logger.Init(&logger.LogConfig{
		Path:       conf.Log.LogPath,
		LogLevel:   conf.Log.LogLevel,
		MaxSizeMB:  conf.Log.MaxSizeMB,
		MaxBackups: conf.Log.MaxBackups,
		MaxAgeDays: conf.Log.MaxAgeDays,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  conf.Server.Service,
			Env:      conf.Server.Env,
		},
	})

	return nil
}

func cleanGlobalResource(_ *cobra.Command, _ []string) error {
	logger.Close()
	return nil
}
