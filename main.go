package main

import (
	"fmt"
	"os"

	"github.com/nearkit/near-cleaner/account"
	"github.com/nearkit/near-cleaner/cleanup"
	"github.com/nearkit/near-cleaner/config"
	"github.com/nearkit/near-cleaner/rpc"
	"github.com/nearkit/near-cleaner/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = util.CreateUsageCommand("near-cleaner", "NEAR subaccount cleaner")

func init() {
	cobra.OnInitialize(initConfig)
	account.SetParent(rootCmd)
	rpc.SetParent(rootCmd)
	cleanup.SetParent(rootCmd)
}

func initConfig() {
	err := config.Init()
	util.OsExitIfErr(err, "Failed to load config")

	logrus.SetLevel(logrus.Level(config.Get().LogLevel))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
