package main

import (
	"fmt"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/datastore"
	"github.com/spf13/cobra"
)

func runHistory(cmd *cobra.Command, flags *AppFlags, args []string) error {
	cfg, zLogger, err := loadConfig(cmd, flags, func(*config.GlobalConfig) error { return nil })
	if err != nil {
		return err
	}

	store, err := datastore.NewHistoryStore(cfg.StorageConfig, zLogger)
	if err != nil {
		return common.WrapError(err, "could not open history store")
	}
	defer func() { _ = store.Close() }()

	endpoints := args
	if len(endpoints) == 0 {
		endpoints, err = store.Endpoints()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, endpoint := range endpoints {
		history, err := store.History(endpoint)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintf(out, "%s\t(no history)\n", endpoint)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", endpoint, strings.Join(history, " "))
	}
	return nil
}
