package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"reportvault/internal/auth"
	"reportvault/internal/blobstore"
	"reportvault/internal/config"
	"reportvault/internal/server"
	"reportvault/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the reportvault API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := blobstore.NewLocalStore(cfg.BlobRoot)
			if err != nil {
				return err
			}

			denylist, err := loadDenylist(cfg)
			if err != nil {
				return err
			}
			logger.Info("password denylist loaded", "entries", denylist.Len())

			srv := server.New(addr, st, bs, denylist.Contains, logger, server.Options{
				SessionTTL:         time.Duration(cfg.Security.SessionTTLHours) * time.Hour,
				MaxUploadBytes:     cfg.Uploads.MaxUploadBytes,
				MultipartMaxMemory: cfg.Uploads.MultipartMaxMemory,
			})
			return srv.ListenAndServe()
		},
	}
}

func loadDenylist(cfg *config.Config) (*auth.Denylist, error) {
	denylist := auth.NewDenylist()
	if cfg.Security.DenylistPath != "" {
		if err := denylist.LoadDenylistFile(cfg.Security.DenylistPath); err != nil {
			return nil, fmt.Errorf("load password denylist: %w", err)
		}
	}
	return denylist, nil
}
