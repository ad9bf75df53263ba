package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"flagphone_backend/internal/adapters/storage"
	"flagphone_backend/internal/countries"

	"github.com/spf13/cobra"
)

func newUploadFlagsCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "upload-flags dir",
		Short: "Upload flag images named after their asset (e.g. FR.png) to MinIO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			storageSvc, err := storage.NewMinIOService(current.cfg)
			if err != nil {
				return err
			}
			bucket := current.cfg.GetMinioBucketFlags()
			if err := storageSvc.EnsureBucketExists(ctx, bucket); err != nil {
				return err
			}

			uploaded, skipped := 0, 0
			for _, c := range current.dir.All() {
				done, err := uploadFlag(ctx, storageSvc, bucket, args[0], c, force)
				if err != nil {
					current.log.Error("flag upload failed", "code", c.Code, "error", err)
					continue
				}
				if done {
					uploaded++
				} else {
					skipped++
				}
			}

			current.log.Info("flag upload finished", "uploaded", uploaded, "skipped", skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace flags that already exist")
	return cmd
}

// uploadFlag uploads dir/<base of FlagAsset> when present. It returns false
// when there is nothing to do.
func uploadFlag(ctx context.Context, svc storage.StorageService, bucket, dir string, c countries.Country, force bool) (bool, error) {
	name := path.Base(c.FlagAsset)
	contentType, ok := storage.ContentTypeForFile(name)
	if !ok {
		return false, fmt.Errorf("unsupported flag asset %q", c.FlagAsset)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	if !force {
		exists, err := svc.ObjectExists(ctx, bucket, c.FlagAsset)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	}

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if err := svc.UploadFile(ctx, bucket, c.FlagAsset, contentType, f, info.Size()); err != nil {
		return false, err
	}
	return true, nil
}
