package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/backup"
	"github.com/google/subcommands"
)

// encodedLedger returns the current ledger document.
func encodedLedger(a *app) ([]byte, error) {
	var b bytes.Buffer
	if err := bussinbank.EncodeLedger(&b, a.store.Snapshot()); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type snapshotCmd struct {
	keep int
	list bool
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "archive the ledger in the local snapshot database" }
func (*snapshotCmd) Usage() string {
	return `bb snapshot [-keep <n>] [-list]

  Stores a copy of the ledger in the archive (BUSSINBANK_ARCHIVE), keyed by time.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.keep, "keep", 0, "Only keep the n most recent snapshots. 0 keeps them all.")
	f.BoolVar(&c.list, "list", false, "List the snapshots instead of taking one.")
}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.keep < 0 {
		fmt.Fprintln(os.Stderr, "Error: -keep must not be negative.")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		archive, err := backup.OpenArchive(a.cfg.ArchivePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
			return subcommands.ExitFailure
		}
		defer archive.Close()

		if c.list {
			keys, err := archive.List()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
				return subcommands.ExitFailure
			}
			for _, key := range keys {
				fmt.Fprintln(stdout, key)
			}
			return subcommands.ExitSuccess
		}

		doc, err := encodedLedger(a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		key, err := archive.Put(a.cfg.Clock()(), doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Snapshot %s\n", key)

		if c.keep > 0 {
			n, err := archive.Prune(c.keep)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error pruning snapshots: %v\n", err)
				return subcommands.ExitFailure
			}
			if n > 0 {
				fmt.Fprintf(stdout, "Pruned %d snapshots\n", n)
			}
		}
		return subcommands.ExitSuccess
	})
}

type backupCmd struct{}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "upload the ledger to Google Cloud Storage" }
func (*backupCmd) Usage() string {
	return `bb backup

  Uploads a copy of the ledger under BUSSINBANK_BACKUP_URI (gs://bucket/prefix).
  Credentials come from the Application Default Credentials.
`
}

func (*backupCmd) SetFlags(f *flag.FlagSet) {}

func (*backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		if a.cfg.BackupURI == "" {
			fmt.Fprintln(os.Stderr, "Error: BUSSINBANK_BACKUP_URI is not set.")
			return subcommands.ExitUsageError
		}
		loc, err := backup.ParseURI(a.cfg.BackupURI)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		doc, err := encodedLedger(a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		up, err := backup.NewGCSUploader(ctx, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to storage: %v\n", err)
			return subcommands.ExitFailure
		}
		defer up.Close()
		uri, err := up.Upload(ctx, a.cfg.Clock()(), doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error uploading: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Uploaded %s\n", uri)
		return subcommands.ExitSuccess
	})
}
