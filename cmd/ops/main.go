package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/GENOxGAME/GENO/internal/config"
	"github.com/GENOxGAME/GENO/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "backup":
		err = cmdBackup(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "verify":
		err = cmdVerify(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  ops backup  [-config file] [-out archive.tar.gz]
  ops restore [-config file] -archive archive.tar.gz
  ops verify  -archive archive.tar.gz`)
}

func dataDirFromConfig(path string) (string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	return cfg.Server.DataDir, nil
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	cfgPath := fs.String("config", "geno_config.yml", "path to the YAML config file")
	out := fs.String("out", "", "archive path (default: geno-saves-<date>.tar.gz)")
	_ = fs.Parse(args)

	dataDir, err := dataDirFromConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = fmt.Sprintf("geno-saves-%s.tar.gz", time.Now().Format("20060102-150405"))
	}

	if err := ops.ArchiveSaves(dataDir, *out); err != nil {
		return err
	}

	// A backup nobody can restore is not a backup.
	rep, err := ops.VerifyArchive(context.Background(), *out)
	if err != nil {
		return fmt.Errorf("archive written but unreadable: %w", err)
	}
	fmt.Printf("wrote %s: %d players, %d leaderboard rows\n", *out, rep.Players, rep.LeaderboardRows)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	cfgPath := fs.String("config", "geno_config.yml", "path to the YAML config file")
	archive := fs.String("archive", "", "archive to restore")
	_ = fs.Parse(args)

	if *archive == "" {
		return fmt.Errorf("-archive is required")
	}
	dataDir, err := dataDirFromConfig(*cfgPath)
	if err != nil {
		return err
	}

	if err := ops.RestoreSaves(*archive, dataDir); err != nil {
		return err
	}
	fmt.Printf("restored %s into %s\n", *archive, dataDir)
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	archive := fs.String("archive", "", "archive to verify")
	_ = fs.Parse(args)

	if *archive == "" {
		return fmt.Errorf("-archive is required")
	}

	rep, err := ops.VerifyArchive(context.Background(), *archive)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d players, %d leaderboard rows", *archive, rep.Players, rep.LeaderboardRows)
	if rep.LeaderboardLeader != "" {
		fmt.Printf(", leader %s", rep.LeaderboardLeader)
	}
	fmt.Println()
	return nil
}
