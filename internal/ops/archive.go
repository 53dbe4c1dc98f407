// Package ops provides save-data maintenance for the server: archiving the
// data directory to a compressed snapshot, restoring it, and verifying that
// an archive actually contains readable game state.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GENOxGAME/GENO/internal/leaderboard"
	"github.com/GENOxGAME/GENO/internal/player"
)

// ArchiveSaves writes a tar.gz snapshot of the data directory. The archive
// holds paths relative to dataDir, so it restores into any target.
func ArchiveSaves(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("data dir and archive path are required")
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dataDir)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == dataDir || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		return addEntry(tw, path, filepath.ToSlash(rel), d)
	})
}

func addEntry(tw *tar.Writer, path, rel string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = rel
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(tw, src)
	return err
}

// RestoreSaves unpacks an archive into a data directory, creating it if
// needed. Entries that would escape the target are rejected.
func RestoreSaves(archivePath, dataDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	if archivePath == "" || dataDir == "" {
		return fmt.Errorf("archive path and data dir are required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	in, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := extractEntry(tr, hdr, dataDir); err != nil {
			return err
		}
	}
}

func extractEntry(tr *tar.Reader, hdr *tar.Header, dataDir string) error {
	rel := filepath.Clean(strings.TrimSpace(hdr.Name))
	if rel == "" || rel == "." || rel == ".." ||
		filepath.IsAbs(rel) || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("unsafe archive entry %q", hdr.Name)
	}
	outPath := filepath.Join(dataDir, rel)

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(outPath, os.FileMode(hdr.Mode))
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return err
		}
		return dst.Close()
	default:
		// Other entry types are not produced by ArchiveSaves.
		return nil
	}
}

// Report is what a verification pass found inside an archive.
type Report struct {
	Players           int
	LeaderboardRows   int
	LeaderboardLeader string
}

// VerifyArchive restores an archive into a scratch directory and opens the
// stores inside it. A snapshot that cannot be read back is worthless; this
// is the check a backup cron should run after every archive.
func VerifyArchive(ctx context.Context, archivePath string) (Report, error) {
	scratch, err := os.MkdirTemp("", "geno-verify-*")
	if err != nil {
		return Report{}, err
	}
	defer os.RemoveAll(scratch)

	if err := RestoreSaves(archivePath, scratch); err != nil {
		return Report{}, fmt.Errorf("restore: %w", err)
	}

	var rep Report

	players, err := player.NewFileRepo(scratch)
	if err != nil {
		return Report{}, fmt.Errorf("open player store: %w", err)
	}
	all, err := players.List(ctx)
	if err != nil {
		return Report{}, err
	}
	rep.Players = len(all)

	board, err := leaderboard.NewFileRepo(scratch)
	if err != nil {
		return Report{}, fmt.Errorf("open leaderboard store: %w", err)
	}
	top, err := board.Top(ctx, 0)
	if err != nil {
		return Report{}, err
	}
	rep.LeaderboardRows = len(top)
	if len(top) > 0 {
		rep.LeaderboardLeader = top[0].PlayerID
	}

	return rep, nil
}
