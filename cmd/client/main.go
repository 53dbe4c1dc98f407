package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GENOxGAME/GENO/internal/backend"
	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/config"
	"github.com/GENOxGAME/GENO/internal/economy"
	"github.com/GENOxGAME/GENO/internal/player"
	"github.com/GENOxGAME/GENO/internal/session"
	"github.com/GENOxGAME/GENO/internal/telemetry"
)

func main() {
	cfgPath := flag.String("config", "geno_config.yml", "path to the YAML config file")
	playerID := flag.String("player", "", "player identity to resume (defaults to the local save, then a fresh one)")
	referrer := flag.String("ref", "", "referrer identity to credit on first run")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cat, err := loadCatalog(cfg.Client.CatalogFile)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	local, err := player.NewFileRepo(cfg.Client.DataDir)
	if err != nil {
		log.Fatalf("open local save: %v", err)
	}

	st, fresh, err := resumeOrCreate(local, *playerID)
	if err != nil {
		log.Fatalf("resume player: %v", err)
	}

	sess := session.New(session.Options{
		Catalog: cat,
		State:   st,
		Remote:  session.RemoteClient{Client: backend.NewClient(cfg.Client.BackendURL)},
		Local:   local,
		Events:  telemetry.NewMemoryRepository(),
		Logger:  log.Default(),
		Name:    cfg.Client.PlayerName,
		Intervals: session.Intervals{
			Tick:        cfg.Client.TickInterval,
			Upload:      cfg.Client.UploadInterval,
			Resync:      cfg.Client.ResyncInterval,
			Leaderboard: cfg.Client.LeaderboardInterval,
			Ping:        cfg.Client.PingInterval,
			Reconnect:   cfg.Client.ReconnectDelay,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess.Bootstrap(ctx)
	sess.Start(ctx)

	snap := sess.Snapshot()
	log.Printf("player %s: stage %d, %s geno, click power %d",
		snap.ID, snap.StageIndex, economy.FormatMagnitude(float64(snap.Geno)), sess.ClickPower())
	if fresh && *referrer != "" {
		if sess.ApplyReferral(*referrer) {
			log.Printf("referral from %s credited", *referrer)
		}
	}

	<-ctx.Done()
	log.Printf("shutting down")
	sess.Close()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// resumeOrCreate prefers an explicit identity, then the most recently
// active local save, then a brand new player.
func resumeOrCreate(local *player.FileRepo, id string) (*player.State, bool, error) {
	ctx := context.Background()
	now := time.Now()

	if id != "" {
		st, ok, err := local.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return st, false, nil
		}
		return player.NewWithID(id, now), true, nil
	}

	saved, err := local.List(ctx)
	if err != nil {
		return nil, false, err
	}
	var latest *player.State
	for _, st := range saved {
		if latest == nil || st.LastActiveTime > latest.LastActiveTime {
			latest = st
		}
	}
	if latest != nil {
		return latest, false, nil
	}
	return player.New(now), true, nil
}
