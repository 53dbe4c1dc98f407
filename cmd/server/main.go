package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/GENOxGAME/GENO/internal/config"
	"github.com/GENOxGAME/GENO/internal/serverapp"
)

func main() {
	cfgPath := flag.String("config", "geno_config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on %s", cfg.Server.Listen)
	log.Fatal(http.ListenAndServe(cfg.Server.Listen, handler))
}
