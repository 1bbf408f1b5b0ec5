package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/bodul/xwplayer/source"
)

func main() {
	cfg, err := LoadConfig(os.Getenv("CROSSWORD_CONFIG"))
	if err != nil {
		log.Fatalf("Configuration invalide : %v", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("Configuration invalide : %v", err)
	}

	ctx := context.Background()
	catalog := source.DefaultCatalog()

	var chain source.Chain

	var db *source.SQLCatalog
	if cfg.MySQL.DSN != "" {
		db, err = source.OpenSQLCatalog(ctx, cfg.MySQL.DSN)
		if err != nil {
			log.Fatalf("Impossible d'ouvrir la base MySQL : %v", err)
		}
		defer db.Close()
		log.Println("Base de grilles MySQL connectée")
	}

	if cfg.Gemini.Enabled() {
		gemini, err := source.NewGemini(ctx, cfg.Gemini)
		if err != nil {
			log.Fatalf("Impossible d'initialiser Gemini : %v", err)
		}
		if db != nil {
			chain = append(chain, source.Recorder{Source: gemini, Sink: db})
		} else {
			chain = append(chain, gemini)
		}
		log.Printf("Client Gemini initialisé (projet: %s)", cfg.Gemini.Project)
	} else {
		log.Println("Gemini non configuré, grilles tirées du catalogue")
	}

	if db != nil {
		chain = append(chain, db)
	}
	chain = append(chain, catalog)

	srv := NewServer(NewStore(), catalog, chain, opts)

	log.Printf("Serveur démarré sur http://localhost%s (alphabet %s)", cfg.Addr, opts.Alphabet.Name)
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		log.Fatal(err)
	}
}
