package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rayulu7/chatbot/internal/catalog"
	"github.com/rayulu7/chatbot/internal/chat"
	"github.com/rayulu7/chatbot/internal/config"
	"github.com/rayulu7/chatbot/internal/db"
	"github.com/rayulu7/chatbot/internal/server"
	"github.com/rayulu7/chatbot/internal/store"
)

func main() {
	cfg := config.Load()

	cat, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	st, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer cleanup()

	svc := chat.NewService(cat, st)
	s := server.NewServer(cfg, svc)

	addr := ":" + cfg.Port
	fmt.Printf("chatbot server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Builtin(), nil
	}
	log.Printf("loading response catalog from %s", cfg.CatalogFile)
	return catalog.LoadFile(cfg.CatalogFile)
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Println("DB_URL not provided, using file-based storage")
		fs, err := store.NewFileStore(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("database connection established")
	if err := database.RunMigrations(cfg.MigrationsDir); err != nil {
		database.Close()
		return nil, nil, err
	}
	return store.NewDatabaseStore(database), func() { database.Close() }, nil
}
