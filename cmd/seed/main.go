// Command seed replaces the game catalog and everyone's ratings with the
// contents of a CSV sheet, read from a file or an http(s) URL.
//
//	seed -file ratings.csv
//	seed -url https://docs.google.com/spreadsheets/d/<id>/export?format=csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"boardgame-ranking-be/internal/config"
	"boardgame-ranking-be/internal/pkg/logger"
	"boardgame-ranking-be/internal/repository/unitofwork"
	"boardgame-ranking-be/internal/service"
	"boardgame-ranking-be/pkg/database"
)

func main() {
	file := flag.String("file", "", "path to the catalog CSV")
	url := flag.String("url", "", "URL of the catalog CSV")
	flag.Parse()

	if (*file == "") == (*url == "") {
		log.Fatal("Error: pass exactly one of -file or -url")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	body, err := open(*file, *url)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer body.Close()

	rows, err := service.ParseCatalogCSV(body)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	log.Printf("Parsed %d games", len(rows))

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	catalog := service.NewCatalogService(unitofwork.NewRepositoryFactory(db), sysLogger)
	res, err := catalog.ImportCatalog(context.Background(), rows)
	if err != nil {
		log.Fatalf("Error: import failed: %v", err)
	}

	log.Printf("✅ Imported %d games and %d ratings", res.Games, res.Ratings)
}

func open(file, url string) (io.ReadCloser, error) {
	if file != "" {
		return os.Open(file)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}
