package main

import (
	"context"
	"flag"
	"log"
	"os"

	"greenledger/internal/config"
	"greenledger/internal/db"
	"greenledger/internal/importer"
	productrepo "greenledger/internal/repository/product"
	productsvc "greenledger/internal/service/product"
)

func main() {
	var (
		filePath string
		sellerID string
	)
	flag.StringVar(&filePath, "file", "", "Path to product catalog CSV")
	flag.StringVar(&sellerID, "seller", "", "Seller id to import into")
	flag.Parse()

	if filePath == "" || sellerID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open %s: %v", filePath, err)
	}
	defer f.Close()

	products := productsvc.New(productrepo.NewPostgres(pool, logger))
	imp := importer.NewCSVImporter(f, products, sellerID)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import after %d rows: %v", count, err)
	}
	logger.Printf("imported %d products for seller %s", count, sellerID)
}
