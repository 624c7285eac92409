// libraryctl inspects and migrates the image library directly against the
// configured storage backend, without going through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"studio/internal/infra"
	"studio/internal/library"
)

func main() {
	_ = godotenv.Load()

	var (
		backendFlag string
		pathFlag    string
		listFlag    bool
		exportFlag  string
		importFlag  string
	)
	flag.StringVar(&backendFlag, "backend", "", "storage backend (defaults to STORE_BACKEND)")
	flag.StringVar(&pathFlag, "path", "", "library path for the file/sqlite backends (defaults to LIBRARY_PATH)")
	flag.BoolVar(&listFlag, "list", false, "print a summary of the library")
	flag.StringVar(&exportFlag, "export", "", "write the library to this file as JSON")
	flag.StringVar(&importFlag, "import", "", "merge entries from an exported JSON file")
	flag.Parse()

	if !listFlag && exportFlag == "" && importFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &infra.Config{
		StoreBackend:  envOr("STORE_BACKEND", infra.BackendFile),
		LibraryPath:   envOr("LIBRARY_PATH", "data"),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}
	if backendFlag != "" {
		cfg.StoreBackend = backendFlag
	}
	if pathFlag != "" {
		cfg.LibraryPath = pathFlag
	}

	logger := infra.NewLogger(envOr("APP_ENV", "development"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	kv, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	lib, err := library.Open(ctx, kv, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open library: %v\n", err)
		os.Exit(1)
	}

	if listFlag {
		items := lib.List()
		fmt.Printf("%d saved images\n", len(items))
		for _, img := range items {
			fmt.Printf("  %s  %s  %s  %q\n", img.ID, img.MIMEType,
				time.UnixMilli(img.Timestamp).Format(time.RFC3339), truncate(img.Prompt, 60))
		}
	}

	if exportFlag != "" {
		data, err := lib.ExportAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(exportFlag, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", exportFlag, err)
			os.Exit(1)
		}
		fmt.Printf("exported %d images to %s\n", len(lib.List()), exportFlag)
	}

	if importFlag != "" {
		raw, err := os.ReadFile(importFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", importFlag, err)
			os.Exit(1)
		}
		added, err := lib.ImportMerge(ctx, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "import: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("imported %d new images from %s\n", added, importFlag)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
