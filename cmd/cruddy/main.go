package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/suparena/cruddy"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")

	configPath = flag.String("config", "cruddy.yaml", "Path to YAML configuration file")
	tableFlag  = flag.String("table", "", "Override the configured table name")
	opFlag     = flag.String("op", "", "Operation to run (create, update, get, delete, list, query)")
	itemFlag   = flag.String("item", "", "Item payload as JSON (create/update)")
	idFlag     = flag.String("id", "", "Item id (get/delete)")
	queryFlag  = flag.String("query", "", "Query expression, e.g. owner=jdoe")
	decryptBit = flag.Bool("decrypt", false, "Decrypt encrypted attributes on get")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := cruddy.GetVersionInfo()
		fmt.Printf("cruddy version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Credentials and region commonly live in a local .env during development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	cfg, err := cruddy.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.Region == "" {
		cfg.Region = os.Getenv("AWS_REGION")
	}
	if *tableFlag != "" {
		cfg.TableName = *tableFlag
	}

	ctx := context.Background()
	h, err := cruddy.Connect(ctx, cfg)
	if err != nil {
		return err
	}

	resp, err := runOp(ctx, h)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp.Flatten(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !resp.IsSuccessful() {
		os.Exit(1)
	}
	return nil
}

func runOp(ctx context.Context, h *cruddy.Handler) (*cruddy.Response, error) {
	switch *opFlag {
	case "create", "update":
		item := cruddy.Item{}
		if *itemFlag != "" {
			if err := json.Unmarshal([]byte(*itemFlag), &item); err != nil {
				return nil, fmt.Errorf("invalid -item JSON: %w", err)
			}
		}
		if *opFlag == "create" {
			return h.Create(ctx, item), nil
		}
		return h.Update(ctx, item), nil
	case "get":
		return h.Get(ctx, *idFlag, *decryptBit), nil
	case "delete":
		return h.Delete(ctx, *idFlag), nil
	case "list":
		return h.List(ctx), nil
	case "query":
		return h.Query(ctx, *queryFlag), nil
	default:
		return nil, fmt.Errorf("unknown operation %q, expected one of create, update, get, delete, list, query", *opFlag)
	}
}
