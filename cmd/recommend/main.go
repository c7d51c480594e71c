package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/timmy/cobuy/internal/engine"
	"github.com/timmy/cobuy/internal/logger"
	"github.com/timmy/cobuy/internal/source"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "warn",
		Format:      "text",
		Output:      os.Stderr,
		ServiceName: "cobuy-recommend",
	})
	logger.SetDefaultLogger(appLogger)

	dataURI := flag.String("data", "", "Dataset location: file path or http(s) URL (default: built-in dataset)")
	inputs := flag.String("input", "", "Comma separated input product IDs, e.g. 1001,1003")
	topN := flag.Int("top", engine.DefaultTopN, "Maximum number of recommendations")
	listProducts := flag.Bool("products", false, "Print the product universe and exit")
	flag.Parse()

	var opts []engine.Option
	if *dataURI != "" {
		src, err := source.FromURI(*dataURI, nil)
		if err != nil {
			appLogger.WithError(err).Fatal("Invalid dataset location")
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		text, err := src.Load(ctx)
		cancel()
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to load dataset")
		}
		opts = append(opts, engine.WithDefaultDataset(text))
	}

	eng := engine.New(opts...)
	if err := eng.Train(); err != nil {
		appLogger.WithError(err).Fatal("Failed to train model")
	}

	if *listProducts {
		products, err := eng.GetAllProducts()
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to list products")
		}
		fmt.Println(joinIDs(products))
		return
	}

	ids, err := parseIDs(*inputs)
	if err != nil {
		logger.Fatal("Invalid -input: %v", err)
	}

	suggested, err := eng.PredictN(ids, *topN)
	if err != nil {
		appLogger.WithError(err).Fatal("Prediction failed")
	}
	fmt.Println(joinIDs(suggested))
}

func parseIDs(raw string) ([]int, error) {
	var ids []int
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q", field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
