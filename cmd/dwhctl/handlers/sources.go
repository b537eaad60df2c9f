package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/platform/s3"
)

// SourceBrowser interface for testing - matches s3.Client.
type SourceBrowser interface {
	ListObjects(ctx context.Context, bucketName, prefix string, max int32) ([]s3.Object, error)
	ReadJSON(ctx context.Context, bucketName, key string) (map[string]interface{}, error)
	ReadRecords(ctx context.Context, bucketName, key string, max int) ([]map[string]interface{}, error)
}

// newSourceBrowser creates the S3 browsing client (for testing injection).
var newSourceBrowser = func(ctx context.Context, cfg *config.Config) (SourceBrowser, error) {
	return s3.NewClient(ctx, cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey)
}

// SourcesList lists objects under a configured source prefix.
func SourcesList(ctx context.Context, configPath, dataset string, max int32) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	uri, err := datasetURI(cfg, dataset)
	if err != nil {
		return err
	}
	bucket, prefix, err := s3.ParseURI(uri)
	if err != nil {
		return err
	}

	browser, err := newSourceBrowser(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	objects, err := browser.ListObjects(ctx, bucket, prefix, max)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", uri, err)
	}
	if len(objects) == 0 {
		fmt.Printf("No objects under %s.\n", uri)
		return nil
	}

	fmt.Printf("%s (%d objects shown)\n", uri, len(objects))
	for _, obj := range objects {
		fmt.Printf("  %10d  %s\n", obj.Size, obj.Key)
	}
	return nil
}

// SourcesSample fetches a few objects from a source prefix and prints
// their records. Song files hold one JSON record each, event log files
// hold newline-delimited JSON.
func SourcesSample(ctx context.Context, configPath, dataset string, count int) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	uri, err := datasetURI(cfg, dataset)
	if err != nil {
		return err
	}
	bucket, prefix, err := s3.ParseURI(uri)
	if err != nil {
		return err
	}

	browser, err := newSourceBrowser(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	objects, err := browser.ListObjects(ctx, bucket, prefix, int32(count))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", uri, err)
	}
	if len(objects) == 0 {
		fmt.Printf("No objects under %s.\n", uri)
		return nil
	}

	printed := 0
	for _, obj := range objects {
		if printed >= count {
			break
		}
		if dataset == "song" {
			record, err := browser.ReadJSON(ctx, bucket, obj.Key)
			if err != nil {
				log.Printf("Warning: skipping %s: %v", obj.Key, err)
				continue
			}
			printRecord(obj.Key, record)
			printed++
			continue
		}
		records, err := browser.ReadRecords(ctx, bucket, obj.Key, count-printed)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", obj.Key, err)
			continue
		}
		for _, record := range records {
			printRecord(obj.Key, record)
			printed++
		}
	}
	if printed == 0 {
		return fmt.Errorf("no readable records under %s", uri)
	}
	return nil
}

// SourcesJSONPath fetches and prints the JSONPaths mapping file used
// for event loads.
func SourcesJSONPath(ctx context.Context, configPath string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	bucket, key, err := s3.ParseURI(cfg.Sources.LogJSONPath)
	if err != nil {
		return err
	}

	browser, err := newSourceBrowser(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	mapping, err := browser.ReadJSON(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.Sources.LogJSONPath, err)
	}
	printRecord(cfg.Sources.LogJSONPath, mapping)
	return nil
}

// datasetURI resolves the dataset flag to a configured source URI.
func datasetURI(cfg *config.Config, dataset string) (string, error) {
	switch dataset {
	case "song":
		return cfg.Sources.SongData, nil
	case "log":
		return cfg.Sources.LogData, nil
	default:
		return "", fmt.Errorf("unknown dataset %q, expected song or log", dataset)
	}
}

// printRecord pretty-prints one JSON record under its source key.
func printRecord(key string, record map[string]interface{}) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		fmt.Printf("%s: %v\n", key, record)
		return
	}
	fmt.Printf("%s\n%s\n\n", renderDimStyle.Render(key), data)
}
