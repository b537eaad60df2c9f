package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Credentials is an access key pair imported from a console-exported
// CSV file.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// ReadCredentialsCSV reads an access key pair from a credentials CSV as
// exported by the AWS console. The first data row is used. A UTF-8 BOM
// on the header is tolerated; console exports carry one.
func ReadCredentialsCSV(path string) (*Credentials, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials header: %w", err)
	}

	keyIdx, secretIdx := -1, -1
	for i, col := range header {
		switch normalizeHeader(col) {
		case "access key id":
			keyIdx = i
		case "secret access key":
			secretIdx = i
		}
	}
	if keyIdx < 0 || secretIdx < 0 {
		return nil, fmt.Errorf("credentials file %s has no access key columns", path)
	}

	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials row: %w", err)
	}

	creds := &Credentials{
		AccessKeyID:     strings.TrimSpace(row[keyIdx]),
		SecretAccessKey: strings.TrimSpace(row[secretIdx]),
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, fmt.Errorf("credentials file %s has empty key fields", path)
	}

	return creds, nil
}

func normalizeHeader(col string) string {
	col = strings.TrimPrefix(col, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(col))
}
