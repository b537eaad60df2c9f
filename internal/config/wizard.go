package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sethvargo/go-password/password"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	ClusterID   string
	Region      string
	NodeType    string
	NodeCount   int
	DBName      string
	DBUser      string
	DBPassword  string
	RoleName    string
	LogData     string
	LogJSONPath string
	SongData    string

	// GeneratedPassword is true when the master password was generated
	// because the user left the password prompt empty.
	GeneratedPassword bool
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		Region:      DefaultRegion,
		NodeType:    DefaultNodeType,
		NodeCount:   DefaultNodeCount,
		DBName:      DefaultDBName,
		DBUser:      DefaultDBUser,
		RoleName:    DefaultRoleName,
		LogData:     DefaultLogData,
		LogJSONPath: DefaultLogJSONPath,
		SongData:    DefaultSongData,
	}

	// Build the form
	form := huh.NewForm(
		// Warehouse identity
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster identifier").
				Description("A unique name for the warehouse cluster (lowercase, DNS-safe)").
				Placeholder("my-warehouse").
				Value(&result.ClusterID).
				Validate(validateIdentifier),
		),

		// Region selection
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region to provision the cluster in").
				Options(
					huh.NewOption("US West, Oregon (us-west-2)", "us-west-2"),
					huh.NewOption("US East, N. Virginia (us-east-1)", "us-east-1"),
					huh.NewOption("US East, Ohio (us-east-2)", "us-east-2"),
					huh.NewOption("EU West, Ireland (eu-west-1)", "eu-west-1"),
					huh.NewOption("EU Central, Frankfurt (eu-central-1)", "eu-central-1"),
				).
				Value(&result.Region),
		),

		// Cluster shape
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Node type").
				Description("Compute node class for the cluster").
				Options(
					huh.NewOption("dc2.large - 2 vCPU, 15GB RAM, 160GB SSD (~$0.25/hr)", "dc2.large"),
					huh.NewOption("dc2.8xlarge - 32 vCPU, 244GB RAM, 2.6TB SSD (~$4.80/hr)", "dc2.8xlarge"),
					huh.NewOption("ra3.xlplus - 4 vCPU, 32GB RAM, managed storage (~$1.09/hr)", "ra3.xlplus"),
					huh.NewOption("ra3.4xlarge - 12 vCPU, 96GB RAM, managed storage (~$3.26/hr)", "ra3.4xlarge"),
				).
				Value(&result.NodeType),

			huh.NewSelect[int]().
				Title("Number of nodes").
				Description("A count of 1 creates a single-node cluster").
				Options(
					huh.NewOption("1 node (single-node)", 1),
					huh.NewOption("2 nodes", 2),
					huh.NewOption("4 nodes", 4),
					huh.NewOption("6 nodes", 6),
					huh.NewOption("8 nodes", 8),
				).
				Value(&result.NodeCount),
		),

		// Warehouse database
		huh.NewGroup(
			huh.NewInput().
				Title("Database name").
				Description("Name of the warehouse database").
				Placeholder(DefaultDBName).
				Value(&result.DBName).
				Validate(validateDBName),

			huh.NewInput().
				Title("Master user").
				Description("Admin user for the warehouse database").
				Placeholder(DefaultDBUser).
				Value(&result.DBUser).
				Validate(validateDBName),

			huh.NewInput().
				Title("Master password").
				Description("Leave empty to generate a strong password").
				EchoMode(huh.EchoModePassword).
				Value(&result.DBPassword).
				Validate(validateMasterPassword),
		),

		// IAM role
		huh.NewGroup(
			huh.NewInput().
				Title("IAM role name").
				Description("Role the cluster assumes to read source data from S3").
				Placeholder(DefaultRoleName).
				Value(&result.RoleName).
				Validate(validateRoleName),
		),

		// Source data
		huh.NewGroup(
			huh.NewInput().
				Title("Event data").
				Description("S3 prefix holding the raw event logs").
				Value(&result.LogData).
				Validate(validateS3URI),

			huh.NewInput().
				Title("Event JSON paths").
				Description("S3 key of the JSONPaths file for event loads").
				Value(&result.LogJSONPath).
				Validate(validateS3URI),

			huh.NewInput().
				Title("Song data").
				Description("S3 prefix holding the raw song records").
				Value(&result.SongData).
				Validate(validateS3URI),
		),
	)

	// Run the form
	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	if result.DBPassword == "" {
		generated, err := generateMasterPassword()
		if err != nil {
			return nil, err
		}
		result.DBPassword = generated
		result.GeneratedPassword = true
	}

	return result, nil
}

// DefaultWizardResult returns the wizard defaults without prompting,
// with a generated master password. Used by non-interactive init.
func DefaultWizardResult() (*WizardResult, error) {
	generated, err := generateMasterPassword()
	if err != nil {
		return nil, err
	}
	return &WizardResult{
		ClusterID:         DefaultClusterID,
		Region:            DefaultRegion,
		NodeType:          DefaultNodeType,
		NodeCount:         DefaultNodeCount,
		DBName:            DefaultDBName,
		DBUser:            DefaultDBUser,
		DBPassword:        generated,
		RoleName:          DefaultRoleName,
		LogData:           DefaultLogData,
		LogJSONPath:       DefaultLogJSONPath,
		SongData:          DefaultSongData,
		GeneratedPassword: true,
	}, nil
}

// generateMasterPassword produces a password satisfying the warehouse
// charset rules: mixed case and digits, no symbols. Regenerates on the
// rare draw that misses a character class.
func generateMasterPassword() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		generated, err := password.Generate(24, 6, 0, false, true)
		if err != nil {
			return "", fmt.Errorf("generating master password: %w", err)
		}
		if validateMasterPassword(generated) == nil {
			return generated, nil
		}
	}
	return "", fmt.Errorf("failed to generate a valid master password")
}

// ToConfig converts the wizard result to a Config.
func (r *WizardResult) ToConfig() *Config {
	return &Config{
		AWS: AWS{
			Region: r.Region,
		},
		Cluster: Cluster{
			Identifier: r.ClusterID,
			NodeType:   r.NodeType,
			NodeCount:  r.NodeCount,
		},
		Database: Database{
			Name:     r.DBName,
			User:     r.DBUser,
			Password: r.DBPassword,
			Port:     DefaultDBPort,
		},
		IAMRole: IAMRole{
			Name: r.RoleName,
		},
		Sources: Sources{
			LogData:     r.LogData,
			LogJSONPath: r.LogJSONPath,
			SongData:    r.SongData,
		},
	}
}

// validateIdentifier validates the cluster identifier.
func validateIdentifier(s string) error {
	if s == "" {
		return fmt.Errorf("cluster identifier is required")
	}
	if len(s) > 63 {
		return fmt.Errorf("cluster identifier must be 63 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return fmt.Errorf("cluster identifier can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if s[0] < 'a' || s[0] > 'z' {
		return fmt.Errorf("cluster identifier must start with a letter")
	}
	if s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return fmt.Errorf("cluster identifier cannot end with a hyphen or contain doubled hyphens")
	}
	return nil
}

// validateDBName validates database and user names.
func validateDBName(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	if len(s) > 64 {
		return fmt.Errorf("must be 64 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_') {
			return fmt.Errorf("can only contain lowercase letters, numbers, and underscores")
		}
	}
	if s[0] >= '0' && s[0] <= '9' {
		return fmt.Errorf("cannot start with a number")
	}
	return nil
}

// validateMasterPassword validates the master password. Empty is
// allowed and triggers generation.
func validateMasterPassword(s string) error {
	if s == "" {
		return nil // generated after the form
	}
	if len(s) < 8 || len(s) > 64 {
		return fmt.Errorf("password must be 8-64 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
		if c < 33 || c > 126 || strings.ContainsRune(`/'"@\`, c) {
			return fmt.Errorf("password cannot contain spaces, quotes, @, /, or backslash")
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password needs an uppercase letter, a lowercase letter, and a number")
	}
	return nil
}

// validateRoleName validates the IAM role name.
func validateRoleName(s string) error {
	if s == "" {
		return fmt.Errorf("role name is required")
	}
	if len(s) > 64 {
		return fmt.Errorf("role name must be 64 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			strings.ContainsRune("+=,.@_-", c)) {
			return fmt.Errorf("role name can only contain letters, numbers, and +=,.@_-")
		}
	}
	return nil
}

// validateS3URI validates a source data location.
func validateS3URI(s string) error {
	if !strings.HasPrefix(s, "s3://") {
		return fmt.Errorf("must be an s3:// URI")
	}
	if len(s) == len("s3://") {
		return fmt.Errorf("bucket name is required after s3://")
	}
	return nil
}
