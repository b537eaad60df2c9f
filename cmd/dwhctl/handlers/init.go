package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/dwhctl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// defaultWizardResult returns the non-interactive defaults.
	defaultWizardResult = config.DefaultWizardResult

	// readCredentialsCSV reads an access key pair from a console export.
	readCredentialsCSV = config.ReadCredentialsCSV

	// writeConfig writes the config to a file.
	writeConfig = config.Save
)

// Init creates the warehouse configuration, interactively or from
// defaults, and writes it to a file.
func Init(ctx context.Context, outputPath, credentialsCSV string, yes, force bool) error {
	if fileExists(outputPath) && !force {
		return fmt.Errorf("%s already exists, pass --force to overwrite", outputPath)
	}

	var result *config.WizardResult
	var err error
	if yes {
		result, err = defaultWizardResult()
		if err != nil {
			return err
		}
	} else {
		if !isInteractiveTTY() {
			return fmt.Errorf("no terminal available for the wizard, pass --yes to accept defaults")
		}
		printWelcome()
		result, err = runWizard(ctx)
		if err != nil {
			return err
		}
	}

	cfg := result.ToConfig()

	if credentialsCSV != "" {
		creds, err := readCredentialsCSV(credentialsCSV)
		if err != nil {
			return err
		}
		cfg.AWS.AccessKeyID = creds.AccessKeyID
		cfg.AWS.SecretAccessKey = creds.SecretAccessKey
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg, result.GeneratedPassword)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("dwhctl - Analytics warehouse on AWS Redshift")
	fmt.Println("============================================")
	fmt.Println()
	fmt.Println("This wizard creates a warehouse configuration with sensible defaults.")
	fmt.Println("Just answer a few questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config, generatedPassword bool) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Warehouse Summary")
	fmt.Println("-----------------")
	fmt.Printf("  Cluster:   %s\n", cfg.Cluster.Identifier)
	fmt.Printf("  Region:    %s\n", cfg.AWS.Region)
	fmt.Printf("  Nodes:     %d x %s\n", cfg.Cluster.NodeCount, cfg.Cluster.NodeType)
	fmt.Printf("  Database:  %s (user %s, port %d)\n", cfg.Database.Name, cfg.Database.User, cfg.Database.Port)
	fmt.Printf("  IAM role:  %s\n", cfg.IAMRole.Name)
	if generatedPassword {
		fmt.Println()
		fmt.Printf("  A master password was generated and stored in %s.\n", outputPath)
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	step := 1
	if cfg.AWS.AccessKeyID == "" {
		fmt.Printf("  %d. Provide AWS credentials (environment, .env, or shared config):\n", step)
		fmt.Println("     export AWS_ACCESS_KEY_ID=<your-key>")
		fmt.Println("     export AWS_SECRET_ACCESS_KEY=<your-secret>")
		fmt.Println()
		step++
	}
	fmt.Printf("  %d. Review %s if needed\n", step, outputPath)
	fmt.Println()
	fmt.Printf("  %d. Create your warehouse:\n", step+1)
	fmt.Println("     dwhctl provision")
	fmt.Println()
}
