// Package config defines the dwhctl configuration schema, the YAML
// loader, and the write-back store for provisioned resource attributes.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultFilename is the default configuration filename.
const DefaultFilename = "dwhctl.yaml"

// Defaults applied by the init wizard. Provisioning itself never fills
// in missing values; Validate rejects incomplete configs instead.
const (
	DefaultRegion    = "us-west-2"
	DefaultClusterID = "dwh-cluster"
	DefaultNodeType  = "dc2.large"
	DefaultNodeCount = 4
	DefaultDBName    = "dwh"
	DefaultDBUser    = "dwhuser"
	DefaultDBPort    = 5439
	DefaultRoleName  = "dwh-access-role"

	DefaultLogData     = "s3://udacity-dend/log-data"
	DefaultLogJSONPath = "s3://udacity-dend/log_json_path.json"
	DefaultSongData    = "s3://udacity-dend/song-data"
)

// identifierRegex matches valid cluster identifiers: lowercase
// alphanumeric and hyphens, starting with a letter.
var identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Config is the full dwhctl configuration.
type Config struct {
	// AWS holds the control-plane credentials and region.
	AWS AWS `yaml:"aws"`

	// Cluster describes the warehouse cluster to provision.
	Cluster Cluster `yaml:"cluster"`

	// Database holds the warehouse database connection settings.
	// Host is written back after the cluster endpoint is known.
	Database Database `yaml:"database"`

	// IAMRole names the role the cluster assumes for reading source
	// data. ARN is written back once the role has been provisioned.
	IAMRole IAMRole `yaml:"iam_role"`

	// Sources locates the raw event and song data to load.
	Sources Sources `yaml:"sources"`
}

// AWS holds control-plane credentials and the target region.
// When AccessKeyID and SecretAccessKey are empty, the ambient SDK
// credential chain is used instead.
type AWS struct {
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
	Region          string `yaml:"region"`
}

// Cluster describes the warehouse cluster shape.
type Cluster struct {
	// Identifier is the cluster name, unique per region.
	Identifier string `yaml:"identifier"`

	// NodeType is the compute node class, e.g. dc2.large.
	NodeType string `yaml:"node_type"`

	// NodeCount is the number of compute nodes. A count of 1 creates
	// a single-node cluster.
	NodeCount int `yaml:"node_count"`
}

// Database holds warehouse database connection settings.
type Database struct {
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Port     int    `yaml:"port"`

	// Host is the cluster endpoint address. Empty until provisioning
	// records it.
	Host string `yaml:"host,omitempty"`
}

// IAMRole names the role the cluster assumes to read source data.
type IAMRole struct {
	Name string `yaml:"name"`

	// ARN is filled in by provisioning once the role exists.
	ARN string `yaml:"arn,omitempty"`
}

// Sources locates the raw data to load into the warehouse.
type Sources struct {
	LogData     string `yaml:"log_data"`
	LogJSONPath string `yaml:"log_json_path"`
	SongData    string `yaml:"song_data"`
}

// Validate checks the configuration for completeness and well-formed
// values. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.AWS.Region == "" {
		errs = append(errs, errors.New("aws.region is required"))
	}

	switch {
	case c.Cluster.Identifier == "":
		errs = append(errs, errors.New("cluster.identifier is required"))
	case !isValidIdentifier(c.Cluster.Identifier):
		errs = append(errs, errors.New("cluster.identifier must be lowercase alphanumeric and hyphens, start with a letter, and not end with a hyphen"))
	}
	if c.Cluster.NodeType == "" {
		errs = append(errs, errors.New("cluster.node_type is required"))
	}
	if c.Cluster.NodeCount < 1 {
		errs = append(errs, errors.New("cluster.node_count must be at least 1"))
	}

	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}
	if c.Database.Password == "" {
		errs = append(errs, errors.New("database.password is required"))
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port must be 1-65535, got %d", c.Database.Port))
	}

	if c.IAMRole.Name == "" {
		errs = append(errs, errors.New("iam_role.name is required"))
	}

	for _, src := range []struct{ field, uri string }{
		{"sources.log_data", c.Sources.LogData},
		{"sources.log_json_path", c.Sources.LogJSONPath},
		{"sources.song_data", c.Sources.SongData},
	} {
		if src.uri != "" && !strings.HasPrefix(src.uri, "s3://") {
			errs = append(errs, fmt.Errorf("%s must be an s3:// URI", src.field))
		}
	}

	return errors.Join(errs...)
}

// isValidIdentifier checks cluster identifier constraints: 1-63 chars,
// lowercase alphanumeric and hyphens, starts with a letter, no trailing
// or doubled hyphens.
func isValidIdentifier(id string) bool {
	if len(id) > 63 {
		return false
	}
	if strings.HasSuffix(id, "-") || strings.Contains(id, "--") {
		return false
	}
	return identifierRegex.MatchString(id)
}
