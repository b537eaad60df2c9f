package testing

import "github.com/imamik/dwhctl/internal/config"

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			AWS: config.AWS{
				Region: "us-west-2",
			},
			Cluster: config.Cluster{
				Identifier: "test-cluster",
				NodeType:   "dc2.large",
				NodeCount:  4,
			},
			Database: config.Database{
				Name:     "dwh",
				User:     "dwhuser",
				Password: "Passw0rd",
				Port:     5439,
			},
			IAMRole: config.IAMRole{
				Name: "test-role",
			},
		},
	}
}

// WithClusterID sets the cluster identifier.
func (b *ConfigBuilder) WithClusterID(id string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Cluster.Identifier = id
	return newBuilder
}

// WithRegion sets the AWS region.
func (b *ConfigBuilder) WithRegion(region string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.AWS.Region = region
	return newBuilder
}

// WithCredentials sets static AWS credentials.
func (b *ConfigBuilder) WithCredentials(accessKeyID, secretAccessKey string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.AWS.AccessKeyID = accessKeyID
	newBuilder.cfg.AWS.SecretAccessKey = secretAccessKey
	return newBuilder
}

// WithNodes sets the cluster node type and count.
func (b *ConfigBuilder) WithNodes(nodeType string, count int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Cluster.NodeType = nodeType
	newBuilder.cfg.Cluster.NodeCount = count
	return newBuilder
}

// WithDatabase sets the database name, user, and password.
func (b *ConfigBuilder) WithDatabase(name, user, password string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Database.Name = name
	newBuilder.cfg.Database.User = user
	newBuilder.cfg.Database.Password = password
	return newBuilder
}

// WithPort sets the database port.
func (b *ConfigBuilder) WithPort(port int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Database.Port = port
	return newBuilder
}

// WithHost sets the recorded cluster endpoint host.
func (b *ConfigBuilder) WithHost(host string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Database.Host = host
	return newBuilder
}

// WithRole sets the IAM role name.
func (b *ConfigBuilder) WithRole(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.IAMRole.Name = name
	return newBuilder
}

// WithRoleARN sets the recorded IAM role ARN.
func (b *ConfigBuilder) WithRoleARN(arn string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.IAMRole.ARN = arn
	return newBuilder
}

// WithSources sets the source dataset locations.
func (b *ConfigBuilder) WithSources(logData, logJSONPath, songData string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Sources = config.Sources{
		LogData:     logData,
		LogJSONPath: logJSONPath,
		SongData:    songData,
	}
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg // copy
	return &cfg
}

// clone creates a copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: b.cfg}
}

// MinimalConfig returns a minimal valid config for simple tests.
func MinimalConfig() *config.Config {
	return NewConfigBuilder().Build()
}

// FullConfig returns a complete config with sources and recorded state
// for integration tests.
func FullConfig() *config.Config {
	return NewConfigBuilder().
		WithCredentials("AKIAEXAMPLE", "secret").
		WithRoleARN("arn:aws:iam::123456789012:role/test-role").
		WithHost("test-cluster.abc123.us-west-2.redshift.amazonaws.com").
		WithSources("s3://udacity-dend/log_data", "s3://udacity-dend/log_json_path.json", "s3://udacity-dend/song_data").
		Build()
}
