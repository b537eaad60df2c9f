package config

import "fmt"

// Store persists attributes of provisioned resources so that later
// invocations and the warehouse connection can find them.
type Store interface {
	// SaveRoleARN records the ARN of the provisioned warehouse role.
	SaveRoleARN(arn string) error

	// SaveClusterHost records the cluster endpoint address.
	SaveClusterHost(host string) error
}

// FileStore writes resource attributes back into the configuration
// file they were loaded from. Each save is a full read-modify-write of
// the file; concurrent writers are not supported.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the config file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// SaveRoleARN records the role ARN under iam_role.arn.
func (s *FileStore) SaveRoleARN(arn string) error {
	return s.update(func(cfg *Config) {
		cfg.IAMRole.ARN = arn
	})
}

// SaveClusterHost records the endpoint address under database.host.
func (s *FileStore) SaveClusterHost(host string) error {
	return s.update(func(cfg *Config) {
		cfg.Database.Host = host
	})
}

func (s *FileStore) update(mutate func(*Config)) error {
	cfg, err := LoadWithoutValidation(s.path)
	if err != nil {
		return fmt.Errorf("reload config for write-back: %w", err)
	}

	mutate(cfg)

	if err := Save(cfg, s.path); err != nil {
		return fmt.Errorf("write back config: %w", err)
	}

	return nil
}
