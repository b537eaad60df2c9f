// Package provisioning orchestrates the warehouse resource lifecycles:
// the data-access role, the cluster with its endpoint and ingress, and
// the teardown of both. Lifecycles are driven either individually (for
// pause, resume, and status) or as an ordered pipeline (for provision
// and destroy).
package provisioning

import (
	"context"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/platform/aws"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// RoleARN is recorded by the identity phase.
	RoleARN string

	// Cluster is the last observed cluster, populated once the
	// warehouse phase sees it available.
	Cluster *aws.Cluster

	// Endpoint is recorded by the endpoint phase.
	Endpoint *aws.Endpoint
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning
// phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    aws.ControlPlane
	Store    config.Store
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context with a console observer
// and environment-derived timeouts.
func NewContext(ctx context.Context, cfg *config.Config, cloud aws.ControlPlane, store config.Store) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Cloud:    cloud,
		Store:    store,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
