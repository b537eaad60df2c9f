package provisioning

// rolePhase provisions the data-access role end to end and records the
// resulting ARN in the shared state.
type rolePhase struct{}

func (rolePhase) Name() string { return "identity" }

func (rolePhase) Provision(ctx *Context) error {
	role := NewRoleLifecycle(ctx.Cloud, ctx.Store, ctx.Observer, ctx.Timeouts, ctx.Config.IAMRole.Name)
	if err := role.Ensure(ctx); err != nil {
		return err
	}
	if err := role.WaitReady(ctx); err != nil {
		return err
	}
	if err := role.GrantReadAccess(ctx); err != nil {
		return err
	}
	if err := role.WaitGrantVisible(ctx); err != nil {
		return err
	}
	arn, err := role.RecordARN(ctx)
	if err != nil {
		return err
	}
	ctx.State.RoleARN = arn
	return nil
}

// clusterPhase creates the cluster with the recorded role ARN and waits
// until it is available.
type clusterPhase struct{}

func (clusterPhase) Name() string { return "warehouse" }

func (clusterPhase) Provision(ctx *Context) error {
	cluster := NewClusterLifecycle(ctx.Cloud, ctx.Store, ctx.Observer, ctx.Timeouts, ctx.Config)
	if err := cluster.Ensure(ctx, ctx.State.RoleARN); err != nil {
		return err
	}
	observed, err := cluster.WaitAvailable(ctx)
	if err != nil {
		return err
	}
	ctx.State.Cluster = observed
	return nil
}

// endpointPhase records the cluster endpoint in the configuration file.
type endpointPhase struct{}

func (endpointPhase) Name() string { return "endpoint" }

func (endpointPhase) Provision(ctx *Context) error {
	cluster := NewClusterLifecycle(ctx.Cloud, ctx.Store, ctx.Observer, ctx.Timeouts, ctx.Config)
	endpoint, err := cluster.RecordEndpoint(ctx)
	if err != nil {
		return err
	}
	ctx.State.Endpoint = endpoint
	return nil
}

// ingressPhase opens the database port for external access.
type ingressPhase struct{}

func (ingressPhase) Name() string { return "ingress" }

func (ingressPhase) Provision(ctx *Context) error {
	cluster := NewClusterLifecycle(ctx.Cloud, ctx.Store, ctx.Observer, ctx.Timeouts, ctx.Config)
	return cluster.OpenIngress(ctx)
}

// clusterTeardownPhase deletes the cluster and waits until it is gone.
type clusterTeardownPhase struct{}

func (clusterTeardownPhase) Name() string { return "warehouse" }

func (clusterTeardownPhase) Provision(ctx *Context) error {
	cluster := NewClusterLifecycle(ctx.Cloud, ctx.Store, ctx.Observer, ctx.Timeouts, ctx.Config)
	return cluster.Teardown(ctx)
}

// roleTeardownPhase detaches the policy and deletes the role.
type roleTeardownPhase struct{}

func (roleTeardownPhase) Name() string { return "identity" }

func (roleTeardownPhase) Provision(ctx *Context) error {
	role := NewRoleLifecycle(ctx.Cloud, ctx.Store, ctx.Observer, ctx.Timeouts, ctx.Config.IAMRole.Name)
	return role.Teardown(ctx)
}

// Provision runs the full provisioning pipeline: role, cluster,
// endpoint write-back, ingress. The first failure aborts the run.
func Provision(ctx *Context) error {
	return RunPhases(ctx, []Phase{
		rolePhase{},
		clusterPhase{},
		endpointPhase{},
		ingressPhase{},
	})
}

// Teardown deletes the cluster first, then the role. The first failure
// aborts the run so the remaining resources stay for a later retry.
func Teardown(ctx *Context) error {
	return RunPhases(ctx, []Phase{
		clusterTeardownPhase{},
		roleTeardownPhase{},
	})
}
