package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/platform/aws"
	"github.com/imamik/dwhctl/internal/util/retry"
)

// ReadAccessPolicyARN is the managed policy attached to the warehouse
// role so COPY can read source buckets.
const ReadAccessPolicyARN = "arn:aws:iam::aws:policy/AmazonS3ReadOnlyAccess"

// roleTrustPolicy lets the warehouse service assume the role.
const roleTrustPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"Service":"redshift.amazonaws.com"},"Action":"sts:AssumeRole"}]}`

const roleDescription = "Allows the warehouse cluster to read source data"

// RoleLifecycle manages the data-access role: creation, policy
// attachment, ARN write-back, and teardown.
type RoleLifecycle struct {
	cloud    aws.RoleManager
	store    config.Store
	observer Observer
	timeouts *config.Timeouts
	name     string
}

// NewRoleLifecycle creates a role lifecycle for the configured role.
func NewRoleLifecycle(cloud aws.RoleManager, store config.Store, observer Observer, timeouts *config.Timeouts, name string) *RoleLifecycle {
	return &RoleLifecycle{
		cloud:    cloud,
		store:    store,
		observer: observer,
		timeouts: timeouts,
		name:     name,
	}
}

// Ensure creates the role if it does not exist. An existing role with
// the same name is adopted as-is.
func (l *RoleLifecycle) Ensure(ctx context.Context) error {
	LogResourceCreating(l.observer, "identity", l.name)
	_, err := l.cloud.CreateRole(ctx, l.name, roleTrustPolicy, roleDescription)
	if err != nil {
		if aws.IsAlreadyExists(err) {
			LogResourceExists(l.observer, "identity", l.name)
			return nil
		}
		return fmt.Errorf("create role %s: %w", l.name, err)
	}
	LogResourceCreated(l.observer, "identity", l.name)
	return nil
}

// WaitReady polls until the role is visible via lookup. Freshly created
// roles can take a moment to propagate.
func (l *RoleLifecycle) WaitReady(ctx context.Context) error {
	start := time.Now()
	return retry.Poll(ctx, "role.wait", l.timeouts.RolePoll, l.timeouts.RoleAvailable, func(ctx context.Context) (bool, error) {
		role, err := l.cloud.GetRole(ctx, l.name)
		if err != nil {
			return false, err
		}
		if role == nil {
			LogWaiting(l.observer, "identity", l.name, "propagating", time.Since(start))
			return false, nil
		}
		return true, nil
	})
}

// GrantReadAccess attaches the read-access policy to the role.
// Attaching an already-attached managed policy is a no-op upstream, but
// a duplicate report is tolerated anyway.
func (l *RoleLifecycle) GrantReadAccess(ctx context.Context) error {
	if err := l.cloud.AttachRolePolicy(ctx, l.name, ReadAccessPolicyARN); err != nil {
		if aws.IsAlreadyExists(err) {
			LogResourceExists(l.observer, "identity", ReadAccessPolicyARN)
			return nil
		}
		return fmt.Errorf("attach policy to role %s: %w", l.name, err)
	}
	return nil
}

// WaitGrantVisible polls until the attached policy shows up in the
// role's policy listing.
func (l *RoleLifecycle) WaitGrantVisible(ctx context.Context) error {
	start := time.Now()
	return retry.Poll(ctx, "role.policy.wait", l.timeouts.RolePoll, l.timeouts.PolicyAttached, func(ctx context.Context) (bool, error) {
		arns, err := l.cloud.ListAttachedRolePolicies(ctx, l.name)
		if err != nil {
			return false, err
		}
		for _, arn := range arns {
			if arn == ReadAccessPolicyARN {
				return true, nil
			}
		}
		LogWaiting(l.observer, "identity", l.name, "attaching", time.Since(start))
		return false, nil
	})
}

// RecordARN looks up the role ARN and writes it back to the
// configuration file for later cluster creation and COPY statements.
func (l *RoleLifecycle) RecordARN(ctx context.Context) (string, error) {
	role, err := l.cloud.GetRole(ctx, l.name)
	if err != nil {
		return "", fmt.Errorf("look up role %s: %w", l.name, err)
	}
	if role == nil {
		return "", fmt.Errorf("role %s not found after provisioning", l.name)
	}
	if err := l.store.SaveRoleARN(role.ARN); err != nil {
		return "", fmt.Errorf("record role ARN: %w", err)
	}
	LogRecorded(l.observer, "identity", "role_arn", role.ARN)
	return role.ARN, nil
}

// Teardown detaches the read-access policy, waits for the detachment to
// become visible, and deletes the role. If the detachment never becomes
// visible within the budget the role is left in place, because deleting
// a role with attached managed policies is rejected upstream.
func (l *RoleLifecycle) Teardown(ctx context.Context) error {
	LogResourceDeleting(l.observer, "identity", l.name)

	if err := l.cloud.DetachRolePolicy(ctx, l.name, ReadAccessPolicyARN); err != nil && !aws.IsNotFound(err) {
		return fmt.Errorf("detach policy from role %s: %w", l.name, err)
	}

	start := time.Now()
	err := retry.Poll(ctx, "role.detach.wait", l.timeouts.DetachPoll, l.timeouts.PolicyDetached, func(ctx context.Context) (bool, error) {
		arns, err := l.cloud.ListAttachedRolePolicies(ctx, l.name)
		if err != nil {
			if aws.IsNotFound(err) {
				return true, nil
			}
			return false, err
		}
		for _, arn := range arns {
			if arn == ReadAccessPolicyARN {
				LogWaiting(l.observer, "identity", l.name, "detaching", time.Since(start))
				return false, nil
			}
		}
		return true, nil
	})
	if err != nil {
		if retry.IsTimeout(err) {
			return &OpError{Op: "role.teardown", Kind: KindTimeout, Err: fmt.Errorf("policy still attached to role %s, leaving role in place: %w", l.name, err)}
		}
		return fmt.Errorf("wait for policy detachment from role %s: %w", l.name, err)
	}

	if err := l.cloud.DeleteRole(ctx, l.name); err != nil && !aws.IsNotFound(err) {
		return fmt.Errorf("delete role %s: %w", l.name, err)
	}
	LogResourceDeleted(l.observer, "identity", l.name)
	return nil
}
