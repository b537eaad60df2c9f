package aws

import (
	"errors"

	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	redshifttypes "github.com/aws/aws-sdk-go-v2/service/redshift/types"
	"github.com/aws/smithy-go"
)

// IsNotFound checks if an error indicates a resource does not exist.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var noEntity *iamtypes.NoSuchEntityException
	if errors.As(err, &noEntity) {
		return true
	}

	var noCluster *redshifttypes.ClusterNotFoundFault
	if errors.As(err, &noCluster) {
		return true
	}

	var noSnapshot *redshifttypes.ClusterSnapshotNotFoundFault
	if errors.As(err, &noSnapshot) {
		return true
	}

	// EC2 reports missing groups by code only.
	return isAPIErrorCode(err,
		"NoSuchEntity",
		"ClusterNotFound",
		"ClusterSnapshotNotFound",
		"InvalidGroup.NotFound",
	)
}

// IsAlreadyExists checks if an error indicates the resource already
// exists. Creates that hit this condition are safe to treat as no-ops.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var entityExists *iamtypes.EntityAlreadyExistsException
	if errors.As(err, &entityExists) {
		return true
	}

	var clusterExists *redshifttypes.ClusterAlreadyExistsFault
	if errors.As(err, &clusterExists) {
		return true
	}

	var snapshotExists *redshifttypes.ClusterSnapshotAlreadyExistsFault
	if errors.As(err, &snapshotExists) {
		return true
	}

	// EC2 reports duplicate ingress rules by code only.
	return isAPIErrorCode(err,
		"EntityAlreadyExists",
		"ClusterAlreadyExists",
		"ClusterSnapshotAlreadyExists",
		"InvalidPermission.Duplicate",
	)
}

// IsInvalidClusterState checks if an error indicates the cluster cannot
// accept the operation in its current state. Pause reports a missing
// recent backup this way.
func IsInvalidClusterState(err error) bool {
	if err == nil {
		return false
	}

	var invalidState *redshifttypes.InvalidClusterStateFault
	if errors.As(err, &invalidState) {
		return true
	}

	return isAPIErrorCode(err, "InvalidClusterState")
}

// isAPIErrorCode checks if the error is an API error with one of the
// given codes. Typed checks come first; this is the fallback for
// services without modeled exception types.
func isAPIErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	code := apiErr.ErrorCode()
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}
