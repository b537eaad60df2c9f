package e2e

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/provisioning"
	dwhtesting "github.com/imamik/dwhctl/internal/testing"
)

// fastTimeouts returns wait budgets suited to the in-memory control
// plane, where transitions complete on the first poll.
func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		RoleAvailable:     2 * time.Second,
		PolicyAttached:    2 * time.Second,
		PolicyDetached:    2 * time.Second,
		ClusterAvailable:  2 * time.Second,
		ClusterGone:       2 * time.Second,
		SnapshotAvailable: 2 * time.Second,
		RolePoll:          10 * time.Millisecond,
		ClusterPoll:       10 * time.Millisecond,
		SnapshotPoll:      10 * time.Millisecond,
		DetachPoll:        10 * time.Millisecond,
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Millisecond,
	}
}

var _ = Describe("Warehouse lifecycle", func() {
	var (
		ctx        context.Context
		cloud      *dwhtesting.FakeControlPlane
		configPath string
		pCtx       *provisioning.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		cloud = dwhtesting.NewFakeControlPlane()

		dir, err := os.MkdirTemp("", "dwhctl-e2e-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		configPath = filepath.Join(dir, config.DefaultFilename)
		cfg := dwhtesting.NewConfigBuilder().
			WithClusterID("e2e-warehouse").
			WithRole("e2e-role").
			Build()
		Expect(config.Save(cfg, configPath)).To(Succeed())

		loaded, err := config.Load(configPath)
		Expect(err).NotTo(HaveOccurred())

		pCtx = provisioning.NewContext(ctx, loaded, cloud, config.NewFileStore(configPath))
		pCtx.Timeouts = fastTimeouts()
	})

	provision := func() {
		ExpectWithOffset(1, provisioning.Provision(pCtx)).To(Succeed())
	}

	// reload reads the config file back, picking up write-backs.
	reload := func() *config.Config {
		loaded, err := config.Load(configPath)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return loaded
	}

	// newLifecycle builds a cluster lifecycle from the reloaded config.
	newLifecycle := func() *provisioning.ClusterLifecycle {
		return provisioning.NewClusterLifecycle(
			cloud, config.NewFileStore(configPath), provisioning.NewConsoleObserver(), fastTimeouts(), reload())
	}

	Context("provisioning", func() {
		It("creates the role and cluster and records their attributes", func() {
			provision()

			Expect(cloud.HasRole("e2e-role")).To(BeTrue())
			Expect(cloud.HasCluster("e2e-warehouse")).To(BeTrue())

			By("writing the role ARN and endpoint back into the config file")
			loaded := reload()
			Expect(loaded.IAMRole.ARN).To(Equal("arn:aws:iam::123456789012:role/e2e-role"))
			Expect(loaded.Database.Host).To(HavePrefix("e2e-warehouse."))

			By("populating the shared state for the success report")
			Expect(pCtx.State.RoleARN).To(Equal(loaded.IAMRole.ARN))
			Expect(pCtx.State.Endpoint).NotTo(BeNil())
			Expect(pCtx.State.Endpoint.Port).To(Equal(int32(5439)))
		})

		It("adopts existing resources on a re-run", func() {
			provision()

			rerun := provisioning.NewContext(ctx, reload(), cloud, config.NewFileStore(configPath))
			rerun.Timeouts = fastTimeouts()
			Expect(provisioning.Provision(rerun)).To(Succeed())

			Expect(cloud.HasRole("e2e-role")).To(BeTrue())
			Expect(cloud.HasCluster("e2e-warehouse")).To(BeTrue())
		})

		It("rides out role propagation and cluster creation delays", func() {
			cloud.RoleVisibleAfter = 2
			cloud.ClusterAvailableAfter = 3

			provision()

			Expect(cloud.HasCluster("e2e-warehouse")).To(BeTrue())
			Expect(reload().Database.Host).NotTo(BeEmpty())
		})
	})

	Context("status", func() {
		It("summarizes a provisioned warehouse", func() {
			provision()

			summary, err := provisioning.BuildSummary(ctx, cloud, reload())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.State).To(Equal(provisioning.StateAvailable))
			Expect(summary.PolicyAttached).To(BeTrue())
			Expect(summary.RoleARN).To(Equal("arn:aws:iam::123456789012:role/e2e-role"))
			Expect(summary.Endpoint).NotTo(BeNil())
		})

		It("reports an absent warehouse without error", func() {
			summary, err := provisioning.BuildSummary(ctx, cloud, reload())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.State).To(Equal(provisioning.StateAbsent))
			Expect(summary.PolicyAttached).To(BeFalse())
		})
	})

	Context("pause and resume", func() {
		It("pauses an available warehouse", func() {
			provision()

			lifecycle := newLifecycle()
			Expect(lifecycle.Pause(ctx)).To(Succeed())

			state, err := lifecycle.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(provisioning.StatePaused))
		})

		It("takes a snapshot when the pause is rejected for a missing backup", func() {
			provision()
			cloud.PauseRequiresSnapshot = true

			seen := len(cloud.OpsSeen())
			lifecycle := newLifecycle()
			Expect(lifecycle.Pause(ctx)).To(Succeed())

			By("retrying the pause exactly once after the snapshot")
			Expect(cloud.OpsSeen()[seen:]).To(Equal([]string{
				"cluster.pause", "snapshot.create", "cluster.pause",
			}))

			state, err := lifecycle.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(provisioning.StatePaused))
		})

		It("resumes a paused warehouse back to available", func() {
			provision()

			lifecycle := newLifecycle()
			Expect(lifecycle.Pause(ctx)).To(Succeed())
			state, err := lifecycle.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(provisioning.StatePaused))

			Expect(lifecycle.Resume(ctx)).To(Succeed())
			cluster, err := lifecycle.WaitAvailable(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cluster.Status).To(Equal("available"))
		})

		It("rejects a resume on a warehouse that is not paused", func() {
			provision()

			err := newLifecycle().Resume(ctx)
			Expect(err).To(MatchError(ContainSubstring("resume cluster")))
		})
	})

	Context("destroy", func() {
		It("deletes the cluster before the role", func() {
			provision()

			seen := len(cloud.OpsSeen())
			teardown := provisioning.NewContext(ctx, reload(), cloud, config.NewFileStore(configPath))
			teardown.Timeouts = fastTimeouts()
			Expect(provisioning.Teardown(teardown)).To(Succeed())

			Expect(cloud.HasCluster("e2e-warehouse")).To(BeFalse())
			Expect(cloud.HasRole("e2e-role")).To(BeFalse())
			Expect(cloud.OpsSeen()[seen:]).To(Equal([]string{
				"cluster.delete", "policy.detach", "role.delete",
			}))
		})

		It("keeps the role when the policy detach never becomes visible", func() {
			provision()
			cloud.DetachVisibleAfter = 1000

			teardown := provisioning.NewContext(ctx, reload(), cloud, config.NewFileStore(configPath))
			teardown.Timeouts = fastTimeouts()
			teardown.Timeouts.PolicyDetached = 50 * time.Millisecond

			err := provisioning.Teardown(teardown)
			Expect(err).To(MatchError(ContainSubstring("leaving role in place")))
			Expect(provisioning.KindOf(err)).To(Equal(provisioning.KindTimeout))

			By("deleting the cluster but not the role")
			Expect(cloud.HasCluster("e2e-warehouse")).To(BeFalse())
			Expect(cloud.HasRole("e2e-role")).To(BeTrue())
		})

		It("tolerates destroying an absent warehouse", func() {
			teardown := provisioning.NewContext(ctx, reload(), cloud, config.NewFileStore(configPath))
			teardown.Timeouts = fastTimeouts()
			Expect(provisioning.Teardown(teardown)).To(Succeed())
		})
	})
})
