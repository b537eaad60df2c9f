// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - CloudFixture: Pre-configured control-plane mock for common scenarios
//   - FakeControlPlane: Stateful in-memory control plane for end-to-end flows
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithClusterID("test").
//	    WithRegion("us-east-1").
//	    Build()
//
//	fixture := testing.NewCloudFixture()
//	mockCloud := fixture.SuccessfulProvisioning()
package testing
