// Package s3 provides read-only access to the source datasets.
//
// It lists objects under the configured source URIs and fetches sample
// records so a load can be sanity-checked before COPY runs. Log files
// are newline-delimited JSON; song files hold a single JSON document
// each.
package s3
