// Package storage reads and writes pipeline files in an S3 compatible bucket.
//
// Cumulative sheets live under pipeline.prefix, registry JSON under
// identity.registry_prefix and CSV exports under storage.export_prefix, all in
// the one configured bucket. The MinIO client is hidden behind Client so that
// loaders can be tested with core/storage/mocks.
//
// ListKeys, ReadObject, EnsureBucket and WriteObject are the only operations
// the pipeline needs; they take a Client rather than being methods on it.
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.ListKeys(ctx, client, cfg.Storage.Bucket, "cumulatives/", ".txt")
package storage
