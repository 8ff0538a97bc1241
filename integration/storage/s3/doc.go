// Package s3 provides an input.UploadStore backed by Amazon S3 or an
// S3-compatible service.
//
// Accepted uploads are put under a random key below the configured prefix and
// the key is recorded as the descriptor's "tmp_name":
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket: "my-app-uploads",
//		Region: "us-east-1",
//		Prefix: "incoming/",
//	})
//	if err != nil {
//		return err
//	}
//
//	cfg := input.DefaultConfig()
//	cfg.Store = store
//	in, err := input.NewFromRequest(r, cfg)
//
//	key := in.File("avatar").(input.Params)[input.FileTmpName]
//
// # S3-Compatible Services
//
// MinIO configuration:
//
//	cfg := s3.Config{
//		Bucket:         "my-bucket",
//		Region:         "us-east-1",
//		AccessKeyID:    "minioadmin",
//		SecretKey:      "minioadmin",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	}
//
// Config carries env tags, so it can be loaded with config.Load like any other
// configuration struct.
//
// # Errors
//
// SDK errors are classified into package errors such as ErrAccessDenied and
// ErrServiceUnavailable. IsRetryable reports transient failures.
package s3
