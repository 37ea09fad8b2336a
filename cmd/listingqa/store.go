package main

import (
	"context"
	"fmt"
	"io"

	listingqa "github.com/reoring/listingqa"
	"github.com/reoring/listingqa/artifact"
	miniostore "github.com/reoring/listingqa/artifact/minio"
	s3store "github.com/reoring/listingqa/artifact/s3"
	"github.com/reoring/listingqa/internal/config"
	"github.com/reoring/listingqa/source"
)

func openStore(ctx context.Context, c config.Store) (artifact.Store, error) {
	switch c.Kind {
	case config.StoreLocal:
		return artifact.NewLocalStore(c.Root), nil
	case config.StoreMinio:
		s, err := miniostore.New(miniostore.Options{
			Endpoint:  c.Endpoint,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
			Region:    c.Region,
			UseSSL:    c.UseSSL,
		}, c.Bucket, c.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreS3:
		s, err := s3store.New(ctx, c.Region, c.Endpoint, c.Bucket, c.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", c.Kind)
	}
}

// loadDataset fetches ref from the registry and decodes it. Decoding
// failures are returned as listingqa.Issues.
func loadDataset(ctx context.Context, reg *artifact.Registry, ref artifact.Ref) (*listingqa.Dataset, error) {
	rc, err := reg.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	d, err := source.Read(rc, ref.Name)
	if err != nil {
		return nil, err
	}
	d.Name = ref.String()
	return d, nil
}

func printIssues(w io.Writer, label string, iss listingqa.Issues) {
	fmt.Fprintf(w, "%s: %d issue(s)\n", label, len(iss))
	for _, it := range iss {
		fmt.Fprintf(w, "  %s at %s: %s\n", it.Code, it.Path, it.Message)
	}
}
