package s3

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/listingqa/artifact"
)

// fakeClient is an in-memory Client. ListObjectsV2 pages two keys at a time
// to exercise pagination.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeClient() *fakeClient { return &fakeClient{objects: map[string][]byte{}} }

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) && k > aws.ToString(in.ContinuationToken) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if len(keys) > 2 {
		keys = keys[:2]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[1])
	}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestStore_WithRegistry(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewStore(client, "bucket", "runs")

	reg := artifact.NewRegistry(store)
	for i := 0; i < 3; i++ {
		_, err := reg.Log(ctx, artifact.Artifact{Name: "clean_sample.csv", Type: "clean_sample"}, []byte{byte('a' + i)})
		require.NoError(t, err)
	}

	// keys carry the root prefix in the bucket
	_, ok := client.objects["runs/clean_sample.csv/v2/clean_sample.csv"]
	assert.True(t, ok)

	versions, err := reg.Versions(ctx, "clean_sample.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"v0", "v1", "v2"}, versions)

	rc, err := reg.Fetch(ctx, artifact.Ref{Name: "clean_sample.csv", Version: artifact.LatestVersion})
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}

func TestStore_OpenMissing(t *testing.T) {
	store := NewStore(newFakeClient(), "bucket", "")
	_, err := store.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}
