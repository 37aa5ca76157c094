package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	keys   []string
	inputs []*s3.ListObjectsV2Input
	err    error
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	out := &s3.ListObjectsV2Output{}
	for _, k := range f.keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestS3Storage_Files(t *testing.T) {
	fake := &fakeS3{keys: []string{"rental_units/a/", "rental_units/a/main.jpg", "rental_units/a/b.webp"}}
	s := NewS3(fake, "unit-photos", "ap-southeast-1", "")

	files, err := s.Files(context.Background(), "/rental_units/a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"rental_units/a/main.jpg", "rental_units/a/b.webp"}, files)

	require.Len(t, fake.inputs, 1)
	assert.Equal(t, "unit-photos", aws.ToString(fake.inputs[0].Bucket))
	assert.Equal(t, "rental_units/a/", aws.ToString(fake.inputs[0].Prefix))
	assert.Equal(t, "/", aws.ToString(fake.inputs[0].Delimiter))

	assert.Equal(t, "https://unit-photos.s3.ap-southeast-1.amazonaws.com/rental_units/a/main.jpg", s.URL("rental_units/a/main.jpg"))
}

func TestS3Storage_EmptyPrefixIsMissingFolder(t *testing.T) {
	s := NewS3(&fakeS3{}, "unit-photos", "ap-southeast-1", "https://cdn.example.com")
	_, err := s.Files(context.Background(), "rental_units/none")
	assert.ErrorIs(t, err, ErrFolderNotFound)
	assert.Equal(t, "https://cdn.example.com/x.jpg", s.URL("x.jpg"))
}

func TestS3Storage_ListError(t *testing.T) {
	s := NewS3(&fakeS3{err: errors.New("denied")}, "unit-photos", "ap-southeast-1", "")
	_, err := s.Files(context.Background(), "rental_units/a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFolderNotFound)
}
