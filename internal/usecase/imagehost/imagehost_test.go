package imagehost

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	puts    map[string][]byte
	deleted []string
	err     error
}

func (f *fakeObjects) Put(_ context.Context, key string, data []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[key] = data

	return nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, key)

	return nil
}

func (f *fakeObjects) PublicURL(key string) string {
	return "https://img.example.com/" + key
}

type fakeProcessor struct{}

func (fakeProcessor) Transform(_ context.Context, _ string, data []byte) (*dto.TransformedImage, error) {
	return &dto.TransformedImage{
		Data:        data[:len(data)/2],
		ContentType: "image/jpeg",
		Ext:         ".jpg",
		Width:       800,
		Height:      533,
	}, nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int
		want        error
	}{
		{"ok", "image/jpeg", 2 * 1024 * 1024, nil},
		{"exactly at limit", "image/png", 5 * 1024 * 1024, nil},
		{"empty", "image/png", 0, errs.ErrEmptyFile},
		{"not an image", "application/pdf", 10, errs.ErrUnsupportedType},
		{"too large", "image/png", 6 * 1024 * 1024, errs.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.contentType, make([]byte, tt.size))
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestUploadStoresUnderFolderAndReportsTransformedSize(t *testing.T) {
	objects := &fakeObjects{}
	uc := New(objects, fakeProcessor{}, "gallery", logger.Nop())

	res, err := uc.Upload(context.Background(), dto.UploadFile{
		Filename:    "sunset.jpg",
		ContentType: "image/jpeg",
		Data:        bytes.Repeat([]byte{1}, 1000),
		Title:       "Sunset",
		Description: "over the bay",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.PublicID, "gallery/"))
	assert.True(t, strings.HasSuffix(res.PublicID, ".jpg"))
	assert.Equal(t, "https://img.example.com/"+res.PublicID, res.URL)
	assert.Equal(t, int64(500), res.Size)
	assert.Equal(t, 800, res.Width)
	assert.Equal(t, 533, res.Height)
	assert.Equal(t, "Sunset", res.Title)
	assert.Equal(t, "over the bay", res.Description)
	assert.False(t, res.UploadedAt.IsZero())
	assert.Contains(t, objects.puts, res.PublicID)
}

func TestUploadDefaultsTitle(t *testing.T) {
	uc := New(&fakeObjects{}, fakeProcessor{}, "", logger.Nop())

	res, err := uc.Upload(context.Background(), dto.UploadFile{ContentType: "image/png", Data: []byte{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, "Untitled", res.Title)
}

func TestUploadRejectsOversizedBeforeStoring(t *testing.T) {
	objects := &fakeObjects{}
	uc := New(objects, fakeProcessor{}, "gallery", logger.Nop())

	_, err := uc.Upload(context.Background(), dto.UploadFile{
		ContentType: "image/png",
		Data:        make([]byte, 6*1024*1024),
	})
	require.ErrorIs(t, err, errs.ErrFileTooLarge)
	assert.Empty(t, objects.puts)
}

func TestDestroy(t *testing.T) {
	objects := &fakeObjects{}
	uc := New(objects, fakeProcessor{}, "gallery", logger.Nop())

	require.NoError(t, uc.Destroy(context.Background(), "gallery/x.jpg"))
	assert.Equal(t, []string{"gallery/x.jpg"}, objects.deleted)

	objects.err = errors.New("bucket gone")
	require.Error(t, uc.Destroy(context.Background(), "gallery/y.jpg"))
}
