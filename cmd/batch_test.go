package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/printprep-cli/internal/manifest"
	"github.com/AnyUserName/printprep-cli/internal/pipeline"
	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordConversions(t *testing.T) {
	root := filepath.Join("/", "src")
	m := manifest.New("web", "webp", root)

	ok := pipeline.Conversion{
		Result: report.Success(filepath.Join(root, "business cards", "a.png")),
		Source: pipeline.ImageRecord{Path: filepath.Join(root, "business cards", "a.png"), Size: 1000},
		Dest:   filepath.Join(root, "business cards_resized", "business_cards_a.webp"),
		Width:  100,
		Height: 50,
		Size:   200,
		Hash:   "0123456789abcdef",
	}
	bad := pipeline.Conversion{
		Result: report.Failure(report.KindDecode, filepath.Join(root, "x", "b.jpg"), errors.New("decode: bad")),
		Source: pipeline.ImageRecord{Path: filepath.Join(root, "x", "b.jpg")},
	}
	record(m, ok)
	record(m, bad)

	require.Len(t, m.Files, 1)
	e := m.Files["business cards_resized/business_cards_a.webp"]
	assert.Equal(t, "business cards/a.png", e.Source)
	assert.Equal(t, int64(1000), e.SourceSize)
	assert.Equal(t, 100, e.Width)

	require.Len(t, m.Failures, 1)
	assert.Equal(t, manifest.Failure{Source: "x/b.jpg", Kind: "decode", Error: "decode: bad"}, m.Failures[0])
}
