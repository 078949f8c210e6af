package gallery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func filenames(col Collection) []string {
	out := make([]string, len(col.Images))
	for i, im := range col.Images {
		out[i] = im.Filename
	}
	return out
}

func TestNaturalLess(t *testing.T) {
	names := []string{"img10.jpg", "Img2.jpg", "img1.jpg", "b.png", "A.png", "img02b.jpg", "img002.jpg"}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
	assert.Equal(t, []string{"A.png", "b.png", "img1.jpg", "Img2.jpg", "img002.jpg", "img02b.jpg", "img10.jpg"}, names)
}

func TestNaturalLess_FoldsAccents(t *testing.T) {
	names := []string{"ezra.jpg", "Éclair.jpg", "eagle.jpg", "e.png", "é.png"}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
	assert.Equal(t, []string{"e.png", "é.png", "eagle.jpg", "Éclair.jpg", "ezra.jpg"}, names)
}

func TestScan_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "10.jpg", "2.PNG", "1.webp", "notes.txt", "cover.svg", "clip.gif", "x.avif", "photo.JPEG")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	col, err := Scan(dir, Options{Name: "main"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.webp", "2.PNG", "10.jpg", "clip.gif", "cover.svg", "photo.JPEG", "x.avif"}, filenames(col))
	assert.Equal(t, "main", col.Name)
	first := col.Images[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, "1", first.Name)
	assert.Equal(t, "1", first.Title)
	assert.Equal(t, filepath.Join(dir, "1.webp"), first.Path)
	assert.Equal(t, "Gallery 01: 1", first.Alt())
	assert.False(t, col.IsPlaceholder())
}

func TestScan_ManifestPinsOrderAndTitles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.jpg", "c.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(`
title: "  Summer  "
description: |
  **Open air** shows.
images:
  - file: c.jpg
    title: Finale
  - file: missing.jpg
  - file: c.jpg
`), 0o644))

	col, err := Scan(dir, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Summer", col.Title)
	assert.Equal(t, "**Open air** shows.", col.Description)
	assert.Equal(t, []string{"c.jpg", "a.jpg", "b.jpg"}, filenames(col))
	assert.Equal(t, "Finale", col.Images[0].Title)
	assert.Equal(t, "a", col.Images[1].Title)
	assert.Equal(t, 3, col.Images[2].Index)
}

func TestScan_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte("images: [\n"), 0o644))

	_, err := Scan(dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_FallsBackToPlaceholders(t *testing.T) {
	col, err := Load(filepath.Join(t.TempDir(), "nope"), Options{Placeholders: 3})
	require.NoError(t, err)
	require.Len(t, col.Images, 3)
	assert.True(t, col.IsPlaceholder())
	assert.Equal(t, "Gallery Image 02", col.Images[1].Title)

	empty, err := Load(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Empty(t, empty.Images)
	assert.False(t, empty.IsPlaceholder())
}

func TestSlides(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "one.png", "two.png")
	col, err := Scan(dir, Options{})
	require.NoError(t, err)

	slides := col.Slides()
	require.Len(t, slides, 2)
	assert.Equal(t, 0, slides[0].Source)
	assert.Equal(t, filepath.Join(dir, "one.png"), slides[0].Image)
	assert.Equal(t, "two", slides[1].Title)

	ph := Collection{Images: Placeholders(1)}.Slides()
	assert.Equal(t, "placeholder:placeholder-1.jpg", ph[0].Image)
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png")
	first, err := Scan(dir, Options{})
	require.NoError(t, err)
	again, err := Scan(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint(), again.Fingerprint())

	writeFiles(t, dir, "b.png")
	added, err := Scan(dir, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), added.Fingerprint())

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "a.png"), later, later))
	touched, err := Scan(dir, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, added.Fingerprint(), touched.Fingerprint())
}
