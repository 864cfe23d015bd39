package filetree_test

import (
	"testing"

	"github.com/glare-project/glare/internal/filetree"
	"github.com/glare-project/glare/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(path string, size int64) model.FileEntry {
	return model.FileEntry{Path: path, Kind: model.FileKindFile, Size: size}
}

func dir(path string) model.FileEntry {
	return model.FileEntry{Path: path, Kind: model.FileKindDir}
}

func TestBuild_SynthesizesIntermediateDirectories(t *testing.T) {
	forest := filetree.Build([]model.FileEntry{
		file("home/user/docs/report.txt", 100),
	})

	require.Len(t, forest, 1)
	home := forest[0]
	assert.Equal(t, "home", home.Name)
	assert.Equal(t, model.FileKindDir, home.Kind)

	require.Len(t, home.Children, 1)
	user := home.Children[0]
	require.Len(t, user.Children, 1)
	docs := user.Children[0]
	require.Len(t, docs.Children, 1)

	report := docs.Children[0]
	assert.Equal(t, "home/user/docs/report.txt", report.Path)
	assert.Equal(t, model.FileKindFile, report.Kind)
	assert.Equal(t, int64(100), report.Size)
}

func TestBuild_NormalizesSlashes(t *testing.T) {
	forest := filetree.Build([]model.FileEntry{
		file("/etc/hosts", 12),
		file("etc/passwd/", 34),
	})

	require.Len(t, forest, 1)
	etc := forest[0]
	assert.Equal(t, "etc", etc.Path)
	require.Len(t, etc.Children, 2)
	assert.Equal(t, "etc/hosts", etc.Children[0].Path)
	assert.Equal(t, "etc/passwd", etc.Children[1].Path)
}

func TestBuild_ExplicitKindWinsOverImplied(t *testing.T) {
	// One entry implies "a" is a directory, another states it explicitly;
	// the explicit entry reconciles the node without duplicating it.
	forest := filetree.Build([]model.FileEntry{
		file("a/b", 1),
		dir("a"),
	})

	require.Len(t, forest, 1)
	a := forest[0]
	assert.Equal(t, model.FileKindDir, a.Kind)
	require.Len(t, a.Children, 1)
	assert.Equal(t, "a/b", a.Children[0].Path)
}

func TestBuild_IntermediateForcedToDirectory(t *testing.T) {
	// A path first recorded as a file becomes a directory once a deeper
	// entry walks through it.
	forest := filetree.Build([]model.FileEntry{
		file("data", 5),
		file("data/blob.bin", 9),
	})

	require.Len(t, forest, 1)
	assert.Equal(t, model.FileKindDir, forest[0].Kind)
	require.Len(t, forest[0].Children, 1)
}

func TestBuild_DuplicatePathLastWriteWins(t *testing.T) {
	forest := filetree.Build([]model.FileEntry{
		file("x/y", 1),
		file("x/y", 42),
	})

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, int64(42), forest[0].Children[0].Size)
}

func TestBuild_SortsDirectoriesFirstThenByName(t *testing.T) {
	forest := filetree.Build([]model.FileEntry{
		file("zebra.txt", 1),
		file("Apple.txt", 1),
		dir("var"),
		dir("Etc"),
		file("banana.txt", 1),
	})

	var names []string
	for _, node := range forest {
		names = append(names, node.Name)
	}
	assert.Equal(t, []string{"Etc", "var", "Apple.txt", "banana.txt", "zebra.txt"}, names)
}

func TestBuild_EmptyAndDegenerateInput(t *testing.T) {
	assert.Empty(t, filetree.Build(nil))
	assert.Empty(t, filetree.Build([]model.FileEntry{{Path: "///"}, {Path: ""}}))
}

func TestRoundTrip_FlattenReproducesNormalizedSet(t *testing.T) {
	input := []model.FileEntry{
		file("/home/user/a.txt", 10),
		file("home/user/b.txt", 20),
		dir("home/user"),
		file("home/user/a.txt", 11), // duplicate, last write wins
		file("srv/data/log/today.log", 5),
	}

	forest := filetree.Build(input)
	flat := filetree.Flatten(forest)

	bySeen := make(map[string]model.FileEntry)
	for _, e := range flat {
		_, dup := bySeen[e.Path]
		assert.False(t, dup, "path %q appears twice in flattened output", e.Path)
		bySeen[e.Path] = e
	}

	want := map[string]model.FileEntry{
		"home":                   {Path: "home", Kind: model.FileKindDir},
		"home/user":              {Path: "home/user", Kind: model.FileKindDir},
		"home/user/a.txt":        {Path: "home/user/a.txt", Kind: model.FileKindFile, Size: 11},
		"home/user/b.txt":        {Path: "home/user/b.txt", Kind: model.FileKindFile, Size: 20},
		"srv":                    {Path: "srv", Kind: model.FileKindDir},
		"srv/data":               {Path: "srv/data", Kind: model.FileKindDir},
		"srv/data/log":           {Path: "srv/data/log", Kind: model.FileKindDir},
		"srv/data/log/today.log": {Path: "srv/data/log/today.log", Kind: model.FileKindFile, Size: 5},
	}
	assert.Equal(t, want, bySeen)

	// Rebuilding from the flattened set yields the same flattened set.
	again := filetree.Flatten(filetree.Build(flat))
	assert.Equal(t, flat, again)
}
