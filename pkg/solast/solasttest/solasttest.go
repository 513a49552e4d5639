// Package solasttest loads AST fixtures for tests. A fixture is a Solidity
// source file next to its compiler AST saved as <name>.sol.json.
package solasttest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Load reads path and path+".json" and returns the decoded file.
func Load(t testing.TB, path string) *solast.File {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path + ".json")
	require.NoError(t, err)

	root, err := solast.Decode(data)
	require.NoError(t, err)

	return solast.NewFile(path, string(content), root)
}

// LoadAll loads several fixtures in order.
func LoadAll(t testing.TB, paths ...string) []*solast.File {
	t.Helper()

	files := make([]*solast.File, 0, len(paths))
	for _, path := range paths {
		files = append(files, Load(t, path))
	}
	return files
}
