package solast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
	"github.com/yaklabco/solidhunter/pkg/solast/solasttest"
)

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	file := solasttest.Load(t, "testdata/complex.sol")

	var visited []solast.NodeType
	solast.Walk(file.Root, func(n *solast.Node) bool {
		visited = append(visited, n.Type)
		return !n.Is(solast.ContractDefinition)
	})

	assert.Equal(t, []solast.NodeType{
		solast.SourceUnit,
		solast.PragmaDirective,
		solast.ImportDirective,
		solast.ContractDefinition,
	}, visited)
}

func TestWalkWithLeave_Balanced(t *testing.T) {
	t.Parallel()

	file := solasttest.Load(t, "testdata/nested.sol")

	depth, maxDepth := 0, 0
	var entered, left int
	solast.WalkWithLeave(file.Root, func(n *solast.Node) bool {
		entered++
		depth++
		maxDepth = max(maxDepth, depth)
		return !n.Is(solast.InlineAssembly)
	}, func(n *solast.Node) {
		left++
		depth--
	})

	assert.Equal(t, entered, left)
	assert.Zero(t, depth)
	assert.Greater(t, maxDepth, 5)
}

func TestWalkWithLeave_LeaveOrder(t *testing.T) {
	t.Parallel()

	file := solasttest.Load(t, "testdata/pragma_only.sol")

	var events []string
	solast.WalkWithLeave(file.Root, func(n *solast.Node) bool {
		events = append(events, "enter "+string(n.Type))
		return true
	}, func(n *solast.Node) {
		events = append(events, "leave "+string(n.Type))
	})

	assert.Equal(t, []string{
		"enter SourceUnit",
		"enter PragmaDirective",
		"leave PragmaDirective",
		"leave SourceUnit",
	}, events)
}

func TestWalk_DeepNesting(t *testing.T) {
	t.Parallel()

	// encoding/json caps nesting at 10000 levels; each block uses two.
	const depth = 4000

	var sb strings.Builder
	for i := range depth {
		sb.WriteString(`{"nodeType":"Block","src":"`)
		sb.WriteString(position.Span{Offset: i, Length: 2 * (depth - i), File: 0}.String())
		sb.WriteString(`","statements":[`)
	}
	for range depth {
		sb.WriteString(`]}`)
	}

	root, err := solast.Decode([]byte(sb.String()))
	require.NoError(t, err)

	blocks := solast.RetrieveBlocks(root)
	assert.Len(t, blocks, depth)
	assertDocumentOrder(t, nodesOf(blocks))
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	file := solasttest.Load(t, "testdata/nested.sol")

	found := solast.FindFirst(file.Root, func(n *solast.Node) bool {
		return n.Is(solast.MemberAccess)
	})
	require.NotNil(t, found)
	assert.Equal(t, "msg.sender", file.Text(found.Src))

	assert.Nil(t, solast.FindFirst(file.Root, func(n *solast.Node) bool {
		return n.Is(solast.TryStatement)
	}))
}
