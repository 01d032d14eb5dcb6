package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/shinrai/annotation"
)

func personNode(id string, props map[string]annotation.Value) annotation.Node {
	n := annotation.NewNode(id)
	n.Types = []string{"Person"}
	for name, v := range props {
		n.Set(name, v)
	}
	return n
}

func TestMerge_RequiresTwoDocuments(t *testing.T) {
	_, _, err := Merge([]annotation.Document{annotation.FromNode(annotation.NewNode("x"))}, Options{})
	assert.ErrorIs(t, err, ErrArgument)

	_, _, err = Merge(nil, Options{})
	assert.ErrorIs(t, err, ErrArgument)
}

func TestMerge_UnknownOptions(t *testing.T) {
	docs := []annotation.Document{
		annotation.FromNode(annotation.NewNode("a")),
		annotation.FromNode(annotation.NewNode("b")),
	}
	_, _, err := Merge(docs, Options{Strategy: "coin-flip"})
	assert.ErrorIs(t, err, ErrArgument)

	_, _, err = Merge(docs, Options{Combination: "geometric"})
	assert.ErrorIs(t, err, ErrArgument)
}

func TestMerge_AgreementAndConflict(t *testing.T) {
	// Seeded scenario: two sources agree on "Alice" (0.8/0.7), a third
	// says "A. Smith" at 0.9. Strategy highest, combination noisy-OR.
	docA := annotation.FromNode(personNode("ex:alice", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.8),
	}))
	docA.Nodes[0].Properties["name"][0].Source = "https://example.org/model-a"

	docB := annotation.FromNode(personNode("ex:alice", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.7),
	}))
	docB.Nodes[0].Properties["name"][0].Source = "https://example.org/model-b"

	docC := annotation.FromNode(personNode("ex:alice", map[string]annotation.Value{
		"fullName": annotation.Scalar("A. Smith").WithConfidence(0.9),
		"name":     annotation.Scalar("A. Smith").WithConfidence(0.9),
	}))

	merged, report, err := Merge([]annotation.Document{docA, docB, docC}, Options{
		Strategy:    StrategyHighest,
		Combination: CombinationNoisyOr,
	})
	require.NoError(t, err)

	require.Len(t, merged.Nodes, 1)
	node := merged.Nodes[0]
	assert.Equal(t, "ex:alice", node.ID)

	// Conflict on "name": "A. Smith" wins at 0.9 over 0.8 and 0.7.
	name, ok := node.Get("name")
	require.True(t, ok)
	assert.Equal(t, "A. Smith", name.Bare())

	// "fullName" appears once and copies through.
	fullName, ok := node.Get("fullName")
	require.True(t, ok)
	assert.Equal(t, "A. Smith", fullName.Bare())

	assert.Equal(t, 1, report.NodesMerged)
	assert.Equal(t, 1, report.PropertiesConflicted)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "name", report.Conflicts[0].Property)
	assert.Equal(t, "A. Smith", report.Conflicts[0].Winner)
	assert.Equal(t, "highest", report.Conflicts[0].Resolution)
}

func TestMerge_AgreementCombinesNoisyOr(t *testing.T) {
	// Agreement at 0.8 and 0.7 → combined 1 − 0.2·0.3 = 0.94.
	docA := annotation.FromNode(personNode("ex:alice", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.8),
	}))
	docB := annotation.FromNode(personNode("ex:alice", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.7),
	}))

	merged, report, err := Merge([]annotation.Document{docA, docB}, Options{})
	require.NoError(t, err)

	name, ok := merged.Nodes[0].Get("name")
	require.True(t, ok)
	require.NotNil(t, name.Confidence)
	assert.InDelta(t, 0.94, *name.Confidence, 1e-9)
	assert.Equal(t, 1, report.PropertiesAgreed)
	assert.Empty(t, report.Conflicts)
}

func TestMerge_AgreementSingleConfidenceKeptUnchanged(t *testing.T) {
	docA := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.8),
	}))
	docB := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"name": annotation.Scalar("Alice"),
	}))

	merged, _, err := Merge([]annotation.Document{docA, docB}, Options{})
	require.NoError(t, err)
	name, _ := merged.Nodes[0].Get("name")
	require.NotNil(t, name.Confidence)
	assert.Equal(t, 0.8, *name.Confidence, "one score: richest value kept unchanged")
}

func TestMerge_WeightedVote(t *testing.T) {
	mk := func(name string, c float64) annotation.Document {
		return annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
			"role": annotation.Scalar(name).WithConfidence(c),
		}))
	}
	merged, report, err := Merge(
		[]annotation.Document{mk("Engineer", 0.7), mk("Manager", 0.9), mk("Engineer", 0.8)},
		Options{Strategy: StrategyWeightedVote},
	)
	require.NoError(t, err)

	role, _ := merged.Nodes[0].Get("role")
	assert.Equal(t, "Engineer", role.Bare())
	require.NotNil(t, role.Confidence)
	assert.InDelta(t, 0.94, *role.Confidence, 1e-9, "winner carries the group noisy-OR score")
	assert.Equal(t, 1, report.PropertiesConflicted)
}

func TestMerge_Recency(t *testing.T) {
	older := annotation.Scalar("old@example.org").WithConfidence(0.95)
	older.ExtractedAt = "2024-01-01T00:00:00Z"
	newer := annotation.Scalar("new@example.org").WithConfidence(0.6)
	newer.ExtractedAt = "2025-06-01T00:00:00Z"

	docA := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{"email": older}))
	docB := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{"email": newer}))

	merged, _, err := Merge([]annotation.Document{docA, docB}, Options{Strategy: StrategyRecency})
	require.NoError(t, err)
	email, _ := merged.Nodes[0].Get("email")
	assert.Equal(t, "new@example.org", email.Bare())
}

func TestMerge_Union(t *testing.T) {
	docA := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"skill": annotation.Scalar("Go").WithConfidence(0.9),
	}))
	docB := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"skill": annotation.Scalar("Rust").WithConfidence(0.8),
	}))

	merged, report, err := Merge([]annotation.Document{docA, docB}, Options{Strategy: StrategyUnion})
	require.NoError(t, err)

	skills := merged.Nodes[0].Properties["skill"]
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0].Bare())
	assert.Equal(t, "Rust", skills[1].Bare())
	assert.Equal(t, 1, report.PropertiesUnion)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "union (all kept)", report.Conflicts[0].Resolution)
}

func TestMerge_MissingConfidenceDefaultsInsteadOfFailing(t *testing.T) {
	docA := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"name": annotation.Scalar("Alice"),
	}))
	docB := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"name": annotation.Scalar("Alicia").WithConfidence(0.6),
	}))

	merged, _, err := Merge([]annotation.Document{docA, docB}, Options{})
	require.NoError(t, err)
	name, _ := merged.Nodes[0].Get("name")
	assert.Equal(t, "Alicia", name.Bare(), "0.6 beats the assumed 0.5 default")
}

func TestMerge_TypeUnion(t *testing.T) {
	a := annotation.NewNode("ex:a")
	a.Types = []string{"Person"}
	b := annotation.NewNode("ex:a")
	b.Types = []string{"Agent", "Person"}

	merged, _, err := Merge([]annotation.Document{annotation.FromNode(a), annotation.FromNode(b)}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent", "Person"}, merged.Nodes[0].Types)
}

func TestMerge_AnonymousNodesPassThrough(t *testing.T) {
	anon := annotation.NewNode("")
	anon.Set("note", annotation.Scalar("unattributed"))

	named := annotation.NewNode("ex:a")
	named.Set("name", annotation.Scalar("A"))

	merged, report, err := Merge([]annotation.Document{
		annotation.FromNodes(named, anon),
		annotation.FromNode(named.Clone()),
	}, Options{})
	require.NoError(t, err)

	require.Len(t, merged.Nodes, 2)
	assert.Equal(t, "ex:a", merged.Nodes[0].ID)
	assert.Equal(t, "", merged.Nodes[1].ID)
	assert.Equal(t, 1, report.NodesMerged, "anonymous nodes are not merged")
}

func TestMerge_PreservesFirstContext(t *testing.T) {
	docA := annotation.FromNode(annotation.NewNode("ex:a"))
	docB := annotation.FromNode(annotation.NewNode("ex:a"))
	docB.Context = map[string]any{"ex": "https://example.org/"}
	docC := annotation.FromNode(annotation.NewNode("ex:a"))
	docC.Context = map[string]any{"other": "https://other.example/"}

	merged, _, err := Merge([]annotation.Document{docA, docB, docC}, Options{})
	require.NoError(t, err)
	assert.Equal(t, docB.Context, merged.Context, "first non-nil context wins")
	assert.True(t, merged.GraphForm)
}

func TestMerge_MultiValuedAgreement(t *testing.T) {
	mk := func() annotation.Document {
		n := annotation.NewNode("ex:a")
		n.Add("email", annotation.Scalar("a@example.org"))
		n.Add("email", annotation.Scalar("b@example.org"))
		return annotation.FromNode(n)
	}
	merged, report, err := Merge([]annotation.Document{mk(), mk()}, Options{})
	require.NoError(t, err)
	assert.Len(t, merged.Nodes[0].Properties["email"], 2, "list semantics preserved")
	assert.Equal(t, 1, report.PropertiesAgreed)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	docA := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.8),
	}))
	docB := annotation.FromNode(personNode("ex:a", map[string]annotation.Value{
		"name": annotation.Scalar("Alice").WithConfidence(0.7),
	}))

	_, _, err := Merge([]annotation.Document{docA, docB}, Options{})
	require.NoError(t, err)

	orig, _ := docA.Nodes[0].Get("name")
	assert.Equal(t, 0.8, *orig.Confidence, "inputs are never mutated")
}
