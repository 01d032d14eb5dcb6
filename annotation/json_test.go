package annotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/shinrai/subjective"
)

func TestValueJSON_BareScalar(t *testing.T) {
	data, err := json.Marshal(Scalar("Alice"))
	require.NoError(t, err)
	assert.Equal(t, `"Alice"`, string(data))

	var back Value
	require.NoError(t, json.Unmarshal([]byte(`"Alice"`), &back))
	assert.Equal(t, "Alice", back.Bare())
}

func TestValueJSON_Annotated(t *testing.T) {
	op, err := subjective.New(0.7, 0.1, 0.2, 0.5)
	require.NoError(t, err)
	v := Scalar("Alice").WithConfidence(0.9).WithOpinion(op)
	v.Source = "https://example.org/model-a"
	v.ExtractedAt = "2025-03-01T12:00:00Z"

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Alice", back.Bare())
	require.NotNil(t, back.Confidence)
	assert.Equal(t, 0.9, *back.Confidence)
	require.NotNil(t, back.Opinion)
	assert.True(t, op.Equal(*back.Opinion))
	assert.Equal(t, "https://example.org/model-a", back.Source)
	assert.Equal(t, "2025-03-01T12:00:00Z", back.ExtractedAt)
}

func TestValueJSON_NodeReference(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"@id":"ex:bob"}`), &v))
	assert.Equal(t, Ref("ex:bob"), v.Bare())

	data, err := json.Marshal(Scalar(Ref("ex:bob")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"@id":"ex:bob"}`, string(data))
}

func TestValueJSON_ExtraComplianceKeys(t *testing.T) {
	raw := `{"@value":"note","@confidence":0.8,"@personalDataCategory":"health","@legalBasis":"consent"}`
	var v Value
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	assert.Equal(t, "health", v.Extra[KeyPersonalDataCategory])
	assert.Equal(t, "consent", v.Extra[KeyLegalBasis])

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestNodeJSON_RoundTrip(t *testing.T) {
	raw := `{
		"@id": "ex:alice",
		"@type": "Person",
		"name": {"@value": "Alice", "@confidence": 0.9},
		"emails": ["a@example.org", "alice@example.org"]
	}`
	var n Node
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	assert.Equal(t, "ex:alice", n.ID)
	assert.Equal(t, []string{"Person"}, n.Types)
	assert.Len(t, n.Properties["emails"], 2)

	name, ok := n.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name.Bare())

	data, err := json.Marshal(n)
	require.NoError(t, err)
	var again Node
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, n.ID, again.ID)
	assert.Len(t, again.Properties["emails"], 2)
}

func TestNodeJSON_TypeSet(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"@id":"x","@type":["Person","Agent"]}`), &n))
	assert.Equal(t, []string{"Person", "Agent"}, n.Types)
}

func TestDocumentJSON_GraphForm(t *testing.T) {
	raw := `{
		"@context": {"ex": "https://example.org/"},
		"@graph": [
			{"@id": "ex:a", "name": "A"},
			{"@id": "ex:b", "name": "B"}
		]
	}`
	var d Document
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.True(t, d.GraphForm)
	assert.Len(t, d.Nodes, 2)
	assert.NotNil(t, d.Context)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	var again Document
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Len(t, again.Nodes, 2)
	assert.True(t, again.GraphForm)
}

func TestDocumentJSON_SingleNodeForm(t *testing.T) {
	raw := `{"@id": "ex:a", "@type": "Person", "name": {"@value": "A", "@confidence": 0.7}}`
	var d Document
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.False(t, d.GraphForm)
	require.Len(t, d.Nodes, 1)
	assert.Equal(t, "ex:a", d.Nodes[0].ID)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "@graph")
}

func TestDocumentJSON_EmptyObject(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{}`), &d))
	assert.Empty(t, d.Nodes)
}

func TestWalk_YieldsOnlyAnnotated(t *testing.T) {
	n := NewNode("ex:alice")
	n.Set("name", Scalar("Alice").WithConfidence(0.9))
	n.Set("nickname", Scalar("Al")) // no annotations
	n.Add("email", Scalar("a@example.org").WithConfidence(0.6))
	n.Add("email", Scalar("alice@example.org"))

	entries := Walk(n, nil)
	require.Len(t, entries, 2)
	// Sorted property order: email before name.
	assert.Equal(t, "email", entries[0].Property)
	assert.Equal(t, "a@example.org", entries[0].Value.Bare())
	assert.Equal(t, "name", entries[1].Property)
	assert.Equal(t, "ex:alice", entries[1].NodeID)
}

func TestWalk_ConfiguredKeySet(t *testing.T) {
	n := NewNode("ex:a")
	n.Set("name", Scalar("A").WithConfidence(0.9))
	v := Scalar("note")
	v.Extra = map[string]any{KeyPersonalDataCategory: "health"}
	n.Set("record", v)

	onlyCompliance := KeySet{KeyPersonalDataCategory: true}
	entries := Walk(n, onlyCompliance)
	require.Len(t, entries, 1)
	assert.Equal(t, "record", entries[0].Property)
}

func TestWalkDocument(t *testing.T) {
	a := NewNode("ex:a")
	a.Set("name", Scalar("A").WithConfidence(0.5))
	b := NewNode("ex:b")
	b.Set("name", Scalar("B").WithConfidence(0.6))

	entries := WalkDocument(FromNodes(a, b), nil)
	require.Len(t, entries, 2)
	assert.Equal(t, "ex:a", entries[0].NodeID)
	assert.Equal(t, "ex:b", entries[1].NodeID)
}
