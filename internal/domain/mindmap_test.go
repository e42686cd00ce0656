package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validStructure() *MindMapStructure {
	return &MindMapStructure{
		RootID: "root",
		Nodes: []MindMapNode{
			{ID: "root", Label: "Photosynthesis"},
			{ID: "light", Label: "Light reactions"},
			{ID: "dark", Label: "Calvin cycle"},
		},
		Edges: []MindMapEdge{
			{From: "root", To: "light"},
			{From: "root", To: "dark"},
		},
	}
}

func TestMindMapStructureValidate(t *testing.T) {
	t.Parallel()

	if err := validStructure().Validate(); err != nil {
		t.Errorf("Expected valid structure, got error %v", err)
	}

	// Missing root ID
	noRoot := validStructure()
	noRoot.RootID = ""
	if err := noRoot.Validate(); err != ErrMindMapNoRoot {
		t.Errorf("Expected error %v, got %v", ErrMindMapNoRoot, err)
	}

	// Root ID not among nodes
	badRoot := validStructure()
	badRoot.RootID = "missing"
	if err := badRoot.Validate(); err != ErrMindMapNoRoot {
		t.Errorf("Expected error %v, got %v", ErrMindMapNoRoot, err)
	}

	// Duplicate node IDs
	dup := validStructure()
	dup.Nodes = append(dup.Nodes, MindMapNode{ID: "light", Label: "Duplicate"})
	if err := dup.Validate(); !errors.Is(err, ErrMindMapDuplicateNode) {
		t.Errorf("Expected error %v, got %v", ErrMindMapDuplicateNode, err)
	}

	// Edge referencing an unknown node
	unknown := validStructure()
	unknown.Edges = append(unknown.Edges, MindMapEdge{From: "root", To: "ghost"})
	if err := unknown.Validate(); !errors.Is(err, ErrMindMapUnknownNode) {
		t.Errorf("Expected error %v, got %v", ErrMindMapUnknownNode, err)
	}

	// Node not reachable from the root
	orphan := validStructure()
	orphan.Nodes = append(orphan.Nodes, MindMapNode{ID: "island", Label: "Unlinked"})
	if err := orphan.Validate(); !errors.Is(err, ErrMindMapOrphanNode) {
		t.Errorf("Expected error %v, got %v", ErrMindMapOrphanNode, err)
	}

	// Reachability through intermediate nodes still counts
	chained := validStructure()
	chained.Nodes = append(chained.Nodes, MindMapNode{ID: "atp", Label: "ATP"})
	chained.Edges = append(chained.Edges, MindMapEdge{From: "light", To: "atp"})
	if err := chained.Validate(); err != nil {
		t.Errorf("Expected chained structure to be valid, got error %v", err)
	}
}

func TestNewMindMap(t *testing.T) {
	t.Parallel()

	topicID := uuid.New()

	mindMap, err := NewMindMap(topicID, validStructure())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if mindMap.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if mindMap.TopicID != topicID {
		t.Errorf("Expected topic ID %s, got %s", topicID, mindMap.TopicID)
	}

	if len(mindMap.Structure) == 0 {
		t.Error("Expected marshaled structure, got empty raw message")
	}

	decoded, err := mindMap.DecodeStructure()
	if err != nil {
		t.Fatalf("Expected structure to decode, got %v", err)
	}
	if decoded.RootID != "root" || len(decoded.Nodes) != 3 {
		t.Errorf("Decoded structure does not match original: %+v", decoded)
	}

	// Test invalid topicID
	_, err = NewMindMap(uuid.Nil, validStructure())
	if err != ErrMindMapTopicIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrMindMapTopicIDEmpty, err)
	}

	// Test nil structure
	_, err = NewMindMap(topicID, nil)
	if err != ErrMindMapNoRoot {
		t.Errorf("Expected error %v, got %v", ErrMindMapNoRoot, err)
	}

	// Invalid structures are rejected before marshaling
	orphan := validStructure()
	orphan.Nodes = append(orphan.Nodes, MindMapNode{ID: "island", Label: "Unlinked"})
	_, err = NewMindMap(topicID, orphan)
	if !errors.Is(err, ErrMindMapOrphanNode) {
		t.Errorf("Expected error %v, got %v", ErrMindMapOrphanNode, err)
	}
}
