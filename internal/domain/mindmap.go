package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mind-map-specific validation errors
var (
	// ErrMindMapTopicIDEmpty is returned when a mind map's topic ID is empty.
	ErrMindMapTopicIDEmpty = errors.New("mind map topic ID cannot be empty")

	// ErrMindMapNoRoot is returned when a mind map structure has no root node.
	ErrMindMapNoRoot = errors.New("mind map must have a root node")

	// ErrMindMapDuplicateNode is returned when two nodes share an ID.
	ErrMindMapDuplicateNode = errors.New("mind map node IDs must be unique")

	// ErrMindMapUnknownNode is returned when an edge references a node that
	// does not exist in the structure.
	ErrMindMapUnknownNode = errors.New("mind map edge references unknown node")

	// ErrMindMapOrphanNode is returned when a node is not reachable from the
	// root. Orphan structures are rejected rather than silently pruned.
	ErrMindMapOrphanNode = errors.New("mind map contains node unreachable from root")

	// ErrMindMapStructureInvalid is returned when the stored structure is not
	// valid JSON for a MindMapStructure.
	ErrMindMapStructureInvalid = errors.New("mind map structure is not valid")
)

// MindMapNode is a single labeled concept in a mind map.
type MindMapNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MindMapEdge is a directed relationship between two concepts.
type MindMapEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MindMapStructure is the graph of concepts for a topic. Every node must be
// reachable from the root.
type MindMapStructure struct {
	RootID string        `json:"root_id"`
	Nodes  []MindMapNode `json:"nodes"`
	Edges  []MindMapEdge `json:"edges"`
}

// Validate checks the structural invariants: a root exists, node IDs are
// unique and non-empty, edges reference known nodes, and every node is
// reachable from the root.
func (s *MindMapStructure) Validate() error {
	if s.RootID == "" || len(s.Nodes) == 0 {
		return ErrMindMapNoRoot
	}

	nodes := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" || n.Label == "" {
			return fmt.Errorf("%w: node must have an ID and a label", ErrMindMapStructureInvalid)
		}
		if nodes[n.ID] {
			return fmt.Errorf("%w: %q", ErrMindMapDuplicateNode, n.ID)
		}
		nodes[n.ID] = true
	}

	if !nodes[s.RootID] {
		return ErrMindMapNoRoot
	}

	adjacency := make(map[string][]string, len(s.Nodes))
	for _, e := range s.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			return fmt.Errorf("%w: %s -> %s", ErrMindMapUnknownNode, e.From, e.To)
		}
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	// Breadth-first walk from the root to find unreachable nodes.
	visited := map[string]bool{s.RootID: true}
	queue := []string{s.RootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, n := range s.Nodes {
		if !visited[n.ID] {
			return fmt.Errorf("%w: %q", ErrMindMapOrphanNode, n.ID)
		}
	}

	return nil
}

// MindMap is a generated concept map for a topic. The structure is stored as
// JSON so the client can render arbitrary graphs.
type MindMap struct {
	ID        uuid.UUID       `json:"id"`
	TopicID   uuid.UUID       `json:"topic_id"`
	Structure json.RawMessage `json:"structure"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMindMap creates a mind map for the given topic from a validated
// structure. Returns an error if the structure fails validation.
func NewMindMap(topicID uuid.UUID, structure *MindMapStructure) (*MindMap, error) {
	if topicID == uuid.Nil {
		return nil, ErrMindMapTopicIDEmpty
	}

	if structure == nil {
		return nil, ErrMindMapNoRoot
	}

	if err := structure.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(structure)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMindMapStructureInvalid, err)
	}

	return &MindMap{
		ID:        uuid.New(),
		TopicID:   topicID,
		Structure: raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Validate checks the mind map IDs and re-validates the embedded structure.
func (m *MindMap) Validate() error {
	if m.ID == uuid.Nil {
		return ErrInvalidID
	}

	if m.TopicID == uuid.Nil {
		return ErrMindMapTopicIDEmpty
	}

	structure, err := m.DecodeStructure()
	if err != nil {
		return err
	}

	return structure.Validate()
}

// DecodeStructure unmarshals the stored JSON structure.
func (m *MindMap) DecodeStructure() (*MindMapStructure, error) {
	var structure MindMapStructure
	if err := json.Unmarshal(m.Structure, &structure); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMindMapStructureInvalid, err)
	}
	return &structure, nil
}
