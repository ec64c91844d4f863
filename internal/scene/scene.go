package scene

// Scene is a flat collection of nodes with O(1) UID lookup. There is no
// parent/child hierarchy; every node is owned by exactly one game entity
// and positioned in world space.
type Scene struct {
	Name  string
	nodes []*Node

	uidMap map[uint64]*Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:   name,
		nodes:  make([]*Node, 0),
		uidMap: make(map[uint64]*Node),
	}
}

func (s *Scene) Add(n *Node) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Node)
	}
	s.nodes = append(s.nodes, n)
	s.uidMap[n.UID] = n
	n.scene = s
}

func (s *Scene) Remove(n *Node) {
	for i, node := range s.nodes {
		if node == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			delete(s.uidMap, n.UID)
			n.scene = nil
			return
		}
	}
}

// FindByUID returns the node with the given UID, or nil.
func (s *Scene) FindByUID(uid uint64) *Node {
	return s.uidMap[uid]
}

// Nodes returns the live node slice; callers iterate, never mutate.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

func (s *Scene) Len() int {
	return len(s.nodes)
}
