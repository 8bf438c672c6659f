package assembly

import (
	"sync"

	"github.com/rkcad/rk/uid"
)

// childEdge pairs the joint connecting a parent to one of its children
// with the child's own UID; children are kept in insertion order for
// determinism, per spec.md §3's Assembly invariant (d).
type childEdge struct {
	JointID uid.UID
	ChildID uid.UID
}

// parentEdge is the reverse pointer: which joint and parent a child is
// attached through.
type parentEdge struct {
	JointID  uid.UID
	ParentID uid.UID
}

// Graph is the kinematic tree: links connected by joints, with cached
// forward-kinematics results. Mutations invalidate the cache; it is
// rebuilt lazily by UpdateWorldTransforms.
type Graph struct {
	mu sync.Mutex

	Name       string
	RootLinkID uid.UID
	HasRoot    bool

	links  map[uid.UID]*Link
	joints map[uid.UID]Joint

	children map[uid.UID][]childEdge
	parent   map[uid.UID]parentEdge

	nameIndex map[string]uid.UID

	jointPositions map[uid.UID]float64

	cacheValid bool
}

// NewGraph constructs an empty assembly graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:           name,
		links:          make(map[uid.UID]*Link),
		joints:         make(map[uid.UID]Joint),
		children:       make(map[uid.UID][]childEdge),
		parent:         make(map[uid.UID]parentEdge),
		nameIndex:      make(map[string]uid.UID),
		jointPositions: make(map[uid.UID]float64),
	}
}

// AddLink inserts a link; the first link added becomes the root.
func (g *Graph) AddLink(l *Link) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.links[l.ID] = l
	g.nameIndex[l.Name] = l.ID
	if !g.HasRoot {
		g.RootLinkID = l.ID
		g.HasRoot = true
	}
	g.cacheValid = false
}

// Link looks up a link by UID.
func (g *Graph) Link(id uid.UID) (*Link, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.links[id]
	return l, ok
}

// LinkByName looks up a link by name.
func (g *Graph) LinkByName(name string) (*Link, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.nameIndex[name]
	if !ok {
		return nil, false
	}
	return g.links[id], true
}

// RemoveLink removes id and every descendant (BFS), along with their
// connecting joints and name-index entries. If id was the root and
// other links remain, one of its former children... actually per
// spec.md §8's boundary case, removing the root is only legal if it
// empties the assembly, i.e. the root's removal always cascades to all
// descendants, which for a single-tree assembly means everything.
func (g *Graph) RemoveLink(id uid.UID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	toRemove := g.collectDescendants(id)
	for _, rid := range toRemove {
		if l, ok := g.links[rid]; ok {
			delete(g.nameIndex, l.Name)
		}
		delete(g.links, rid)
		if pe, ok := g.parent[rid]; ok {
			delete(g.joints, pe.JointID)
			g.removeChildEdge(pe.ParentID, rid)
		}
		delete(g.parent, rid)
		delete(g.children, rid)
		delete(g.jointPositions, rid)
	}
	if id == g.RootLinkID {
		g.HasRoot = false
		g.RootLinkID = uid.Nil
	}
	g.cacheValid = false
}

func (g *Graph) collectDescendants(root uid.UID) []uid.UID {
	var out []uid.UID
	queue := []uid.UID{root}
	seen := uid.NewSet(root)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		for _, edge := range g.children[cur] {
			if !seen.Contains(edge.ChildID) {
				seen.Add(edge.ChildID)
				queue = append(queue, edge.ChildID)
			}
		}
	}
	return out
}

func (g *Graph) removeChildEdge(parentID, childID uid.UID) {
	edges := g.children[parentID]
	for i, e := range edges {
		if e.ChildID == childID {
			g.children[parentID] = append(edges[:i:i], edges[i+1:]...)
			return
		}
	}
}

// Connect joins parent and child via joint, rejecting the mutation
// (and leaving the graph bitwise unchanged) if either link is missing,
// the child already has a parent, or the connection would create a
// cycle.
func (g *Graph) Connect(parentID, childID uid.UID, joint Joint) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.links[parentID]; !ok {
		return ErrLinkNotFound
	}
	if _, ok := g.links[childID]; !ok {
		return ErrLinkNotFound
	}
	if _, ok := g.parent[childID]; ok {
		return ErrAlreadyHasParent
	}
	if g.wouldCreateCycle(parentID, childID) {
		return ErrWouldCreateCycle
	}

	joint.ParentLinkID, joint.ChildLinkID = parentID, childID
	g.joints[joint.ID] = joint
	g.children[parentID] = append(g.children[parentID], childEdge{JointID: joint.ID, ChildID: childID})
	g.parent[childID] = parentEdge{JointID: joint.ID, ParentID: parentID}
	g.cacheValid = false
	return nil
}

// wouldCreateCycle walks parent's ancestor chain looking for child;
// if found, connecting parent→child would close a loop.
func (g *Graph) wouldCreateCycle(parentID, childID uid.UID) bool {
	current := parentID
	seen := uid.NewSet()
	for {
		if current == childID {
			return true
		}
		if seen.Contains(current) {
			return false // already-cyclic graph; defensive stop
		}
		seen.Add(current)
		pe, ok := g.parent[current]
		if !ok {
			return false
		}
		current = pe.ParentID
	}
}

// Disconnect removes the joint connecting child to its parent, if any,
// and returns it.
func (g *Graph) Disconnect(childID uid.UID) (Joint, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pe, ok := g.parent[childID]
	if !ok {
		return Joint{}, false
	}
	joint := g.joints[pe.JointID]
	delete(g.joints, pe.JointID)
	g.removeChildEdge(pe.ParentID, childID)
	delete(g.parent, childID)
	g.cacheValid = false
	return joint, true
}

// Joint looks up a joint by UID.
func (g *Graph) Joint(id uid.UID) (Joint, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	j, ok := g.joints[id]
	return j, ok
}

// SetJointLimits replaces a joint's travel/effort limits.
func (g *Graph) SetJointLimits(jointID uid.UID, limits Limits) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	j, ok := g.joints[jointID]
	if !ok {
		return ErrJointNotFound
	}
	j.Limits = &limits
	g.joints[jointID] = j
	return nil
}

// AddCollisionElement appends a collision shape to a link.
func (g *Graph) AddCollisionElement(linkID uid.UID, element CollisionElement) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.links[linkID]
	if !ok {
		return ErrLinkNotFound
	}
	l.CollisionElements = append(l.CollisionElements, element)
	return nil
}

// RemoveCollisionElement deletes a link's collision shape at index.
func (g *Graph) RemoveCollisionElement(linkID uid.UID, index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.links[linkID]
	if !ok {
		return ErrLinkNotFound
	}
	if index < 0 || index >= len(l.CollisionElements) {
		return ErrCollisionIndexRange
	}
	l.CollisionElements = append(l.CollisionElements[:index:index], l.CollisionElements[index+1:]...)
	return nil
}

// Children returns the UIDs of a link's child links, in edge order.
func (g *Graph) Children(linkID uid.UID) []uid.UID {
	g.mu.Lock()
	defer g.mu.Unlock()
	edges := g.children[linkID]
	out := make([]uid.UID, len(edges))
	for i, e := range edges {
		out[i] = e.ChildID
	}
	return out
}

// SetJointPosition records a joint's current position (q).
func (g *Graph) SetJointPosition(jointID uid.UID, q float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.jointPositions[jointID] = q
	g.cacheValid = false
}

// JointPosition returns a joint's recorded position, or 0 if unset.
func (g *Graph) JointPosition(jointID uid.UID) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.jointPositions[jointID]
}

// InvalidateCache forces the next UpdateWorldTransforms call to
// recompute every link's world transform.
func (g *Graph) InvalidateCache() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cacheValid = false
}

// Joints returns a copy of every joint in the graph, keyed by UID.
func (g *Graph) Joints() map[uid.UID]Joint {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[uid.UID]Joint, len(g.joints))
	for id, j := range g.joints {
		out[id] = j
	}
	return out
}

// Links returns every link currently in the graph, for persistence.
func (g *Graph) Links() map[uid.UID]*Link {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[uid.UID]*Link, len(g.links))
	for id, l := range g.links {
		out[id] = l
	}
	return out
}

// Clone deep-copies the graph: every Link and Joint is copied (including
// a Joint's Limits/Dynamics/Mimic pointer fields), so mutating the
// clone or the original afterward never aliases the other. Used by
// editor's undo snapshots, which need an independent copy of the
// assembly as it stood before an undoable action.
func (g *Graph) Clone() *Graph {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := &Graph{
		Name:           g.Name,
		RootLinkID:     g.RootLinkID,
		HasRoot:        g.HasRoot,
		links:          make(map[uid.UID]*Link, len(g.links)),
		joints:         make(map[uid.UID]Joint, len(g.joints)),
		children:       make(map[uid.UID][]childEdge, len(g.children)),
		parent:         make(map[uid.UID]parentEdge, len(g.parent)),
		nameIndex:      make(map[string]uid.UID, len(g.nameIndex)),
		jointPositions: make(map[uid.UID]float64, len(g.jointPositions)),
		cacheValid:     g.cacheValid,
	}

	for id, l := range g.links {
		out.links[id] = cloneLink(l)
	}
	for id, j := range g.joints {
		out.joints[id] = cloneJoint(j)
	}
	for id, edges := range g.children {
		out.children[id] = append([]childEdge(nil), edges...)
	}
	for id, pe := range g.parent {
		out.parent[id] = pe
	}
	for name, id := range g.nameIndex {
		out.nameIndex[name] = id
	}
	for id, q := range g.jointPositions {
		out.jointPositions[id] = q
	}

	return out
}

func cloneLink(l *Link) *Link {
	clone := *l
	clone.CollisionElements = append([]CollisionElement(nil), l.CollisionElements...)
	return &clone
}

func cloneJoint(j Joint) Joint {
	if j.Limits != nil {
		limits := *j.Limits
		j.Limits = &limits
	}
	if j.Dynamics != nil {
		dynamics := *j.Dynamics
		j.Dynamics = &dynamics
	}
	if j.Mimic != nil {
		mimic := *j.Mimic
		j.Mimic = &mimic
	}
	return j
}
