package core

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/df07/go-raykernel/pkg/log"
)

// ErrUnboundedPrimitive is returned when a BVH is built over a hitable that
// cannot report a bounding box.
var ErrUnboundedPrimitive = errors.New("primitive has no bounding box")

var logger = log.New("bvh")

// bvhNode is one node of the flattened tree. Internal nodes hold the indices
// of their two child nodes; leaves hold one or two indices into the
// primitive arena.
type bvhNode struct {
	box   AABB
	left  int32
	right int32
	count int8 // 0 for internal nodes, 1 or 2 for leaves
}

// BVH is a bounding volume hierarchy over a fixed set of hitables. It is
// built once and is immutable afterwards, so it can be shared by any number
// of rendering goroutines. A BVH is itself a Hitable.
type BVH struct {
	objects []Hitable
	nodes   []bvhNode
	t0, t1  float64
}

type bvhItem struct {
	index    int32
	box      AABB
	centroid Vec3
}

// NewBVH builds a BVH over objects, evaluating their bounding boxes over the
// shutter interval [t0, t1]. The caller's slice is copied and never
// reordered. An empty slice yields an empty BVH that never reports a hit.
//
// Each node is split on the axis along which its box is longest (ties
// resolve X, then Y, then Z). Primitives are ordered by the centroid of their
// box on that axis with a stable sort, so equal centroids keep input order,
// and the node is split at the median index.
func NewBVH(objects []Hitable, t0, t1 float64) (*BVH, error) {
	bvh := &BVH{
		objects: make([]Hitable, len(objects)),
		t0:      t0,
		t1:      t1,
	}
	copy(bvh.objects, objects)

	if len(objects) == 0 {
		return bvh, nil
	}

	items := make([]bvhItem, len(objects))
	for i, obj := range bvh.objects {
		box, ok := obj.BoundingBox(t0, t1)
		if !ok {
			return nil, fmt.Errorf("bvh: object %d (%T): %w", i, obj, ErrUnboundedPrimitive)
		}
		items[i] = bvhItem{index: int32(i), box: box, centroid: box.Center()}
	}

	start := time.Now()
	bvh.nodes = make([]bvhNode, 0, 2*len(items))
	bvh.build(items)

	stats := bvh.Stats()
	logger.Debugf(
		"BVH build time: %s, primitives: %d, nodes: %d, leaves: %d, maxDepth: %d",
		time.Since(start), stats.Primitives, stats.Nodes, stats.Leaves, stats.MaxDepth,
	)
	return bvh, nil
}

// MustNewBVH is like NewBVH but panics on error. Used for scenes built in code.
func MustNewBVH(objects []Hitable, t0, t1 float64) *BVH {
	bvh, err := NewBVH(objects, t0, t1)
	if err != nil {
		panic(err)
	}
	return bvh
}

// build appends the subtree for items and returns the index of its root
func (bvh *BVH) build(items []bvhItem) int32 {
	idx := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, bvhNode{})

	switch len(items) {
	case 1:
		bvh.nodes[idx] = bvhNode{
			box:   items[0].box,
			left:  items[0].index,
			right: items[0].index,
			count: 1,
		}
		return idx
	case 2:
		bvh.nodes[idx] = bvhNode{
			box:   SurroundingBox(items[0].box, items[1].box),
			left:  items[0].index,
			right: items[1].index,
			count: 2,
		}
		return idx
	}

	bounds := emptyAABB()
	for _, item := range items {
		bounds = bounds.Union(item.box)
	}
	axis := bounds.LongestAxis()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].centroid.Axis(axis) < items[j].centroid.Axis(axis)
	})

	mid := len(items) / 2
	left := bvh.build(items[:mid])
	right := bvh.build(items[mid:])

	bvh.nodes[idx] = bvhNode{
		box:   SurroundingBox(bvh.nodes[left].box, bvh.nodes[right].box),
		left:  left,
		right: right,
	}
	return idx
}

// Hit returns the closest intersection among all primitives in the BVH
func (bvh *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}
	return bvh.hitNode(0, ray, tMin, tMax)
}

// hitNode tests the node's cached box, then the left subtree, then the right
// subtree with tMax narrowed to any hit found on the left.
func (bvh *BVH) hitNode(idx int32, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	node := &bvh.nodes[idx]
	if !node.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.count == 1 {
		return bvh.objects[node.left].Hit(ray, tMin, tMax)
	}

	var leftHit, rightHit *HitRecord
	var isLeft, isRight bool
	if node.count == 2 {
		leftHit, isLeft = bvh.objects[node.left].Hit(ray, tMin, tMax)
		if isLeft {
			tMax = leftHit.T
		}
		rightHit, isRight = bvh.objects[node.right].Hit(ray, tMin, tMax)
	} else {
		leftHit, isLeft = bvh.hitNode(node.left, ray, tMin, tMax)
		if isLeft {
			tMax = leftHit.T
		}
		rightHit, isRight = bvh.hitNode(node.right, ray, tMin, tMax)
	}

	if isRight {
		return rightHit, true
	}
	return leftHit, isLeft
}

// BoundingBox returns the root box cached at build time. The box covers the
// build interval; the requested interval is ignored.
func (bvh *BVH) BoundingBox(t0, t1 float64) (AABB, bool) {
	if len(bvh.nodes) == 0 {
		return AABB{}, false
	}
	return bvh.nodes[0].box, true
}

// Len returns the number of primitives in the BVH
func (bvh *BVH) Len() int {
	return len(bvh.objects)
}

// Objects returns the BVH's own copy of its primitives
func (bvh *BVH) Objects() []Hitable {
	return bvh.objects
}

// BVHStats describes the shape of a built BVH
type BVHStats struct {
	Primitives int
	Nodes      int
	Leaves     int
	MaxDepth   int
	AvgDepth   float64 // Average leaf depth
}

// Stats walks the tree and collects its statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Primitives: len(bvh.objects)}
	if len(bvh.nodes) == 0 {
		return stats
	}

	bvh.collectStats(0, 0, &stats)
	if stats.Leaves > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.Leaves)
	}
	return stats
}

func (bvh *BVH) collectStats(idx int32, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node := &bvh.nodes[idx]
	if node.count > 0 {
		stats.Leaves++
		stats.AvgDepth += float64(depth)
		return
	}
	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}
