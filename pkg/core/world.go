package core

// World is an unaccelerated, ordered collection of hitables. Every query
// scans all members, which makes it the reference result for the BVH.
type World struct {
	Objects []Hitable
}

// NewWorld creates a world containing objects
func NewWorld(objects ...Hitable) *World {
	return &World{Objects: objects}
}

// Add appends objects to the world
func (w *World) Add(objects ...Hitable) {
	w.Objects = append(w.Objects, objects...)
}

// Len returns the number of objects in the world
func (w *World) Len() int {
	return len(w.Objects)
}

// Hit returns the closest intersection among all objects
func (w *World) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := tMax

	for _, object := range w.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox folds the boxes of all objects. It reports false for an empty
// world and for a world holding any object without a box.
func (w *World) BoundingBox(t0, t1 float64) (AABB, bool) {
	if len(w.Objects) == 0 {
		return AABB{}, false
	}

	box := emptyAABB()
	for _, object := range w.Objects {
		objectBox, ok := object.BoundingBox(t0, t1)
		if !ok {
			return AABB{}, false
		}
		box = box.Union(objectBox)
	}
	return box, true
}
