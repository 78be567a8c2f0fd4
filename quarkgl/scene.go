package quarkgl

// Scene is a fixed-capacity collection of point nodes.
type Scene struct {
	objects []*Points
}

// CreateScene allocates a scene with a fixed object capacity.
func CreateScene(maxObjects int) *Scene {
	if maxObjects < 0 {
		maxObjects = 0
	}
	return &Scene{objects: make([]*Points, maxObjects)}
}

// Add attaches p and returns its slot, or -1 if the scene is full or p is released.
// Adding an already attached node returns its existing slot.
func (s *Scene) Add(p *Points) int {
	if s == nil || p == nil || p.Released() {
		return -1
	}
	free := -1
	for i, o := range s.objects {
		if o == p {
			return i
		}
		if o == nil && free < 0 {
			free = i
		}
	}
	if free >= 0 {
		s.objects[free] = p
	}
	return free
}

// Remove detaches p. It reports whether p was attached.
func (s *Scene) Remove(p *Points) bool {
	if s == nil || p == nil {
		return false
	}
	for i, o := range s.objects {
		if o == p {
			s.objects[i] = nil
			return true
		}
	}
	return false
}

// Contains reports whether p is attached.
func (s *Scene) Contains(p *Points) bool {
	if s == nil || p == nil {
		return false
	}
	for _, o := range s.objects {
		if o == p {
			return true
		}
	}
	return false
}

// Len returns the number of attached nodes.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, o := range s.objects {
		if o != nil {
			n++
		}
	}
	return n
}

func (s *Scene) eachPoints(fn func(p *Points)) {
	for _, o := range s.objects {
		if o == nil {
			continue
		}
		fn(o)
	}
}
