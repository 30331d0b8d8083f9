package vmath

// Vec2 is a 2D float vector for screen-space positions
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by factor
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

// ApproachVec moves current toward target by factor, independently per axis
func ApproachVec(current, target Vec2, factor float64) Vec2 {
	return Vec2{
		X: Approach(current.X, target.X, factor),
		Y: Approach(current.Y, target.Y, factor),
	}
}
