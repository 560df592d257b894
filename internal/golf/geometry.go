package golf

// IsClockwise reports the winding of a closed loop, judged in y-up axes at the
// vertex with the lowest y (highest x on ties). That vertex is always convex,
// so the turn of its two incident edges gives the orientation of the loop.
func IsClockwise(points []Vec2) bool {
	ref := 0
	for i := 1; i < len(points); i++ {
		if points[i].Y < points[ref].Y ||
			(points[i].Y == points[ref].Y && points[i].X > points[ref].X) {
			ref = i
		}
	}
	n := len(points)
	prev := points[(ref-1+n)%n].Minus(points[ref])
	next := points[(ref+1)%n].Minus(points[ref])
	return prev.Cross(next) > 0
}

// PointInPolygon is the even-odd crossing test along a horizontal ray.
func PointInPolygon(p Vec2, points []Vec2) bool {
	inside := false
	for i, j := 0, len(points)-1; i < len(points); j, i = i, i+1 {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
