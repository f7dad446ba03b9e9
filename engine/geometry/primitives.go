package geometry

import (
	"github.com/chewxy/math32"
)

// NewBox creates a box centered at the origin with one segment per face.
// Faces are emitted in the order +x, -x, +y, -y, +z, -z.
//
// Parameters:
//   - width: size along x
//   - height: size along y
//   - depth: size along z
//
// Returns:
//   - Geometry: the box
func NewBox(width, height, depth float32) Geometry {
	return NewBoxSegments(width, height, depth, 1, 1, 1)
}

// NewBoxSegments creates a box with the given number of segments per axis.
//
// Parameters:
//   - width, height, depth: the box extents
//   - widthSegments, heightSegments, depthSegments: subdivisions per axis, at least 1
//
// Returns:
//   - Geometry: the box
func NewBoxSegments(width, height, depth float32, widthSegments, heightSegments, depthSegments int) Geometry {
	ws, hs, ds := max(widthSegments, 1), max(heightSegments, 1), max(depthSegments, 1)
	b := &builder{}
	b.plane(2, 1, 0, -1, -1, depth, height, width, ds, hs)
	b.plane(2, 1, 0, 1, -1, depth, height, -width, ds, hs)
	b.plane(0, 2, 1, 1, 1, width, depth, height, ws, ds)
	b.plane(0, 2, 1, 1, -1, width, depth, -height, ws, ds)
	b.plane(0, 1, 2, 1, -1, width, height, depth, ws, hs)
	b.plane(0, 1, 2, -1, -1, width, height, -depth, ws, hs)
	return newGeometry("box", b.positions, b.normals, b.uvs, b.indices)
}

// NewSphere creates a UV sphere centered at the origin.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: horizontal segments, at least 3
//   - heightSegments: vertical segments, at least 2
//
// Returns:
//   - Geometry: the sphere
func NewSphere(radius float32, widthSegments, heightSegments int) Geometry {
	ws, hs := max(widthSegments, 3), max(heightSegments, 2)
	b := &builder{}
	grid := make([][]uint32, hs+1)
	var index uint32

	for iy := 0; iy <= hs; iy++ {
		v := float32(iy) / float32(hs)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(ws)
		case hs:
			uOffset = -0.5 / float32(ws)
		}
		row := make([]uint32, ws+1)
		for ix := 0; ix <= ws; ix++ {
			u := float32(ix) / float32(ws)
			phi, theta := u*2*math32.Pi, v*math32.Pi
			x := -radius * math32.Cos(phi) * math32.Sin(theta)
			y := radius * math32.Cos(theta)
			z := radius * math32.Sin(phi) * math32.Sin(theta)
			b.positions = append(b.positions, x, y, z)
			nx, ny, nz := normalize(x, y, z)
			b.normals = append(b.normals, nx, ny, nz)
			b.uvs = append(b.uvs, u+uOffset, 1-v)
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := range hs {
		for ix := range ws {
			a := grid[iy][ix+1]
			bb := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				b.indices = append(b.indices, a, bb, d)
			}
			if iy != hs-1 {
				b.indices = append(b.indices, bb, c, d)
			}
		}
	}
	return newGeometry("sphere", b.positions, b.normals, b.uvs, b.indices)
}

// NewPlane creates a plane in the xy plane facing +z.
//
// Parameters:
//   - width: size along x
//   - height: size along y
//   - widthSegments: subdivisions along x, at least 1
//   - heightSegments: subdivisions along y, at least 1
//
// Returns:
//   - Geometry: the plane
func NewPlane(width, height float32, widthSegments, heightSegments int) Geometry {
	gx, gy := max(widthSegments, 1), max(heightSegments, 1)
	segW, segH := width/float32(gx), height/float32(gy)
	b := &builder{}

	for iy := 0; iy <= gy; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= gx; ix++ {
			x := float32(ix)*segW - width/2
			b.positions = append(b.positions, x, -y, 0)
			b.normals = append(b.normals, 0, 0, 1)
			b.uvs = append(b.uvs, float32(ix)/float32(gx), 1-float32(iy)/float32(gy))
		}
	}
	b.gridIndices(0, gx, gy)
	return newGeometry("plane", b.positions, b.normals, b.uvs, b.indices)
}

// NewTorus creates a torus in the xy plane centered at the origin.
//
// Parameters:
//   - radius: distance from the center to the middle of the tube
//   - tube: the tube radius
//   - radialSegments: segments around the tube, at least 3
//   - tubularSegments: segments around the ring, at least 3
//
// Returns:
//   - Geometry: the torus
func NewTorus(radius, tube float32, radialSegments, tubularSegments int) Geometry {
	rs, ts := max(radialSegments, 3), max(tubularSegments, 3)
	b := &builder{}

	for j := 0; j <= rs; j++ {
		for i := 0; i <= ts; i++ {
			u := float32(i) / float32(ts) * 2 * math32.Pi
			v := float32(j) / float32(rs) * 2 * math32.Pi
			x := (radius + tube*math32.Cos(v)) * math32.Cos(u)
			y := (radius + tube*math32.Cos(v)) * math32.Sin(u)
			z := tube * math32.Sin(v)
			b.positions = append(b.positions, x, y, z)
			nx, ny, nz := normalize(x-radius*math32.Cos(u), y-radius*math32.Sin(u), z)
			b.normals = append(b.normals, nx, ny, nz)
			b.uvs = append(b.uvs, float32(i)/float32(ts), float32(j)/float32(rs))
		}
	}

	stride := uint32(ts + 1)
	for j := uint32(1); j <= uint32(rs); j++ {
		for i := uint32(1); i <= uint32(ts); i++ {
			a := stride*j + i - 1
			bb := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			b.indices = append(b.indices, a, bb, d, bb, c, d)
		}
	}
	return newGeometry("torus", b.positions, b.normals, b.uvs, b.indices)
}

// builder accumulates attribute arrays while a primitive is generated.
type builder struct {
	positions []float32
	normals   []float32
	uvs       []float32
	indices   []uint32
}

// plane appends one box face. u, v and w are axis indices; udir and vdir flip the face's local axes.
func (b *builder) plane(u, v, w int, udir, vdir, width, height, depth float32, gridX, gridY int) {
	base := uint32(len(b.positions) / 3)
	segW, segH := width/float32(gridX), height/float32(gridY)
	normal := float32(1)
	if depth < 0 {
		normal = -1
	}

	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - width/2
			var pos, n [3]float32
			pos[u], pos[v], pos[w] = x*udir, y*vdir, depth/2
			n[w] = normal
			b.positions = append(b.positions, pos[:]...)
			b.normals = append(b.normals, n[:]...)
			b.uvs = append(b.uvs, float32(ix)/float32(gridX), 1-float32(iy)/float32(gridY))
		}
	}
	b.gridIndices(base, gridX, gridY)
}

// gridIndices emits two triangles per cell of a (gridX+1) x (gridY+1) vertex grid starting at base.
func (b *builder) gridIndices(base uint32, gridX, gridY int) {
	row := uint32(gridX + 1)
	for iy := range uint32(gridY) {
		for ix := range uint32(gridX) {
			a := base + ix + row*iy
			bb := base + ix + row*(iy+1)
			c := base + ix + 1 + row*(iy+1)
			d := base + ix + 1 + row*iy
			b.indices = append(b.indices, a, bb, d, bb, c, d)
		}
	}
}

func normalize(x, y, z float32) (float32, float32, float32) {
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, z / l
}
