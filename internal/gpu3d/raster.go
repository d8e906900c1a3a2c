package gpu3d

// drawPolygon rasterizes one polygon's intersection with the given scanline.
func (r *Renderer) drawPolygon(line int, p *Polygon) {
	n := p.Size

	// Sort the vertices by increasing Y, then increasing X
	var buf [8]*Vertex
	vs := buf[:n]
	for j := 0; j < n; j++ {
		vs[j] = &p.Vertices[j]
	}
	for j := 0; j < n-1; j++ {
		for k := j + 1; k < n; k++ {
			if vs[k].Y < vs[j].Y || (vs[k].Y == vs[j].Y && vs[k].X < vs[j].X) {
				vs[j], vs[k] = vs[k], vs[j]
			}
		}
	}

	if line < vs[0].Y || line >= vs[n-1].Y {
		return
	}

	// Cross products of the middle vertices against the top-to-bottom edge.
	// Positive means the vertex lies on the right half of the polygon.
	var crosses [6]int
	for j := 0; j < n-2; j++ {
		crosses[j] = (vs[j+1].X-vs[0].X)*(vs[n-1].Y-vs[0].Y) -
			(vs[j+1].Y-vs[0].Y)*(vs[n-1].X-vs[0].X)
	}

	// Find the highest vertex below the current line, then pick the two edges
	// crossing the line: v1->v2 on the left, v3->v4 on the right. Horizontal
	// runs collapse so both edge Y spans stay positive.
	for j := 1; j < n; j++ {
		if line >= vs[j].Y {
			continue
		}

		// Bottom-left: the highest vertex at or below j on the left
		v2 := j
		for v2 < n-1 && crosses[v2-1] > 0 {
			v2++
		}

		// Top-left: the lowest vertex above v2 on the left
		v1 := v2 - 1
		for {
			for v1 > 0 && vs[v1].Y == vs[v1-1].Y {
				v1--
			}
			if v1 == 0 || crosses[v1-1] <= 0 {
				break
			}
			v1--
		}

		// Bottom-right: the highest vertex at or below j on the right
		v4 := j
		for {
			for v4 < n-1 && vs[v4].Y == vs[v4+1].Y {
				v4++
			}
			if v4 == n-1 || crosses[v4-1] > 0 {
				break
			}
			v4++
		}

		// Top-right: the lowest vertex above v4 on the right
		v3 := v4 - 1
		for {
			for v3 > 0 && vs[v3].Y == vs[v4].Y {
				v3--
			}
			if v3 == 0 || crosses[v3-1] > 0 {
				break
			}
			v3--
		}

		r.rasterize(line, p, vs[v1], vs[v2], vs[v3], vs[v4])
		return
	}
}

// rasterize draws the span of a polygon between its left edge v1->v2 and
// right edge v3->v4 on the given scanline.
func (r *Renderer) rasterize(line int, p *Polygon, v1, v2, v3, v4 *Vertex) {
	// Reduce the W values to 16 bits so every later W product fits in 64-bit
	// arithmetic. The shift is undone when W doubles as the depth value.
	vw := [4]int64{v1.W, v2.W, v3.W, v4.W}
	wShift := 0
	for i := 0; i < 4; i++ {
		for vw[i] != int64(int16(vw[i])) {
			for j := range vw {
				vw[j] >>= 4
			}
			wShift += 4
		}
	}

	// X bounds of the polygon on this line
	x1 := interpolate(int64(v1.X), int64(v2.X), v1.Y, line, v2.Y)
	x2 := interpolate(int64(v3.X), int64(v4.X), v3.Y, line, v4.Y)

	// Z values at the edges (unused for w-buffered polygons)
	var z1, z2 int
	if !p.WBuffer {
		z1 = interpolate(int64(v1.Z), int64(v2.Z), v1.Y, line, v2.Y)
		z2 = interpolate(int64(v3.Z), int64(v4.Z), v3.Y, line, v4.Y)
	}

	// W values at the edges
	w1 := interpolateW(vw[0], vw[1], v1.Y, line, v2.Y)
	w2 := interpolateW(vw[2], vw[3], v3.Y, line, v4.Y)

	// Edge colors and texture coordinates are only needed once a pixel
	// survives the depth test, so they compute lazily.
	var c1, c2 uint32
	var s1, s2, t1, t2 int
	colorDone, texDone := false, false

	block := line / blockLines
	depthRow := &r.depthBuffer[block]
	stencilRow := &r.stencilBuffer[block]
	attribRow := &r.attribBuffer[block]
	fbRow := r.framebuffer[line*ScreenWidth : (line+1)*ScreenWidth]

	start, end := x1, x2
	if start < 0 {
		start = 0
	}
	if end > ScreenWidth {
		end = ScreenWidth
	}

	for x := start; x < end; x++ {
		var depth int
		if p.WBuffer {
			depth = interpolateW(int64(w1), int64(w2), x1, x, x2) << wShift
		} else {
			depth = interpolate(int64(z1), int64(z2), x1, x, x2)
		}

		// Depth test; the optional "equal" test keeps its 0x200 margin on
		// the near side of the stored value only
		pass := depthRow[x] > depth
		if p.DepthTestEqual {
			pass = depthRow[x]-0x200 >= depth
		}
		if !pass {
			continue
		}

		if p.Mode == ModeShadow {
			if p.ID == 0 {
				// Shadow polygons with ID 0 mark the stencil instead of rendering
				stencilRow[x] = 1
				continue
			}
			if stencilRow[x] != 0 || attribRow[x] == p.ID {
				// Other shadow polygons only render where the stencil is clear
				// and the pixel was drawn by a different polygon
				stencilRow[x] = 0
				continue
			}
		}

		if !colorDone {
			c1 = interpolateColorPersp(v1.Color, v2.Color, v1.Y, line, v2.Y, vw[0], vw[1])
			c2 = interpolateColorPersp(v3.Color, v4.Color, v3.Y, line, v4.Y, vw[2], vw[3])
			colorDone = true
		}

		color := interpolateColorPersp(c1, c2, x1, x, x2, int64(w1), int64(w2))

		if p.TextureFmt != TexNone {
			if !texDone {
				s1 = interpolatePersp(int64(v1.S), int64(v2.S), v1.Y, line, v2.Y, vw[0], vw[1])
				s2 = interpolatePersp(int64(v3.S), int64(v4.S), v3.Y, line, v4.Y, vw[2], vw[3])
				t1 = interpolatePersp(int64(v1.T), int64(v2.T), v1.Y, line, v2.Y, vw[0], vw[1])
				t2 = interpolatePersp(int64(v3.T), int64(v4.T), v3.Y, line, v4.Y, vw[2], vw[3])
				texDone = true
			}

			s := interpolatePersp(int64(s1), int64(s2), x1, x, x2, int64(w1), int64(w2))
			t := interpolatePersp(int64(t1), int64(t2), x1, x, x2, int64(w1), int64(w2))

			// Texture coordinates carry 4 fractional bits
			texel := r.readTexel(p, s>>4, t>>4)
			color = r.combine(p, texel, color)
		}

		// Pixels with zero alpha are discarded; bit 26 marks the rest as 3D
		// output for the 2D compositor
		if color&0xFC0000 == 0 {
			continue
		}
		if alpha := color >> 18; alpha < 0x3F && fbRow[x]&0xFC0000 != 0 {
			fbRow[x] = Bit26 | interpolateColor(fbRow[x], color, 0, int(alpha), 63)
			if p.TransNewDepth {
				depthRow[x] = depth
			}
		} else {
			fbRow[x] = Bit26 | color
			depthRow[x] = depth
		}
		attribRow[x] = p.ID
	}
}

// combine applies the polygon's blend mode to a texel and the interpolated
// vertex color. The formulas follow the GBATEK pseudocode.
func (r *Renderer) combine(p *Polygon, texel, color uint32) uint32 {
	tr := (texel >> 0) & 0x3F
	tg := (texel >> 6) & 0x3F
	tb := (texel >> 12) & 0x3F
	ta := (texel >> 18) & 0x3F
	cr := (color >> 0) & 0x3F
	cg := (color >> 6) & 0x3F
	cb := (color >> 12) & 0x3F
	ca := (color >> 18) & 0x3F

	switch p.Mode {
	case ModeModulation:
		red := ((tr + 1) * (cr + 1) - 1) / 64
		green := ((tg + 1) * (cg + 1) - 1) / 64
		blue := ((tb + 1) * (cb + 1) - 1) / 64
		alpha := ((ta + 1) * (ca + 1) - 1) / 64
		return (alpha << 18) | (blue << 12) | (green << 6) | red

	case ModeDecal, ModeShadow:
		red := (tr*ta + cr*(63-ta)) / 64
		green := (tg*ta + cg*(63-ta)) / 64
		blue := (tb*ta + cb*(63-ta)) / 64
		return (ca << 18) | (blue << 12) | (green << 6) | red

	default: // toon or highlight
		toon := r.toonTable[cr/2]
		nr := (toon >> 0) & 0x3F
		ng := (toon >> 6) & 0x3F
		nb := (toon >> 12) & 0x3F

		red := ((tr + 1) * (nr + 1) - 1) / 64
		green := ((tg + 1) * (ng + 1) - 1) / 64
		blue := ((tb + 1) * (nb + 1) - 1) / 64
		alpha := ((ta + 1) * (ca + 1) - 1) / 64

		if r.disp3DCnt&(1<<1) != 0 {
			// Highlight mode adds the toon color on top
			if red += nr; red > 63 {
				red = 63
			}
			if green += ng; green > 63 {
				green = 63
			}
			if blue += nb; blue > 63 {
				blue = 63
			}
		}
		return (alpha << 18) | (blue << 12) | (green << 6) | red
	}
}
