package math

// Mat4 is a column-major 4x4 matrix, laid out the way glUniformMatrix4fv
// expects with transpose = false. Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Ortho returns an orthographic projection mapping the box
// [left,right] x [bottom,top] x [near,far] onto the clip cube.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w := right - left
	h := top - bottom
	d := far - near

	var m Mat4
	m[0] = 2 / w
	m[5] = 2 / h
	m[10] = -2 / d
	m[12] = -(right + left) / w
	m[13] = -(top + bottom) / h
	m[14] = -(far + near) / d
	m[15] = 1
	return m
}

// Scale returns a matrix scaling each axis independently.
func Scale(x, y, z float32) Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = x, y, z, 1
	return m
}

// Mul returns m * other, so other is applied to a point first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * other[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies m to p with w = 1 and divides by the resulting w
// when it is not 1.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m[r]*p[0] + m[4+r]*p[1] + m[8+r]*p[2] + m[12+r]
	}
	if w := out[3]; w != 0 && w != 1 {
		return [3]float32{out[0] / w, out[1] / w, out[2] / w}
	}
	return [3]float32{out[0], out[1], out[2]}
}

// Ptr returns a pointer to the first element for GL uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
