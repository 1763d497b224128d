package game

// The simulation runs in normalized court space: X and Y are fractions of
// the field width and height. Sizes below come from an 800x500 reference
// field and are converted once so every renderer sees the same geometry.
const (
	RefWidth      = 800.0
	RefHeight     = 500.0
	BallRadiusPx  = 15.0
	PaddleWidthPx = 14.0
	PaddleInsetPx = 20.0

	BallRadiusX = BallRadiusPx / RefWidth
	BallRadiusY = BallRadiusPx / RefHeight
	PaddlePadX  = PaddleWidthPx / RefWidth

	LeftFaceX  = (PaddleWidthPx + PaddleInsetPx) / RefWidth
	RightFaceX = (RefWidth - PaddleWidthPx - PaddleInsetPx) / RefWidth

	PaddleHeight = 0.18 // fraction of field height
	PaddleMinY   = 0.12
	PaddleMaxY   = 0.88

	CenterX = 0.5
	CenterY = 0.5
)

// ClampPaddleY keeps a paddle center inside the playable band
func ClampPaddleY(y float64) float64 {
	if y < PaddleMinY {
		return PaddleMinY
	}
	if y > PaddleMaxY {
		return PaddleMaxY
	}
	return y
}

// FaceX returns the x position of the paddle column for a side
func FaceX(left bool) float64 {
	if left {
		return LeftFaceX
	}
	return RightFaceX
}
