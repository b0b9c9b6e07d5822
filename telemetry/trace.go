package telemetry

// TraceRecord is one row of the per-tick trace.
type TraceRecord struct {
	Tick             int32   `csv:"tick"`
	Session          uint32  `csv:"session"`
	Speed            float64 `csv:"speed"`
	TargetSpeed      float64 `csv:"target_speed"`
	Grounded         bool    `csv:"grounded"`
	Jumping          bool    `csv:"jumping"`
	FreeFalling      bool    `csv:"free_falling"`
	VerticalVelocity float64 `csv:"vertical_velocity"`
	Heading          float64 `csv:"heading"`
	X                float64 `csv:"x"`
	Y                float64 `csv:"y"`
	Z                float64 `csv:"z"`
	Pitch            float64 `csv:"pitch"`
	Yaw              float64 `csv:"yaw"`
	Dead             bool    `csv:"dead"`
	OverlayOpen      bool    `csv:"overlay_open"`
}
