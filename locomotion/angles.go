package locomotion

import "math"

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// wrapDegrees maps an angle into [-180, 180].
func wrapDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// deltaAngle returns the shortest signed difference target-current in degrees.
func deltaAngle(current, target float64) float64 {
	return wrapDegrees(target - current)
}

// smoothDampAngle eases current toward target along the shortest arc using a
// critically damped spring. vel carries the spring velocity between calls.
func smoothDampAngle(current, target float64, vel *float64, smoothTime, dt float64) float64 {
	target = current + deltaAngle(current, target)
	return smoothDamp(current, target, vel, smoothTime, dt)
}

func smoothDamp(current, target float64, vel *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*vel + omega*change) * dt
	*vel = (*vel - omega*temp) * decay
	out := target + (change+temp)*decay

	// Prevent overshoot
	if (target-current > 0) == (out > target) {
		out = target
		*vel = 0
	}
	return out
}
