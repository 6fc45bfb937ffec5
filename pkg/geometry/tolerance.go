package geometry

// Tolerances shared by the bend pipeline. Lengths are in the input length unit
// (centimeters for geometry coming from the CAD kernel).
const (
	// ZeroMagnitudeTolerance is the magnitude below which a vector is treated as zero
	ZeroMagnitudeTolerance = 1e-10

	// ConnectivityTolerance is the default distance under which two endpoints are
	// considered the same point
	ConnectivityTolerance = 0.1

	// CLRToleranceRatio is the default relative CLR tolerance (0.2%)
	CLRToleranceRatio = 0.002

	// CLRMinTolerance is the absolute floor for the CLR tolerance so very small
	// radii do not produce false mismatches
	CLRMinTolerance = 0.001

	// DieCLRMatchTolerance is the default absolute tolerance when matching a
	// die's CLR against the detected CLR
	DieCLRMatchTolerance = 0.01
)
