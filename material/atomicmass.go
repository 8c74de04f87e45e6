package material

// AtomicMassRho maps atomic number Z (1..92) to (standard atomic weight in
// g/mol, room-temperature mass density in g/cm^3), used by the NFF branch of
// Lookup to convert tabulated (f1, f2) into (n, k). The original RAYX shader
// read this data from a generated materials.xmacro table that ships with the
// RAYX data package rather than its source tree; that file was not part of
// this port's reference material, so the values below are standard NIST
// atomic weights and densities, indexed by atomic number.
var AtomicMassRho = map[int][2]float64{
	1:  {1.008, 0.00008988},
	2:  {4.0026, 0.0001785},
	3:  {6.94, 0.534},
	4:  {9.0122, 1.85},
	5:  {10.81, 2.34},
	6:  {12.011, 2.267},
	7:  {14.007, 0.0012506},
	8:  {15.999, 0.001429},
	9:  {18.998, 0.001696},
	10: {20.180, 0.0008999},
	11: {22.990, 0.971},
	12: {24.305, 1.738},
	13: {26.982, 2.70},
	14: {28.085, 2.329},
	15: {30.974, 1.82},
	16: {32.06, 2.067},
	17: {35.45, 0.003214},
	18: {39.948, 0.0017837},
	19: {39.098, 0.862},
	20: {40.078, 1.54},
	21: {44.956, 2.989},
	22: {47.867, 4.54},
	23: {50.942, 6.11},
	24: {51.996, 7.15},
	25: {54.938, 7.47},
	26: {55.845, 7.874},
	27: {58.933, 8.90},
	28: {58.693, 8.908},
	29: {63.546, 8.96},
	30: {65.38, 7.134},
	31: {69.723, 5.91},
	32: {72.630, 5.323},
	33: {74.922, 5.776},
	34: {78.971, 4.809},
	35: {79.904, 3.122},
	36: {83.798, 0.003749},
	37: {85.468, 1.532},
	38: {87.62, 2.64},
	39: {88.906, 4.469},
	40: {91.224, 6.506},
	41: {92.906, 8.57},
	42: {95.95, 10.28},
	43: {97.0, 11.0},
	44: {101.07, 12.45},
	45: {102.91, 12.41},
	46: {106.42, 12.02},
	47: {107.87, 10.49},
	48: {112.41, 8.65},
	49: {114.82, 7.31},
	50: {118.71, 7.287},
	51: {121.76, 6.685},
	52: {127.60, 6.232},
	53: {126.90, 4.93},
	54: {131.29, 0.005894},
	55: {132.91, 1.93},
	56: {137.33, 3.62},
	57: {138.91, 6.162},
	58: {140.12, 6.770},
	59: {140.91, 6.77},
	60: {144.24, 7.01},
	61: {145.0, 7.26},
	62: {150.36, 7.52},
	63: {151.96, 5.244},
	64: {157.25, 7.90},
	65: {158.93, 8.23},
	66: {162.50, 8.540},
	67: {164.93, 8.79},
	68: {167.26, 9.066},
	69: {168.93, 9.32},
	70: {173.05, 6.90},
	71: {174.97, 9.841},
	72: {178.49, 13.31},
	73: {180.95, 16.69},
	74: {183.84, 19.25},
	75: {186.21, 21.02},
	76: {190.23, 22.59},
	77: {192.22, 22.56},
	78: {195.08, 21.45},
	79: {196.97, 19.30},
	80: {200.59, 13.534},
	81: {204.38, 11.85},
	82: {207.2, 11.34},
	83: {208.98, 9.78},
	84: {209.0, 9.196},
	85: {210.0, 7.0},
	86: {222.0, 0.00973},
	87: {223.0, 1.87},
	88: {226.0, 5.50},
	89: {227.0, 10.07},
	90: {232.04, 11.72},
	91: {231.04, 15.37},
	92: {238.03, 19.05},
}
