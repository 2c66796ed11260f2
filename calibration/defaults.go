package calibration

// Reference calibration for the 100Ah race pack, measured on the pack dyno.
// Voltage axis in volts, temperature axis in kelvin, resistance in ohms.

var defaultVoltageAxis = []float32{
	12.0584, 12.0721, 12.0858, 12.0995, 12.1132, 12.1269, 12.1406, 12.1543, 12.1680, 12.1817,
	12.1954, 12.2091, 12.2228, 12.2365, 12.2502, 12.2639, 12.2776, 12.2913, 12.3050, 12.3187,
	12.3324, 12.3461, 12.3598, 12.3735, 12.3872, 12.4009, 12.4146, 12.4283, 12.4420, 12.4557,
	12.4694, 12.4831, 12.4968, 12.5105, 12.5242, 12.5379, 12.5516, 12.5653, 12.5790, 12.5927,
	12.6064, 12.6201, 12.6338, 12.6475, 12.6612, 12.6749, 12.6886, 12.7023, 12.7160, 12.7297,
	12.7434, 12.7571, 12.7708, 12.7845, 12.7982, 12.8119, 12.8256, 12.8393, 12.8530, 12.8667,
	12.8804, 12.8941, 12.9078, 12.9215, 12.9352, 12.9489, 12.9626, 12.9763, 12.9900, 13.0037,
	13.0174, 13.0311, 13.0448, 13.0585, 13.0722, 13.0859, 13.0996, 13.1133, 13.1270, 13.1407,
	13.1544, 13.1681, 13.1818, 13.1955, 13.2092, 13.2229, 13.2366, 13.2503, 13.2640, 13.2777,
	13.2914, 13.3051, 13.3188, 13.3325, 13.3462, 13.3599, 13.3736, 13.3873, 13.4010, 13.4147,
}

var defaultTemperatureAxis = []float32{263.0, 273.0, 283.0, 293.0, 296.0, 303.0, 313.0}

var defaultSOCAxis = []float32{0.0, 10.0, 20.0, 30.0, 40.0, 50.0, 60.0, 70.0, 80.0, 90.0}

var defaultSOCTable = [][]float32{
	{0.00, 0.20, 0.40, 0.50, 0.40, 0.20, 0.00},
	{1.01, 1.21, 1.41, 1.51, 1.41, 1.21, 1.01},
	{2.02, 2.22, 2.42, 2.52, 2.42, 2.22, 2.02},
	{3.03, 3.23, 3.43, 3.53, 3.43, 3.23, 3.03},
	{4.04, 4.24, 4.44, 4.54, 4.44, 4.24, 4.04},
	{5.05, 5.25, 5.45, 5.55, 5.45, 5.25, 5.05},
	{6.06, 6.26, 6.46, 6.56, 6.46, 6.26, 6.06},
	{7.07, 7.27, 7.47, 7.57, 7.47, 7.27, 7.07},
	{8.08, 8.28, 8.48, 8.58, 8.48, 8.28, 8.08},
	{9.09, 9.29, 9.49, 9.59, 9.49, 9.29, 9.09},
	{10.10, 10.30, 10.50, 10.60, 10.50, 10.30, 10.10},
	{11.11, 11.31, 11.51, 11.61, 11.51, 11.31, 11.11},
	{12.12, 12.32, 12.52, 12.62, 12.52, 12.32, 12.12},
	{13.13, 13.33, 13.53, 13.63, 13.53, 13.33, 13.13},
	{14.14, 14.34, 14.54, 14.64, 14.54, 14.34, 14.14},
	{15.15, 15.35, 15.55, 15.65, 15.55, 15.35, 15.15},
	{16.16, 16.36, 16.56, 16.66, 16.56, 16.36, 16.16},
	{17.17, 17.37, 17.57, 17.67, 17.57, 17.37, 17.17},
	{18.18, 18.38, 18.58, 18.68, 18.58, 18.38, 18.18},
	{19.19, 19.39, 19.59, 19.69, 19.59, 19.39, 19.19},
	{20.20, 20.40, 20.60, 20.70, 20.60, 20.40, 20.20},
	{21.21, 21.41, 21.61, 21.71, 21.61, 21.41, 21.21},
	{22.22, 22.42, 22.62, 22.72, 22.62, 22.42, 22.22},
	{23.23, 23.43, 23.63, 23.73, 23.63, 23.43, 23.23},
	{24.24, 24.44, 24.64, 24.74, 24.64, 24.44, 24.24},
	{25.25, 25.45, 25.65, 25.75, 25.65, 25.45, 25.25},
	{26.26, 26.46, 26.66, 26.76, 26.66, 26.46, 26.26},
	{27.27, 27.47, 27.67, 27.77, 27.67, 27.47, 27.27},
	{28.28, 28.48, 28.68, 28.78, 28.68, 28.48, 28.28},
	{29.29, 29.49, 29.69, 29.79, 29.69, 29.49, 29.29},
	{30.30, 30.50, 30.70, 30.80, 30.70, 30.50, 30.30},
	{31.31, 31.51, 31.71, 31.81, 31.71, 31.51, 31.31},
	{32.32, 32.52, 32.72, 32.82, 32.72, 32.52, 32.32},
	{33.33, 33.53, 33.73, 33.83, 33.73, 33.53, 33.33},
	{34.34, 34.54, 34.74, 34.84, 34.74, 34.54, 34.34},
	{35.35, 35.55, 35.75, 35.85, 35.75, 35.55, 35.35},
	{36.36, 36.56, 36.76, 36.86, 36.76, 36.56, 36.36},
	{37.37, 37.57, 37.77, 37.87, 37.77, 37.57, 37.37},
	{38.38, 38.58, 38.78, 38.88, 38.78, 38.58, 38.38},
	{39.39, 39.59, 39.79, 39.89, 39.79, 39.59, 39.39},
	{40.40, 40.60, 40.80, 40.90, 40.80, 40.60, 40.40},
	{41.41, 41.61, 41.81, 41.91, 41.81, 41.61, 41.41},
	{42.42, 42.62, 42.82, 42.92, 42.82, 42.62, 42.42},
	{43.43, 43.63, 43.83, 43.93, 43.83, 43.63, 43.43},
	{44.44, 44.64, 44.84, 44.94, 44.84, 44.64, 44.44},
	{45.45, 45.65, 45.85, 45.95, 45.85, 45.65, 45.45},
	{46.46, 46.66, 46.86, 46.96, 46.86, 46.66, 46.46},
	{47.47, 47.67, 47.87, 47.97, 47.87, 47.67, 47.47},
	{48.48, 48.68, 48.88, 48.98, 48.88, 48.68, 48.48},
	{49.49, 49.69, 49.89, 49.99, 49.89, 49.69, 49.49},
	{50.51, 50.71, 50.91, 51.01, 50.91, 50.71, 50.51},
	{51.52, 51.72, 51.92, 52.02, 51.92, 51.72, 51.52},
	{52.53, 52.73, 52.93, 53.03, 52.93, 52.73, 52.53},
	{53.54, 53.74, 53.94, 54.04, 53.94, 53.74, 53.54},
	{54.55, 54.75, 54.95, 55.05, 54.95, 54.75, 54.55},
	{55.56, 55.76, 55.96, 56.06, 55.96, 55.76, 55.56},
	{56.57, 56.77, 56.97, 57.07, 56.97, 56.77, 56.57},
	{57.58, 57.78, 57.98, 58.08, 57.98, 57.78, 57.58},
	{58.59, 58.79, 58.99, 59.09, 58.99, 58.79, 58.59},
	{59.60, 59.80, 60.00, 60.10, 60.00, 59.80, 59.60},
	{60.61, 60.81, 61.01, 61.11, 61.01, 60.81, 60.61},
	{61.62, 61.82, 62.02, 62.12, 62.02, 61.82, 61.62},
	{62.63, 62.83, 63.03, 63.13, 63.03, 62.83, 62.63},
	{63.64, 63.84, 64.04, 64.14, 64.04, 63.84, 63.64},
	{64.65, 64.85, 65.05, 65.15, 65.05, 64.85, 64.65},
	{65.66, 65.86, 66.06, 66.16, 66.06, 65.86, 65.66},
	{66.67, 66.87, 67.07, 67.17, 67.07, 66.87, 66.67},
	{67.68, 67.88, 68.08, 68.18, 68.08, 67.88, 67.68},
	{68.69, 68.89, 69.09, 69.19, 69.09, 68.89, 68.69},
	{69.70, 69.90, 70.10, 70.20, 70.10, 69.90, 69.70},
	{70.71, 70.91, 71.11, 71.21, 71.11, 70.91, 70.71},
	{71.72, 71.92, 72.12, 72.22, 72.12, 71.92, 71.72},
	{72.73, 72.93, 73.13, 73.23, 73.13, 72.93, 72.73},
	{73.74, 73.94, 74.14, 74.24, 74.14, 73.94, 73.74},
	{74.75, 74.95, 75.15, 75.25, 75.15, 74.95, 74.75},
	{75.76, 75.96, 76.16, 76.26, 76.16, 75.96, 75.76},
	{76.77, 76.97, 77.17, 77.27, 77.17, 76.97, 76.77},
	{77.78, 77.98, 78.18, 78.28, 78.18, 77.98, 77.78},
	{78.79, 78.99, 79.19, 79.29, 79.19, 78.99, 78.79},
	{79.80, 80.00, 80.20, 80.30, 80.20, 80.00, 79.80},
	{80.81, 81.01, 81.21, 81.31, 81.21, 81.01, 80.81},
	{81.82, 82.02, 82.22, 82.32, 82.22, 82.02, 81.82},
	{82.83, 83.03, 83.23, 83.33, 83.23, 83.03, 82.83},
	{83.84, 84.04, 84.24, 84.34, 84.24, 84.04, 83.84},
	{84.85, 85.05, 85.25, 85.35, 85.25, 85.05, 84.85},
	{85.86, 86.06, 86.26, 86.36, 86.26, 86.06, 85.86},
	{86.87, 87.07, 87.27, 87.37, 87.27, 87.07, 86.87},
	{87.88, 88.08, 88.28, 88.38, 88.28, 88.08, 87.88},
	{88.89, 89.09, 89.29, 89.39, 89.29, 89.09, 88.89},
	{89.90, 90.10, 90.30, 90.40, 90.30, 90.10, 89.90},
	{90.91, 91.11, 91.31, 91.41, 91.31, 91.11, 90.91},
	{91.92, 92.12, 92.32, 92.42, 92.32, 92.12, 91.92},
	{92.93, 93.13, 93.33, 93.43, 93.33, 93.13, 92.93},
	{93.94, 94.14, 94.34, 94.44, 94.34, 94.14, 93.94},
	{94.95, 95.15, 95.35, 95.45, 95.35, 95.15, 94.95},
	{95.96, 96.16, 96.36, 96.46, 96.36, 96.16, 95.96},
	{96.97, 97.17, 97.37, 97.47, 97.37, 97.17, 96.97},
	{97.98, 98.18, 98.38, 98.48, 98.38, 98.18, 97.98},
	{98.99, 99.19, 99.39, 99.49, 99.39, 99.19, 98.99},
	{100.00, 100.00, 100.00, 100.00, 100.00, 100.00, 100.00},
}

var defaultResistanceTable = [][]float32{
	{0.050, 0.045, 0.040, 0.035, 0.033, 0.030, 0.025},
	{0.045, 0.040, 0.035, 0.030, 0.028, 0.025, 0.020},
	{0.040, 0.035, 0.030, 0.025, 0.023, 0.020, 0.015},
	{0.035, 0.030, 0.025, 0.020, 0.018, 0.015, 0.012},
	{0.030, 0.025, 0.020, 0.015, 0.013, 0.010, 0.008},
	{0.025, 0.020, 0.015, 0.010, 0.008, 0.005, 0.003},
	{0.020, 0.015, 0.010, 0.005, 0.003, 0.002, 0.001},
	{0.018, 0.013, 0.008, 0.003, 0.001, 0.000, 0.000},
	{0.015, 0.010, 0.005, 0.000, 0.000, 0.000, 0.000},
	{0.012, 0.007, 0.002, 0.000, 0.000, 0.000, 0.000},
}

// Default returns the compiled-in calibration. The returned pack is shared;
// callers must treat it as read only.
func Default() *Pack {
	return &defaultPack
}

var defaultPack = Pack{
	VoltageAxis:     defaultVoltageAxis,
	TemperatureAxis: defaultTemperatureAxis,
	SOCAxis:         defaultSOCAxis,
	SOCTable:        defaultSOCTable,
	ResistanceTable: defaultResistanceTable,
}
