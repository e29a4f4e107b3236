package utils

import "errors"

// CalculateBMI takes height in centimeters and weight in kilograms, the units
// the profile stores. Inputs outside a plausible human range are rejected so
// the advisor prompt never carries a garbage figure.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	meters := heightCm / 100.0
	return weightKg / (meters * meters), nil
}

// BMICategory maps a BMI value onto the standard WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
