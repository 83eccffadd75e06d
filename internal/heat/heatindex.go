package heat

import "strconv"

// heatIndexMinTempC is the lowest air temperature the regression is applied to.
// Below it the air temperature is returned as-is, so Compute jumps at exactly 27 °C.
const heatIndexMinTempC = 27.0

// Compute returns the apparent temperature for an air temperature in °C and a
// relative humidity in percent (0-100), using the Rothfusz regression in Celsius
// form rounded to one decimal place.
func Compute(temperatureC, relativeHumidityPct float64) float64 {
	if temperatureC < heatIndexMinTempC {
		return temperatureC
	}

	t := temperatureC
	rh := relativeHumidityPct

	hi := -8.78 +
		1.611*t +
		2.339*rh -
		0.146*t*rh -
		0.0123*t*t -
		0.0164*rh*rh +
		0.00221*t*t*rh +
		0.000725*t*rh*rh -
		0.00000358*t*t*rh*rh

	return roundTenth(hi)
}

// HeatIndex computes the heat index for a single forecast hour
func HeatIndex(p HourlyPoint) HeatIndexResult {
	return HeatIndexResult{
		HeatIndexC: Compute(p.TemperatureC, p.RelativeHumidityPct),
		Source:     p,
	}
}

// HeatIndexes computes the heat index of every hour in the series
func HeatIndexes(series HourlySeries) []HeatIndexResult {
	results := make([]HeatIndexResult, len(series))
	for i, p := range series {
		results[i] = HeatIndex(p)
	}
	return results
}

// Outlook returns heat indexes for up to hours points starting at index from.
// Out of range starts yield an empty slice.
func Outlook(series HourlySeries, from, hours int) []HeatIndexResult {
	if from < 0 || from >= len(series) || hours <= 0 {
		return []HeatIndexResult{}
	}
	end := from + hours
	if end > len(series) {
		end = len(series)
	}
	return HeatIndexes(series[from:end])
}

// roundTenth rounds the exact binary value to one decimal. Scaling by 10 first
// can push a value sitting just below .x5 onto it.
func roundTenth(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
