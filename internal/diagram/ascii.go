package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/mweissbach/gospring/internal/spring"
)

// CharacteristicData holds everything needed to draw a load–deflection
// (or torque–angle) characteristic from a calculation result.
type CharacteristicData struct {
	Result spring.Result
	// Rotational switches the axis labels to angle/torque.
	Rotational bool
}

// samples along the characteristic for terminal plotting.
const asciiSamples = 60

// DrawASCIICharacteristic renders the linear characteristic up to the
// travel limit as a terminal chart, with the requested load points
// listed underneath.
func DrawASCIICharacteristic(data CharacteristicData) string {
	res := data.Result
	maxTravel := travelLimit(res)
	if maxTravel <= 0 || res.Rate <= 0 {
		return "  (no characteristic: geometry invalid)\n"
	}

	series := make([]float64, asciiSamples+1)
	for i := 0; i <= asciiSamples; i++ {
		series[i] = res.Rate * maxTravel * float64(i) / asciiSamples
	}

	unitX, unitY := "mm", "N"
	if data.Rotational {
		unitX, unitY = "deg", "N-mm"
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(64),
		asciigraph.Caption(fmt.Sprintf("load (%s) over travel 0..%.1f %s", unitY, maxTravel, unitX)),
	))
	sb.WriteString("\n\n")

	for i, p := range res.Points {
		marker := " "
		switch p.Status {
		case spring.StatusWarning:
			marker = "!"
		case spring.StatusError:
			marker = "x"
		}
		sb.WriteString(fmt.Sprintf("  %s P%d: travel %.2f %s -> %.2f %s, stress %.1f MPa [%s]\n",
			marker, i+1, p.Deflection, unitX, p.Load, unitY, p.Stress, p.Status))
		if p.Message != "" {
			sb.WriteString(fmt.Sprintf("      %s\n", p.Message))
		}
	}
	return sb.String()
}

// travelLimit returns the usable travel of the characteristic: to the
// close-out angle for rotational families, to solid for axial ones,
// falling back to the largest requested point.
func travelLimit(res spring.Result) float64 {
	if res.CloseOutAngle > 0 {
		return res.CloseOutAngle
	}
	if res.FreeLength > 0 && res.SolidLength > 0 && res.FreeLength > res.SolidLength {
		return res.FreeLength - res.SolidLength
	}
	max := 0.0
	for _, p := range res.Points {
		if p.Deflection > max {
			max = p.Deflection
		}
	}
	return max
}
