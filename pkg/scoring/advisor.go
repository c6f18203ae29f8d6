package scoring

import (
	"strings"

	"cropadvisor/entities"
)

// Advise builds soil and fertilizer guidance from nitrogen, phosphorus and
// humidity thresholds. Clauses are appended in that order.
func Advise(p entities.ParameterSet) entities.Advice {
	var soil, fert strings.Builder
	soil.WriteString("Based on your soil conditions: ")
	fert.WriteString("Fertilizer recommendations: ")

	switch {
	case p.Nitrogen < 30:
		soil.WriteString("Consider adding organic matter to improve nitrogen levels. ")
		fert.WriteString("Apply nitrogen-rich fertilizers like urea or compost. ")
	case p.Nitrogen > 200:
		soil.WriteString("Nitrogen levels are high - ensure good drainage to prevent leaching. ")
		fert.WriteString("Reduce nitrogen application and focus on phosphorus and potassium. ")
	default:
		soil.WriteString("Nitrogen levels are adequate for most crops. ")
		fert.WriteString("Maintain current nitrogen levels with balanced fertilization. ")
	}

	switch {
	case p.Phosphorus < 20:
		soil.WriteString("Low phosphorus may limit root development. ")
		fert.WriteString("Add phosphorus-rich fertilizers like rock phosphate. ")
	case p.Phosphorus > 100:
		soil.WriteString("Phosphorus levels are excellent for crop growth. ")
		fert.WriteString("Continue current phosphorus management practices. ")
	default:
		soil.WriteString("Phosphorus levels are suitable for healthy growth. ")
		fert.WriteString("Maintain phosphorus with standard fertilizer applications. ")
	}

	switch {
	case p.Humidity < 40:
		soil.WriteString("Consider mulching to retain soil moisture in low humidity conditions.")
	case p.Humidity > 80:
		soil.WriteString("Ensure good drainage to prevent waterlogging in high humidity.")
	}

	return entities.Advice{SoilAdvice: soil.String(), FertilizerAdvice: fert.String()}
}
