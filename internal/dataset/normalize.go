package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric = regexp.MustCompile(`[^\d.,]`)
	firstInt   = regexp.MustCompile(`\d+`)
)

// CoerceNumber parses a numeric cell that may carry currency symbols and
// Dutch thousands separators, e.g. "€ 425.000" or "117 m²". The dot is
// treated as a thousands separator and the comma as the decimal mark.
func CoerceNumber(value string) (float64, bool) {
	digits := nonNumeric.ReplaceAllString(strings.TrimSpace(value), "")
	if digits == "" {
		return 0, false
	}
	digits = strings.ReplaceAll(digits, ".", "")
	digits = strings.ReplaceAll(digits, ",", ".")
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseRooms extracts the room count from listing text such as
// "5 kamers (4 slaapkamers)".
func ParseRooms(value string) (int, bool) {
	match := firstInt.FindString(value)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeEnergyLabel folds listing labels into canonical form: plus signs
// become digits, so "A++" becomes "A2" and "A++++" becomes "A4".
func NormalizeEnergyLabel(label string) string {
	text := strings.ToUpper(strings.TrimSpace(label))
	text = strings.ReplaceAll(text, "++++", "4")
	text = strings.ReplaceAll(text, "+++", "3")
	text = strings.ReplaceAll(text, "++", "2")
	text = strings.ReplaceAll(text, "+", "1")
	return text
}

// NormalizeHouseType maps Dutch listing descriptions onto canonical house
// type categories.
func NormalizeHouseType(value string) string {
	text := strings.ToLower(value)
	switch {
	case strings.Contains(text, "appartement"):
		return "Apartment"
	case strings.Contains(text, "hoekwoning"):
		return "Corner"
	case strings.Contains(text, "tussenwoning"), strings.Contains(text, "eindwoning"):
		return "Terraced"
	case strings.Contains(text, "2-onder-1-kap"),
		strings.Contains(text, "halfvrijstaande"),
		strings.Contains(text, "geschakelde"):
		return "Semi-detached"
	case strings.Contains(text, "vrijstaande"),
		strings.Contains(text, "villa"),
		strings.Contains(text, "landhuis"),
		strings.Contains(text, "woonboerderij"),
		strings.Contains(text, "bungalow"):
		return "Detached"
	case strings.Contains(text, "herenhuis"):
		return "Townhouse"
	default:
		return "Other"
	}
}

// NormalizeGarden maps Dutch garden descriptions onto canonical categories.
// A listing naming several orientations collapses to "Multiple"; a
// wraparound garden wins over everything else.
func NormalizeGarden(value string) string {
	text := strings.ToLower(value)
	hasBack := strings.Contains(text, "achtertuin")
	hasFront := strings.Contains(text, "voortuin")
	hasSide := strings.Contains(text, "zijtuin")
	hasAround := strings.Contains(text, "tuin rondom")
	hasTerrace := strings.Contains(text, "zonneterras") ||
		strings.Contains(text, "patio") ||
		strings.Contains(text, "atrium")

	count := 0
	for _, f := range []bool{hasBack, hasFront, hasSide, hasAround} {
		if f {
			count++
		}
	}

	switch {
	case hasAround:
		return "Around"
	case count >= 2:
		return "Multiple"
	case hasBack:
		return "Back"
	case hasFront:
		return "Front"
	case hasSide:
		return "Side"
	case hasTerrace:
		return "Terrace/Patio"
	default:
		return "Other/Unknown"
	}
}

// NormalizeRoof maps Dutch roof descriptions onto canonical categories.
func NormalizeRoof(value string) string {
	text := strings.ToLower(value)
	switch {
	case strings.Contains(text, "plat dak"):
		return "Flat"
	case strings.Contains(text, "zadeldak"):
		return "Gable"
	case strings.Contains(text, "schilddak"):
		return "Hip"
	case strings.Contains(text, "mansarde"):
		return "Mansard"
	case strings.Contains(text, "lessenaardak"):
		return "Shed"
	case strings.Contains(text, "tentdak"):
		return "Tent"
	case strings.Contains(text, "samengesteld"):
		return "Composite"
	case strings.Contains(text, "riet"):
		return "Thatched"
	default:
		return "Other/Unknown"
	}
}

// NormalizePosition maps Dutch location descriptions onto canonical
// categories. More specific situations are matched before generic ones.
func NormalizePosition(value string) string {
	text := strings.ToLower(value)
	switch {
	case strings.Contains(text, "drukke weg"):
		return "Busy road"
	case strings.Contains(text, "in centrum"):
		return "Center"
	case strings.Contains(text, "aan water"):
		return "Water"
	case strings.Contains(text, "bosrijke"):
		return "Forest"
	case strings.Contains(text, "aan park"):
		return "Park"
	case strings.Contains(text, "vrij uitzicht"), strings.Contains(text, "open ligging"):
		return "View/Open"
	case strings.Contains(text, "beschutte ligging"), strings.Contains(text, "aan rustige weg"):
		return "Quiet/Sheltered"
	case strings.Contains(text, "in woonwijk"):
		return "Residential"
	default:
		return "Other/Unknown"
	}
}

// NormalizeToilet summarizes Dutch sanitary descriptions such as
// "1 badkamer en 2 aparte toiletten" into a bath/toilet bucket label.
func NormalizeToilet(value string) string {
	text := strings.ToLower(value)
	bath, toilet := 0, 0
	for _, part := range strings.Split(text, "en") {
		n := 0
		if match := firstInt.FindString(part); match != "" {
			n, _ = strconv.Atoi(match)
		}
		if strings.Contains(part, "badkamer") && n > bath {
			bath = n
		}
		if strings.Contains(part, "toilet") && n > toilet {
			toilet = n
		}
	}

	bathLabel := "1 bath"
	if bath >= 2 {
		bathLabel = "2+ bath"
	}
	toiletLabel := "0 toilet"
	switch {
	case toilet >= 2:
		toiletLabel = "2+ toilet"
	case toilet == 1:
		toiletLabel = "1 toilet"
	}
	return bathLabel + ", " + toiletLabel
}

// NormalizeFloors buckets the floor count from listing text, with "4+"
// capping the top end.
func NormalizeFloors(value string) string {
	match := firstInt.FindString(strings.ToLower(value))
	if match == "" {
		return "Unknown"
	}
	floors, err := strconv.Atoi(match)
	if err != nil {
		return "Unknown"
	}
	if floors >= 4 {
		return "4+"
	}
	return strconv.Itoa(floors)
}
