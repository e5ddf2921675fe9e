package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/maizeyield/backend/pkg/utils"
)

// areaPrecisionEps absorbs float64 representation noise when checking the
// 2-decimal rule, so values like 0.07 are not misclassified by exact
// equality.
const areaPrecisionEps = 1e-9

// ValidateRequest checks every field of req against its domain constraint
// using the given catalog snapshot and returns the normalized request
// (season lowercased) ready to send. A *FieldError is returned for the
// first violation found; such requests must never reach the network.
func ValidateRequest(req PredictionRequest, catalog Catalog) (PredictionRequest, error) {
	if !catalog.Ready() {
		return PredictionRequest{}, &FieldError{
			Field:  "state",
			Reason: "state and grade lists have not been fetched yet",
		}
	}

	if !catalog.HasState(req.State) {
		return PredictionRequest{}, &FieldError{
			Field:  "state",
			Reason: fmt.Sprintf("%q is not a recognized state", req.State),
		}
	}

	season := strings.ToLower(req.Season)
	if season != SeasonWet && season != SeasonDry {
		return PredictionRequest{}, &FieldError{
			Field:  "season",
			Reason: fmt.Sprintf("must be %q or %q", SeasonWet, SeasonDry),
		}
	}

	if req.Year < YearMin || req.Year > YearMax {
		return PredictionRequest{}, &FieldError{
			Field:  "year",
			Reason: fmt.Sprintf("must be between %d and %d", YearMin, YearMax),
		}
	}

	if req.AreaHa <= 0 || req.AreaHa > AreaMaxHa {
		return PredictionRequest{}, &FieldError{
			Field:  "area_ha",
			Reason: fmt.Sprintf("must be greater than 0 and at most %.0f", AreaMaxHa),
		}
	}
	if math.Abs(utils.RoundTo(req.AreaHa, 2)-req.AreaHa) > areaPrecisionEps {
		return PredictionRequest{}, &FieldError{
			Field:  "area_ha",
			Reason: "at most 2 decimal places are accepted",
		}
	}

	if !catalog.HasGrade(req.QualityGrade) {
		return PredictionRequest{}, &FieldError{
			Field:  "quality_grade",
			Reason: fmt.Sprintf("%q is not a recognized quality grade", req.QualityGrade),
		}
	}

	normalized := req
	normalized.Season = season
	return normalized, nil
}
