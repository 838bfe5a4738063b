package controllers

import (
	"net/http"

	"github.com/merodoctor/merodoctor-backend/api/middleware"
	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/api/validators"
	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/triage"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

// Symptoms carries tag selections, Text the free-form description. Either
// alone is enough; the service rejects a submission where both are blank.
type analyzeRequest struct {
	Symptoms []string `json:"symptoms" validate:"dive,max=200"`
	Text     string   `json:"text" validate:"max=500"`
}

type dosageOptionDTO struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

type recommendationDTO struct {
	Medicine      medicineDTO       `json:"medicine"`
	DosageOptions []dosageOptionDTO `json:"dosage_options"`
}

type analysisDTO struct {
	Urgent          bool                `json:"urgent"`
	Symptoms        []string            `json:"symptoms"`
	Doctors         []doctorDTO         `json:"doctors,omitempty"`
	Recommendations []recommendationDTO `json:"recommendations,omitempty"`
}

// AnalyzeSymptoms runs the triage rules over the submitted symptoms and
// returns either an urgent consultation prompt or medicine recommendations.
func AnalyzeSymptoms(svc triage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload analyzeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fragments := payload.Symptoms
		if payload.Text != "" {
			fragments = append(fragments, payload.Text)
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		result, err := svc.Analyze(r.Context(), sessionID, fragments)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newAnalysisDTO(result))
	}
}

func newAnalysisDTO(result *triage.Result) analysisDTO {
	out := analysisDTO{
		Urgent:   result.Urgent,
		Symptoms: result.Symptoms,
	}
	for _, doctor := range result.Doctors {
		out.Doctors = append(out.Doctors, newDoctorDTO(doctor))
	}
	for _, rec := range result.Recommendations {
		out.Recommendations = append(out.Recommendations, recommendationDTO{
			Medicine:      newMedicineDTO(rec.Medicine),
			DosageOptions: newDosageOptionDTOs(rec.DosageOptions),
		})
	}
	return out
}

func newDosageOptionDTOs(options []catalog.DosageOption) []dosageOptionDTO {
	out := make([]dosageOptionDTO, 0, len(options))
	for _, option := range options {
		out = append(out, dosageOptionDTO{Label: option.Label, Quantity: option.Quantity})
	}
	return out
}
