package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/merodoctor/merodoctor-backend/api/responses"
	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

func ListMedicines(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicines, err := svc.ListMedicines(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]medicineDTO, 0, len(medicines))
		for _, medicine := range medicines {
			out = append(out, newMedicineDTO(medicine))
		}
		responses.WriteSuccess(w, out)
	}
}

func GetMedicine(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicine, err := svc.GetMedicine(r.Context(), chi.URLParam(r, "medicineKey"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newMedicineDTO(*medicine))
	}
}

func ListDoctors(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListDoctors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]doctorDTO, 0, len(doctors))
		for _, doctor := range doctors {
			out = append(out, newDoctorDTO(doctor))
		}
		responses.WriteSuccess(w, out)
	}
}

func GetDoctor(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := strconv.Atoi(chi.URLParam(r, "doctorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid doctor id"))
			return
		}

		doctor, err := svc.GetDoctor(r.Context(), doctorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDoctorDTO(*doctor))
	}
}

func ListDosageOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newDosageOptionDTOs(catalog.DosageOptions()))
	}
}
