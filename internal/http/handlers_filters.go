package http

import (
	"fmt"
	"net/http"

	"donorbase/internal/core"
	"donorbase/internal/log"
)

func (s *Server) handleGetGlobalFilters(w http.ResponseWriter, r *http.Request) {
	userID := sanitizeInput(r.PathValue("id"))
	if userID == "" {
		BadRequestError("user id is required").Write(w)
		return
	}
	f, err := s.filters.GlobalFilters(r.Context(), userID)
	if err != nil {
		s.fail(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Data(f).Write(w)
}

// handlePutGlobalFilters replaces the user's filter set.
func (s *Server) handlePutGlobalFilters(w http.ResponseWriter, r *http.Request) {
	userID := sanitizeInput(r.PathValue("id"))
	if userID == "" {
		BadRequestError("user id is required").Write(w)
		return
	}

	var f core.GlobalFilters
	if err := DecodeJSON(w, r, &f); err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	if err := validateGlobalFilters(f); err != nil {
		s.fail(w, r, log.OpValidate, err)
		return
	}

	if err := s.filters.SaveGlobalFilters(r.Context(), userID, f); err != nil {
		s.fail(w, r, log.OpUpdate, err)
		return
	}
	s.metrics.filterUpdates.Add(1)
	log.FromContext(r.Context()).InfoContext(r.Context(), "Global filters saved",
		log.FieldUserID, userID,
		log.FieldOperation, log.OpUpdate)
	NewJSONResponse().Data(f).Write(w)
}

// validateGlobalFilters rejects filter sets that could never be evaluated.
func validateGlobalFilters(f core.GlobalFilters) error {
	if _, _, err := f.Dates(); err != nil {
		return err
	}
	if f.AmountMin != nil && f.AmountMin.IsNegative() {
		return fmt.Errorf("%w: amountMin must not be negative", core.ErrInvalidAmount)
	}
	if f.AmountMax != nil && f.AmountMax.IsNegative() {
		return fmt.Errorf("%w: amountMax must not be negative", core.ErrInvalidAmount)
	}
	if f.AmountMin != nil && f.AmountMax != nil && f.AmountMin.GreaterThan(*f.AmountMax) {
		return fmt.Errorf("%w: amountMin is greater than amountMax", core.ErrInvalidAmount)
	}
	return nil
}
