// Package http serves the report API.
//
// This file turns query strings and JSON bodies into report filters.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"donorbase/internal/config"
	"donorbase/internal/core"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// ParseReportQuery reads report filters from query parameters:
//
//	userId, groupBy, years, donorIds, campaignIds, donationTypes,
//	dateFrom, dateTo, amountMin, amountMax, reportingCurrency,
//	rates (USD:3.7,EUR:4), sort (name,year:<label>:desc), page,
//	pageSize, showDetails, showActualPayments, asOf.
func ParseReportQuery(q url.Values) (core.ReportFilters, error) {
	f := core.ReportFilters{
		UserID:            sanitizeInput(q.Get("userId")),
		GroupBy:           core.GroupBy(sanitizeInput(q.Get("groupBy"))),
		Years:             sanitizeInput(q.Get("years")),
		DonorIDs:          splitList(q["donorIds"]),
		CampaignIDs:       splitList(q["campaignIds"]),
		DateFrom:          sanitizeInput(q.Get("dateFrom")),
		DateTo:            sanitizeInput(q.Get("dateTo")),
		ReportingCurrency: sanitizeInput(q.Get("reportingCurrency")),
		Sort:              ParseSort(q.Get("sort")),
	}
	for _, t := range splitList(q["donationTypes"]) {
		f.DonationTypes = append(f.DonationTypes, core.DonationType(t))
	}

	var err error
	if f.AmountMin, err = parseAmountBound("amountMin", q.Get("amountMin")); err != nil {
		return f, err
	}
	if f.AmountMax, err = parseAmountBound("amountMax", q.Get("amountMax")); err != nil {
		return f, err
	}
	if raw := q.Get("rates"); raw != "" {
		if f.ConversionRates, err = config.ParseRates(raw); err != nil {
			return f, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if f.Page, err = parseInt("page", q.Get("page")); err != nil {
		return f, err
	}
	if f.PageSize, err = parseInt("pageSize", q.Get("pageSize")); err != nil {
		return f, err
	}
	if f.ShowDetails, err = parseBool("showDetails", q.Get("showDetails")); err != nil {
		return f, err
	}
	if f.ShowActual, err = parseBool("showActualPayments", q.Get("showActualPayments")); err != nil {
		return f, err
	}
	asOf, err := core.ParseDateFilter(q.Get("asOf"))
	if err != nil {
		return f, err
	}
	if asOf != nil {
		f.AsOf = *asOf
	}
	return f, nil
}

// ParseSort reads a comma-separated sort list. Each item is a key with an
// optional ":asc" or ":desc" suffix; year keys keep their own colon
// (year:תשפ״ה:desc).
func ParseSort(s string) []core.SortSpec {
	var specs []core.SortSpec
	for _, item := range strings.Split(s, ",") {
		item = sanitizeInput(item)
		if item == "" {
			continue
		}
		spec := core.SortSpec{Key: item}
		if key, ok := strings.CutSuffix(item, ":desc"); ok {
			spec = core.SortSpec{Key: key, Desc: true}
		} else if key, ok := strings.CutSuffix(item, ":asc"); ok {
			spec.Key = key
		}
		specs = append(specs, spec)
	}
	return specs
}

// DecodeJSON decodes a bounded JSON body into v, rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", errBadRequest)
	}
	return nil
}

func parseAmountBound(name, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%w: %s=%q", core.ErrInvalidAmount, name, s)
	}
	return &d, nil
}

func parseInt(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return n, nil
}

func parseBool(name, s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", errBadRequest, name)
	}
	return b, nil
}
