// Package classify implements ResponseClassifier (spec.md §2.5/§4.3):
// given an operation's lowered, sorted responses, it drops a trailing
// Default entry that's redundant with a preceding 2xx range, then
// independently collapses the success group and the error group into
// synthesized Multiple-variant enums. Grounded on progenitor-impl's
// Generator::extract_responses and generate_operation_error_enum.
package classify

import (
	"fmt"

	"github.com/genclient/genclient/internal/ir"
)

// Classify returns the final response set for an operation. Responses are
// first split into a success group (2xx / Range(2)), an error group
// (everything else that isn't Default), and a Default entry passed through
// untouched. Each group is then collapsed independently:
//
//   - The success group collapses into one ResponseKindMultiple named
//     "{OperationId}Response" only when its members have more than one
//     distinct kind (each ResponseKindType counted by its type) and at
//     least one of them is ResponseKindType; otherwise its members (or
//     nothing, if empty) pass through as-is.
//   - The error group ALWAYS collapses into one ResponseKindMultiple named
//     "{OperationId}Error" as soon as it is non-empty — even a single error
//     response — carrying HasUnknownValue so the emitter adds an escape
//     hatch for status codes the document never declared. This mirrors
//     generate_operation_error_enum, which builds the error enum
//     unconditionally whenever any error response exists and always appends
//     an UnknownValue variant, regardless of how many distinct error body
//     types are actually in play.
//
// Success and error types are never conflated into a shared enum: a
// Multiple{"{OperationId}Error"} response is always distinct from the
// operation's success type, per spec.md §7 domain 2.
func Classify(operationID string, responses []ir.OperationResponse) []ir.OperationResponse {
	responses = dropRedundantDefault(responses)

	var success, errs, other []ir.OperationResponse
	for _, r := range responses {
		switch {
		case r.Status.Kind != ir.StatusDefault && r.Status.IsSuccessOrDefault():
			success = append(success, r)
		case r.Status.Kind != ir.StatusDefault && r.Status.IsErrorOrDefault():
			errs = append(errs, r)
		default:
			other = append(other, r)
		}
	}

	var out []ir.OperationResponse
	out = append(out, collapseGroup(success, operationID+"Response", false)...)
	out = append(out, collapseGroup(errs, operationID+"Error", true)...)
	out = append(out, other...)

	ir.SortResponses(out)
	return out
}

// dropRedundantDefault removes a trailing Default response when preceded
// by a Range(2) entry — the original's "default is redundant with an
// explicit 2xx catch-all" rule.
func dropRedundantDefault(responses []ir.OperationResponse) []ir.OperationResponse {
	if len(responses) < 2 {
		return responses
	}
	last := responses[len(responses)-1]
	if last.Status.Kind != ir.StatusDefault {
		return responses
	}
	for _, r := range responses[:len(responses)-1] {
		if r.Status.Kind == ir.StatusRange && r.Status.Range == 2 {
			return responses[:len(responses)-1]
		}
	}
	return responses
}

// collapseGroup synthesizes a single ResponseKindMultiple entry over group
// when warranted. A group of 0 passes through empty. Unless
// alwaysSynthesize forces collapse (the error side), a group whose members
// all share one kind (and, for ResponseKindType, one type) passes through
// unchanged; a group with more than one distinct kind collapses when at
// least one member is ResponseKindType, matching spec.md §4.3's "if at
// least one response has kind Type(_), synthesize Multiple" rule.
func collapseGroup(group []ir.OperationResponse, enumName string, alwaysSynthesize bool) []ir.OperationResponse {
	if len(group) == 0 {
		return nil
	}
	mixed := false
	for _, r := range group[1:] {
		if r.Kind != group[0].Kind || r.Type != group[0].Type {
			mixed = true
		}
	}
	if !alwaysSynthesize && (!mixed || !anyType(group)) {
		return group
	}

	variants := make([]ir.ResponseVariant, len(group))
	for i, r := range group {
		variants[i] = ir.ResponseVariant{Status: r.Status, Kind: r.Kind, Type: r.Type}
	}
	return []ir.OperationResponse{{
		Status:          lowestStatus(group),
		Kind:            ir.ResponseKindMultiple,
		Variants:        variants,
		EnumName:        enumName,
		HasUnknownValue: alwaysSynthesize,
	}}
}

func anyType(group []ir.OperationResponse) bool {
	for _, r := range group {
		if r.Kind == ir.ResponseKindType {
			return true
		}
	}
	return false
}

func lowestStatus(group []ir.OperationResponse) ir.ResponseStatus {
	if len(group) == 0 {
		return ir.ResponseStatus{Kind: ir.StatusDefault}
	}
	lowest := group[0].Status
	for _, r := range group[1:] {
		if r.Status.ToValue() < lowest.ToValue() {
			lowest = r.Status
		}
	}
	return lowest
}

// VariantFieldName is the Go struct field name §4.4/§4.5 assigns a
// Multiple-variant response's pointer field, e.g. "Status200", "Status4xx",
// or "Default".
func VariantFieldName(status ir.ResponseStatus) string {
	return status.VariantName()
}

// Validate is a defensive check that every Multiple response's EnumName is
// non-empty, guarding against a future refactor silently dropping it.
func Validate(responses []ir.OperationResponse) error {
	for _, r := range responses {
		if r.Kind == ir.ResponseKindMultiple && r.EnumName == "" {
			return fmt.Errorf("multiple-variant response is missing its enum name")
		}
	}
	return nil
}
