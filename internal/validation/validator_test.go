// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

type testSuggestion struct {
	ID     int64          `json:"id" validate:"gte=0"`
	Status ranking.Status `json:"status" validate:"omitempty,suggestion_status"`
}

type testRequest struct {
	UserID      int64                   `json:"user_id" validate:"required,gt=0"`
	Role        ranking.Role            `json:"role" validate:"max=32"`
	Type        ranking.InteractionType `json:"type" validate:"required,interaction_type"`
	VoteType    ranking.VoteType        `json:"vote_type" validate:"omitempty,vote_type"`
	Limit       int                     `json:"limit" validate:"min=0,max=100"`
	Context     string                  `json:"context" validate:"max=10"`
	Suggestions []testSuggestion        `json:"suggestions" validate:"max=3,dive"`
}

func validRequest() testRequest {
	return testRequest{
		UserID:   7,
		Role:     ranking.RolePremium,
		Type:     ranking.InteractionVote,
		VoteType: ranking.VoteUp,
		Limit:    5,
		Suggestions: []testSuggestion{
			{ID: 1, Status: ranking.StatusPending},
			{ID: 2},
		},
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*testRequest)
		wantField string
		wantTag   string
	}{
		{"valid", func(*testRequest) {}, "", ""},
		{"empty optional enums", func(r *testRequest) { r.Role = ""; r.VoteType = "" }, "", ""},
		{"missing user", func(r *testRequest) { r.UserID = 0 }, "user_id", "required"},
		{"negative user", func(r *testRequest) { r.UserID = -1 }, "user_id", "gt"},
		{"unknown role accepted", func(r *testRequest) { r.Role = "MODERATOR" }, "", ""},
		{"role too long", func(r *testRequest) { r.Role = ranking.Role(strings.Repeat("R", 33)) }, "role", "max"},
		{"bad interaction", func(r *testRequest) { r.Type = "share" }, "type", "interaction_type"},
		{"lowercase vote type", func(r *testRequest) { r.VoteType = "upvote" }, "vote_type", "vote_type"},
		{"limit too large", func(r *testRequest) { r.Limit = 101 }, "limit", "max"},
		{"nested status", func(r *testRequest) { r.Suggestions[1].Status = "OPEN" }, "suggestions[1].status", "suggestion_status"},
		{"too many suggestions", func(r *testRequest) {
			r.Suggestions = make([]testSuggestion, 4)
		}, "suggestions", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)
			verr := ValidateStruct(&req)

			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors (%v), want 1", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("field = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("tag = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*testRequest)
		want   string
	}{
		{"required", func(r *testRequest) { r.UserID = 0 }, "user_id is required"},
		{"gt", func(r *testRequest) { r.UserID = -3 }, "user_id must be greater than 0"},
		{"enum", func(r *testRequest) { r.VoteType = "SIDEVOTE" }, "vote_type must be one of: UPVOTE, DOWNVOTE"},
		{"string max", func(r *testRequest) { r.Context = "a-very-long-context" }, "context must be at most 10 characters"},
		{"slice max", func(r *testRequest) { r.Suggestions = make([]testSuggestion, 5) }, "suggestions must be at most 3 items"},
		{"number max", func(r *testRequest) { r.Limit = 1000 }, "limit must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)
			verr := ValidateStruct(&req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.Type = ""
	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
	}
	if apiErr.Message != "type is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "type" || apiErr.Details["tag"] != "required" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.UserID = 0
	req.Limit = -1
	apiErr := ValidateStruct(&req).ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	for _, want := range []string{"user_id: user_id is required", "limit: limit must be at least 0"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q missing %q", apiErr.Message, want)
		}
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != ErrorCode || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
	if got := (&RequestValidationError{}).Error(); got != "validation failed" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(42)
	if verr == nil {
		t.Fatal("ValidateStruct(42) = nil, want error")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("field = %q, want unknown", verr.Errors()[0].Field())
	}
}
