package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and drops empty", []string{" go ", "", "  ", "react"}, []string{"go", "react"}},
		{"dedups keeping first order", []string{"go", "react", "go"}, []string{"go", "react"}},
		{"nil", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkills(tt.in))
		})
	}
}

func TestSkillList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SkillList
	}{
		{"list", `{"skills":["Go"," SQL ","Go"]}`, SkillList{"Go", "SQL"}},
		{"comma string", `{"skills":"Go, SQL,,Figma "}`, SkillList{"Go", "SQL", "Figma"}},
		{"null", `{"skills":null}`, nil},
		{"missing", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateProjectRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Skills)
		})
	}

	t.Run("rejects numbers", func(t *testing.T) {
		var req CreateProjectRequest
		assert.Error(t, json.Unmarshal([]byte(`{"skills":42}`), &req))
	})
}
