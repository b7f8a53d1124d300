package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSummarySchema(t *testing.T) {
	schema := BuildSummaryJSONSchema()

	cases := []struct {
		name string
		data string
		ok   bool
	}{
		{"summary only", `{"summary":"short overview"}`, true},
		{"summary with points", `{"summary":"overview","points":["a","b"]}`, true},
		{"missing summary", `{"points":["a"]}`, false},
		{"empty summary", `{"summary":""}`, false},
		{"extra field", `{"summary":"x","verdict":"good"}`, false},
		{"points not strings", `{"summary":"x","points":[1,2]}`, false},
		{"not an object", `"just a string"`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSONAgainstSchema(schema, []byte(tc.data))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	err := ValidateJSONAgainstSchema(BuildSummaryJSONSchema(), []byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal data")
}
