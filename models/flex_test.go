package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexString
		wantErr bool
	}{
		{name: "string", input: `"7.5"`, want: "7.5"},
		{name: "integer", input: `42`, want: "42"},
		{name: "float keeps text", input: `7.50`, want: "7.50"},
		{name: "null", input: `null`, want: ""},
		{name: "bool", input: `true`, wantErr: true},
		{name: "object", input: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexString
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplicant_DecodesNumericIDs(t *testing.T) {
	body := `{"id": 12, "created_by": 3, "full_name": "Ada", "overall_score": 7.5,
		"academics": [{"id": 1, "degree_level": "Bachelors", "obtained_mark": "3.9"}]}`

	var a Applicant
	require.NoError(t, json.Unmarshal([]byte(body), &a))

	assert.Equal(t, "12", a.ID.String())
	assert.Equal(t, FlexString("3"), a.CreatedBy)
	assert.Equal(t, "Ada", a.FullName)
	assert.Equal(t, FlexString("7.5"), a.OverallScore)
	require.Len(t, a.Academics, 1)
	assert.Equal(t, FlexString("1"), a.Academics[0].ID)
	assert.Equal(t, DegreeBachelors, a.Academics[0].DegreeLevel)
}

func TestTokenClaims_GetUserID(t *testing.T) {
	withID := &TokenClaims{UserID: "5"}
	id, err := withID.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, "5", id)

	withSubject := &TokenClaims{}
	withSubject.Subject = "9"
	id, err = withSubject.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, "9", id)

	_, err = (&TokenClaims{}).GetUserID()
	assert.Error(t, err)
}

func TestSession_IsZero(t *testing.T) {
	assert.True(t, Session{}.IsZero())
	assert.False(t, Session{RefreshToken: "r"}.IsZero())
}
