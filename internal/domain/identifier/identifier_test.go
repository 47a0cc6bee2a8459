package identifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		last    string
		want    string
		wantErr bool
	}{
		{"no previous id", PrefixAuthorization, "", "AUTH001", false},
		{"simple increment", PrefixAuthorization, "AUTH001", "AUTH002", false},
		{"carry into tens", PrefixAuthorization, "AUTH009", "AUTH010", false},
		{"grows past three digits", PrefixAuthorization, "AUTH999", "AUTH1000", false},
		{"wider suffix kept", PrefixAuthorization, "AUTH1000", "AUTH1001", false},
		{"unpadded suffix", PrefixPatient, "PAT7", "PAT008", false},
		{"other prefix restarts", PrefixInsurance, "PAT004", "INS001", false},
		{"provider prefix", PrefixProvider, "NPI041", "NPI042", false},
		{"garbage suffix", PrefixAuthorization, "AUTHxyz", "AUTH001", true},
		{"empty suffix", PrefixAuthorization, "AUTH", "AUTH001", true},
		{"negative suffix", PrefixAuthorization, "AUTH-5", "AUTH001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.prefix, tt.last)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMalformedID))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNext_Sequence(t *testing.T) {
	last := ""
	for i := 1; i <= 12; i++ {
		id, err := Next(PrefixAuthorization, last)
		assert.NoError(t, err)
		last = id
	}
	assert.Equal(t, "AUTH012", last)
}
