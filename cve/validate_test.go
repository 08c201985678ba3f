package cve_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/cverooster/cverooster-client/cve"
)

func TestValidateYear(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		year    string
		wantErr string
	}{
		{name: "lower bound", year: "1995"},
		{name: "current year", year: "2024"},
		{name: "too old", year: "1994", wantErr: "must be between 1995 and 2024"},
		{name: "future", year: "2025", wantErr: "must be between 1995 and 2024"},
		{name: "not a number", year: "ALL", wantErr: "not an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cve.ValidateYear(tt.year, now)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "severity", err: cve.ValidateSeverity("HIGH")},
		{name: "lowercase severity", err: cve.ValidateSeverity("high"), wantErr: true},
		{name: "page", err: cve.ValidatePage(1)},
		{name: "page zero", err: cve.ValidatePage(0), wantErr: true},
		{name: "page too large", err: cve.ValidatePage(100001), wantErr: true},
		{name: "keyword", err: cve.ValidateKeyword("openssl3")},
		{name: "keyword with space", err: cve.ValidateKeyword("open ssl"), wantErr: true},
		{name: "keyword too long", err: cve.ValidateKeyword(strings.Repeat("a", 33)), wantErr: true},
		{name: "empty keyword", err: cve.ValidateKeyword(""), wantErr: true},
		{name: "label", err: cve.ValidateLabel("4")},
		{name: "unknown label", err: cve.ValidateLabel("5"), wantErr: true},
		{name: "comment", err: cve.ValidateComment(strings.Repeat("あ", 255))},
		{name: "long comment", err: cve.ValidateComment(strings.Repeat("a", 256)), wantErr: true},
		{name: "cve id", err: cve.ValidateCveID("CVE-2023-12345")},
		{name: "bad cve id", err: cve.ValidateCveID("CVE-23-1"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				assert.NoError(t, tt.err)
				return
			}
			var verr *cve.ValidationError
			require.True(t, xerrors.As(tt.err, &verr))
		})
	}
}
