package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "ton friendly", address: "EQDrjaLahLkMB-hMCmkzOyBuHJ139ZUYmPHu6RRBKnbdLIYI"},
		{name: "hex with prefix", address: "0x7be8076f4ea4a4ad08075c2508e481d6c946d12b"},
		{name: "raw workchain form", address: "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8"},
		{name: "empty", address: "", wantErr: true},
		{name: "too short", address: "ab", wantErr: true},
		{name: "too long", address: strings.Repeat("a", 129), wantErr: true},
		{name: "whitespace", address: "EQ wallet", wantErr: true},
		{name: "disallowed characters", address: "wallet<script>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{name: "simple", slug: "snake"},
		{name: "dashed", slug: "space-blaster-3000"},
		{name: "empty", slug: "", wantErr: true},
		{name: "uppercase", slug: "Snake", wantErr: true},
		{name: "leading dash", slug: "-snake", wantErr: true},
		{name: "double dash", slug: "space--blaster", wantErr: true},
		{name: "too long", slug: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("a", 65)))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Friday Night Speedrun"))
	assert.Error(t, ValidateTitle(""))
	assert.Error(t, ValidateTitle(strings.Repeat("a", 201)))
}
