package errors

import (
	"math"
	"testing"
)

func TestValidateOpacity(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"half", 0.5, false},
		{"small", 0.001, false},

		{"negative", -0.1, true},
		{"above one", 1.1, true},
		{"large", 100, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOpacity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOpacity(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOpacity) {
				t.Errorf("ValidateOpacity(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateAngle(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"ninety", 90, false},
		{"negative", -45, false},
		{"over full turn", 450, false},
		{"fractional", 33.3, false},

		{"nan", math.NaN(), true},
		{"positive inf", math.Inf(1), true},
		{"negative inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAngle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAngle(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAngle) {
				t.Errorf("ValidateAngle(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateTaxonName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple genus", "Canis", false},
		{"binomial", "Canis lupus", false},
		{"common name", "cat", false},
		{"with hyphen", "sabre-toothed", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "Canis\x00lupus", true},
		{"control char", "Canis\x01lupus", true},
		{"newline", "Canis\nlupus", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaxonName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaxonName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateTaxonName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateImageUUID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", "9fae30cd-fb59-4a81-a39c-e1826a35f612", false},
		{"uppercase", "9FAE30CD-FB59-4A81-A39C-E1826A35F612", false},

		{"empty", "", true},
		{"not a uuid", "tyrannosaurus", true},
		{"truncated", "9fae30cd-fb59-4a81", true},
		{"wrong separators", "9fae30cd_fb59_4a81_a39c_e1826a35f612", true},
		{"trailing junk", "9fae30cd-fb59-4a81-a39c-e1826a35f612x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageUUID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageUUID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidUUID) {
				t.Errorf("ValidateImageUUID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"six digit", "#8a2be2", false},
		{"three digit", "#fff", false},
		{"uppercase", "#8A2BE2", false},

		{"empty", "", true},
		{"no hash", "8a2be2", true},
		{"named color", "purple", true},
		{"four digit", "#abcd", true},
		{"bad hex", "#zzzzzz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/silhouette.svg", false},
		{"absolute", "/tmp/silhouette.png", false},
		{"filename only", "cat.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://api.phylopic.org", false},
		{"http", "http://localhost:8080", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"no scheme", "api.phylopic.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidSource,
		ErrCodeInvalidOpacity,
		ErrCodeInvalidAngle,
		ErrCodeInvalidName,
		ErrCodeInvalidUUID,
		ErrCodeInvalidColor,
		ErrCodeInvalidSize,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeImageNotFound,
		ErrCodeNameNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeUnsupportedImage,
		ErrCodeUnsupportedRotation,
		ErrCodeDecode,
		ErrCodeEncode,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
