package transcription

import (
	"errors"
	"testing"
)

func TestParseModelTier(t *testing.T) {
	tests := []struct {
		input   string
		want    ModelTier
		wantErr bool
	}{
		{input: "", want: ModelBase},
		{input: "base", want: ModelBase},
		{input: "TINY", want: ModelTiny},
		{input: " medium ", want: ModelMedium},
		{input: "small.en", want: "small.en"},
		{input: "turbo", want: ModelTurbo},
		{input: "large", want: ModelLarge},
		{input: "large.en", wantErr: true},
		{input: "huge", wantErr: true},
		{input: ".en", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModelTier(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModelTier) {
					t.Fatalf("ParseModelTier(%q) error = %v, want ErrUnknownModelTier", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelTier(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseModelTier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTiers_ReturnsCopy(t *testing.T) {
	got := Tiers()
	if len(got) != 6 {
		t.Fatalf("len(Tiers()) = %d, want 6", len(got))
	}
	got[0].Tier = "mutated"
	if Tiers()[0].Tier != ModelTiny {
		t.Error("Tiers() exposed internal slice")
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{Language: "en"}.WithDefaults()
	if opts.Model != DefaultModelTier {
		t.Errorf("Model = %q, want %q", opts.Model, DefaultModelTier)
	}
	if opts.Format.SampleRate != 16000 || opts.Format.Channels != 1 {
		t.Errorf("Format = %+v, want 16 kHz mono", opts.Format)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	bad := Options{Model: "enormous"}.WithDefaults()
	if err := bad.Validate(); !errors.Is(err, ErrUnknownModelTier) {
		t.Errorf("Validate() error = %v, want ErrUnknownModelTier", err)
	}
}
