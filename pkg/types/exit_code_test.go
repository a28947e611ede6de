// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    ExitCode
		wantErr bool
	}{
		{0, false},
		{1, false},
		{255, false},
		{-1, true},
		{256, true},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			t.Parallel()
			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error should wrap ErrInvalidExitCode, got %v", err)
			}
		})
	}
}

func TestExitCodeFromSignal(t *testing.T) {
	t.Parallel()

	got := ExitCodeFromSignal(15)
	if got != 143 {
		t.Errorf("ExitCodeFromSignal(15) = %d, want 143", got)
	}
	if !got.IsSignal() {
		t.Error("143 should be reported as a signal exit")
	}
	if ExitFailure.IsSignal() {
		t.Error("1 should not be reported as a signal exit")
	}
	if !ExitSuccess.IsSuccess() {
		t.Error("0 should be success")
	}
}
