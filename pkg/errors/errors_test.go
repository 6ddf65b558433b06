package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidFrame, "frame %d out of range", -3)
	want := "INVALID_FRAME: frame -3 out of range"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(ErrCodeFileNotFound, cause, "open rig.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if got := err.Error(); got != "FILE_NOT_FOUND: open rig.toml: disk on fire" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeInvalidDocument, "bad bones"))

	if !Is(err, ErrCodeInvalidDocument) {
		t.Error("Is failed to match code through a wrap")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is matched a plain error")
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeUnsupported, "format %q", "webp")
	if GetCode(err) != ErrCodeUnsupported {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if UserMessage(err) != `format "webp"` {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}

	plain := stderrors.New("plain failure")
	if GetCode(plain) != "" {
		t.Errorf("GetCode(plain) = %q, want empty", GetCode(plain))
	}
	if UserMessage(plain) != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}
