package errors

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "engine error",
			code:    "E100",
			wantMsg: "Unknown patch kind",
			wantCat: CategoryEngine,
		},
		{
			name:    "config error",
			code:    "E202",
			wantMsg: "Config validation failed",
			wantCat: CategoryConfig,
		},
		{
			name:    "input error",
			code:    "E301",
			wantMsg: "Cannot parse view input",
			wantCat: CategoryInput,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "a.html")
	if err.Message != `file "a.html" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if got := err.Error(); got != `file "a.html" not found` {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E300").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if got := err.Error(); got != "E300: Cannot read view input: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E300") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E201")
	if FromError(orig, "E300") != orig {
		t.Error("FromError should return an existing *Error unchanged")
	}

	wrapped := FromError(stderrors.New("x"), "E300")
	if wrapped.Code != "E300" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestWithLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtree.yaml")
	content := "a: 1\nb: 2\nc: 3\nd: 4\ne: 5\nf: 6\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E201").WithLocation(path, 3, 4)
	if err.Location.String() != path+":3:4" {
		t.Errorf("Location = %q", err.Location.String())
	}
	want := []string{"a: 1", "b: 2", "c: 3", "d: 4", "e: 5"}
	if strings.Join(err.Context, "|") != strings.Join(want, "|") {
		t.Errorf("Context = %q, want %q", err.Context, want)
	}
}

func TestWithLocationMissingFile(t *testing.T) {
	err := New("E201").WithLocation("does-not-exist.yaml", 1, 0)
	if err.Context != nil {
		t.Errorf("Context = %q, want nil", err.Context)
	}
	if err.Location.String() != "does-not-exist.yaml:1" {
		t.Errorf("Location = %q", err.Location.String())
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E202").
		WithDetail("list_size must be at least 1").
		WithSuggestion("set list_size: 100")

	out := err.Format()
	for _, want := range []string{
		"ERROR E202: Config validation failed",
		"list_size must be at least 1",
		"Hint: set list_size: 100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E201")
	err.Location = &Location{File: "vtree.yaml", Line: 2}

	if got := err.FormatCompact(); got != "vtree.yaml:2: E201: Invalid config file" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %q", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText of empty text should be nil")
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %q before %q", codes[i-1], codes[i])
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template for %s incomplete: %+v", code, tmpl)
		}
	}
}
