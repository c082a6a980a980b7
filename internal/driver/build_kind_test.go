package driver

import "testing"

func TestOutputName(t *testing.T) {
	cases := []struct {
		kind BuildKind
		goos string
		want string
	}{
		{BuildExecutable, "linux", "a"},
		{BuildObject, "linux", "a.o"},
		{BuildSharedObject, "darwin", "a.so"},
		{BuildExecutable, "windows", "a.exe"},
		{BuildObject, "windows", "a.lib"},
		{BuildSharedObject, "windows", "a.dll"},
	}
	for _, tc := range cases {
		got, err := OutputName("", tc.kind, tc.goos)
		if err != nil || got != tc.want {
			t.Errorf("OutputName(%v, %s) = %q, %v; want %q", tc.kind, tc.goos, got, err, tc.want)
		}
	}
	if got, _ := OutputName("out.bin", BuildObject, "plan9"); got != "out.bin" {
		t.Errorf("explicit name replaced: %q", got)
	}
	if _, err := OutputName("", BuildExecutable, "plan9"); err == nil {
		t.Errorf("unsupported OS must fail")
	}
}

func TestParseBuildKind(t *testing.T) {
	for in, want := range map[string]BuildKind{
		"":              BuildExecutable,
		"exe":           BuildExecutable,
		"Object":        BuildObject,
		"so":            BuildSharedObject,
		"shared-object": BuildSharedObject,
	} {
		got, err := ParseBuildKind(in)
		if err != nil || got != want {
			t.Errorf("ParseBuildKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBuildKind("firmware"); err == nil {
		t.Errorf("unknown kind accepted")
	}
	if BuildSharedObject.String() != "shared-object" {
		t.Errorf("String() = %q", BuildSharedObject.String())
	}
}
