package routepath

import (
	"testing"
)

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPath     string
		wantQuery    string
		wantFragment string
		wantChanged  bool
	}{
		{
			name:     "root",
			input:    "/",
			wantPath: "/",
		},
		{
			name:        "empty string",
			input:       "",
			wantPath:    "/",
			wantChanged: true,
		},
		{
			name:        "no leading slash",
			input:       "oil-price",
			wantPath:    "/oil-price",
			wantChanged: true,
		},
		{
			name:        "trailing slash",
			input:       "/oil-price/",
			wantPath:    "/oil-price",
			wantChanged: true,
		},
		{
			name:        "collapse slashes",
			input:       "/tools//translate",
			wantPath:    "/tools/translate",
			wantChanged: true,
		},
		{
			name:        "single dot",
			input:       "/tools/./translate",
			wantPath:    "/tools/translate",
			wantChanged: true,
		},
		{
			name:        "double dot",
			input:       "/tools/translate/../ip-query",
			wantPath:    "/tools/ip-query",
			wantChanged: true,
		},
		{
			name:        "double dot to root",
			input:       "/query/../",
			wantPath:    "/",
			wantChanged: true,
		},
		{
			name:      "query stripped",
			input:     "/novel-reader?book=42",
			wantPath:  "/novel-reader",
			wantQuery: "book=42",
		},
		{
			name:         "fragment stripped",
			input:        "/history-today#top",
			wantPath:     "/history-today",
			wantFragment: "top",
		},
		{
			name:         "trailing slash with query and fragment",
			input:        "/hot-list/?src=menu#list",
			wantPath:     "/hot-list",
			wantQuery:    "src=menu",
			wantFragment: "list",
			wantChanged:  true,
		},
		{
			name:      "query percent escapes not validated",
			input:     "/translate?q=%GG",
			wantPath:  "/translate",
			wantQuery: "q=%GG",
		},
		{
			name:     "valid percent escapes",
			input:    "/path/%2Fok",
			wantPath: "/path/%2Fok",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := CanonicalizePath(tc.input)
			if err != nil {
				t.Fatalf("CanonicalizePath(%q) unexpected error = %v", tc.input, err)
			}
			if result.Path != tc.wantPath {
				t.Errorf("CanonicalizePath(%q).Path = %q, want %q", tc.input, result.Path, tc.wantPath)
			}
			if result.Query != tc.wantQuery {
				t.Errorf("CanonicalizePath(%q).Query = %q, want %q", tc.input, result.Query, tc.wantQuery)
			}
			if result.Fragment != tc.wantFragment {
				t.Errorf("CanonicalizePath(%q).Fragment = %q, want %q", tc.input, result.Fragment, tc.wantFragment)
			}
			if result.Changed != tc.wantChanged {
				t.Errorf("CanonicalizePath(%q).Changed = %v, want %v", tc.input, result.Changed, tc.wantChanged)
			}
		})
	}
}

func TestCanonicalizePathErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"backslash", "/tools\\translate", ErrBackslashInPath},
		{"literal nul", "/tools\x00", ErrNullByteInPath},
		{"encoded nul", "/tools%00", ErrNullByteInPath},
		{"encoded nul lowercase", "/tools%00x", ErrNullByteInPath},
		{"bad escape", "/tools/%GG", ErrInvalidPercentEscape},
		{"truncated escape", "/tools/%2", ErrInvalidPercentEscape},
		{"escapes root", "/../secret", ErrPathEscapesRoot},
		{"escapes root deep", "/a/../../b", ErrPathEscapesRoot},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CanonicalizePath(tc.input)
			if err != tc.wantErr {
				t.Errorf("CanonicalizePath(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestCanonicalizeAndValidateNavPath(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"/oil-price", "/oil-price", false},
		{"/oil-price/", "/oil-price", false},
		{"/oil-price?x=1#y", "/oil-price", false},
		{"http://evil.example/", "", true},
		{"https://evil.example/", "", true},
		{"//evil.example/", "", true},
		{"oil-price", "", true},
		{"/../x", "", true},
	}

	for _, tc := range tests {
		got, err := CanonicalizeAndValidateNavPath(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("CanonicalizeAndValidateNavPath(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("CanonicalizeAndValidateNavPath(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSplitHelpers(t *testing.T) {
	p, q := SplitPathAndQuery("/a?b=c")
	if p != "/a" || q != "b=c" {
		t.Errorf("SplitPathAndQuery = (%q, %q)", p, q)
	}
	r, f := SplitFragment("/a?b=c#d")
	if r != "/a?b=c" || f != "d" {
		t.Errorf("SplitFragment = (%q, %q)", r, f)
	}
}
