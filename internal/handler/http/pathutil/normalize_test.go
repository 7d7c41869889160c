package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/contents", "/contents"},
		{"/contents/", "/contents"},
		{"/contents?level=Easy&category=News", "/contents"},
		{"/contents/source", "/contents/source"},
		{"/contents/654c609c1d32906852a3b01e", "/contents/:id"},
		{"/contents/not-an-id", "/contents/:id"},
		{"/contents/654c609c1d32906852a3b01e/", "/contents/:id"},
		{"/contents/654c609c1d32906852a3b01e/like-count", "/contents/:id/like-count"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/swagger/index.html", "/swagger/*"},
		{"/", Unmatched},
		{"/contents/a/b", Unmatched},
		{"/contents//like-count", Unmatched},
		{"/unknown/path", Unmatched},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range []string{
		"654c609c1d32906852a3b01e", "654c609c1d32906852a3b01f", "000000000000000000000000", "garbage",
	} {
		seen[NormalizePath("/contents/"+id)] = true
		seen[NormalizePath("/contents/"+id+"/like-count")] = true
	}
	if len(seen) != 2 {
		t.Errorf("distinct labels = %d, want 2: %v", len(seen), seen)
	}
}
