package validation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateOutputBase(t *testing.T) {
	tmpDir := t.TempDir()

	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
		setup   func() string
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "blank path",
			path:    "   ",
			wantErr: true,
		},
		{
			name:    "valid path in temp dir",
			wantErr: false,
			setup: func() string {
				return filepath.Join(tmpDir, "plot")
			},
		},
		{
			name:    "path traversal attempt with ..",
			path:    tmpDir + "/../../../etc/passwd",
			wantErr: true,
		},
		{
			name:    "dots inside a name are allowed",
			wantErr: false,
			setup: func() string {
				return filepath.Join(tmpDir, "v1..2")
			},
		},
		{
			name:    "missing nested directories are allowed",
			wantErr: false,
			setup: func() string {
				return filepath.Join(tmpDir, "out", "figures", "plot")
			},
		},
		{
			name:    "parent is a file",
			wantErr: true,
			setup: func() string {
				return filepath.Join(blocker, "sub", "plot")
			},
		},
		{
			name:    "path is an existing directory",
			wantErr: true,
			setup: func() string {
				return tmpDir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup()
			}

			err := ValidateOutputBase(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputBase() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputBaseLeavesNoFiles(t *testing.T) {
	tmpDir := t.TempDir()

	if err := ValidateOutputBase(filepath.Join(tmpDir, "a", "b", "plot")); err != nil {
		t.Fatalf("ValidateOutputBase() error = %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files or directories to be created, found %d", len(entries))
	}
}

func TestValidateInputPath(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "figure.hcl")
	testDir := filepath.Join(tmpDir, "definitions")

	if err := os.WriteFile(testFile, []byte("title = \"x\""), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		mustBeDir bool
		wantErr   bool
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:      "valid file when file expected",
			path:      testFile,
			mustBeDir: false,
			wantErr:   false,
		},
		{
			name:      "valid directory when directory expected",
			path:      testDir,
			mustBeDir: true,
			wantErr:   false,
		},
		{
			name:      "file when directory expected",
			path:      testFile,
			mustBeDir: true,
			wantErr:   true,
		},
		{
			name:      "directory when file expected",
			path:      testDir,
			mustBeDir: false,
			wantErr:   true,
		},
		{
			name:    "non-existent path",
			path:    "/nonexistent/path",
			wantErr: true,
		},
		{
			name:    "relative traversal",
			path:    "../figure.hcl",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path, tt.mustBeDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputBase_Permissions(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}

	// Skip on Windows - permissions work differently
	if os.PathSeparator == '\\' {
		t.Skip("Skipping permission test on Windows")
	}

	tmpDir := t.TempDir()
	readOnlyDir := filepath.Join(tmpDir, "readonly")
	if err := os.MkdirAll(readOnlyDir, 0555); err != nil {
		t.Fatalf("Failed to create read-only directory: %v", err)
	}
	defer os.Chmod(readOnlyDir, 0755)

	err := ValidateOutputBase(filepath.Join(readOnlyDir, "nested", "plot"))
	if err == nil {
		t.Error("ValidateOutputBase() should fail below a read-only directory")
	}
}
