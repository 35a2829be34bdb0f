package main

import (
	"context"
	"testing"

	"github.com/ankek/terraform-provider-plotexport/internal/provider"
	fwprovider "github.com/hashicorp/terraform-plugin-framework/provider"
)

func TestVersion(t *testing.T) {
	// Test that version variable exists and has a default value
	if version == "" {
		t.Error("version should not be empty")
	}

	// Default version should be "dev"
	if version != "dev" {
		t.Logf("version = %s (expected 'dev' but may be set by build)", version)
	}
}

func TestProviderVersion(t *testing.T) {
	p := provider.New(version)()

	resp := &fwprovider.MetadataResponse{}
	p.Metadata(context.Background(), fwprovider.MetadataRequest{}, resp)
	if resp.Version != version {
		t.Errorf("provider version = %q, want %q", resp.Version, version)
	}
	if resp.TypeName != "plotexport" {
		t.Errorf("provider type name = %q, want plotexport", resp.TypeName)
	}
}
