// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/mapvote/catalog"
	"github.com/danielhkuo/mapvote/testutil"
)

func TestFind(t *testing.T) {
	c := catalog.New(testutil.Layers())

	l, ok := c.Find("Narva_RAAS_v1")
	if !ok || l.Map != "Narva" {
		t.Errorf("Find(Narva_RAAS_v1) = %+v,%v", l, ok)
	}
	if _, ok := c.Find("Atlantis_AAS_v1"); ok {
		t.Error("Find() found a layer that does not exist")
	}
	if c.Len() != len(testutil.Layers()) {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestLayersReturnsCopy(t *testing.T) {
	c := catalog.New(testutil.Layers())
	ls := c.Layers()
	ls[0].Map = "Changed"

	if c.Layers()[0].Map == "Changed" {
		t.Error("Layers() exposes internal storage")
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantLen int
		wantErr bool
	}{
		{
			name:    "array",
			content: `[{"layerid":"Gorodok_RAAS_v1","map":"Gorodok","gamemode":"RAAS","version":"v1","teams":[{"faction":"British Army"},{"faction":"Russian Ground Forces"}]}]`,
			wantLen: 1,
		},
		{
			name:    "wrapped",
			content: `{"layers":[{"layerid":"A_AAS_v1","map":"A","gamemode":"AAS"},{"layerid":"B_AAS_v1","map":"B","gamemode":"AAS"}]}`,
			wantLen: 2,
		},
		{
			name:    "malformed",
			content: `{"layers":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layers.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			c, err := catalog.LoadFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadFile() of a missing file should fail")
	}
}

func TestStoreAndLoadSQL(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	src := catalog.New(testutil.Layers())
	if err := src.Store(ctx, conn); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	// storing again updates in place
	if err := src.Store(ctx, conn); err != nil {
		t.Fatalf("second Store() error = %v", err)
	}

	got, err := catalog.LoadSQL(ctx, conn)
	if err != nil {
		t.Fatalf("LoadSQL() error = %v", err)
	}
	if got.Len() != src.Len() {
		t.Fatalf("LoadSQL() loaded %d layers, want %d", got.Len(), src.Len())
	}

	l, ok := got.Find("Kohat_RAAS_v2")
	if !ok {
		t.Fatal("Kohat_RAAS_v2 missing after round trip through the layer table")
	}
	if l.Teams[0].Faction != "Middle Eastern Alliance" || l.Version != "v2" {
		t.Errorf("Kohat_RAAS_v2 = %+v", l)
	}
}
